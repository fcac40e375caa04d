package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renato0307/prmonitor/internal/adapters/httpapi"
	"github.com/renato0307/prmonitor/internal/logging"
)

// ServeCmd runs the monitor behind the HTTP and WebSocket API
type ServeCmd struct {
	Addr      string `help:"Listen address (overrides http_addr from the config)"`
	NoAutorun bool   `help:"Do not start polling until POST /api/task/start"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := s.Addr
	if addr == "" {
		addr = cli.config.HTTPAddr
	}

	c := cli.Container
	defer c.NotificationService.Attach(c.Bus)()

	server := httpapi.NewServer(addr, c.MonitorService, c.Opener)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP API: %w", err)
	}
	fmt.Printf("prmonitor API listening on http://%s\n", addr)

	if !s.NoAutorun {
		if err := c.MonitorService.StartTask(ctx); err != nil {
			return err
		}
	}

	<-ctx.Done()
	logging.Logger.Info("Shutting down")
	c.MonitorService.StopTask()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP API: %w", err)
	}
	return nil
}
