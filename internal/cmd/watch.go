package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/theme"
)

// WatchCmd runs the scheduler in the foreground until interrupted
type WatchCmd struct {
	Quiet bool `help:"Do not print events, only notify" short:"q"`
}

// Run executes the watch command
func (w *WatchCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.Container
	defer c.NotificationService.Attach(c.Bus)()
	if !w.Quiet {
		defer c.MonitorService.Subscribe("terminal", printEvent)()
	}

	open := 0
	for _, pr := range c.MonitorService.ListTracked() {
		if pr.IsOpen() {
			open++
		}
	}
	fmt.Printf("%s watching %d open pull request(s) every %d minute(s), Ctrl+C to stop\n",
		theme.HeaderStyle.Render("prmonitor"), open, c.MonitorService.GetRefreshMinutes())

	if err := c.MonitorService.StartTask(ctx); err != nil {
		return err
	}

	// the scheduler only stops by itself on unauthorized, when configured to
	go func() {
		if err := c.Scheduler.Wait(ctx); err == nil {
			logging.Logger.Warn("Scheduler stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("Stopping watch")
	c.MonitorService.StopTask()
	return nil
}

func printEvent(e domain.Event) {
	at := e.At.Local().Format(time.TimeOnly)
	switch e.Kind {
	case domain.EventStateChanged:
		label := "closed"
		if e.Merged {
			label = "merged"
		}
		fmt.Printf("%s %s %s %s %s\n",
			theme.MutedStyle.Render(at),
			theme.ClosedIconStyle.Render(domain.SymbolClosed),
			e.Identity,
			theme.MergedLabelStyle.Render(label),
			e.Title)
	case domain.EventNeedsAttention:
		fmt.Printf("%s %s %s %s\n",
			theme.MutedStyle.Render(at),
			theme.OpenIconStyle.Render(domain.SymbolOpen),
			theme.ErrorStyle.Render(e.Message),
			e.Title)
	case domain.EventFailure:
		fmt.Printf("%s %s\n", theme.MutedStyle.Render(at), theme.ErrorStyle.Render(e.Message))
	}
}
