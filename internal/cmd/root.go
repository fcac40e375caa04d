package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/renato0307/prmonitor/internal/config"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/theme"
	"github.com/renato0307/prmonitor/version"
)

// CLI represents the command-line interface structure
type CLI struct {
	Config      string           `help:"Path to the YAML config file (default $PRMONITOR_HOME/config.yaml)" env:"PRMONITOR_CONFIG"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file"`
	ShowVersion kong.VersionFlag `name:"version" help:"Show version information"`

	PRs      PRsCmd      `cmd:"prs" help:"Manage tracked pull requests (list, add, del, open)"`
	Serve    ServeCmd    `cmd:"serve" help:"Run the monitor and expose the HTTP API"`
	Settings SettingsCmd `cmd:"settings" help:"Show or change refresh time, theme and notifications"`
	Token    TokenCmd    `cmd:"token" help:"Manage the GitHub access token"`
	Version  VersionCmd  `cmd:"version" help:"Show version information"`
	Watch    WatchCmd    `cmd:"watch" help:"Run the monitor in the foreground and print events"`

	// Internal fields (not flags)
	Container *Container     `kong:"-"`
	config    *config.Config `kong:"-"`
}

// AfterApply loads the configuration, initializes logging and wires the container
func (c *CLI) AfterApply(kctx *kong.Context) error {
	command := kctx.Command()
	if command == "version" {
		return nil
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.config = cfg

	// long-running commands also log to the terminal
	console := strings.HasPrefix(command, "watch") || strings.HasPrefix(command, "serve")

	logFilePath, err := logging.Initialize(logging.Options{
		Console:    console,
		Debug:      c.Debug,
		DebugFile:  c.DebugFile,
		Dir:        cfg.Home,
		Level:      cfg.LogLevel,
		MaxBackups: cfg.LogMaxBackups,
		MaxSizeMB:  cfg.LogMaxSizeMB,
	})
	if err != nil {
		return err
	}

	// Child processes (notification tools, browsers) share the same log file
	if logFilePath != "" {
		os.Setenv("PRMONITOR_DEBUG", "1")
		os.Setenv("PRMONITOR_DEBUG_FILE", logFilePath)
	}

	// Create container AFTER logging is initialized so the GORM logger writes somewhere
	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	theme.Apply(container.MonitorService.GetTheme())
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	defer logging.Close()
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// VersionCmd prints build information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run() error {
	fmt.Println(version.Info())
	return nil
}
