package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/renato0307/prmonitor/internal/config"
	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/theme"
)

// SettingsCmd manages user preferences
type SettingsCmd struct {
	Notifications SettingsNotificationsCmd `cmd:"notifications" help:"Enable or disable desktop notifications"`
	Refresh       SettingsRefreshCmd       `cmd:"refresh" help:"Set the refresh time in minutes"`
	Show          SettingsShowCmd          `cmd:"show" help:"Show current settings and file locations" default:"1"`
	Theme         SettingsThemeCmd         `cmd:"theme" help:"Set the colour theme"`
}

// SettingsShowCmd displays the current settings
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	monitor := cli.Container.MonitorService
	cfg := cli.config

	values := []struct {
		key   string
		value any
	}{
		{"refresh_minutes", monitor.GetRefreshMinutes()},
		{"notifications", monitor.GetShowNotification()},
		{"theme", string(monitor.GetTheme())},
		{"token_configured", monitor.HasCredential()},
		{"github_web_host", cfg.GitHubWebHost},
		{"http_addr", cfg.HTTPAddr},
		{"max_concurrent_fetches", cfg.MaxConcurrentFetches},
		{"state_db", config.DBPath(cfg.Home)},
		{"config_file", config.ConfigPath(cfg.Home)},
	}

	if s.Format == "json" {
		output := make(map[string]any, len(values))
		for _, v := range values {
			output[v.key] = v.value
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(theme.HeaderStyle.Render("Settings"))
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, v := range values {
		fmt.Fprintf(w, "%s\t%v\n", v.key, v.value)
	}
	return w.Flush()
}

// SettingsRefreshCmd shows or sets the polling interval
type SettingsRefreshCmd struct {
	Minutes *int `arg:"" optional:"" help:"Minutes between polls (at least 1); omit to show the current value"`
}

// Run executes the refresh command
func (s *SettingsRefreshCmd) Run(cli *CLI) error {
	monitor := cli.Container.MonitorService
	if s.Minutes == nil {
		fmt.Printf("Refresh time: %d minute(s)\n", monitor.GetRefreshMinutes())
		return nil
	}

	if err := monitor.SetRefreshMinutes(context.Background(), *s.Minutes); err != nil {
		return err
	}
	fmt.Printf("Refresh time set to %d minute(s)\n", *s.Minutes)
	return nil
}

// SettingsThemeCmd shows or sets the colour theme
type SettingsThemeCmd struct {
	Theme string `arg:"" optional:"" help:"system, light or dark; omit to show the current value"`
}

// Run executes the theme command
func (s *SettingsThemeCmd) Run(cli *CLI) error {
	monitor := cli.Container.MonitorService
	if s.Theme == "" {
		fmt.Printf("Theme: %s\n", monitor.GetTheme())
		return nil
	}

	if err := monitor.SetTheme(context.Background(), s.Theme); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", s.Theme)
	return nil
}

// SettingsNotificationsCmd shows or toggles desktop notifications
type SettingsNotificationsCmd struct {
	State string `arg:"" optional:"" help:"on or off; omit to show the current value"`
}

// Run executes the notifications command
func (s *SettingsNotificationsCmd) Run(cli *CLI) error {
	monitor := cli.Container.MonitorService

	var enabled bool
	switch s.State {
	case "":
		fmt.Printf("Notifications: %s\n", onOff(monitor.GetShowNotification()))
		return nil
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("%w: notifications must be on or off, got %q", domain.ErrInvalidSettings, s.State)
	}

	if err := monitor.SetShowNotification(context.Background(), enabled); err != nil {
		return err
	}
	fmt.Printf("Notifications %s\n", s.State)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
