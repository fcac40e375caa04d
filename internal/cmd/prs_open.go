package cmd

import (
	"fmt"

	"github.com/renato0307/prmonitor/internal/logging"
)

// PRsOpenCmd opens a tracked pull request in the browser
type PRsOpenCmd struct {
	Number int `arg:"" help:"Number of the pull request to open"`
}

// Run executes the open command
func (s *PRsOpenCmd) Run(cli *CLI) error {
	link, err := cli.Container.MonitorService.PullRequestURL(s.Number)
	if err != nil {
		return err
	}

	logging.Logger.Debug("Opening pull request", "number", s.Number, "url", link)
	if err := cli.Container.Opener.Open(link); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	fmt.Printf("Opened %s\n", link)
	return nil
}
