package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/prmonitor/internal/logging"
)

// PRsDelCmd removes a pull request from the tracked set
type PRsDelCmd struct {
	Force  bool `help:"Remove without confirmation" short:"f"`
	Number int  `arg:"" help:"Number of the pull request to remove"`
}

// Run executes the del command
func (s *PRsDelCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing prs del command", "number", s.Number, "force", s.Force)

	if !s.Force && !s.confirm(cli) {
		return nil
	}

	if err := cli.Container.MonitorService.RemoveTracked(context.Background(), s.Number); err != nil {
		logging.Logger.Error("Failed to remove pull request", "number", s.Number, "error", err)
		return fmt.Errorf("failed to remove pull request: %w", err)
	}

	fmt.Printf("Pull request #%d removed\n", s.Number)
	return nil
}

func (s *PRsDelCmd) confirm(cli *CLI) bool {
	link, err := cli.Container.MonitorService.PullRequestURL(s.Number)
	if err != nil {
		// nothing tracked under that number, removal is a no-op
		return true
	}

	fmt.Printf("Stop tracking %s?\n", link)
	fmt.Print("\nContinue? (y/N): ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		logging.Logger.Info("User cancelled removal", "number", s.Number)
		fmt.Println("Cancelled")
		return false
	}
	return true
}
