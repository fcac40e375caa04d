package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/theme"
)

// PRsAddCmd adds a pull request to the tracked set
type PRsAddCmd struct {
	URL string `arg:"" help:"Pull request link, e.g. https://github.com/owner/repo/pull/42"`
}

// Run executes the add command
func (s *PRsAddCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing prs add command", "url", s.URL)

	list, err := cli.Container.MonitorService.AddTracked(context.Background(), s.URL)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) && !cli.Container.MonitorService.HasCredential() {
			return fmt.Errorf("%w (run 'prmonitor token set' first)", err)
		}
		return err
	}

	added := list[len(list)-1]
	fmt.Printf("%s Tracking %s: %s\n", theme.StateIcon(added), added.Identity(), added.Title)
	return nil
}
