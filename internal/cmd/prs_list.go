package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/theme"
)

// PRsListCmd lists tracked pull requests
type PRsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Open   bool   `help:"Only show pull requests that are still open"`
}

type prJSON struct {
	AddedAt   time.Time  `json:"added_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	Mergeable string     `json:"mergeable_state,omitempty"`
	Merged    bool       `json:"merged"`
	Number    int        `json:"number"`
	Owner     string     `json:"owner"`
	Repo      string     `json:"repo"`
	State     string     `json:"state"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
}

// Run executes the list command
func (s *PRsListCmd) Run(cli *CLI) error {
	monitor := cli.Container.MonitorService

	var prs []domain.TrackedPullRequest
	for _, pr := range monitor.ListTracked() {
		if s.Open && !pr.IsOpen() {
			continue
		}
		prs = append(prs, pr)
	}

	if s.Format == "json" {
		return s.printJSON(prs, monitor.WebHost())
	}
	return s.printTable(prs)
}

func (s *PRsListCmd) printJSON(prs []domain.TrackedPullRequest, host string) error {
	out := make([]prJSON, 0, len(prs))
	for _, pr := range prs {
		out = append(out, prJSON{
			AddedAt:   pr.AddedAt,
			ClosedAt:  pr.ClosedAt,
			Mergeable: string(pr.Mergeable),
			Merged:    pr.Merged,
			Number:    pr.Number,
			Owner:     pr.Owner,
			Repo:      pr.Repo,
			State:     string(pr.State),
			Title:     pr.Title,
			URL:       pr.Identity().URL(host),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (s *PRsListCmd) printTable(prs []domain.TrackedPullRequest) error {
	if len(prs) == 0 {
		fmt.Println(theme.MutedStyle.Render("No pull requests tracked. Add one with 'prmonitor prs add <url>'."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNUMBER\tREPOSITORY\tSTATE\tTITLE\tADDED")
	for _, pr := range prs {
		fmt.Fprintf(w, "%s\t#%d\t%s/%s\t%s\t%s\t%s\n",
			theme.StateIcon(pr),
			pr.Number,
			pr.Owner, pr.Repo,
			theme.StateLabel(pr),
			pr.Title,
			pr.AddedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
