package domain

import (
	"fmt"
	"time"
)

// PRState represents the lifecycle state of a tracked pull request
type PRState string

const (
	StateClosed PRState = "closed"
	StateOpen   PRState = "open"
)

// Status symbols (Unicode)
const (
	SymbolClosed = "●" // Purple - closed or merged
	SymbolOpen   = "○" // Green - still open
)

// ParsePRState converts the string form used by storage and the GitHub API
func ParsePRState(s string) (PRState, error) {
	switch PRState(s) {
	case StateOpen, StateClosed:
		return PRState(s), nil
	default:
		return "", fmt.Errorf("unknown pull request state %q", s)
	}
}

// PRIdentity identifies a pull request across repositories
type PRIdentity struct {
	Number int
	Owner  string
	Repo   string
}

// String renders owner/repo#number
func (id PRIdentity) String() string {
	return fmt.Sprintf("%s/%s#%d", id.Owner, id.Repo, id.Number)
}

// URL rebuilds the browsable link for the pull request on the given web host
func (id PRIdentity) URL(host string) string {
	return fmt.Sprintf("https://%s/%s/%s/pull/%d", host, id.Owner, id.Repo, id.Number)
}

// MergeableState is GitHub's view of whether an open pull request can merge
type MergeableState string

const (
	MergeableBehind   MergeableState = "behind"
	MergeableBlocked  MergeableState = "blocked"
	MergeableClean    MergeableState = "clean"
	MergeableDirty    MergeableState = "dirty"
	MergeableDraft    MergeableState = "draft"
	MergeableHasHooks MergeableState = "has_hooks"
	MergeableUnknown  MergeableState = "unknown"
	MergeableUnstable MergeableState = "unstable"
)

// Known is false while GitHub is still computing mergeability
func (m MergeableState) Known() bool {
	return m != "" && m != MergeableUnknown
}

// Attention describes why the pull request needs the user, or returns ""
func (m MergeableState) Attention() string {
	switch m {
	case MergeableDirty:
		return "has conflicts"
	case MergeableBlocked:
		return "is blocked"
	case MergeableUnstable:
		return "has failing checks"
	default:
		return ""
	}
}

// TrackedPullRequest is a pull request the user asked to watch (domain entity)
type TrackedPullRequest struct {
	AddedAt   time.Time
	ClosedAt  *time.Time
	Mergeable MergeableState
	Merged    bool
	Number    int
	Owner     string
	Repo      string
	State     PRState
	Title     string
}

// Identity returns the (owner, repo, number) key of the entry
func (p TrackedPullRequest) Identity() PRIdentity {
	return PRIdentity{Number: p.Number, Owner: p.Owner, Repo: p.Repo}
}

// IsOpen reports whether the entry still needs polling
func (p TrackedPullRequest) IsOpen() bool {
	return p.State == StateOpen
}

// RemoteState is what the external source reports for a pull request
type RemoteState struct {
	ClosedAt  *time.Time
	Mergeable MergeableState
	Merged    bool
	State     PRState
	Title     string
}
