package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultWebHost is the host used to build and accept pull request links
const DefaultWebHost = "github.com"

// ParsePullRequestURL extracts owner, repo and number from
// https://<host>/<owner>/<repo>/pull/<number>. Extra path segments after the
// number (/files, /commits), query strings and fragments are ignored.
// An empty host accepts any host.
func ParsePullRequestURL(raw, host string) (PRIdentity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PRIdentity{}, fmt.Errorf("%w: empty url", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return PRIdentity{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return PRIdentity{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if host != "" && !strings.EqualFold(u.Hostname(), host) {
		return PRIdentity{}, fmt.Errorf("%w: host %q is not %q", ErrInvalidURL, u.Hostname(), host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 4 || parts[2] != "pull" {
		return PRIdentity{}, fmt.Errorf("%w: expected /<owner>/<repo>/pull/<number>, got %q", ErrInvalidURL, u.Path)
	}
	owner, repo := parts[0], parts[1]
	if owner == "" || repo == "" {
		return PRIdentity{}, fmt.Errorf("%w: missing owner or repo", ErrInvalidURL)
	}

	number, err := strconv.Atoi(parts[3])
	if err != nil || number <= 0 {
		return PRIdentity{}, fmt.Errorf("%w: %q is not a pull request number", ErrInvalidURL, parts[3])
	}

	return PRIdentity{Number: number, Owner: owner, Repo: repo}, nil
}
