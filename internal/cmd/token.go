package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/renato0307/prmonitor/internal/logging"
)

// TokenCmd manages the GitHub access token
type TokenCmd struct {
	Clear  TokenClearCmd  `cmd:"clear" help:"Forget the stored token"`
	Set    TokenSetCmd    `cmd:"set" help:"Store a token (read from stdin when not given)"`
	Status TokenStatusCmd `cmd:"status" help:"Show whether a token is configured" default:"1"`
}

// TokenStatusCmd reports whether a token is stored
type TokenStatusCmd struct{}

// Run executes the status command
func (s *TokenStatusCmd) Run(cli *CLI) error {
	if cli.Container.MonitorService.HasCredential() {
		fmt.Println("Token: configured")
	} else {
		fmt.Println("Token: not configured")
	}
	return nil
}

// TokenSetCmd stores a token
type TokenSetCmd struct {
	Value string `help:"Token value; prefer stdin to keep it out of shell history"`
}

// Run executes the set command
func (s *TokenSetCmd) Run(cli *CLI) error {
	value := s.Value
	if value == "" {
		var err error
		value, err = readSecret("GitHub token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("token is empty (use 'prmonitor token clear' to remove it)")
	}

	if err := cli.Container.MonitorService.SetCredential(context.Background(), value); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	logging.Logger.Info("Token updated")
	fmt.Println("Token stored")
	return nil
}

// TokenClearCmd removes the stored token
type TokenClearCmd struct{}

// Run executes the clear command
func (s *TokenClearCmd) Run(cli *CLI) error {
	if err := cli.Container.MonitorService.SetCredential(context.Background(), ""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	logging.Logger.Info("Token cleared")
	fmt.Println("Token cleared")
	return nil
}

// readSecret reads without echo from a terminal, or a single line from a pipe
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}
