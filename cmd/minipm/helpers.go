package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"minipm/internal/client"
	"minipm/internal/config"
	"minipm/internal/logging"
)

// clientProfile loads the client profile and applies command-line overrides.
func clientProfile() (*config.ClientConfig, error) {
	path := profilePath
	if path == "" {
		path = config.DefaultClientConfigPath()
	}
	prof, err := config.LoadClient(path)
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		prof.Endpoint = endpoint
	}
	if orgFlag != "" {
		prof.Organization = orgFlag
	}
	if timeout > 0 {
		prof.Timeout = timeout
	}
	return prof, nil
}

// newClient builds a GraphQL client from the profile.
func newClient() (*client.Client, *config.ClientConfig, error) {
	prof, err := clientProfile()
	if err != nil {
		return nil, nil, err
	}
	var opts []client.Option
	if prof.Timeout > 0 {
		opts = append(opts, client.WithTimeout(prof.Timeout))
	}
	c := client.New(prof.Endpoint, prof.Organization, opts...)
	logging.ClientDebug("Using %s as organization %q", c.Endpoint(), c.Organization())
	return c, prof, nil
}

// commandContext is cancelled by SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// optString returns the flag's value when the user set it, nil otherwise.
// Values are trimmed.
func optString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	v = strings.TrimSpace(v)
	return &v
}

// confirm asks a yes/no question on in unless --yes was given.
func confirm(cmd *cobra.Command, in io.Reader, question string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)
	return t
}

func percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
