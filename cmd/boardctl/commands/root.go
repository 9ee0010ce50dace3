// Package commands implements the boardctl command line.
package commands

import (
	"fmt"
	"os"

	"boardsync/internal/apiclient"

	"github.com/spf13/cobra"
)

var versionString = "dev"

// SetVersionInfo sets the version shown by --version.
func SetVersionInfo(version, commit string) {
	versionString = fmt.Sprintf("%s (commit: %s)", version, commit)
}

// Execute runs boardctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree. Output goes to cmd.OutOrStdout so
// tests can capture it.
func NewRootCmd() *cobra.Command {
	var configPath, serverURL string

	root := &cobra.Command{
		Use:   "boardctl",
		Short: "Command line client for boardsync boards",
		Long: `boardctl talks to a boardsync server: log in, inspect boards, reorder
lists, move cards and watch a board change live.

Credentials are kept in ~/.boardctl.yaml (override with --config or
BOARDCTL_CONFIG).`,
		Version:       versionString,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "credentials file (default ~/.boardctl.yaml)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default from credentials, else http://localhost:8080)")

	e := &env{configPath: &configPath, serverURL: &serverURL}
	root.AddCommand(
		newLoginCmd(e),
		newRegisterCmd(e),
		newBoardsCmd(e),
		newBoardCmd(e),
		newListsCmd(e),
		newCardsCmd(e),
		newWatchCmd(e),
	)
	return root
}

const defaultServer = "http://localhost:8080"

// env resolves global flags into credentials and an API client.
type env struct {
	configPath *string
	serverURL  *string
}

func (e *env) path() (string, error) {
	if *e.configPath != "" {
		return *e.configPath, nil
	}
	if p := os.Getenv("BOARDCTL_CONFIG"); p != "" {
		return p, nil
	}
	return defaultCredentialsPath()
}

func (e *env) credentials() (*Credentials, string, error) {
	path, err := e.path()
	if err != nil {
		return nil, "", err
	}
	creds, err := LoadCredentials(path)
	if err != nil {
		return nil, "", err
	}
	if *e.serverURL != "" {
		creds.Server = *e.serverURL
	}
	if creds.Server == "" {
		creds.Server = defaultServer
	}
	return creds, path, nil
}

// client returns an authenticated client, or a printed error when no token
// is stored.
func (e *env) client(cmd *cobra.Command) (*apiclient.Client, error) {
	creds, _, err := e.credentials()
	if err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, printError(cmd, "not logged in",
			"No token found for "+creds.Server+".",
			[]string{"Log in first:\n  boardctl login --email you@example.com"})
	}
	return apiclient.New(creds.Server, apiclient.WithToken(creds.Token)), nil
}
