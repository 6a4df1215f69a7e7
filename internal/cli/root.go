// Package cli implements the contactsim command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/contactsim/internal/logging"
	"github.com/mesh-intelligence/contactsim/internal/paths"
	"github.com/mesh-intelligence/contactsim/internal/sqlite"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// sysError marks failures of the environment rather than of the invocation.
type sysError struct {
	err error
}

func (e sysError) Error() string { return e.err.Error() }
func (e sysError) Unwrap() error { return e.err }

// app holds global flag values and the state loaded before a subcommand
// runs.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool

	settings settings
	logger   *logging.Logger
	now      func() time.Time
}

// NewRootCmd creates the top-level "contactsim" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "contactsim",
		Short: "Simulate the HubSpot Contacts API for client tests",
		Long: "contactsim generates the request and response sequences the HubSpot\n" +
			"Contacts API produces, replays them against the client through a mock\n" +
			"portal connection, and records transcripts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return sysError{fmt.Errorf("resolve config dir: %w", err)}
			}
			a.configDir = configDir
			if a.settings, err = loadSettings(configDir); err != nil {
				return err
			}
			a.logger = logging.NewLogger(cmd.ErrOrStderr(), a.settings.Logging)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "transcript directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newSimulateCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSessionsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

func exitCode(err error) int {
	var sys sysError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}

// resolveDataDir applies --data-dir > config data_dir > CONTACTSIM_DATA_DIR.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
}

// openStore opens the transcript store in the resolved data directory. The
// caller must Close it.
func (a *app) openStore() (*sqlite.Store, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysError{fmt.Errorf("resolve data dir: %w", err)}
	}
	store, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, sysError{fmt.Errorf("open transcript store: %w", err)}
	}
	return store, nil
}
