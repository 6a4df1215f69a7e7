package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/contactsim/internal/logging"
	"github.com/mesh-intelligence/contactsim/pkg/contacts"
	"github.com/mesh-intelligence/contactsim/pkg/portal"
	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func newRunCmd(a *app) *cobra.Command {
	var f scenarioFlags
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Drive the client through a scenario's simulated calls",
		Long: "Run replays a scenario through a mock portal connection and prints what\n" +
			"the client returned. Simulated portal failures are reported in the output;\n" +
			"any other error fails the command.\n\n" + scenarioHelp(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.runScenario(cmd.Context(), args[0], &f)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scenario %s: %d calls\n", view.Scenario, view.Calls)
			if view.Session != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "session: %s\n", view.Session)
			}
			if view.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "portal error: %s\n", view.Error)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), view.Result)
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) runScenario(ctx context.Context, name string, f *scenarioFlags) (runView, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := lookupScenario(name)
	if err != nil {
		return runView{}, err
	}
	in, err := f.input(a.settings, a.now())
	if err != nil {
		return runView{}, err
	}
	calls, err := simulator.Simulate(s.simulate(in))
	if err != nil {
		return runView{}, fmt.Errorf("simulate %s: %w", name, err)
	}

	view := runView{Scenario: name, Calls: len(calls)}
	connOpts := []portal.Option{portal.WithLogger(a.logger)}
	if f.record {
		store, err := a.openStore()
		if err != nil {
			return runView{}, err
		}
		defer store.Close()
		session, err := store.CreateSession(name)
		if err != nil {
			return runView{}, sysError{err}
		}
		view.Session = session.ID()
		connOpts = append(connOpts, portal.WithRecorder(session))
	}

	conn := portal.NewMockConnection(calls, connOpts...)
	client, err := contacts.NewClient(conn,
		contacts.WithPageSize(in.cfg.PageSize),
		contacts.WithBatchSize(in.cfg.BatchSize),
		contacts.WithLogger(a.logger),
	)
	if err != nil {
		return runView{}, err
	}

	var result any
	runErr := a.logger.LogOperation(ctx, logging.Operation(name), func() error {
		var err error
		result, err = s.run(ctx, client, in)
		return err
	})
	if err := conn.Close(); err != nil && runErr == nil {
		return runView{}, fmt.Errorf("run %s: %w", name, err)
	}

	switch {
	case runErr == nil:
		view.Result = result
	case errors.Is(runErr, types.ErrClientError), errors.Is(runErr, types.ErrServerError):
		view.Result = result
		view.Error = runErr.Error()
	default:
		return runView{}, fmt.Errorf("run %s: %w", name, runErr)
	}
	return view, nil
}
