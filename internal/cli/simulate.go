package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/contactsim/pkg/simulator"
	"github.com/mesh-intelligence/contactsim/pkg/types"
)

func newSimulateCmd(a *app) *cobra.Command {
	var f scenarioFlags
	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Print the API calls a scenario produces",
		Long:  "Simulate generates the ordered requests and responses of a scenario.\n\n" + scenarioHelp(),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupScenario(args[0])
			if err != nil {
				return err
			}
			in, err := f.input(a.settings, a.now())
			if err != nil {
				return err
			}
			calls, err := simulator.Simulate(s.simulate(in))
			if err != nil {
				return fmt.Errorf("simulate %s: %w", args[0], err)
			}

			if f.record {
				id, err := a.recordCalls(args[0], calls)
				if err != nil {
					return err
				}
				a.logger.Info("recorded session", "session", id, "calls", len(calls))
			}

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), newCallViews(calls))
			}
			for i, call := range calls {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s  %s\n", i, call.Request, outcomeLabel(call))
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func outcomeLabel(call types.APICall) string {
	if apiErr := call.Err(); apiErr != nil {
		return apiErr.Error()
	}
	return "ok"
}

// recordCalls stores calls as a new session without dispatching them.
func (a *app) recordCalls(scenario string, calls []types.APICall) (string, error) {
	store, err := a.openStore()
	if err != nil {
		return "", err
	}
	defer store.Close()

	session, err := store.CreateSession(scenario)
	if err != nil {
		return "", sysError{err}
	}
	for seq, call := range calls {
		if err := session.Record(seq, call); err != nil {
			return "", sysError{err}
		}
	}
	return session.ID(), nil
}
