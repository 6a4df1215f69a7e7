package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

type sessionView struct {
	ID        string    `json:"session_id"`
	Scenario  string    `json:"scenario"`
	CreatedAt time.Time `json:"created_at"`
	Calls     int       `json:"calls"`
}

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List recorded transcript sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.Sessions()
			if err != nil {
				return sysError{err}
			}
			views := make([]sessionView, 0, len(sessions))
			for _, s := range sessions {
				views = append(views, sessionView{ID: s.ID, Scenario: s.Scenario, CreatedAt: s.CreatedAt, Calls: s.Calls})
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), views)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tSCENARIO\tCALLS\tCREATED")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", v.ID, v.Scenario, v.Calls, v.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <session> <file>",
		Short: "Export a session as a JSONL transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ExportJSONL(args[0], args[1]); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a JSONL transcript as a new session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.ImportJSONL(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
