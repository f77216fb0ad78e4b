package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <table> <file.csv>",
		Short: "Load a CSV file into a table",
		Long: `Load a CSV file into a table, creating it with TEXT columns named after
the header row if it does not exist. Cells are stored as text, so
"true"/"false" and timestamp cells read back typed.`,
		Example: `  sqlserde load people ./people.csv --database app.db`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := cc.Adapter.LoadCSV(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			meta, err := cc.Adapter.GetTableMetadata(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s into %s (%d rows)\n", args[1], meta.Name, meta.RowCount)
			return nil
		},
	}
}
