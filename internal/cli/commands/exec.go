package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlserde/pkg/plugin"
	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec SQL [VALUE...]",
		Short: "Execute a statement with serialized arguments",
		Long: `Execute a SQL statement that does not return rows.

Values after the SQL are bound to its placeholders. Each value is read as
a JSON literal and serialized before it reaches the database: booleans
are stored as "true"/"false" and arrays or objects as JSON text. Values
that are not valid JSON are bound as plain strings.`,
		Example: `  # Create a table
  sqlserde exec "CREATE TABLE test (gender TEXT, tag TEXT, person TEXT)" --database app.db

  # Insert typed values
  sqlserde exec "INSERT INTO test VALUES (?, ?, ?)" true '["tag1","tag2"]' '{"name":"test","age":2}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			values := parseValues(args[1:])
			cc.Logger.Debug("executing statement", "args", len(values))

			affected, err := cc.Adapter.Exec(cmd.Context(), args[0], values...)
			if err != nil {
				return err
			}

			switch cc.Cfg.OutputFormat {
			case "json", "yaml", "csv":
				return renderResults(cmd.OutOrStdout(), []string{"rows_affected"},
					[]plugin.Row{{"rows_affected": affected}}, cc.Cfg.OutputFormat)
			default:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d rows affected\n", affected)
				return nil
			}
		},
	}
}
