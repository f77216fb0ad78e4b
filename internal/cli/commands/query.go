package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/sqlserde/pkg/adapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL] [VALUE...]",
		Short: "Run a query and print deserialized rows",
		Args:  cobra.ArbitraryArgs,
		Long: `Run a SQL query and print its rows with stored values converted back
into their rich form: "true"/"false" become booleans, timestamp strings
become times and JSON objects or arrays are decoded.

Values after the SQL are bound to its placeholders and serialized first.
Each value is read as a JSON literal; anything else is a plain string.

When invoked without arguments on a terminal, enters interactive REPL mode.
Piped input is read as the query.`,
		Example: `  # Select everything from a table
  sqlserde query "SELECT * FROM test" --database app.db

  # Bind values
  sqlserde query "SELECT * FROM test WHERE gender = ?" true

  # List tables
  sqlserde query tables

  # Show schema for a table
  sqlserde query schema test

  # Output as JSON
  sqlserde query "SELECT * FROM test" -o json

  # Interactive mode
  sqlserde query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	cmd.AddCommand(newQueryTablesCommand())
	cmd.AddCommand(newQuerySchemaCommand())

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	var (
		sqlQuery string
		values   []string
	)

	switch {
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
		values = args
	case len(args) > 0:
		sqlQuery = args[0]
		values = args[1:]
	case !isTerminal(cmd.InOrStdin()):
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	}

	interactive := opts.Input == "" && len(args) == 0 && isTerminal(cmd.InOrStdin())
	if !interactive && strings.TrimSpace(sqlQuery) == "" {
		return fmt.Errorf("no SQL provided")
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if interactive {
		return runQueryREPL(cmd, cc)
	}
	return executeAndRender(cmd.Context(), cmd.OutOrStdout(), cc.Adapter, sqlQuery, parseValues(values), cc.Cfg.OutputFormat)
}

func executeAndRender(ctx context.Context, w io.Writer, adp adapter.Adapter, sqlQuery string, args []any, format string) error {
	rows, err := adp.Query(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return renderRows(w, rows, format)
}

// newQueryTablesCommand creates the tables subcommand.
func newQueryTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List all tables and views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return listTables(cmd.Context(), cmd.OutOrStdout(), cc.Adapter, cc.Cfg.OutputFormat)
		},
	}
}

// newQuerySchemaCommand creates the schema subcommand.
func newQuerySchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <table>",
		Short: "Show schema for a table or view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return showSchema(cmd.Context(), cmd.OutOrStdout(), cc.Adapter, args[0], cc.Cfg.OutputFormat)
		},
	}
}

func listTables(ctx context.Context, w io.Writer, adp adapter.Adapter, format string) error {
	names, err := adp.ListTables(ctx)
	if err != nil {
		return err
	}
	return renderTableNames(w, names, format)
}

func showSchema(ctx context.Context, w io.Writer, adp adapter.Adapter, table, format string) error {
	meta, err := adp.GetTableMetadata(ctx, table)
	if err != nil {
		return err
	}
	return renderSchema(w, meta, format)
}

// isTerminal reports whether r is an interactive terminal. Readers that
// are not files, such as test buffers, never are.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
