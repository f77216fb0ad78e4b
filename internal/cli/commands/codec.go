package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/sqlserde/pkg/plugin"
	"github.com/leapstack-labs/sqlserde/pkg/serde"
	"github.com/spf13/cobra"
)

var codecColumns = []string{"input", "kind", "value"}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand() *cobra.Command {
	var asTime bool

	cmd := &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Show how values are stored",
		Long: `Serialize each value the way it would be bound to a statement and print
the result. Values are read as JSON literals; anything else is a string.
With --time each value is parsed as an RFC 3339 timestamp instead.`,
		Example: `  sqlserde encode true '{"name":"test"}' 42
  sqlserde encode --time 2024-03-01T10:00:00.5+02:00`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutAdapter(cmd)

			results := make([]plugin.Row, 0, len(args))
			for _, arg := range args {
				var v any
				if asTime {
					t, err := time.Parse(time.RFC3339Nano, arg)
					if err != nil {
						return fmt.Errorf("invalid timestamp %q: %w", arg, err)
					}
					v = t
				} else {
					v = parseValue(arg)
				}

				enc := serde.Serialize(v)
				results = append(results, plugin.Row{
					"input": arg,
					"kind":  enc.Kind().String(),
					"value": enc.Interface(),
				})
			}
			return renderResults(cmd.OutOrStdout(), codecColumns, results, cc.Cfg.OutputFormat)
		},
	}

	cmd.Flags().BoolVar(&asTime, "time", false, "Parse values as RFC 3339 timestamps")
	return cmd
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode TEXT...",
		Short: "Show how stored text is read back",
		Long: `Deserialize each argument as if it were a TEXT column value and print
the recovered kind and value.`,
		Example: `  sqlserde decode true 2024-03-01T10:00:00.000Z '["a","b"]' '{not json}'`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutAdapter(cmd)

			results := make([]plugin.Row, 0, len(args))
			for _, arg := range args {
				dec := serde.Deserialize(arg)
				results = append(results, plugin.Row{
					"input": arg,
					"kind":  dec.Kind().String(),
					"value": dec.Interface(),
				})
			}
			return renderResults(cmd.OutOrStdout(), codecColumns, results, cc.Cfg.OutputFormat)
		},
	}
}
