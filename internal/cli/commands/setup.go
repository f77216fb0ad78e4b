package commands

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlserde/internal/cli/config"
	"github.com/leapstack-labs/sqlserde/pkg/adapter"
	"github.com/leapstack-labs/sqlserde/pkg/plugin"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Logger  *slog.Logger
	Plugin  *plugin.Plugin
	Adapter adapter.Adapter
}

// NewCommandContext creates a CommandContext with a connected adapter.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutAdapter(cmd)

	adp, err := adapter.NewAdapter(cc.Cfg.AdapterConfig(cc.Plugin), cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := adp.Connect(cmd.Context(), cc.Cfg.AdapterConfig(cc.Plugin)); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s database %q: %w", cc.Cfg.Adapter, cc.Cfg.Database, err)
	}
	cc.Adapter = adp

	cleanup := func() {
		_ = adp.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutAdapter creates a CommandContext without a
// database connection. Useful for commands that only transform values.
func NewCommandContextWithoutAdapter(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Plugin: plugin.New(plugin.WithLogger(logger)),
	}
}
