package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlserde/internal/cli/config"
	"github.com/leapstack-labs/sqlserde/pkg/adapter"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlserde> "
	replContinuePrompt = "     ...> "
)

var (
	replTitleStyle = lipgloss.NewStyle().Bold(true)
	replMutedStyle = lipgloss.NewStyle().Faint(true)
	replErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printREPLError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, replErrorStyle.Render("Error: "+err.Error()))
}

func runQueryREPL(cmd *cobra.Command, cc *CommandContext) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newTableCompleter(ctx, cc.Adapter),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, replTitleStyle.Render("sqlserde REPL")+" "+replMutedStyle.Render(fmt.Sprintf("(%s: %s)", cc.Cfg.Adapter, cc.Cfg.Database)))
	_, _ = fmt.Fprintln(out, replMutedStyle.Render("Type .help for commands, .quit to exit"))
	_, _ = fmt.Fprintln(out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cmd, cc, line); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString(" ")
			rl.SetPrompt(replContinuePrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		query := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()

		if err := executeAndRender(ctx, out, cc.Adapter, query, nil, cc.Cfg.OutputFormat); err != nil {
			printREPLError(cmd.ErrOrStderr(), err)
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// handleDotCommand runs a REPL meta command and reports whether the REPL
// should exit.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, cc *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)

	case ".tables":
		if err := listTables(ctx, out, cc.Adapter, cc.Cfg.OutputFormat); err != nil {
			printREPLError(errOut, err)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .schema <table>")
			break
		}
		if err := showSchema(ctx, out, cc.Adapter, parts[1], cc.Cfg.OutputFormat); err != nil {
			printREPLError(errOut, err)
		}

	case ".mode":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(out, "Output format: %s\n", cc.Cfg.OutputFormat)
			break
		}
		if !slices.Contains(config.OutputFormats, parts[1]) {
			_, _ = fmt.Fprintf(errOut, "Unknown format: %s (use one of %s)\n", parts[1], strings.Join(config.OutputFormats, ", "))
			break
		}
		cc.Cfg.OutputFormat = parts[1]

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List all tables and views
  .schema <name>  Show schema for a table or view
  .mode [format]  Show or set the output format (table, json, csv, md, yaml)
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// historyFile returns the REPL history path, empty when no home directory
// is available.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlserde_history")
}

// newTableCompleter creates a readline completer for table names.
func newTableCompleter(ctx context.Context, adp adapter.Adapter) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	// Completion is best effort.
	if names, err := adp.ListTables(ctx); err == nil {
		for _, name := range names {
			items = append(items, readline.PcItem(name))
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tables"),
		readline.PcItem(".schema"),
		readline.PcItem(".mode"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
