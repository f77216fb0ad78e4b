package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlserde/internal/cli/config"
	"github.com/leapstack-labs/sqlserde/internal/testutil"
	"github.com/leapstack-labs/sqlserde/pkg/plugin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/sqlserde/pkg/adapters/sqlite"
)

// testConfig returns a config pointing at a fresh database file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "test.db")
	return cfg
}

// runCommand executes cmd with cfg and a test logger in its context.
func runCommand(t *testing.T, cfg *config.Config, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(""))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// seedTestDB creates the test table and one row through the exec command.
func seedTestDB(t *testing.T, cfg *config.Config) {
	t.Helper()
	_, err := runCommand(t, cfg, NewExecCommand(),
		"CREATE TABLE test (id INTEGER PRIMARY KEY, gender TEXT, tag TEXT, person TEXT, date TEXT)")
	require.NoError(t, err)

	out, err := runCommand(t, cfg, NewExecCommand(),
		"INSERT INTO test (gender, tag, person, date) VALUES (?, ?, ?, ?)",
		"true", `["tag1","tag2"]`, `{"name":"test","age":2}`, "2024-03-01T10:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "1 rows affected\n", out)
}

func TestQueryCommand_Table(t *testing.T) {
	cfg := testConfig(t)
	seedTestDB(t, cfg)

	out, err := runCommand(t, cfg, NewQueryCommand(), "SELECT gender, tag, date FROM test WHERE gender = ?", "true")
	require.NoError(t, err)
	assert.Contains(t, out, "GENDER")
	assert.Contains(t, out, `["tag1","tag2"]`)
	assert.Contains(t, out, "2024-03-01T10:00:00.000Z")
	assert.Contains(t, out, "(1 rows)")
}

func TestQueryCommand_Formats(t *testing.T) {
	tests := []struct {
		format  string
		wantOut []string
	}{
		{format: "json", wantOut: []string{`"gender": true`, `"name": "test"`, `"date": "2024-03-01T10:00:00Z"`}},
		{format: "yaml", wantOut: []string{"- gender: true", "name: test", "2024-03-01T10:00:00.000Z"}},
		{format: "csv", wantOut: []string{"gender,person,date", `true,"{""age"":2,""name"":""test""}",2024-03-01T10:00:00.000Z`}},
		{format: "md", wantOut: []string{"| gender | person | date |", "| --- | --- | --- |", "| true |"}},
	}

	cfg := testConfig(t)
	seedTestDB(t, cfg)

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c := *cfg
			c.OutputFormat = tt.format
			out, err := runCommand(t, &c, NewQueryCommand(), "SELECT gender, person, date FROM test")
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestQueryCommand_NoTransform(t *testing.T) {
	cfg := testConfig(t)
	seedTestDB(t, cfg)
	cfg.NoTransform = true
	cfg.OutputFormat = "json"

	out, err := runCommand(t, cfg, NewQueryCommand(), "SELECT gender FROM test")
	require.NoError(t, err)
	assert.Contains(t, out, `"gender": "true"`)
}

func TestQueryCommand_Stdin(t *testing.T) {
	cfg := testConfig(t)
	seedTestDB(t, cfg)

	cmd := NewQueryCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("SELECT COUNT(*) AS n FROM test"))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(config.WithConfig(context.Background(), cfg)))
	assert.Contains(t, out.String(), "(1 rows)")
}

func TestQueryCommand_Errors(t *testing.T) {
	cfg := testConfig(t)

	_, err := runCommand(t, cfg, NewQueryCommand(), "SELECT * FROM missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")

	bad := testConfig(t)
	bad.Adapter = "nope"
	_, err = runCommand(t, bad, NewQueryCommand(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown adapter type")
}

func TestQueryCommand_TablesAndSchema(t *testing.T) {
	cfg := testConfig(t)
	seedTestDB(t, cfg)

	out, err := runCommand(t, cfg, NewQueryCommand(), "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
	assert.Contains(t, out, "(1 rows)")

	out, err = runCommand(t, cfg, NewQueryCommand(), "schema", "test")
	require.NoError(t, err)
	assert.Contains(t, out, "Table: main.test (1 rows)")
	assert.Contains(t, out, "gender")
	assert.Contains(t, out, "TEXT")

	_, err = runCommand(t, cfg, NewQueryCommand(), "schema", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()
	assert.Equal(t, "query", cmd.Name())
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("input"))

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"tables", "schema"}, names)
}

func TestRenderResults_Empty(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "table", want: "(0 rows)\n"},
		{format: "md", want: "(0 rows)\n"},
		{format: "json", want: "[]\n"},
		{format: "csv", want: "a,b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, renderResults(buf, []string{"a", "b"}, nil, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderYAML_KeepsColumnOrder(t *testing.T) {
	buf := new(bytes.Buffer)
	rows := []plugin.Row{{"z": 1, "a": "x"}}
	require.NoError(t, renderResults(buf, []string{"z", "a"}, rows, "yaml"))
	assert.Equal(t, "- z: 1\n  a: x\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "NULL"},
		{"hello", "hello"},
		{int64(42), "42"},
		{3.14, "3.14"},
		{true, "true"},
		{time.Date(2024, time.March, 1, 10, 0, 0, 500_000_000, time.UTC), "2024-03-01T10:00:00.500Z"},
		{[]byte{0xde, 0xad}, "x'dead'"},
		{[]any{"a", 1.0}, `["a",1]`},
		{map[string]any{"k": "v"}, `{"k":"v"}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatValue(tt.input))
	}
}
