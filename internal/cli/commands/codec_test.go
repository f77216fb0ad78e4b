package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut []string
		errMsg  string
	}{
		{
			name:    "bool",
			args:    []string{"true"},
			wantOut: []string{"true,text,true"},
		},
		{
			name:    "object",
			args:    []string{`{"b":1,"a":[true]}`},
			wantOut: []string{`text,"{""a"":[true],""b"":1}"`},
		},
		{
			name:    "number and null",
			args:    []string{"42", "null"},
			wantOut: []string{"42,passthrough,42", "null,passthrough,NULL"},
		},
		{
			name:    "plain string",
			args:    []string{"hello"},
			wantOut: []string{"hello,passthrough,hello"},
		},
		{
			name:    "time",
			args:    []string{"--time", "2024-03-01T12:00:00.5+02:00"},
			wantOut: []string{"2024-03-01T12:00:00.5+02:00,text,2024-03-01T10:00:00.500Z"},
		},
		{
			name:   "bad time",
			args:   []string{"--time", "yesterday"},
			errMsg: "invalid timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.OutputFormat = "csv"
			out, err := runCommand(t, cfg, NewEncodeCommand(), tt.args...)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "input,kind,value")
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestDecodeCommand(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "json"

	out, err := runCommand(t, cfg, NewDecodeCommand(),
		"true", "2024-03-01 10:00:00", "[1,2]", "{not json}", "plain")
	require.NoError(t, err)

	assert.Contains(t, out, `"kind": "bool"`)
	assert.Contains(t, out, `"kind": "time"`)
	assert.Contains(t, out, `"kind": "json"`)
	assert.Contains(t, out, `"value": "{not json}"`)
	assert.Contains(t, out, `"kind": "string"`)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "true", want: true},
		{in: "null", want: nil},
		{in: "42", want: int64(42)},
		{in: "1.5", want: 1.5},
		{in: `"quoted"`, want: "quoted"},
		{in: "[1]", want: []any{json.Number("1")}},
		{in: "hello", want: "hello"},
		{in: "1 2", want: "1 2"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}
