package sqlite

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds SQLite-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// BusyTimeout is the lock wait in milliseconds (0 leaves the driver default).
	BusyTimeout int `mapstructure:"busy_timeout"`

	// JournalMode sets PRAGMA journal_mode (e.g., "wal", "memory").
	JournalMode string `mapstructure:"journal_mode"`

	// ForeignKeys toggles PRAGMA foreign_keys when set.
	ForeignKeys *bool `mapstructure:"foreign_keys"`

	// Pragmas are applied verbatim on every new connection.
	Pragmas map[string]string `mapstructure:"pragmas"`
}

// decodeParams decodes raw adapter params. Unknown keys are rejected so
// typos in sqlserde.yaml surface early.
func decodeParams(raw map[string]any) (Params, error) {
	var p Params
	if len(raw) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return p, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return p, fmt.Errorf("invalid sqlite params: %w", err)
	}
	return p, nil
}

// pragmas returns the connection pragmas in a stable order.
func (p Params) pragmas() []string {
	var out []string
	if p.BusyTimeout > 0 {
		out = append(out, "busy_timeout("+strconv.Itoa(p.BusyTimeout)+")")
	}
	if p.JournalMode != "" {
		out = append(out, "journal_mode("+p.JournalMode+")")
	}
	if p.ForeignKeys != nil {
		v := "0"
		if *p.ForeignKeys {
			v = "1"
		}
		out = append(out, "foreign_keys("+v+")")
	}

	keys := make([]string, 0, len(p.Pragmas))
	for k := range p.Pragmas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"("+p.Pragmas[k]+")")
	}
	return out
}

// buildDSN appends pragmas and driver options to path as modernc.org/sqlite
// query parameters.
func buildDSN(path string, p Params, options map[string]string) string {
	if path == "" {
		path = ":memory:"
	}

	q := url.Values{}
	for _, pragma := range p.pragmas() {
		q.Add("_pragma", pragma)
	}
	for k, v := range options {
		q.Set(k, v)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func isMemory(path string) bool {
	return path == "" || path == ":memory:"
}
