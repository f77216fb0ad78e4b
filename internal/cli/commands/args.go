package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// parseValues converts command line values into query arguments. Each
// value is read as a JSON literal so booleans, numbers, null, arrays and
// objects keep their type; anything that is not valid JSON is a string.
func parseValues(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		out[i] = parseValue(s)
	}
	return out
}

func parseValue(s string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}
	// Trailing data means s was not a single literal.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return s
	}

	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}
