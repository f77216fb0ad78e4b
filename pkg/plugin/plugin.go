// Package plugin applies a serde serializer to outgoing query arguments and
// a serde deserializer to incoming column values.
//
// It is the glue between database/sql and package serde: adapters hand
// every argument to TransformArgs before executing a statement and every
// scanned row to TransformRow before returning it to the caller.
package plugin

import (
	"database/sql"
	"database/sql/driver"
	"log/slog"
	"reflect"

	"github.com/leapstack-labs/sqlserde/pkg/serde"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// RawValue marks an argument that must reach the driver untransformed.
type RawValue struct {
	Value any
}

// Raw wraps v so TransformArgs passes it through as is. Use it for values
// that are already in their stored form, such as pre-encoded JSON text
// that must not be quoted again.
func Raw(v any) RawValue {
	return RawValue{Value: v}
}

// Plugin transforms query arguments and result values. It is immutable
// after construction and safe for concurrent use.
type Plugin struct {
	serialize   serde.Serializer
	deserialize serde.Deserializer
	logger      *slog.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithSerializer replaces the default serializer. A nil serializer is ignored.
func WithSerializer(s serde.Serializer) Option {
	return func(p *Plugin) {
		if s != nil {
			p.serialize = s
		}
	}
}

// WithDeserializer replaces the default deserializer. A nil deserializer is ignored.
func WithDeserializer(d serde.Deserializer) Option {
	return func(p *Plugin) {
		if d != nil {
			p.deserialize = d
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Plugin using serde.Serialize and serde.Deserialize unless
// overridden by options.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		serialize:   serde.Serialize,
		deserialize: serde.Deserialize,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TransformArgs returns a copy of args with every value serialized.
// RawValue arguments are unwrapped without transformation, sql.NamedArg
// keeps its name and driver.Valuer implementations are resolved before
// serializing. A nil Plugin returns args unchanged.
func (p *Plugin) TransformArgs(args []any) []any {
	if p == nil || len(args) == 0 {
		return args
	}

	out := make([]any, len(args))
	var encoded int
	for i, arg := range args {
		out[i] = p.transformArg(arg)
		if enc, ok := out[i].(serde.Encoded); ok && enc.Kind() == serde.EncodedText {
			encoded++
		}
	}

	p.logger.Debug("transformed query args",
		slog.Int("count", len(args)),
		slog.Int("encoded", encoded))
	return out
}

func (p *Plugin) transformArg(arg any) any {
	switch v := arg.(type) {
	case RawValue:
		return v.Value
	case sql.NamedArg:
		v.Value = p.transformArg(v.Value)
		return v
	case serde.Encoded:
		return v
	case driver.Valuer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return p.serialize(nil)
		}
		dv, err := v.Value()
		if err != nil {
			// database/sql calls Value again and reports the error.
			return arg
		}
		return p.serialize(dv)
	}
	return p.serialize(arg)
}

// TransformValue deserializes one column value. Values with no defined
// mapping become nil.
func (p *Plugin) TransformValue(v any) any {
	if p == nil {
		return v
	}
	return p.deserialize(v).Interface()
}

// TransformRow builds a Row from parallel column and value slices,
// deserializing each value.
func (p *Plugin) TransformRow(columns []string, values []any) Row {
	row := make(Row, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		row[col] = p.TransformValue(values[i])
	}
	return row
}
