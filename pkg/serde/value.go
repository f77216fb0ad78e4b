package serde

import (
	"database/sql/driver"
	"math/big"
	"reflect"
	"time"
)

// Serializer converts one outgoing value into its storable form.
type Serializer func(value any) Encoded

// Deserializer converts one raw column value into a richer value.
type Deserializer func(value any) Decoded

// EncodedKind identifies the shape of a serialized value.
type EncodedKind uint8

const (
	// EncodedPassthrough means the input was returned unchanged.
	EncodedPassthrough EncodedKind = iota
	// EncodedText means the input was rendered to a string.
	EncodedText
)

func (k EncodedKind) String() string {
	switch k {
	case EncodedPassthrough:
		return "passthrough"
	case EncodedText:
		return "text"
	default:
		return "unknown"
	}
}

// Encoded is the result of a Serializer. It implements driver.Valuer so it
// can be handed to database/sql directly.
type Encoded struct {
	kind  EncodedKind
	value any
}

// EncodeText returns an Encoded holding s.
func EncodeText(s string) Encoded {
	return Encoded{kind: EncodedText, value: s}
}

// EncodePassthrough returns an Encoded holding v unchanged.
func EncodePassthrough(v any) Encoded {
	return Encoded{kind: EncodedPassthrough, value: v}
}

// Kind returns the shape of the encoded value.
func (e Encoded) Kind() EncodedKind {
	return e.kind
}

// Text returns the encoded string when the kind is EncodedText.
func (e Encoded) Text() (string, bool) {
	if e.kind != EncodedText {
		return "", false
	}
	s, ok := e.value.(string)
	return s, ok
}

// Interface returns the encoded runtime value.
func (e Encoded) Interface() any {
	return e.value
}

// Value implements driver.Valuer. Binary payloads and byte arrays are lowered
// to []byte and
// math/big numbers to int64, float64 or their decimal text; every other
// passthrough value goes through the default database/sql conversion,
// which reports values the backend cannot store.
func (e Encoded) Value() (driver.Value, error) {
	if s, ok := e.Text(); ok {
		return s, nil
	}
	v := e.value
	if isNil(v) {
		return nil, nil
	}
	switch n := v.(type) {
	case *big.Int:
		if n.IsInt64() {
			return n.Int64(), nil
		}
		return n.String(), nil
	case *big.Float:
		f, _ := n.Float64()
		return f, nil
	case *big.Rat:
		f, _ := n.Float64()
		return f, nil
	case BinaryPayload:
		return n.Bytes(), nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return b, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// Kind identifies the shape of a deserialized value.
type Kind uint8

const (
	// KindUndefined means the input had no defined mapping.
	KindUndefined Kind = iota
	// KindPassthrough means the input was returned unchanged.
	KindPassthrough
	// KindBool means a "true" or "false" literal was recovered.
	KindBool
	// KindTime means a timestamp string was recovered as time.Time.
	KindTime
	// KindJSON means a JSON object or array was decoded.
	KindJSON
	// KindString means the input string was returned as is.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindPassthrough:
		return "passthrough"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	case KindJSON:
		return "json"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Decoded is the result of a Deserializer. The zero value is undefined.
type Decoded struct {
	kind  Kind
	value any
}

// Decode returns a Decoded of the given kind. The value is dropped for
// KindUndefined.
func Decode(kind Kind, v any) Decoded {
	if kind == KindUndefined {
		return Decoded{}
	}
	return Decoded{kind: kind, value: v}
}

// Kind returns the shape of the decoded value.
func (d Decoded) Kind() Kind {
	return d.kind
}

// IsUndefined reports whether the input had no defined mapping.
func (d Decoded) IsUndefined() bool {
	return d.kind == KindUndefined
}

// Interface returns the decoded runtime value, nil when undefined.
func (d Decoded) Interface() any {
	return d.value
}

// Bool returns the recovered boolean when the kind is KindBool.
func (d Decoded) Bool() (bool, bool) {
	b, ok := d.value.(bool)
	return b, ok && d.kind == KindBool
}

// Time returns the recovered instant when the kind is KindTime.
func (d Decoded) Time() (time.Time, bool) {
	t, ok := d.value.(time.Time)
	return t, ok && d.kind == KindTime
}
