package serde

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the frozen output format for time values.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Serialize converts value into a form a textual backend accepts.
//
// Skip values and strings pass through. Booleans become "true" or
// "false", time.Time becomes a UTC timestamp in TimeLayout and everything
// else is encoded as JSON. When JSON encoding fails the value passes
// through unchanged.
func Serialize(value any) Encoded {
	if SkipTransform(value) {
		return EncodePassthrough(value)
	}

	v := derefScalar(value)
	if t, ok := v.(time.Time); ok {
		return EncodeText(FormatTime(t))
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.String:
		return EncodePassthrough(v)
	case rv.Kind() == reflect.Bool:
		return EncodeText(strconv.FormatBool(rv.Bool()))
	case isNumericKind(rv.Kind()):
		return EncodePassthrough(v)
	}

	if s, ok := encodeJSON(value); ok {
		return EncodeText(s)
	}
	return EncodePassthrough(value)
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// derefScalar unwraps a non-nil pointer to a string, bool, number or
// time.Time. Pointers to anything else are left for the JSON encoder.
func derefScalar(value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return value
	}
	elem := rv.Elem()
	if _, ok := elem.Interface().(time.Time); ok {
		return elem.Interface()
	}
	switch k := elem.Kind(); {
	case k == reflect.String, k == reflect.Bool, isNumericKind(k):
		return elem.Interface()
	}
	return value
}

func encodeJSON(value any) (s string, ok bool) {
	// Marshaler implementations may panic; treat that as an encoding failure.
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}
