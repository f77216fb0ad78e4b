package serde

import (
	"math/big"
	"reflect"
	"strings"
)

// BinaryPayload is implemented by values that carry raw bytes and are
// stored as a BLOB without transformation. *bytes.Buffer satisfies it.
type BinaryPayload interface {
	Bytes() []byte
}

// Blob is a byte slice tagged as a binary payload.
type Blob []byte

// Bytes returns the underlying bytes.
func (b Blob) Bytes() []byte {
	return b
}

// SkipTransform reports whether value bypasses transformation in both
// directions. That is the case for nil (including typed nil pointers,
// maps and slices), every integer and float kind, arbitrary-precision
// numbers from math/big and binary payloads.
func SkipTransform(value any) bool {
	return isNil(value) || isNumeric(value) || IsBinary(value)
}

// IsBinary reports whether value is a binary payload: any type whose
// underlying type is a byte slice or byte array, or any BinaryPayload
// implementation. The math/big numbers expose Bytes but are numbers, not
// payloads.
func IsBinary(value any) bool {
	if value == nil || isBigNumber(value) {
		return false
	}
	if _, ok := value.(BinaryPayload); ok {
		return true
	}
	return isByteSeq(reflect.TypeOf(value))
}

func isByteSeq(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() == reflect.Uint8
	default:
		return false
	}
}

func isBigNumber(value any) bool {
	switch value.(type) {
	case *big.Int, *big.Float, *big.Rat:
		return true
	}
	return false
}

// MaybeJSON reports whether s looks like a JSON object or array. Only the
// first and last characters are checked; s may still fail to decode.
func MaybeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

func isNumeric(value any) bool {
	if isBigNumber(value) {
		return true
	}
	return isNumericKind(reflect.TypeOf(value).Kind())
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
