package serde

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserialize(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantKind Kind
		want     any
	}{
		{name: "nil", value: nil, wantKind: KindPassthrough, want: nil},
		{name: "int64 from driver", value: int64(42), wantKind: KindPassthrough, want: int64(42)},
		{name: "int", value: 42, wantKind: KindPassthrough, want: 42},
		{name: "float64 from driver", value: 1.25, wantKind: KindPassthrough, want: 1.25},
		{name: "bytes from driver", value: []byte{1, 2, 3}, wantKind: KindPassthrough, want: []byte{1, 2, 3}},
		{name: "true literal", value: "true", wantKind: KindBool, want: true},
		{name: "false literal", value: "false", wantKind: KindBool, want: false},
		{name: "named string true", value: label("true"), wantKind: KindBool, want: true},
		{name: "upper case is not a bool", value: "TRUE", wantKind: KindString, want: "TRUE"},
		{name: "object", value: `{"name":"test","age":2}`, wantKind: KindJSON, want: map[string]any{"name": "test", "age": float64(2)}},
		{name: "array", value: `["tag1","tag2"]`, wantKind: KindJSON, want: []any{"tag1", "tag2"}},
		{name: "empty array", value: `[]`, wantKind: KindJSON, want: []any{}},
		{name: "invalid json", value: "{not valid json}", wantKind: KindString, want: "{not valid json}"},
		{name: "unbalanced brackets", value: "[1,2", wantKind: KindString, want: "[1,2"},
		{name: "json scalar stays a string", value: `"quoted"`, wantKind: KindString, want: `"quoted"`},
		{name: "number text stays a string", value: "42", wantKind: KindString, want: "42"},
		{name: "plain", value: "hello", wantKind: KindString, want: "hello"},
		{name: "empty", value: "", wantKind: KindString, want: ""},
		{name: "impossible date", value: "2024-13-45T00:00:00Z", wantKind: KindString, want: "2024-13-45T00:00:00Z"},
		{name: "offset date is not recognized", value: "2024-01-01T00:00:00+02:00", wantKind: KindString, want: "2024-01-01T00:00:00+02:00"},
		{name: "date only", value: "2024-01-01", wantKind: KindString, want: "2024-01-01"},
		{name: "bool input", value: true, wantKind: KindUndefined, want: nil},
		{name: "time input", value: time.Now(), wantKind: KindUndefined, want: nil},
		{name: "map input", value: map[string]any{"a": 1}, wantKind: KindUndefined, want: nil},
		{name: "struct input", value: struct{}{}, wantKind: KindUndefined, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deserialize(tt.value)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestDeserialize_Dates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "iso with millis",
			input: "2024-03-01T10:00:00.123Z",
			want:  time.Date(2024, time.March, 1, 10, 0, 0, 123000000, time.UTC),
		},
		{
			name:  "space separator",
			input: "2024-03-01 10:00:00Z",
			want:  time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "long fraction truncated to millis",
			input: "2024-03-01T10:00:00.987654321987Z",
			want:  time.Date(2024, time.March, 1, 10, 0, 0, 987000000, time.UTC),
		},
		{
			name:  "single fraction digit",
			input: "2024-03-01T10:00:00.5Z",
			want:  time.Date(2024, time.March, 1, 10, 0, 0, 500000000, time.UTC),
		},
		{
			name:  "no zone means local",
			input: "2024-03-01 10:00:00",
			want:  time.Date(2024, time.March, 1, 10, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deserialize(tt.input)
			require.Equal(t, KindTime, got.Kind())
			ts, ok := got.Time()
			require.True(t, ok)
			assert.True(t, tt.want.Equal(ts), "want %s, got %s", tt.want, ts)
		})
	}
}

func TestDeserialize_SkipIdentity(t *testing.T) {
	bigInt := big.NewInt(99)
	buf := bytes.NewBufferString("x")
	blob := Blob{1, 2}

	assert.Same(t, bigInt, Deserialize(bigInt).Interface())
	assert.Same(t, buf, Deserialize(buf).Interface())
	assert.Equal(t, blob, Deserialize(blob).Interface())
	assert.Equal(t, KindPassthrough, Deserialize(blob).Kind())
}

func TestDecoded_Accessors(t *testing.T) {
	b, ok := Deserialize("true").Bool()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Deserialize("plain").Bool()
	assert.False(t, ok)

	_, ok = Deserialize("true").Time()
	assert.False(t, ok)

	undefined := Deserialize(false)
	assert.True(t, undefined.IsUndefined())
	assert.Nil(t, undefined.Interface())

	assert.True(t, Decode(KindUndefined, "ignored").IsUndefined())
	assert.Nil(t, Decode(KindUndefined, "ignored").Interface())
}

func TestKind_String(t *testing.T) {
	names := map[Kind]string{
		KindUndefined:   "undefined",
		KindPassthrough: "passthrough",
		KindBool:        "bool",
		KindTime:        "time",
		KindJSON:        "json",
		KindString:      "string",
		Kind(42):        "unknown",
	}
	for k, want := range names {
		assert.Equal(t, want, k.String())
	}
}

func TestParseTime(t *testing.T) {
	_, ok := ParseTime("not a date")
	assert.False(t, ok)

	_, ok = ParseTime("2023-02-29T00:00:00Z")
	assert.False(t, ok, "2023 is not a leap year")

	ts, ok := ParseTime("2024-02-29T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.UTC, ts.Location())
}
