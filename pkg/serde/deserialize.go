package serde

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// DatePattern matches the timestamp strings Deserialize turns into
// time.Time: a date, a 'T' or space, a time of day, an optional fraction
// of any length and an optional trailing 'Z'.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?Z?$`)

// Deserialize converts a raw column value into a richer value.
//
// Skip values pass through. Values that are not strings have no defined
// mapping and yield an undefined result. Strings are checked, in order,
// for the boolean literals, DatePattern and MaybeJSON; a string matching
// none of them, or failing to parse, is returned unchanged.
func Deserialize(value any) Decoded {
	if SkipTransform(value) {
		return Decode(KindPassthrough, value)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.String {
		return Decoded{}
	}
	s := rv.String()

	switch s {
	case "true":
		return Decode(KindBool, true)
	case "false":
		return Decode(KindBool, false)
	}

	if t, ok := ParseTime(s); ok {
		return Decode(KindTime, t)
	}

	if MaybeJSON(s) {
		var out any
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return Decode(KindJSON, out)
		}
	}

	return Decode(KindString, value)
}

// ParseTime parses s when it matches DatePattern. A trailing 'Z' selects
// UTC, otherwise the local zone is used. The result is truncated to
// millisecond precision. Strings that match the pattern but name no real
// instant, such as month 13, report false.
func ParseTime(s string) (time.Time, bool) {
	if !DatePattern.MatchString(s) {
		return time.Time{}, false
	}

	loc := time.Local
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z")
		loc = time.UTC
	}
	// Normalize the separator; the fraction is accepted implicitly.
	s = s[:10] + "T" + s[11:]

	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t.Truncate(time.Millisecond), true
}
