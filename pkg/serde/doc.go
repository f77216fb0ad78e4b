// Package serde converts application values to and from the narrow set of
// column types a textual SQL backend such as SQLite stores natively.
//
// On write, Serialize turns booleans into "true"/"false", time.Time into
// an ISO-8601 UTC timestamp with millisecond precision and structured
// values (maps, slices, structs) into JSON text. Strings, numbers, nil and
// binary payloads pass through untouched.
//
// On read, Deserialize recovers richer values from strings by sniffing
// their content in a fixed order:
//
//  1. the literals "true" and "false" become booleans
//  2. strings shaped like a timestamp (see DatePattern) become time.Time
//  3. strings bracketed by {} or [] are decoded as JSON when valid
//  4. anything else is returned as the original string
//
// The sniffing is heuristic. A TEXT column that happens to hold "true" or
// a timestamp-shaped string is reinterpreted on read, and a date nested
// inside a structured value comes back as its ISO string rather than a
// time.Time because it travels through the JSON path. Nested times are
// written in RFC 3339 with nanoseconds and the original zone offset, so only
// UTC values nested this way still match DatePattern.
//
// Every function in this package is pure and safe for concurrent use.
// None of them return errors or panic: values that cannot be encoded are
// passed through unchanged and the storage layer reports the failure.
package serde
