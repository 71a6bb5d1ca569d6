// Package utils holds small helpers shared by the HTTP handlers and the
// data layer.
package utils

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
)

// NullStringOrEmpty returns the string value if valid, otherwise returns an empty string
func NullStringOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NullInt64OrDefault returns the int64 value if valid, otherwise returns the default value
func NullInt64OrDefault(ni sql.NullInt64, defaultValue int64) int64 {
	if ni.Valid {
		return ni.Int64
	}
	return defaultValue
}

// NullFloatPtr converts a nullable float column into a pointer for JSON
// output, where missing data is omitted rather than zeroed.
func NullFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// NullIntPtr converts a nullable integer column into a pointer for JSON output.
func NullIntPtr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}

// ParseIntParam parses an integer query parameter, recording a field error
// on failure. Missing parameters return the default without error.
func ParseIntParam(params url.Values, name string, defaultValue int, fieldErrors map[string][]string) int {
	raw := params.Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrors[name] = append(fieldErrors[name], fmt.Sprintf("invalid integer: %q", raw))
		return defaultValue
	}
	return value
}
