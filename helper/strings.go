package helper

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Underscore converts a StructField name to its snake_case JSON key.
func Underscore(s string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(s, `${1}_${2}`))
}
