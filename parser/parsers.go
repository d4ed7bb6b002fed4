// Package parser provides the string-to-value conversions used by the binding
// and config packages. Every parser has the shape func(string) (T, error) so
// it can be passed as a binding.Parser[T].
package parser

import (
	"strconv"

	"golang.org/x/text/language"
)

// String always succeeds and returns the input as is.
func String(s string) (string, error) {
	return s, nil
}

// Int converts a base-10 integer with strconv.Atoi.
// Surrounding whitespace is not accepted.
func Int(s string) (int, error) {
	return strconv.Atoi(s)
}

// Locale parses a BCP 47 language tag such as "ko-KR" or "en".
func Locale(s string) (language.Tag, error) {
	return language.Parse(s)
}
