// Package binding provides a reflect-free way to extract values from an HTTP
// request. Values are located by a Source and a key, converted with a Parser,
// and either stored into a destination (One, OneDefault, OnePtr) or collected
// into a Values set by interpreting a declarative Rules table (see Rules.Apply).
package binding

import (
	"errors"
	"fmt"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/podhmo/go-reflector/message"
)

// Source represents the location of a value in an HTTP request.
type Source string

const (
	Query  Source = "query"
	Header Source = "header"
	Cookie Source = "cookie"
	Path   Source = "path"
	// Form is the URL query merged with an urlencoded request body.
	Form Source = "form"
	// Body is the whole request body decoded as UTF-8 text. The key is ignored.
	Body Source = "body"
)

// Requirement specifies whether a value is required or optional.
type Requirement bool

const (
	Required Requirement = true
	Optional Requirement = false
)

// Parser is a generic function that parses a string into a value of type T.
type Parser[T any] func(string) (T, error)

// Binding holds the request being bound and the path variables the router
// extracted for it. It caches the body so Body lookups can be repeated.
type Binding struct {
	req       *http.Request
	pathValue func(string) string

	body     *string
	formRead bool
	formErr  error
}

// New creates a Binding. pathValue is typically provided by the router
// (e.g. mux.Vars); it may be nil when the route has no path variables.
func New(req *http.Request, pathValue func(string) string) *Binding {
	return &Binding{req: req, pathValue: pathValue}
}

// Request returns the request being bound.
func (b *Binding) Request() *http.Request { return b.req }

// Lookup retrieves a value and whether it exists. A key that is present with an
// empty value is reported as existing. Only Body and Form lookups can fail,
// when reading or parsing the body fails.
func (b *Binding) Lookup(source Source, key string) (string, bool, error) {
	switch source {
	case Query:
		q := b.req.URL.Query()
		if q.Has(key) {
			return q.Get(key), true, nil
		}
		return "", false, nil
	case Header:
		vals, ok := b.headerValues(key)
		if !ok {
			return "", false, nil
		}
		if len(vals) > 0 {
			return vals[0], true, nil
		}
		return "", true, nil // e.g. "X-Custom-Header:"
	case Cookie:
		cookie, err := b.req.Cookie(key)
		if err == nil {
			return cookie.Value, true, nil
		}
		return "", false, nil // http.ErrNoCookie
	case Path:
		if b.pathValue == nil {
			return "", false, nil
		}
		if val := b.pathValue(key); val != "" {
			return val, true, nil
		}
		return "", false, nil
	case Form:
		if err := b.parseForm(); err != nil {
			return "", false, err
		}
		if vals, ok := b.req.Form[key]; ok {
			if len(vals) > 0 {
				return vals[0], true, nil
			}
			return "", true, nil
		}
		return "", false, nil
	case Body:
		text, err := b.Body()
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}
	return "", false, fmt.Errorf("binding: unknown source %q", source)
}

// Body reads the whole request body once and returns it as UTF-8 text.
func (b *Binding) Body() (string, error) {
	if b.body != nil {
		return *b.body, nil
	}
	text := ""
	if b.req.Body != nil {
		var err error
		text, err = message.ReadText(b.req.Body)
		if err != nil {
			return "", fmt.Errorf("binding: %w", err)
		}
	}
	b.body = &text
	return text, nil
}

// parseForm parses the query and the urlencoded body once. Pairs that do not
// decode are dropped, as URL.Query does; failing to read the body is an error.
func (b *Binding) parseForm() error {
	if b.formRead {
		return b.formErr
	}
	b.formRead = true
	if err := b.req.ParseForm(); err != nil && !isDecodeError(err) {
		b.formErr = fmt.Errorf("binding: parse form: %w", err)
	}
	return b.formErr
}

// isDecodeError reports errors of url.ParseQuery. Request.Form still holds
// every pair that decoded.
func isDecodeError(err error) bool {
	var escapeErr url.EscapeError
	if errors.As(err, &escapeErr) {
		return true
	}
	return strings.Contains(err.Error(), "invalid semicolon separator")
}

// headerValues looks the key up case-insensitively. The net/http server moves
// the Host header into Request.Host, so "host" falls back to it.
func (b *Binding) headerValues(key string) ([]string, bool) {
	canonicalKey := textproto.CanonicalMIMEHeaderKey(key)
	if vals, ok := b.req.Header[canonicalKey]; ok {
		return vals, true
	}
	if canonicalKey == "Host" && b.req.Host != "" {
		return []string{b.req.Host}, true
	}
	return nil, false
}

// One binds a single value of a non-pointer type (e.g., int, string).
// 'dest' must be a pointer to the field where the value will be stored.
// An optional value that is absent leaves dest untouched.
func One[T any](b *Binding, dest *T, source Source, key string, parse Parser[T], req Requirement) error {
	valStr, ok, err := b.Lookup(source, key)
	if err != nil {
		return err
	}
	if !ok {
		if req == Required {
			return missing(source, key)
		}
		return nil
	}

	val, err := parse(valStr)
	if err != nil {
		return invalid(source, key, valStr, err)
	}
	*dest = val
	return nil
}

// OneDefault binds a single value, substituting def when the value is absent
// or empty. The default itself goes through parse.
func OneDefault[T any](b *Binding, dest *T, source Source, key string, parse Parser[T], def string) error {
	valStr, ok, err := b.Lookup(source, key)
	if err != nil {
		return err
	}
	if !ok || valStr == "" {
		valStr = def
	}
	val, err := parse(valStr)
	if err != nil {
		return invalid(source, key, valStr, err)
	}
	*dest = val
	return nil
}

// OnePtr binds a single value of a pointer type (e.g., *int, *string).
// If the value is optional and not present, the destination pointer is set to nil.
func OnePtr[T any](b *Binding, dest **T, source Source, key string, parse Parser[T], req Requirement) error {
	valStr, ok, err := b.Lookup(source, key)
	if err != nil {
		return err
	}
	if !ok {
		if req == Required {
			return missing(source, key)
		}
		*dest = nil
		return nil
	}

	val, err := parse(valStr)
	if err != nil {
		return invalid(source, key, valStr, err)
	}
	*dest = &val
	return nil
}
