package binding

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iancoleman/orderedmap"
	"github.com/podhmo/go-reflector/parser"
)

// Kind is the target type of a Rule.
type Kind int

const (
	KindString Kind = iota
	KindInt
	// KindMap collects every key of the source with its first value into an
	// *orderedmap.OrderedMap. Query keeps the order of the raw query string;
	// Form puts the query keys first in that order, then the body keys
	// sorted; Header keys are sorted.
	KindMap
	// KindMultiMap collects every key with all its values: http.Header for
	// Header, url.Values for Query and Form.
	KindMultiMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindMap:
		return "map"
	case KindMultiMap:
		return "multimap"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule declares how one field is bound: where the value comes from, what it
// is converted to, and what happens when it is absent.
type Rule struct {
	// Field names the value in the resulting Values.
	Field  string
	Source Source
	// Key is the name looked up in Source. Empty means Field.
	Key      string
	Kind     Kind
	Required Requirement

	def    string
	hasDef bool
}

// WithDefault returns a copy of r that substitutes def when the source value
// is missing or empty. A defaulted rule is never reported as missing.
func (r Rule) WithDefault(def string) Rule {
	r.def = def
	r.hasDef = true
	return r
}

// Default returns the declared default and whether one is set.
func (r Rule) Default() (string, bool) { return r.def, r.hasDef }

func (r Rule) key() string {
	if r.Key == "" {
		return r.Field
	}
	return r.Key
}

// Rules is a binding table, interpreted by Apply.
type Rules []Rule

// Check reports table mistakes: unnamed or duplicated fields and kinds the
// source cannot produce. Routes call it once at startup.
func (rs Rules) Check() error {
	var errs []error
	seen := make(map[string]bool, len(rs))
	for i, r := range rs {
		if r.Field == "" {
			errs = append(errs, fmt.Errorf("binding: rule #%d has no field name", i))
			continue
		}
		if seen[r.Field] {
			errs = append(errs, fmt.Errorf("binding: field %q is declared twice", r.Field))
		}
		seen[r.Field] = true
		if err := r.checkKind(); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

func (r Rule) checkKind() error {
	switch r.Kind {
	case KindString, KindInt:
		return nil
	case KindMap, KindMultiMap:
		if r.Source == Query || r.Source == Header || r.Source == Form {
			return nil
		}
	default:
		return fmt.Errorf("binding: field %q has unknown kind %s", r.Field, r.Kind)
	}
	return fmt.Errorf("binding: field %q: %s source cannot be bound as %s", r.Field, r.Source, r.Kind)
}

// Apply binds every rule against b. Binding failures of the request data are
// collected and returned together; each is an *Error. Body read failures are
// returned as they are, without trying the remaining rules.
func (rs Rules) Apply(b *Binding) (Values, error) {
	vals := make(Values, len(rs))
	var errs []error
	for _, r := range rs {
		v, ok, err := r.bind(b)
		if err != nil {
			if _, isBinding := err.(*Error); !isBinding {
				return nil, fmt.Errorf("binding: field %q: %w", r.Field, err)
			}
			errs = append(errs, err)
			continue
		}
		if ok {
			vals[r.Field] = v
		}
	}
	if err := joinErrors(errs); err != nil {
		return nil, err
	}
	return vals, nil
}

func (r Rule) bind(b *Binding) (any, bool, error) {
	switch r.Kind {
	case KindMap:
		m, err := b.firstValues(r.Source)
		return m, err == nil, err
	case KindMultiMap:
		m, err := b.allValues(r.Source)
		return m, err == nil, err
	case KindString:
		return bindScalar(b, r, parser.String)
	case KindInt:
		return bindScalar(b, r, nonEmpty(parser.Int))
	}
	return nil, false, fmt.Errorf("unknown kind %s", r.Kind)
}

// bindScalar binds with OneDefault when the rule has a default and with OnePtr
// otherwise, so an optional absent value stays absent instead of zero.
func bindScalar[T any](b *Binding, r Rule, parse Parser[T]) (any, bool, error) {
	source, key := r.Source, r.key()
	if r.hasDef {
		var v T
		if err := OneDefault(b, &v, source, key, parse, r.def); err != nil {
			return nil, false, err
		}
		return v, true, nil
	}

	var p *T
	if err := OnePtr(b, &p, source, key, parse, r.Required); err != nil {
		if !errors.Is(err, errEmpty) {
			return nil, false, err
		}
		p = nil
		if r.Required == Required {
			return nil, false, missing(source, key)
		}
	}
	if p == nil {
		return nil, false, nil
	}
	return *p, true, nil
}

var errEmpty = errors.New("empty value")

// nonEmpty rejects "" with errEmpty: an empty number is no number at all.
func nonEmpty[T any](parse Parser[T]) Parser[T] {
	return func(s string) (T, error) {
		if s == "" {
			var zero T
			return zero, errEmpty
		}
		return parse(s)
	}
}

// allValues returns a copy of every value of the source.
func (b *Binding) allValues(source Source) (any, error) {
	switch source {
	case Header:
		return b.HeaderMap(), nil
	case Query:
		return b.req.URL.Query(), nil
	case Form:
		if err := b.parseForm(); err != nil {
			return nil, err
		}
		return cloneValues(b.req.Form), nil
	}
	return nil, fmt.Errorf("%s source has no multi-map", source)
}

func (b *Binding) firstValues(source Source) (*orderedmap.OrderedMap, error) {
	switch source {
	case Query:
		return OrderedQuery(b.req.URL.RawQuery)
	case Header:
		return firstHeaderValues(b.HeaderMap()), nil
	case Form:
		if err := b.parseForm(); err != nil {
			return nil, err
		}
		return firstFormValues(b.req.URL.RawQuery, b.req.Form), nil
	}
	return nil, fmt.Errorf("%s source has no map", source)
}

// HeaderMap returns a copy of the request headers. Host is included even when
// the server has moved it out of the header map.
func (b *Binding) HeaderMap() http.Header {
	h := b.req.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if _, ok := h["Host"]; !ok && b.req.Host != "" {
		h["Host"] = []string{b.req.Host}
	}
	return h
}

// Values is the outcome of Rules.Apply: field name to bound value. A field
// that was optional and absent has no entry.
type Values map[string]any

// Has reports whether the field was bound.
func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Get returns the bound value of field as T. It reports false when the field
// is absent or holds another type.
func Get[T any](v Values, field string) (T, bool) {
	x, ok := v[field].(T)
	return x, ok
}
