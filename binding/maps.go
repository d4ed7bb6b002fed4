package binding

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// OrderedQuery decodes a raw query string into an ordered map of first values.
// Keys appear in the order they first occur; later repetitions are ignored.
func OrderedQuery(rawQuery string) (*orderedmap.OrderedMap, error) {
	m := orderedmap.New()
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		if pair == "" {
			continue
		}
		if strings.Contains(pair, ";") {
			return nil, invalid(Query, pair, pair, fmt.Errorf("invalid semicolon separator in query"))
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, invalid(Query, rawKey, pair, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, invalid(Query, key, rawValue, err)
		}
		if _, exists := m.Get(key); !exists {
			m.Set(key, value)
		}
	}
	return m, nil
}

func firstHeaderValues(h http.Header) *orderedmap.OrderedMap {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := orderedmap.New()
	for _, k := range keys {
		value := ""
		if vs := h[k]; len(vs) > 0 {
			value = vs[0]
		}
		m.Set(k, value)
	}
	return m
}

// firstFormValues orders form keys as they occur in the raw query, then the
// keys that only the body has, sorted. Values are the first of form, where
// body values come before query values.
func firstFormValues(rawQuery string, form url.Values) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for rawQuery != "" {
		var pair string
		pair, rawQuery, _ = strings.Cut(rawQuery, "&")
		rawKey, _, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		if vs, ok := form[key]; ok && len(vs) > 0 {
			if _, exists := m.Get(key); !exists {
				m.Set(key, vs[0])
			}
		}
	}

	rest := make([]string, 0, len(form))
	for k := range form {
		if _, exists := m.Get(k); !exists {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		value := ""
		if vs := form[k]; len(vs) > 0 {
			value = vs[0]
		}
		m.Set(k, value)
	}
	return m
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
