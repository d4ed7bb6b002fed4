package binding_test

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/podhmo/go-reflector/binding"
	"pgregory.net/rapid"
)

func TestDefaultsProperty(t *testing.T) {
	rules := binding.Rules{
		binding.Rule{Field: "username", Source: binding.Query}.WithDefault("guest"),
		binding.Rule{Field: "age", Source: binding.Query, Kind: binding.KindInt}.WithDefault("-1"),
	}

	rapid.Check(t, func(t *rapid.T) {
		q := url.Values{}
		// the parameter is omitted, sent empty, or sent with a value
		nameMode := rapid.IntRange(0, 2).Draw(t, "nameMode")
		name := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(t, "name")
		switch nameMode {
		case 1:
			q.Set("username", "")
		case 2:
			q.Set("username", name)
		}
		ageMode := rapid.IntRange(0, 2).Draw(t, "ageMode")
		age := rapid.IntRange(0, 200).Draw(t, "age")
		switch ageMode {
		case 1:
			q.Set("age", "")
		case 2:
			q.Set("age", strconv.Itoa(age))
		}

		b := binding.New(httptest.NewRequest("GET", "/?"+q.Encode(), nil), nil)
		vals, err := rules.Apply(b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantName := "guest"
		if nameMode == 2 {
			wantName = name
		}
		wantAge := -1
		if ageMode == 2 {
			wantAge = age
		}
		if got, _ := binding.Get[string](vals, "username"); got != wantName {
			t.Fatalf("username: want %q, got %q", wantName, got)
		}
		if got, _ := binding.Get[int](vals, "age"); got != wantAge {
			t.Fatalf("age: want %d, got %d", wantAge, got)
		}
	})
}

func TestRequiredProperty(t *testing.T) {
	rules := binding.Rules{{Field: "username", Source: binding.Query, Required: binding.Required}}

	rapid.Check(t, func(t *rapid.T) {
		other := rapid.StringMatching(`[a-z]{1,8}`).Filter(func(s string) bool { return s != "username" }).Draw(t, "other")
		q := url.Values{other: {"x"}}

		_, err := rules.Apply(binding.New(httptest.NewRequest("GET", "/?"+q.Encode(), nil), nil))
		if err == nil {
			t.Fatalf("expected a missing username to fail with query %q", q.Encode())
		}
	})
}
