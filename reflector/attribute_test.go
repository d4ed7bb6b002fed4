package reflector_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var modelAttributePaths = []string{
	"/model-attribute-v1",
	"/model-attribute-v2",
	"/model-attribute-v3",
}

// modelAttribute returns the two records of a bound HelloData.
func (hs *harness) modelAttribute(t *testing.T) (fields, whole map[string]any) {
	t.Helper()
	recs := hs.records(t, "model attribute")
	if len(recs) != 2 {
		t.Fatalf("expected two model attribute records, got %d:\n%s", len(recs), hs.buf.String())
	}
	return attrs(recs[0], "username", "age"), attrs(recs[1], "helloData")
}

func TestModelAttributeEquivalence(t *testing.T) {
	hs := newHarness(t)
	wantFields := map[string]any{"username": "Kim", "age": 20.0}
	wantWhole := map[string]any{"helloData": map[string]any{"username": "Kim", "age": 20.0}}

	for _, path := range modelAttributePaths {
		t.Run(path, func(t *testing.T) {
			expectOK(t, hs.do(httptest.NewRequest("GET", path+"?username=Kim&age=20", nil)))

			fields, whole := hs.modelAttribute(t)
			if diff := cmp.Diff(wantFields, fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(wantWhole, whole); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelAttributeTypeMismatch(t *testing.T) {
	hs := newHarness(t)
	for _, path := range modelAttributePaths {
		t.Run(path, func(t *testing.T) {
			rec := hs.do(httptest.NewRequest("GET", path+"?username=Kim&age=twenty", nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "key 'age'") {
				t.Errorf("expected the failing key in %q", rec.Body.String())
			}
			if recs := hs.records(t, "model attribute"); len(recs) != 0 {
				t.Errorf("the handler should not have run, got %v", recs)
			}
		})
	}
}

func TestModelAttributeMissingParams(t *testing.T) {
	hs := newHarness(t)

	t.Run("manual binding requires both", func(t *testing.T) {
		rec := hs.do(httptest.NewRequest("GET", "/model-attribute-v1?username=Kim", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	for _, path := range modelAttributePaths[1:] {
		t.Run(path+" keeps zero values", func(t *testing.T) {
			expectOK(t, hs.do(httptest.NewRequest("GET", path+"?unrelated=1&Username=Kim", nil)))
			fields, _ := hs.modelAttribute(t)
			if diff := cmp.Diff(map[string]any{"username": "", "age": 0.0}, fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelAttributeFromForm(t *testing.T) {
	hs := newHarness(t)
	for _, path := range modelAttributePaths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest("POST", path, strings.NewReader("username=Kim&age=20"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			expectOK(t, hs.do(req))
			fields, _ := hs.modelAttribute(t)
			if diff := cmp.Diff(map[string]any{"username": "Kim", "age": 20.0}, fields); diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestModelAttributeIgnoresUnrelatedParams(t *testing.T) {
	hs := newHarness(t)
	want := map[string]any{"helloData": map[string]any{"username": "Kim", "age": 20.0}}
	for _, path := range modelAttributePaths {
		t.Run(path, func(t *testing.T) {
			expectOK(t, hs.do(httptest.NewRequest("GET", path+"?username=Kim&x=%zz&age=20&extra=1", nil)))
			_, whole := hs.modelAttribute(t)
			if diff := cmp.Diff(want, whole); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
