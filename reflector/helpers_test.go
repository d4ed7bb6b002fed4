package reflector_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/podhmo/go-reflector/logging"
	"github.com/podhmo/go-reflector/reflector"
	"github.com/podhmo/go-reflector/server"
	"golang.org/x/text/language"
)

// tester is the part of *testing.T and *rapid.T the helpers use.
type tester interface {
	Helper()
	Fatalf(format string, args ...any)
}

type harness struct {
	h   http.Handler
	buf *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := logging.New(buf, logging.Options{Level: logging.LevelTrace, Format: logging.FormatJSON})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	h, err := server.NewHandler(reflector.Routes(), server.Options{
		Logger:  logger,
		Locales: []language.Tag{language.MustParse("en"), language.MustParse("ko")},
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return &harness{h: h, buf: buf}
}

// do serves req after clearing the records of earlier requests.
func (hs *harness) do(req *http.Request) *httptest.ResponseRecorder {
	hs.buf.Reset()
	rec := httptest.NewRecorder()
	hs.h.ServeHTTP(rec, req)
	return rec
}

// records returns the decoded records with the given message.
func (hs *harness) records(t tester, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(hs.buf.Bytes()))
	for {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return out
			}
			t.Fatalf("decode log record: %v", err)
		}
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
}

// record returns the only record with the given message.
func (hs *harness) record(t tester, msg string) map[string]any {
	t.Helper()
	recs := hs.records(t, msg)
	if len(recs) != 1 {
		t.Fatalf("expected one %q record, got %d:\n%s", msg, len(recs), hs.buf.String())
	}
	return recs[0]
}

// attrs picks keys from a record. Missing keys are left out.
func attrs(rec map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			out[k] = v
		}
	}
	return out
}

func expectOK(t tester, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", got)
	}
}
