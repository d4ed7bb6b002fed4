// Package server exposes the reflector route table over HTTP.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/logging"
	"github.com/podhmo/go-reflector/message"
	"github.com/podhmo/go-reflector/reflector"
	"golang.org/x/text/language"
)

// Options configures NewHandler.
type Options struct {
	Logger *slog.Logger
	// Locales are the supported locales; the first one is the fallback.
	// Empty means English only.
	Locales []language.Tag
	// MaxBodyBytes limits request bodies; 0 means unlimited.
	MaxBodyBytes int64
}

type handler struct {
	logger       *slog.Logger
	locales      []language.Tag
	matcher      language.Matcher
	maxBodyBytes int64
}

// NewHandler registers routes on a router and wraps it with access logging
// and panic recovery.
func NewHandler(routes []reflector.Route, opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	locales := opts.Locales
	if len(locales) == 0 {
		locales = []language.Tag{language.English}
	}
	h := &handler{
		logger:       logger,
		locales:      locales,
		matcher:      language.NewMatcher(locales),
		maxBodyBytes: opts.MaxBodyBytes,
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeStatus(w, http.StatusNotFound, fmt.Sprintf("404 NOT FOUND: %s", req.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, fmt.Sprintf("405 METHOD NOT ALLOWED: %s %s", req.Method, req.URL.Path))
	})

	seen := make(map[string]bool, len(routes))
	for _, rt := range routes {
		if rt.Handler == nil {
			return nil, fmt.Errorf("server: route %q has no handler", rt.Name)
		}
		if seen[rt.Name] {
			return nil, fmt.Errorf("server: route %q is registered twice", rt.Name)
		}
		seen[rt.Name] = true

		mr := r.Handle(rt.Path, h.endpoint(rt)).Name(rt.Name)
		if len(rt.Methods) > 0 {
			mr = mr.Methods(rt.Methods...)
		}
		if err := mr.GetError(); err != nil {
			return nil, fmt.Errorf("server: route %q: %w", rt.Name, err)
		}
		logger.Debug("route registered", slog.String("name", rt.Name), slog.String("path", rt.Path), slog.String("methods", methodsString(rt.Methods)))
	}
	return h.accessLog(h.recover(r)), nil
}

func (h *handler) endpoint(rt reflector.Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.maxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
		}
		vars := mux.Vars(r)
		requested, locale := h.negotiate(r)
		sw := &statusWriter{ResponseWriter: w}
		c := reflector.NewContext(sw, r, reflector.ContextOptions{
			Logger:          h.logger.With(slog.String("route", rt.Name)),
			Locale:          locale,
			RequestedLocale: requested,
			PathValue:       func(key string) string { return vars[key] },
		})
		if err := rt.Handler(c); err != nil {
			h.fail(sw, r, rt, err)
		}
	})
}

// negotiate returns the most preferred Accept-Language tag and the supported
// locale closest to it. Without a usable header both are the fallback.
func (h *handler) negotiate(r *http.Request) (requested, supported language.Tag) {
	fallback := h.locales[0]
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return fallback, fallback
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback, fallback
	}
	_, index, conf := h.matcher.Match(tags...)
	if conf == language.No {
		return tags[0], fallback
	}
	return tags[0], h.locales[index]
}

func (h *handler) fail(w *statusWriter, r *http.Request, rt reflector.Route, err error) {
	ctx := r.Context()
	status := StatusOf(err)
	attrs := []slog.Attr{
		slog.String("route", rt.Name),
		slog.Int("status", status),
		slog.Any("error", err),
	}
	if w.wrote {
		h.logger.LogAttrs(ctx, slog.LevelError, "handler failed after writing the response", attrs...)
		return
	}
	if status >= http.StatusInternalServerError {
		h.logger.LogAttrs(ctx, slog.LevelError, "handler failed", attrs...)
		writeStatus(w, status, http.StatusText(status))
		return
	}
	h.logger.LogAttrs(ctx, slog.LevelWarn, "request rejected", attrs...)
	writeStatus(w, status, err.Error())
}

// StatusOf maps a handler error to a response status: binding failures are
// the client's fault, everything else is the server's.
func StatusOf(err error) int {
	var berr *binding.Error
	if errors.As(err, &berr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		h.logger.LogAttrs(r.Context(), slog.LevelInfo, "access",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				h.logger.ErrorContext(r.Context(), "panic", slog.Any("panic", v), slog.String("path", r.URL.Path))
				writeStatus(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	_ = message.WriteEntity(w, status, message.NewEntity(body), message.StringConverter{})
}

func methodsString(methods []string) string {
	if len(methods) == 0 {
		return "*"
	}
	return strings.Join(methods, ",")
}

// statusWriter remembers whether and with which status the response started.
type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wrote {
		w.status = status
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.status = http.StatusOK
		w.wrote = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if !w.wrote {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
