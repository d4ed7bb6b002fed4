package reflector

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/logging"
	"golang.org/x/text/language"
)

// Context is the per-request state handed to every handler.
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter
	Method  string
	// Locale is the supported locale negotiated for the request.
	Locale language.Tag
	// RequestedLocale is the client's most preferred locale, supported or not.
	RequestedLocale language.Tag
	Logger          *slog.Logger
	Binding         *binding.Binding
}

// ContextOptions are the values the server resolves before calling a handler.
type ContextOptions struct {
	Logger *slog.Logger
	Locale language.Tag
	// RequestedLocale defaults to Locale.
	RequestedLocale language.Tag
	PathValue       func(string) string
}

// NewContext builds the Context for one request.
func NewContext(w http.ResponseWriter, r *http.Request, opts ContextOptions) *Context {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	requested := opts.RequestedLocale
	if requested == language.Und {
		requested = opts.Locale
	}
	return &Context{
		Request:         r,
		Writer:          w,
		Method:          r.Method,
		Locale:          opts.Locale,
		RequestedLocale: requested,
		Logger:          logger,
		Binding:         binding.New(r, opts.PathValue),
	}
}

// Context returns the request's context.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

func (c *Context) record(msg string, attrs ...slog.Attr) {
	c.Logger.LogAttrs(c.Context(), slog.LevelInfo, msg, attrs...)
}

// optional renders an absent field as null instead of a zero value.
func optional[T any](key string, v binding.Values, field string) slog.Attr {
	if x, ok := binding.Get[T](v, field); ok {
		return slog.Any(key, x)
	}
	return slog.Any(key, nil)
}
