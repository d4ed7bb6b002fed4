package reflector

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/podhmo/go-reflector/binding"
)

var headersRules = binding.Rules{
	{Field: "headerMap", Source: binding.Header, Kind: binding.KindMultiMap},
	{Field: "host", Source: binding.Header, Key: "host", Required: binding.Required},
	{Field: "cookie", Source: binding.Cookie, Key: "cookieName"},
}

// Headers records the request metadata: the handles, the method, the locale,
// every header, the host header alone and an optional cookie.
func Headers(c *Context, v binding.Values) (string, error) {
	headerMap, _ := binding.Get[http.Header](v, "headerMap")
	host, _ := binding.Get[string](v, "host")

	c.record("request",
		slog.String("method", c.Request.Method),
		slog.String("url", c.Request.URL.String()),
		slog.String("remoteAddr", c.Request.RemoteAddr),
	)
	c.record("response", slog.String("type", fmt.Sprintf("%T", c.Writer)))
	c.record("httpMethod", slog.String("httpMethod", c.Method))
	c.record("locale",
		slog.String("locale", c.Locale.String()),
		slog.String("requestedLocale", c.RequestedLocale.String()),
	)
	c.record("headerMap", slog.Any("headerMap", headerMap))
	c.record("header host", slog.String("host", host))
	c.record("cookie", optional[string]("cookie", v, "cookie"))
	return "ok", nil
}
