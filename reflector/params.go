package reflector

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/iancoleman/orderedmap"
	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/message"
)

// RequestParamV1 reads the parameters straight from the request and converts
// the age by hand. A non-numeric or missing age fails the request as a server
// error, not as a binding error.
func RequestParamV1(c *Context) error {
	username := c.Request.FormValue("username")
	age, err := strconv.Atoi(c.Request.FormValue("age"))
	if err != nil {
		return fmt.Errorf("request-param-v1: age: %w", err)
	}
	c.record("request param", slog.String("username", username), slog.Int("age", age))

	c.Writer.Header().Set("Content-Type", message.TextContentType)
	_, err = io.WriteString(c.Writer, "ok")
	return err
}

// Request parameters are read from the query and the urlencoded body, like
// Request.FormValue does in RequestParamV1.

var requestParamV2Rules = binding.Rules{
	{Field: "username", Source: binding.Form, Key: "username", Required: binding.Required},
	{Field: "age", Source: binding.Form, Key: "age", Kind: binding.KindInt, Required: binding.Required},
}

// The keys are left out and taken from the field names. A plain int has no
// absent value, so the age is still required.
var requestParamV3Rules = binding.Rules{
	{Field: "username", Source: binding.Form},
	{Field: "age", Source: binding.Form, Kind: binding.KindInt, Required: binding.Required},
}

// RequestParam logs the username and age bound by a rules table. It serves
// the explicit-name and implicit-name variants.
func RequestParam(c *Context, v binding.Values) (string, error) {
	username, _ := binding.Get[string](v, "username")
	age, _ := binding.Get[int](v, "age")
	c.record("request param", slog.String("username", username), slog.Int("age", age))
	return "ok", nil
}

var requestParamRequiredRules = binding.Rules{
	{Field: "username", Source: binding.Form, Required: binding.Required},
	{Field: "age", Source: binding.Form, Kind: binding.KindInt, Required: binding.Optional},
}

// RequestParamRequired needs the username; the age may be absent and is
// then logged as null.
func RequestParamRequired(c *Context, v binding.Values) (string, error) {
	username, _ := binding.Get[string](v, "username")
	c.record("request param", slog.String("username", username), optional[int]("age", v, "age"))
	return "ok", nil
}

var requestParamDefaultRules = binding.Rules{
	binding.Rule{Field: "username", Source: binding.Form}.WithDefault("guest"),
	binding.Rule{Field: "age", Source: binding.Form, Kind: binding.KindInt}.WithDefault("-1"),
}

// RequestParamDefault falls back to "guest" and -1 for missing or empty values.
func RequestParamDefault(c *Context, v binding.Values) (string, error) {
	username, _ := binding.Get[string](v, "username")
	age, _ := binding.Get[int](v, "age")
	c.record("request param", slog.String("username", username), slog.Int("age", age))
	return "ok", nil
}

var requestParamMapRules = binding.Rules{
	{Field: "paramMap", Source: binding.Form, Kind: binding.KindMap},
}

// RequestParamMap captures every request parameter and reads two of them back.
func RequestParamMap(c *Context, v binding.Values) (string, error) {
	paramMap, _ := binding.Get[*orderedmap.OrderedMap](v, "paramMap")
	username, _ := paramMap.Get("username")
	age, _ := paramMap.Get("age")
	c.record("request param", slog.Any("username", username), slog.Any("age", age))
	return "ok", nil
}
