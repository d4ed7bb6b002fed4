package reflector

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/message"
)

// RequestBodyStringV1 reads the body stream of the request by hand and
// writes the answer through the response writer.
func RequestBodyStringV1(c *Context) error {
	messageBody, err := message.ReadText(c.Request.Body)
	if err != nil {
		return fmt.Errorf("request-body-string-v1: %w", err)
	}
	c.record("request body", slog.String("messageBody", messageBody))

	c.Writer.Header().Set("Content-Type", message.TextContentType)
	_, err = io.WriteString(c.Writer, "ok")
	return err
}

// RequestBodyStringV2 gets the streams as parameters instead of the handles.
func RequestBodyStringV2(c *Context, in io.Reader, out io.Writer) error {
	messageBody, err := message.ReadText(in)
	if err != nil {
		return fmt.Errorf("request-body-string-v2: %w", err)
	}
	c.record("request body", slog.String("messageBody", messageBody))

	_, err = io.WriteString(out, "ok")
	return err
}

// RequestBodyStringV3 receives the body already converted, next to the
// request headers, and answers with an entity of its own.
func RequestBodyStringV3(c *Context, e message.Entity[string]) (message.Entity[string], error) {
	c.record("request body",
		slog.String("messageBody", e.Body),
		slog.String("contentType", e.Header.Get("Content-Type")),
	)
	return message.NewEntity("ok"), nil
}

var requestBodyRules = binding.Rules{
	{Field: "messageBody", Source: binding.Body, Required: binding.Required},
}

// RequestBodyStringV4 declares the body as a bound value.
func RequestBodyStringV4(c *Context, v binding.Values) (string, error) {
	messageBody, _ := binding.Get[string](v, "messageBody")
	c.record("request body", slog.String("messageBody", messageBody))
	return "ok", nil
}
