package reflector

import (
	"io"
	"net/http"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/message"
)

// HandlerFunc handles one request. A returned error is turned into a response
// by the server unless the handler has already written one.
type HandlerFunc func(c *Context) error

// Text adapts a handler whose returned string becomes the response body.
func Text(fn func(c *Context) (string, error)) HandlerFunc {
	return func(c *Context) error {
		s, err := fn(c)
		if err != nil {
			return err
		}
		return writeText(c.Writer, s)
	}
}

// Streams adapts a handler that reads the request body and writes the
// response body directly.
func Streams(fn func(c *Context, in io.Reader, out io.Writer) error) HandlerFunc {
	return func(c *Context) error {
		c.Writer.Header().Set("Content-Type", message.TextContentType)
		var in io.Reader = http.NoBody
		if c.Request.Body != nil {
			in = c.Request.Body
		}
		return fn(c, in, c.Writer)
	}
}

// Entity adapts a handler that receives the converted body with its headers
// and returns the response body with its headers.
func Entity[In, Out any](in message.Converter[In], out message.Converter[Out], fn func(c *Context, e message.Entity[In]) (message.Entity[Out], error)) HandlerFunc {
	return func(c *Context) error {
		req, err := message.ReadEntity(c.Request, in)
		if err != nil {
			return err
		}
		resp, err := fn(c, req)
		if err != nil {
			return err
		}
		return message.WriteEntity(c.Writer, http.StatusOK, resp, out)
	}
}

// Bound applies rules before calling fn; fn only runs when every rule bound.
// It panics when the table itself is wrong, so mistakes surface when the
// route table is built.
func Bound(rules binding.Rules, fn func(c *Context, v binding.Values) (string, error)) HandlerFunc {
	if err := rules.Check(); err != nil {
		panic(err)
	}
	return Text(func(c *Context) (string, error) {
		vals, err := rules.Apply(c.Binding)
		if err != nil {
			return "", err
		}
		return fn(c, vals)
	})
}

// Attribute binds a fresh T from the request parameters before calling fn.
// Any type whose pointer lists its fields is accepted.
func Attribute[T any, PT interface {
	*T
	binding.Attribute
}](fn func(c *Context, v *T) (string, error)) HandlerFunc {
	return Text(func(c *Context) (string, error) {
		v := PT(new(T))
		if err := binding.BindAttribute(c.Binding, v); err != nil {
			return "", err
		}
		return fn(c, (*T)(v))
	})
}

func writeText(w http.ResponseWriter, s string) error {
	return message.WriteEntity(w, http.StatusOK, message.NewEntity(s), message.StringConverter{})
}
