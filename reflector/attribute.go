package reflector

import (
	"log/slog"

	"github.com/podhmo/go-reflector/binding"
	"github.com/podhmo/go-reflector/parser"
)

// HelloData is the structured attribute bound by the model-attribute endpoints.
type HelloData struct {
	Username string
	Age      int
}

// AttributeFields matches the request parameters "username" and "age".
func (d *HelloData) AttributeFields() []binding.Field {
	return []binding.Field{
		binding.FieldOf("username", &d.Username, parser.String),
		binding.FieldOf("age", &d.Age, parser.Int),
	}
}

func (d HelloData) LogValue() slog.Value {
	return slog.GroupValue(slog.String("username", d.Username), slog.Int("age", d.Age))
}

func (c *Context) recordHelloData(d *HelloData) {
	c.record("model attribute", slog.String("username", d.Username), slog.Int("age", d.Age))
	c.record("model attribute", slog.Any("helloData", *d))
}

var modelAttributeV1Rules = binding.Rules{
	{Field: "username", Source: binding.Form, Required: binding.Required},
	{Field: "age", Source: binding.Form, Kind: binding.KindInt, Required: binding.Required},
}

// ModelAttributeV1 binds two scalars and fills the record field by field.
func ModelAttributeV1(c *Context, v binding.Values) (string, error) {
	var d HelloData
	d.Username, _ = binding.Get[string](v, "username")
	d.Age, _ = binding.Get[int](v, "age")
	c.recordHelloData(&d)
	return "ok", nil
}

// ModelAttributeV2 asks for the record to be bound as a whole.
func ModelAttributeV2(c *Context) (string, error) {
	var d HelloData
	if err := binding.BindAttribute(c.Binding, &d); err != nil {
		return "", err
	}
	c.recordHelloData(&d)
	return "ok", nil
}

// ModelAttributeV3 receives the record already bound; see Attribute.
func ModelAttributeV3(c *Context, d *HelloData) (string, error) {
	c.recordHelloData(d)
	return "ok", nil
}
