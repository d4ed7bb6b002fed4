package binding

// Field is one settable field of a structured attribute, matched to a
// request parameter by its exact, case-sensitive name.
type Field struct {
	Name string
	set  func(string) error
}

// FieldOf declares a field stored into dest after conversion with parse.
func FieldOf[T any](name string, dest *T, parse Parser[T]) Field {
	return Field{
		Name: name,
		set: func(raw string) error {
			v, err := parse(raw)
			if err != nil {
				return err
			}
			*dest = v
			return nil
		},
	}
}

// Attribute is a plain record that lists its bindable fields.
// Implementations are usually pointer receivers returning fields of the
// receiver itself.
type Attribute interface {
	AttributeFields() []Field
}

// BindAttribute populates dst from the request parameters (URL query and
// urlencoded form). Parameters without a matching field are ignored; fields
// without a matching, non-empty parameter keep their value. A conversion
// failure on any field fails the whole binding.
func BindAttribute(b *Binding, dst Attribute) error {
	var errs []error
	for _, f := range dst.AttributeFields() {
		raw, ok, err := b.Lookup(Form, f.Name)
		if err != nil {
			return err
		}
		if !ok || raw == "" {
			continue
		}
		if err := f.set(raw); err != nil {
			errs = append(errs, invalid(Form, f.Name, raw, err))
		}
	}
	return joinErrors(errs)
}
