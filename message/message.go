// Package message converts HTTP message bodies to and from Go values.
//
// A Converter reads a request body into a value and writes a value back as a
// response body. Entity pairs a converted body with the message headers so a
// handler can read and set both at once.
package message

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TextContentType is the content type written for plain text bodies.
const TextContentType = "text/plain;charset=UTF-8"

// Converter reads and writes one body representation.
type Converter[T any] interface {
	// Read decodes the whole body. The headers are those of the request.
	Read(body io.Reader, header http.Header) (T, error)
	// Write encodes v into w. It is called after the response headers are sent.
	Write(w io.Writer, v T) error
	// ContentType is used when the outgoing entity does not carry one.
	ContentType() string
}

// DecodeText decodes b as UTF-8. Invalid sequences become U+FFFD.
func DecodeText(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// ReadText drains r and decodes the bytes as UTF-8.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("message: read body: %w", err)
	}
	return DecodeText(b), nil
}

// StringConverter handles the body as UTF-8 text.
type StringConverter struct{}

var _ Converter[string] = StringConverter{}

func (StringConverter) Read(body io.Reader, _ http.Header) (string, error) {
	return ReadText(body)
}

func (StringConverter) Write(w io.Writer, v string) error {
	if _, err := io.WriteString(w, v); err != nil {
		return fmt.Errorf("message: write body: %w", err)
	}
	return nil
}

func (StringConverter) ContentType() string { return TextContentType }

// Entity is a message body together with its headers.
type Entity[T any] struct {
	Header http.Header
	Body   T
}

// NewEntity returns an Entity with an empty header set.
func NewEntity[T any](body T) Entity[T] {
	return Entity[T]{Header: http.Header{}, Body: body}
}

// ReadEntity converts the request body with c. The returned header set is a
// copy; changing it does not affect req.
func ReadEntity[T any](req *http.Request, c Converter[T]) (Entity[T], error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = req.Body
	}
	v, err := c.Read(body, req.Header)
	if err != nil {
		return Entity[T]{}, err
	}
	return Entity[T]{Header: req.Header.Clone(), Body: v}, nil
}

// WriteEntity sends the entity headers, the status line and the converted body.
// A Content-Type from the converter is added only when the entity has none.
func WriteEntity[T any](w http.ResponseWriter, status int, e Entity[T], c Converter[T]) error {
	h := w.Header()
	for k, vs := range e.Header {
		h[k] = append([]string(nil), vs...)
	}
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", c.ContentType())
	}
	w.WriteHeader(status)
	return c.Write(w, e.Body)
}
