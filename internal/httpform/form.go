// Package httpform builds multipart form bodies and request headers for the
// model hosting API.
package httpform

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// BoolString renders a flag the way the API expects form booleans.
func BoolString(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Form accumulates a multipart/form-data body in memory.
type Form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

// NewForm returns an empty form ready for fields.
func NewForm() *Form {
	f := &Form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// AddField adds a single text field.
func (f *Form) AddField(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.w.WriteField(name, value)
}

// AddRange adds one entry per value under the same field name, in order.
// A nil slice adds nothing.
func (f *Form) AddRange(name string, values []string) {
	for _, v := range values {
		f.AddField(name, v)
	}
}

// AddBool adds a "1"/"0" field when v is set.
func (f *Form) AddBool(name string, v *bool) {
	if v == nil {
		return
	}
	f.AddField(name, BoolString(*v))
}

// AddString adds a field only when value is non-blank.
func (f *Form) AddString(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	f.AddField(name, value)
}

// AddFile adds a binary part carrying data under field with the given filename.
func (f *Form) AddFile(field, filename string, data []byte) {
	if f.err != nil {
		return
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+escapeQuotes(field)+`"; filename="`+escapeQuotes(filename)+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(data)
}

// Close writes the trailing boundary. It returns the first error seen while
// building the form.
func (f *Form) Close() error {
	if f.err != nil {
		return f.err
	}
	f.err = f.w.Close()
	return f.err
}

// ContentType is the value for the request Content-Type header.
func (f *Form) ContentType() string { return f.w.FormDataContentType() }

// Bytes returns the encoded body. Call Close first.
func (f *Form) Bytes() []byte { return f.buf.Bytes() }

// Len is the current encoded size in bytes.
func (f *Form) Len() int { return f.buf.Len() }

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// AuthorizationValue formats the Authorization header value.
func AuthorizationValue(scheme, token string) string { return scheme + " " + token }

// SetAuthorization appends the Authorization header to h.
func SetAuthorization(h http.Header, scheme, token string) {
	h.Add("Authorization", AuthorizationValue(scheme, token))
}
