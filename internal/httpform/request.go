package httpform

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
)

// Request describes an outgoing call independently of net/http so it can be
// copied, inspected, and replayed without touching a live *http.Request.
type Request struct {
	Method string
	URL    *url.URL
	// Proto defaults to HTTP/1.1 when empty.
	Proto  string
	Header http.Header
	// Body is shared between clones; treat it as read-only.
	Body       []byte
	Properties map[string]any
}

// NewRequest parses rawURL and returns a descriptor with empty headers.
func NewRequest(method, rawURL string, body []byte) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:     method,
		URL:        u,
		Proto:      "HTTP/1.1",
		Header:     make(http.Header),
		Body:       body,
		Properties: map[string]any{},
	}, nil
}

// Clone returns a shallow copy: header and property maps are copied, the body
// slice is shared.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := &Request{
		Method: r.Method,
		Proto:  r.Proto,
		Header: r.Header.Clone(),
		Body:   r.Body,
	}
	if r.URL != nil {
		u := *r.URL
		c.URL = &u
	}
	if r.Properties != nil {
		c.Properties = make(map[string]any, len(r.Properties))
		for k, v := range r.Properties {
			c.Properties[k] = v
		}
	}
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	return c
}

// Build materializes the descriptor as an *http.Request bound to ctx.
func (r *Request) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, err
	}
	if r.Proto != "" {
		if major, minor, ok := http.ParseHTTPVersion(r.Proto); ok {
			req.Proto, req.ProtoMajor, req.ProtoMinor = r.Proto, major, minor
		}
	}
	req.Header = r.Header.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return req, nil
}
