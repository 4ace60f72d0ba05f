package modelapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"modelhub/internal/httpform"
	"modelhub/internal/metrics"
)

// DefaultBaseURL is the public model hosting API.
const DefaultBaseURL = "https://api.sketchfab.com/v3"

// operation names used in logs and metric labels
const (
	opUpload = "upload"
	opUpdate = "update"
	opGet    = "get_model"
	opReady  = "is_ready"
)

// error kinds used in the errors_total metric
const (
	kindInvalidArgument = "invalid_argument"
	kindNotFound        = "not_found"
	kindIO              = "io"
	kindMarshal         = "marshal"
	kindTransport       = "transport"
	kindRejected        = "rejected"
	kindDecode          = "decode"
)

// maxErrorBody bounds how much of a failed response body is kept for errors.
const maxErrorBody = 4096

// Request is the descriptor of an outgoing call as seen by Options.OnRequest.
type Request = httpform.Request

// Options configures a Client. Zero values select defaults.
type Options struct {
	// BaseURL of the API, e.g. https://api.sketchfab.com/v3.
	BaseURL string
	// HTTPClient is shared by all calls. Defaults to NewHTTPClient(0).
	HTTPClient *http.Client
	// Logger receives one event per call step. Defaults to a disabled logger.
	Logger *zerolog.Logger
	// OnRequest, if set, receives a copy of every request before it is sent.
	OnRequest func(*Request)
}

// Client issues model API calls. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	onRequest  func(*Request)
}

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidArgument("base URL"), base)
	}
	c := &Client{
		baseURL:    base,
		httpClient: opts.HTTPClient,
		log:        zerolog.Nop(),
		onRequest:  opts.OnRequest,
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(0)
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) modelURL(modelID string) string {
	return c.baseURL + "/models/" + url.PathEscape(modelID)
}

// send performs r and returns the raw response. The caller closes the body.
func (c *Client) send(ctx context.Context, op string, r *Request) (*http.Response, error) {
	r.Properties["op"] = op
	if c.onRequest != nil {
		c.onRequest(r.Clone())
	}
	req, err := r.Build(ctx)
	if err != nil {
		return nil, err
	}
	done := metrics.Track(op, r.Method)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		done(0)
		// Translate context timeouts/cancels
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	done(resp.StatusCode)
	c.log.Info().Str("op", op).Int("status", resp.StatusCode).Msgf("%s responded %s", op, resp.Status)
	return resp, nil
}

// fail logs err for op, counts it, and returns it unchanged.
func (c *Client) fail(op, kind string, err error) error {
	metrics.IncError(op, kind)
	c.log.Error().Str("op", op).Str("kind", kind).Err(err).Msg("model api call failed")
	return err
}

// rejected builds a StatusError from a non-2xx response.
func rejected(op string, resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Op:     op,
		Code:   resp.StatusCode,
		Reason: reasonPhrase(resp),
		Body:   strings.TrimSpace(string(b)),
	}
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }

// reasonPhrase extracts the text after the status code in resp.Status.
func reasonPhrase(resp *http.Response) string {
	if p := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)); p != resp.Status {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return http.StatusText(resp.StatusCode)
}

// drain discards what is left of a response body so the connection is reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
