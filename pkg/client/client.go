// Package client handles Inventio smartapi responses.
package client

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nordicdata/tap-inventio/pkg/errors"
	"github.com/nordicdata/tap-inventio/pkg/pagination"
	"github.com/nordicdata/tap-inventio/pkg/xmlconv"
)

// APIError is an error reported inside a response body. Inventio does NOT
// respect normal HTTP status codes, everything is 200, so an embedded 'error'
// key is the only failure signal and is always fatal.
type APIError struct {
	Endpoint string
	URL      string
	Message  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error for %s: %s (url: %s)", e.Endpoint, e.Message, e.URL)
}

// Unwrap makes errors.Is(err, errors.ErrAPIResponse) work.
func (e *APIError) Unwrap() error {
	return errors.ErrAPIResponse
}

// Client fetches and decodes smartapi responses.
type Client struct {
	doer pagination.HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPDoer replaces the underlying HTTP client.
func WithHTTPDoer(doer pagination.HTTPDoer) Option {
	return func(c *Client) { c.doer = doer }
}

// New creates a Client with a 30 second timeout by default.
func New(options ...Option) *Client {
	c := &Client{
		doer: &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Fetch performs the request and decodes the XML body into a generic map,
// surfacing an embedded error key as an *APIError regardless of HTTP status.
// endpoint names the stream for error messages.
func (c *Client) Fetch(req *http.Request, endpoint string) (map[string]interface{}, *http.Response, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.ErrHTTPRequest, "http do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, resp, errors.WrapError(
			fmt.Errorf("API returned status %d", resp.StatusCode),
			errors.ErrHTTPResponse,
			endpoint,
		)
	}

	body, err := xmlconv.Decode(resp.Body)
	if err != nil {
		return nil, resp, errors.WrapError(err, errors.ErrHTTPResponse, "decode response")
	}

	if apiErr, ok := body["error"]; ok {
		return nil, resp, &APIError{
			Endpoint: endpoint,
			URL:      req.URL.Redacted(),
			Message:  fmt.Sprintf("%v", apiErr),
		}
	}

	return body, resp, nil
}

// ExtractRecords pulls the records out of a decoded body at a dotted path.
// A path that resolves to a single record (one XML child) is accepted; a path
// that is absent yields no records, which is how an empty table looks.
func ExtractRecords(body map[string]interface{}, path string) ([]map[string]interface{}, error) {
	if path == "" {
		return nil, errors.WrapError(
			fmt.Errorf("record path must be specified"),
			errors.ErrExtraction,
			"extract records",
		)
	}

	node, ok := xmlconv.Lookup(body, path)
	if !ok || node == nil {
		return nil, nil
	}

	var raw []interface{}
	switch v := node.(type) {
	case []interface{}:
		raw = v
	default:
		// single record decodes as a bare map, not a one element list
		raw = []interface{}{v}
	}

	records := make([]map[string]interface{}, 0, len(raw))
	for i, item := range raw {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.WrapError(
				fmt.Errorf("record at index %d is not an object: %T", i, item),
				errors.ErrExtraction,
				fmt.Sprintf("record path %q", path),
			)
		}
		records = append(records, record)
	}
	return records, nil
}
