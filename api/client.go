package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds every call to the remote APIs
const DefaultTimeout = 10 * time.Second

// DecodeError marks a response body that did not match the expected schema.
// Malformed payloads become this typed error at the boundary instead of
// propagating zero-valued fields upward.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

// Cause returns the underlying decoding failure
func (e *DecodeError) Cause() error { return e.Err }

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the posts/users API. TokenSource, when set, supplies the
// bearer token attached to every request (the session store's current token).
type Client struct {
	BaseURL     string
	HTTP        *http.Client
	TokenSource func() string
}

// NewClient builds a client for the given base URL with the default timeout
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrapf(err, "creating request for %s", path)
	}

	return c.do(req, path, out)
}

func (c *Client) post(path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "encoding request body for %s", path)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "creating request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	if c.TokenSource != nil {
		if token := c.TokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return errors.Errorf("unexpected status code %d from %s", resp.StatusCode, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: path, Err: err}
	}
	return nil
}
