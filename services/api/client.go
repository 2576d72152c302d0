// Package api implements the gateway client: the sole network boundary
// between the front-end and the backend REST API. Every call is fire-once;
// no retry, backoff or caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core"
)

// Error is a backend-reported application error (non-2xx with a message).
// Callers must treat it as terminal for the current operation.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

type (
	Options struct {
		Method string // defaults to GET
		// Body is JSON-encoded unless it is an io.Reader, in which case it is
		// streamed as-is with no forced Content-Type (the transport keeps any
		// multipart boundary intact).
		Body           interface{}
		Token          string // injected as a Bearer header when non-empty
		Headers        map[string]string
		SuppressNotice bool // skip the success notification on non-GET calls
	}

	Client struct {
		http     *http.Client
		notifier core.Notifier
	}
)

// NewClient returns a gateway client reporting through notifier.
// No request timeout is configured; the transport's default applies.
func NewClient(notifier core.Notifier) *Client {
	return &Client{
		http:     &http.Client{},
		notifier: notifier,
	}
}

// Request performs a single call against url and returns the parsed JSON
// body. A body that fails to parse yields an empty object, not an error.
func (c *Client) Request(ctx context.Context, url string, opts Options) (Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	jsonBody := false
	switch b := opts.Body.(type) {
	case nil:
	case io.Reader:
		body = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return Response{}, errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
		jsonBody = true
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Response{}, errors.Wrap(err, "building request")
	}
	if jsonBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	res, err := c.http.Do(req)
	if err != nil {
		err = errors.Wrap(err, "calling backend")
		c.notifier.Error("Error", err.Error())
		return Response{}, err
	}
	defer func() { _ = res.Body.Close() }()

	resp := parseBody(res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := resp.String("message", "error")
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%d)", res.StatusCode)
		}
		c.notifier.Error("Error", msg)
		return resp, &Error{Status: res.StatusCode, Message: msg}
	}

	if method != http.MethodGet && !opts.SuppressNotice {
		msg := resp.String("message", "status")
		if msg == "" {
			msg = "Success"
		}
		c.notifier.Success("Success", msg)
	}
	return resp, nil
}

// Response is a parsed JSON response body.
type Response struct {
	raw json.RawMessage
}

func parseBody(r io.Reader) Response {
	data, err := io.ReadAll(r)
	if err != nil || !json.Valid(data) {
		return Response{raw: json.RawMessage(`{}`)}
	}
	return Response{raw: data}
}

// NewResponse wraps raw JSON as a Response; invalid JSON becomes an
// empty object.
func NewResponse(raw []byte) Response {
	return parseBody(bytes.NewReader(raw))
}

func (r Response) Raw() json.RawMessage {
	if r.raw == nil {
		return json.RawMessage(`{}`)
	}
	return r.raw
}

// Decode unmarshals the whole body into v.
func (r Response) Decode(v interface{}) error {
	return errors.Wrap(json.Unmarshal(r.Raw(), v), "decoding response")
}

// String returns the first of the named top-level fields holding a
// non-empty string, or "".
func (r Response) String(keys ...string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Raw(), &fields); err != nil {
		return ""
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
