package twitch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Request describes one call against an endpoint group.
type Request struct {
	// Endpoint is the endpoint group name, e.g. EndpointHelix.
	Endpoint string

	// Method defaults to GET.
	Method string

	// Scopes the call needs. They are passed to a token refresh if one happens.
	Scopes []string

	// Path is resolved relative to the endpoint root and may carry a query.
	Path string

	// Query is a struct with `url` tags (see github.com/google/go-querystring)
	// or a url.Values. Its values are added to any query already in Path.
	Query any

	// Body is JSON-encoded when non-nil.
	Body any
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Do sends req with the client's credentials and decodes the JSON response
// into out (which may be nil to discard it). The request is sent once; errors
// are never retried.
//
// Do may refresh the cached access token before sending.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	op := req.method() + " " + req.Path

	httpReq, err := c.newRequest(ctx, req, op)
	if err != nil {
		return err
	}

	if err := c.authorize(ctx, httpReq, req.Scopes); err != nil {
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newError(ErrTransport, op, fmt.Errorf("rate limit: %w", err))
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return newError(ErrTransport, op, err)
	}

	return decodeResponse(resp, out, op)
}

// Call is Do with the result type as a type parameter.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	if err := c.Do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, req Request, op string) (*http.Request, error) {
	u, err := c.endpoints.resolve(req.Endpoint, req.Path)
	if err != nil {
		return nil, err
	}

	if req.Query != nil {
		values, err := encodeQuery(req.Query)
		if err != nil {
			return nil, newError(ErrConfiguration, op, fmt.Errorf("encode query: %w", err))
		}

		q := u.Query()
		for key, vs := range values {
			q[key] = append(q[key], vs...)
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, newError(ErrConfiguration, op, fmt.Errorf("encode body: %w", err))
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method(), u.String(), body)
	if err != nil {
		return nil, newError(ErrConfiguration, op, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

func encodeQuery(v any) (url.Values, error) {
	if values, ok := v.(url.Values); ok {
		return values, nil
	}
	return query.Values(v)
}

// decodeResponse reads the whole body once. Non-2xx responses are returned as
// an APIError, since their body is an error envelope rather than the
// expected result.
func decodeResponse(resp *http.Response, out any, op string) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(ErrTransport, op, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope APIError
		if err := json.Unmarshal(body, &envelope); err != nil {
			return newError(ErrDecode, op, newAPIError(resp, nil))
		}
		return newError(ErrDecode, op, newAPIError(resp, &envelope))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newError(ErrDecode, op, err)
	}
	return nil
}
