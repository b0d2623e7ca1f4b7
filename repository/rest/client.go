package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mademanik/minjeminapp/util/httpx"
)

// ErrNoToken means the caller tried an upstream call without a bearer
// token. This is a precondition failure; no request is sent.
var ErrNoToken = errors.New("missing bearer token")

// APIError is an upstream 4xx/5xx. Message carries the backend's own
// "message" field when the body had one, so it can be shown verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream error (%d)", e.Status)
}

// Client is a bearer-auth JSON client for the product service. It is
// stateless: the token is supplied per call, never stored.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) *Client {
	return &Client{
		httpClient: httpx.Client(),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Do issues one request. path may carry a query string; in, when
// non-nil, is JSON-encoded; out, when non-nil, receives the decoded
// response body.
func (c *Client) Do(ctx context.Context, token, method, path string, in, out any) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}

	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
