package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// SigninPath is the login exchange path relative to the API base. A 401
// from this path is a credential rejection, not an expiry.
const SigninPath = "/auth/signin"

// Client talks to the catalog backend. All traffic goes through the
// Pipeline, so individual call sites never handle token plumbing.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	pipeline *Pipeline
	log      zerolog.Logger
}

// New builds a Client rooted at baseURL (e.g. "http://localhost:8080/api").
// timeout is a fixed ceiling per call; zero selects the default. Wire the
// session store afterwards with SetObserver.
func New(baseURL string, timeout time.Duration, storage ports.CredentialStorage, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	pipeline := NewPipeline(nil, storage, nil, u.Path+SigninPath, log)
	return &Client{
		baseURL:  u,
		http:     &http.Client{Timeout: timeout, Transport: pipeline},
		pipeline: pipeline,
		log:      log,
	}, nil
}

// SetObserver forwards the forced-logout recipient to the pipeline.
func (c *Client) SetObserver(o ports.SessionObserver) {
	c.pipeline.SetObserver(o)
}

// do performs one JSON round trip. body is marshalled when non-nil; the
// response body is decoded into out when non-nil. Non-2xx statuses are
// returned as *APIError carrying the server message; transport failures
// are returned unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// raw fetches a path and returns the body bytes untouched (file download).
func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

// decodeAPIError extracts the backend's error envelope. The message is
// kept verbatim; bodies that are not the canonical envelope degrade to
// an empty message rather than an extra error.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else {
			apiErr.Message = envelope.Message
		}
	}
	return apiErr
}
