package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/folioadmin/folio/internal/common"
)

const maxErrorBody = 64 << 10

// HTTPClientOptions configures HTTPClient. Zero values pick defaults.
type HTTPClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	hc        *http.Client
	userAgent string
}

func NewHTTPClient(opt HTTPClientOptions) *HTTPClient {
	hc := opt.HTTPClient
	if hc == nil {
		timeout := opt.Timeout
		if timeout == 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := opt.UserAgent
	if ua == "" {
		ua = "folio-admin"
	}
	return &HTTPClient{hc: hc, userAgent: ua}
}

func (c *HTTPClient) Call(ctx context.Context, r Request) (*Envelope, error) {
	u, err := actionURL(r.Endpoint, r.Action)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", r.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", common.ContentTypeTextPlain)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.Bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+r.Bearer)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	env := &Envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	env.Raw = raw
	return env, nil
}

// Ping performs the GET liveness probe.
func (c *HTTPClient) Ping(ctx context.Context, endpoint string) error {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	var probe struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&probe); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if probe.Status != "ok" {
		return fmt.Errorf("%w: status %q", ErrUnavailable, probe.Status)
	}
	return nil
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func actionURL(endpoint, action string) (string, error) {
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("action", action)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
