// Package proxy forwards privileged edge actions to the function-backend
// tier through one endpoint registry and one error-mapping policy, instead
// of per-route fetch logic.
package proxy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/yaleims/api/internal/shared"
)

// Endpoint names a downstream function call.
type Endpoint string

// Registered downstream endpoints.
const (
	PlaceBet   Endpoint = "place-bet"
	ScoreMatch Endpoint = "score-match"
	SetRole    Endpoint = "set-role"
)

var routes = map[Endpoint]string{
	PlaceBet:   "/api/bets/place",
	ScoreMatch: "/api/matches/score",
	SetRole:    "/api/admin/role",
}

// Client is the typed RPC client for the functions tier.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// NewClient constructs a Client against the functions base URL.
func NewClient(base string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse functions base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("functions base url %q has no host", base)
	}
	return &Client{
		base:   parsed,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// Response is a relayed downstream answer. Client-level statuses (4xx) pass
// through untouched so callers see the same decision either tier would make.
type Response struct {
	Status int
	Body   []byte
}

// Call forwards a JSON body downstream, bearer-credentialed with the
// session token. Network failures and downstream 5xx map to a bad-gateway
// sentinel; everything else is relayed.
func (c *Client) Call(ctx context.Context, endpoint Endpoint, bearer string, body io.Reader) (*Response, error) {
	path, ok := routes[endpoint]
	if !ok {
		return nil, fmt.Errorf("unregistered endpoint %q", endpoint)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBadGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBadGateway, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		if c.logger != nil {
			c.logger.Error("downstream call failed",
				slog.String("endpoint", string(endpoint)),
				slog.Int("status", resp.StatusCode))
		}
		return nil, fmt.Errorf("%w: downstream status %d", shared.ErrBadGateway, resp.StatusCode)
	}
	return &Response{Status: resp.StatusCode, Body: data}, nil
}
