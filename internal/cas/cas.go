// Package cas wraps the campus single-sign-on handshake: building the login
// redirect and exchanging a service ticket for a bare identity.
package cas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	casv2 "gopkg.in/cas.v2"
)

var (
	// ErrNoTicket means the callback arrived without a ticket parameter.
	ErrNoTicket = errors.New("cas: no ticket presented")
	// ErrInvalidTicket means the CAS server rejected the ticket.
	ErrInvalidTicket = errors.New("cas: ticket rejected")
)

// Identity is the bare principal the CAS server vouches for.
type Identity struct {
	NetID string
}

// Verifier validates a service ticket against the SSO server. Ticket
// single-use is the CAS server's guarantee, not ours.
type Verifier interface {
	Verify(ctx context.Context, ticket string, serviceURL *url.URL) (Identity, error)
}

// Client validates tickets using the CAS 2.0 serviceValidate protocol.
type Client struct {
	validator *casv2.ServiceTicketValidator
}

// NewClient constructs a Client against the given CAS base URL. The timeout
// bounds the single validation round trip; there is no retry.
func NewClient(casBase *url.URL, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}
	return &Client{validator: casv2.NewServiceTicketValidator(httpClient, casBase)}
}

// Verify exchanges a ticket for the principal it was issued to. No session
// state is created here on either outcome.
func (c *Client) Verify(_ context.Context, ticket string, serviceURL *url.URL) (Identity, error) {
	if ticket == "" {
		return Identity{}, ErrNoTicket
	}
	resp, err := c.validator.ValidateTicket(serviceURL, ticket)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	return Identity{NetID: resp.User}, nil
}

var _ Verifier = (*Client)(nil)
