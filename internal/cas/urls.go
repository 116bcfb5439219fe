package cas

import (
	"net/url"
	"strings"
)

const loginPath = "/cas/login"

// Endpoints selects CAS hosts and builds the URLs of the handshake.
type Endpoints struct {
	ProdHost       string
	TestHost       string
	FrontendBase   string
	LocalDevOrigin string
}

// Host returns the CAS host for the configured frontend: the test host iff
// the frontend base is the known local-development origin.
func (e Endpoints) Host() string {
	if e.FrontendBase == e.LocalDevOrigin {
		return e.TestHost
	}
	return e.ProdHost
}

// BaseURL returns the CAS server base URL for ticket validation.
func (e Endpoints) BaseURL() (*url.URL, error) {
	return url.Parse("https://" + e.Host())
}

// ServiceURL builds the callback URL the CAS server redirects back to,
// carrying the originating path so the user lands where they started.
func (e Endpoints) ServiceURL(from string) *url.URL {
	u, err := url.Parse(strings.TrimSuffix(e.FrontendBase, "/"))
	if err != nil || u.Host == "" {
		// The frontend base is validated at startup; a bad value here is
		// unreachable outside tests.
		u = &url.URL{Scheme: "https", Host: "invalid"}
	}
	u.Path = "/api/auth/redirect"
	query := url.Values{}
	query.Set("from", from)
	u.RawQuery = query.Encode()
	return u
}

// LoginURL builds the CAS login redirect with the percent-encoded service
// callback as its service parameter.
func (e Endpoints) LoginURL(from string) string {
	query := url.Values{}
	query.Set("service", e.ServiceURL(from).String())
	return "https://" + e.Host() + loginPath + "?" + query.Encode()
}
