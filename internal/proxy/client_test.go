package proxy_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaleims/api/internal/proxy"
	"github.com/yaleims/api/internal/shared"
	_ "github.com/yaleims/api/testing"
)

func newClient(t *testing.T, base string) *proxy.Client {
	t.Helper()
	client, err := proxy.NewClient(base, time.Second, nil)
	require.NoError(t, err)
	return client
}

func TestCallForwardsBearerAndBody(t *testing.T) {
	var gotAuth, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	resp, err := client.Call(context.Background(), proxy.PlaceBet, "signed-token", strings.NewReader(`{"matchId":"m1"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"success":true}`, string(resp.Body))
	assert.Equal(t, "Bearer signed-token", gotAuth)
	assert.Equal(t, "/api/bets/place", gotPath)
	assert.JSONEq(t, `{"matchId":"m1"}`, gotBody)
}

func TestCallRelaysClientStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"Not Found","status":404}`))
	}))
	defer server.Close()

	resp, err := newClient(t, server.URL).Call(context.Background(), proxy.SetRole, "tok", strings.NewReader(`{}`))
	require.NoError(t, err, "4xx is a relayed decision, not a transport failure")
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestCallMapsDownstreamFaultToBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Call(context.Background(), proxy.ScoreMatch, "tok", strings.NewReader(`{}`))
	assert.ErrorIs(t, err, shared.ErrBadGateway)
}

func TestCallMapsNetworkFailureToBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newClient(t, server.URL).Call(context.Background(), proxy.PlaceBet, "tok", strings.NewReader(`{}`))
	assert.ErrorIs(t, err, shared.ErrBadGateway)
}

func TestCallRejectsUnregisteredEndpoint(t *testing.T) {
	_, err := newClient(t, "http://127.0.0.1:0").Call(context.Background(), proxy.Endpoint("mystery"), "tok", nil)
	assert.Error(t, err)
}

func TestNewClientRejectsBadBase(t *testing.T) {
	_, err := proxy.NewClient("not a url", time.Second, nil)
	assert.Error(t, err)

	_, err = proxy.NewClient("/relative/only", time.Second, nil)
	assert.Error(t, err)
}
