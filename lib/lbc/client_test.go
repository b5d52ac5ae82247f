package lbc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testClient builds a client against a local server with pacing and
// backoff shortened so retry tests finish quickly.
func testClient(t *testing.T, baseURL string, maxRetries int) *Client {
	t.Helper()
	client := NewClient(ClientOptions{
		BaseURL:    baseURL,
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
		Session: NewSession(SessionOptions{
			UserAgents: []string{"test-agent"},
		}),
	})
	client.backoffBase = time.Millisecond
	return client
}

func TestClientSearch(t *testing.T) {
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/finder/search", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 2,
			"ads": [
				{"list_id": 1, "subject": "maison", "price_cents": 50000000},
				{"list_id": 2, "subject": "maison de ville", "price_cents": 32000000}
			]
		}`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 1)
	q, err := BuildQuery(SearchOptions{Text: "maison", Category: "IMMOBILIER", Sort: "NEWEST", Limit: 5})
	require.NoError(t, err)

	result, err := client.Search(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Len(t, result.Ads, 2)
	require.Equal(t, 500000.0, result.Ads[0].Price)

	filters := gotPayload["filters"].(map[string]any)
	require.Equal(t, "8", filters["category"].(map[string]any)["id"])
	require.Equal(t, "time", gotPayload["sort_by"])
}

func TestClientSearchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, float64(10), payload["limit"])
		require.Equal(t, float64(10), payload["offset"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total": 0, "ads": []}`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 1)
	_, err := client.SearchURL(context.Background(),
		"https://www.leboncoin.fr/recherche?category=9&text=maison", 2, 10)
	require.NoError(t, err)
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	const maxRetries = 3
	client := testClient(t, srv.URL, maxRetries)
	_, err := client.GetAd(context.Background(), "123")

	require.ErrorIs(t, err, ErrDatadome)
	require.ErrorIs(t, err, ErrRequest)
	require.Equal(t, int64(maxRetries), attempts.Load())
}

func TestClientRecoversFromBlock(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list_id": 123, "subject": "maison", "price_cents": 1000}`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 5)
	ad, err := client.GetAd(context.Background(), "123")

	require.NoError(t, err)
	require.Equal(t, int64(123), ad.ID)
	require.Equal(t, int64(3), attempts.Load())
}

func TestClientBlockRotatesIdentity(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		if len(agents) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list_id": 7}`))
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{
		BaseURL:    srv.URL,
		MaxRetries: 2,
		Session: NewSession(SessionOptions{
			UserAgents: []string{"agent-a"},
			Proxies:    nil,
		}),
	})
	client.backoffBase = time.Millisecond

	_, err := client.GetAd(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, agents, 2)
	require.Equal(t, 2, client.Session().Requests())
}

func TestClientNotFound(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 5)
	_, err := client.GetAd(context.Background(), "999")

	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrRequest)
	require.Equal(t, int64(1), attempts.Load(), "missing resources must not be retried")
}

func TestClientServerErrorIsNotRetried(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 5)
	_, err := client.GetAd(context.Background(), "123")

	require.ErrorIs(t, err, ErrRequest)
	require.NotErrorIs(t, err, ErrDatadome)
	require.Equal(t, int64(1), attempts.Load())
}

func TestClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/accounts/v1/accounts/u-42/public", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id": "u-42", "name": "Jean", "account_type": "private"}`))
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 1)
	user, err := client.GetUser(context.Background(), "u-42")

	require.NoError(t, err)
	require.Equal(t, "u-42", user.ID)
	require.Equal(t, "Jean", user.Name)
	require.Nil(t, user.Pro)
}

func TestClientInvalidQueryNeverHitsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, 1)
	_, err := client.SearchURL(context.Background(), "https://www.leboncoin.fr/recherche?%zz", 1, 0)
	require.ErrorIs(t, err, ErrInvalidValue)
}
