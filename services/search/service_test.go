package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lbc-backend/lib/lbc"
	"lbc-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

// newTestService wires the routes against a scripted upstream backend.
func newTestService(t *testing.T, backend http.HandlerFunc) *httptest.Server {
	t.Helper()
	cleanup := telemetry.SetupForTesting(t, "test:search")
	t.Cleanup(cleanup)

	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	client := lbc.NewClient(lbc.ClientOptions{
		BaseURL:    upstream.URL,
		MaxRetries: 1,
		Session: lbc.NewSession(lbc.SessionOptions{
			UserAgents: []string{"test-agent"},
		}),
	})

	mux := http.NewServeMux()
	NewService(client).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return decoded
}

func TestSearchRoute(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/finder/search", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		filters := payload["filters"].(map[string]any)
		require.Equal(t, "8", filters["category"].(map[string]any)["id"])
		require.Equal(t, "time", payload["sort_by"])
		require.Equal(t, "desc", payload["sort_order"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total": 1,
			"ads": [{"list_id": 42, "subject": "maison", "body": "belle maison", "price_cents": 50000000}]
		}`))
	})

	res := postJSON(t, srv.URL+"/api/search", `{
		"text": "maison",
		"category": "IMMOBILIER",
		"sort": "NEWEST",
		"locations": [{"lat": 48.8599, "lng": 2.3380, "radius": 10000, "city": "Paris"}],
		"limit": 5
	}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	require.Equal(t, float64(1), body["total"])
	ads := body["ads"].([]any)
	require.Len(t, ads, 1)
	ad := ads[0].(map[string]any)
	require.Equal(t, "maison", ad["title"])
	require.Equal(t, "belle maison", ad["description"])
	require.Equal(t, 500000.0, ad["price"])
}

func TestSearchRouteRejectsMixedEnums(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid filters must not reach the backend")
	})

	res := postJSON(t, srv.URL+"/api/search", `{"text": "maison", "rooms": [1, "2", 3]}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Contains(t, decodeBody(t, res)["error"], "rooms")
}

func TestSearchRouteRejectsMalformedBody(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("malformed bodies must not reach the backend")
	})

	res := postJSON(t, srv.URL+"/api/search", `{"text": `)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSearchRouteBlockedUpstream(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	res := postJSON(t, srv.URL+"/api/search", `{"text": "maison"}`)
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	require.Contains(t, decodeBody(t, res)["error"], "datadome")
}

func TestSearchRouteUpstreamFailure(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	res := postJSON(t, srv.URL+"/api/search", `{"text": "maison"}`)
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestSearchURLRoute(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		filters := payload["filters"].(map[string]any)
		require.Equal(t, "9", filters["category"].(map[string]any)["id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total": 0, "ads": []}`))
	})

	res := postJSON(t, srv.URL+"/api/search-url",
		`{"url": "https://www.leboncoin.fr/recherche?category=9&text=maison"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSearchURLRouteRequiresURL(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	res := postJSON(t, srv.URL+"/api/search-url", `{"page": 2}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetAdRoute(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/finder/classified/2521309699", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list_id": 2521309699, "subject": "maison", "price_cents": 50000000}`))
	})

	res, err := http.Get(srv.URL + "/api/ad/2521309699")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	require.Equal(t, float64(2521309699), body["id"])
	require.Equal(t, 500000.0, body["price"])
}

func TestGetAdRouteNotFound(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := http.Get(srv.URL + "/api/ad/0")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestGetUserRoute(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/accounts/v1/accounts/u-42/public", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user_id": "u-42",
			"name": "Agence du Centre",
			"account_type": "pro",
			"pro": {"siret": "12345678900011"}
		}`))
	})

	res, err := http.Get(srv.URL + "/api/user/u-42")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decodeBody(t, res)
	require.Equal(t, "u-42", body["id"])
	require.Equal(t, true, body["pro"])
	professional := body["professional"].(map[string]any)
	require.Equal(t, "12345678900011", professional["siret"])
}

func TestEnumRoutes(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("enum listings are served locally")
	})

	res, err := http.Get(srv.URL + "/api/categories")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body map[string][]map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	categories := body["categories"]
	require.NotEmpty(t, categories)

	found := false
	for _, entry := range categories {
		if entry["name"] == "IMMOBILIER" {
			require.Equal(t, "8", entry["value"])
			found = true
		}
	}
	require.True(t, found)
}

func TestHealthRoute(t *testing.T) {
	srv := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "healthy", decodeBody(t, res)["status"])
}
