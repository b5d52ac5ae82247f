package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"lbc-backend/lib/lbc"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/search")

// Service exposes the client's operations over plain JSON routes,
// mapping the error taxonomy onto HTTP statuses.
type Service struct {
	client *lbc.Client
}

func NewService(client *lbc.Client) Service {
	return Service{client: client}
}

func (s Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/search-url", s.handleSearchURL)
	mux.HandleFunc("GET /api/ad/{id}", s.handleGetAd)
	mux.HandleFunc("GET /api/user/{id}", s.handleGetUser)
	mux.HandleFunc("GET /api/categories", s.handleEnum("categories", lbc.CategoryNames()))
	mux.HandleFunc("GET /api/sort-options", s.handleEnum("sort_options", lbc.SortNames()))
	mux.HandleFunc("GET /api/ad-types", s.handleEnum("ad_types", lbc.AdTypeNames()))
	mux.HandleFunc("GET /api/owner-types", s.handleEnum("owner_types", lbc.OwnerTypeNames()))
}

func (s Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "lbc-backend",
	})
}

func (s Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleSearch")
	defer span.End()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	query, err := lbc.BuildQuery(req.options())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	result, err := s.client.Search(ctx, query)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchBody(result))
}

func (s Service) handleSearchURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleSearchURL")
	defer span.End()

	var req searchURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("url is required"))
		return
	}

	result, err := s.client.SearchURL(ctx, req.URL, req.Page, req.Limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchBody(result))
}

func (s Service) handleGetAd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleGetAd")
	defer span.End()

	ad, err := s.client.GetAd(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, adBody(ad))
}

func (s Service) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleGetUser")
	defer span.End()

	user, err := s.client.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, userBody(user))
}

type enumEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (s Service) handleEnum(key string, values map[string]string) http.HandlerFunc {
	entries := make([]enumEntry, 0, len(values))
	for name, value := range values {
		entries = append(entries, enumEntry{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	body := map[string][]enumEntry{key: entries}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// writeError maps the client error taxonomy onto HTTP statuses:
// blocked requests are forbidden, missing resources are not found,
// malformed filters are the caller's fault, the rest is on us.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lbc.ErrDatadome):
		slog.ErrorContext(ctx, "blocked by datadome", "err", err)
		writeJSON(w, http.StatusForbidden, errorBody("access blocked by datadome protection, try again later"))
	case errors.Is(err, lbc.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("resource not found"))
	case errors.Is(err, lbc.ErrInvalidValue):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.ErrorContext(ctx, "request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("request failed, try again"))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
