package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// HistoryResponse lists recorded queries
// @Description Recent or popular recorded search queries
type HistoryResponse struct {
	Queries []string `json:"queries"`
}

// SuggestionsResponse lists query completions
// @Description Query completions for the current input
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns ready once the database is reachable and the search index is built
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Not ready"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}
	if !s.engine.Indexed() {
		writeError(w, http.StatusServiceUnavailable, "search index not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Back-office login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			writeError(w, http.StatusBadRequest, "email and password are required")
		case domain.ErrInvalidCredentials:
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case domain.ErrUnauthorized:
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search endpoints

// handleSearch godoc
// @Summary      Unified content search
// @Description  Searches threads, interviews, reportages, videos and testimonials
// @Tags         Search
// @Produce      json
// @Param        q          query     string  false  "Search query"
// @Param        types      query     string  false  "Comma-separated content types"
// @Param        themes     query     string  false  "Comma-separated themes"
// @Param        locations  query     string  false  "Comma-separated locations"
// @Param        authors    query     string  false  "Comma-separated authors"
// @Param        from       query     string  false  "Inclusive start date (RFC 3339)"
// @Param        to         query     string  false  "Inclusive end date (RFC 3339)"
// @Param        limit      query     int     false  "Page size (default 20)"
// @Param        offset     query     int     false  "Page offset"
// @Param        sort       query     string  false  "Sort order: relevance, date or popularity"
// @Success      200        {object}  domain.SearchResponse
// @Failure      400        {object}  ErrorResponse  "Invalid parameters"
// @Failure      503        {object}  ErrorResponse  "Index not ready"
// @Router       /search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	opts, err := parseSearchOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.session.Search(r.Context(), r.URL.Query().Get("q"), opts)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotIndexed):
			writeError(w, http.StatusServiceUnavailable, "search index not ready")
		default:
			writeError(w, http.StatusInternalServerError, "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSuggestions godoc
// @Summary      Search suggestions
// @Description  Returns query completions from popular searches and the domain vocabulary
// @Tags         Search
// @Produce      json
// @Param        q      query     string  true   "Current query input"
// @Param        limit  query     int     false  "Maximum suggestions (default 5)"
// @Success      200    {object}  SuggestionsResponse
// @Router       /search/suggestions [get]
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	suggestions, err := s.engine.Suggest(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "suggestion generation failed")
		return
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// handleSearchHistory godoc
// @Summary      Recent searches
// @Description  Returns the 10 most recently recorded queries, newest first
// @Tags         Search
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Router       /search/history [get]
func (s *Server) handleSearchHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HistoryResponse{Queries: s.history.SearchHistory()})
}

// handlePopularSearches godoc
// @Summary      Popular searches
// @Description  Returns up to 10 queries ordered by recorded frequency
// @Tags         Search
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Router       /search/popular [get]
func (s *Server) handlePopularSearches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HistoryResponse{Queries: s.history.PopularSearches()})
}

// handleSearchState godoc
// @Summary      Search session state
// @Description  Returns the indexing/loading state of the search session
// @Tags         Search
// @Produce      json
// @Success      200  {object}  domain.SearchState
// @Router       /search/state [get]
func (s *Server) handleSearchState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.State())
}

// handleClearSearchHistory godoc
// @Summary      Clear search history
// @Description  Empties the recorded history and popularity counters
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /search/history [delete]
func (s *Server) handleClearSearchHistory(w http.ResponseWriter, r *http.Request) {
	s.history.ClearSearchHistory(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Admin endpoints

// handleReindex godoc
// @Summary      Rebuild the search index
// @Description  Refetches all content collections and rebuilds the in-memory index
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  ErrorResponse  "Indexing failed"
// @Router       /admin/reindex [post]
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reindex(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "reindex failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseSearchOptions builds SearchOptions from query parameters
func parseSearchOptions(r *http.Request) (domain.SearchOptions, error) {
	q := r.URL.Query()
	opts := domain.DefaultSearchOptions()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return opts, errors.New("invalid limit")
		}
		opts.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, errors.New("invalid offset")
		}
		opts.Offset = offset
	}
	if raw := q.Get("sort"); raw != "" {
		switch domain.SortBy(raw) {
		case domain.SortByRelevance, domain.SortByDate, domain.SortByPopularity:
			opts.SortBy = domain.SortBy(raw)
		default:
			return opts, errors.New("invalid sort order")
		}
	}

	for _, t := range splitParam(q.Get("types")) {
		opts.Filters.Types = append(opts.Filters.Types, domain.ContentType(t))
	}
	opts.Filters.Themes = splitParam(q.Get("themes"))
	opts.Filters.Locations = splitParam(q.Get("locations"))
	opts.Filters.Authors = splitParam(q.Get("authors"))

	var dateRange domain.DateRange
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("invalid from date")
		}
		dateRange.Start = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.New("invalid to date")
		}
		dateRange.End = &to
	}
	if dateRange.Start != nil || dateRange.End != nil {
		opts.Filters.DateRange = &dateRange
	}

	return opts, nil
}

// splitParam splits a comma-separated parameter, dropping empty parts
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
