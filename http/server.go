package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fwojciec/autoextract"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes list extraction and saved runs over an HTTP API.
// Fetcher and store are optional; endpoints that need a missing
// dependency respond with 501.
type Server struct {
	router    chi.Router
	extractor autoextract.ListExtractor
	fetcher   autoextract.Fetcher
	store     autoextract.ExtractionService
	logger    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(extractor autoextract.ListExtractor, fetcher autoextract.Fetcher, store autoextract.ExtractionService, logger *slog.Logger) *Server {
	s := &Server{
		extractor: extractor,
		fetcher:   fetcher,
		store:     store,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Post("/api/extract", s.handleExtract)
	r.Get("/api/extractions", s.handleListExtractions)
	r.Get("/api/extractions/{id}", s.handleGetExtraction)
	r.Delete("/api/extractions/{id}", s.handleDeleteExtraction)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type extractRequest struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
	Base string `json:"base"`
	Save bool   `json:"save"`
}

type extractResponse struct {
	ID    string             `json:"id,omitempty"`
	Count int                `json:"count"`
	Items []autoextract.Item `json:"items"`
}

// handleExtract extracts the link list from inline HTML or a fetched URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.HTML == "" && req.URL == "" {
		jsonError(w, "html or url is required", http.StatusBadRequest)
		return
	}
	if req.HTML != "" && req.URL != "" {
		jsonError(w, "html and url are mutually exclusive", http.StatusBadRequest)
		return
	}

	markup := req.HTML
	if req.URL != "" {
		if s.fetcher == nil {
			jsonError(w, "fetching is not configured", http.StatusNotImplemented)
			return
		}
		fetched, err := s.fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			jsonError(w, "fetch failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		markup = fetched
	}

	items, err := s.extractor.ExtractList(markup)
	if err != nil {
		s.respondError(w, err)
		return
	}

	// Hrefs resolve against an explicit base, falling back to the page URL.
	base := req.Base
	if base == "" {
		base = req.URL
	}
	if base != "" {
		items, err = autoextract.ResolveItems(base, items)
		if err != nil {
			s.respondError(w, err)
			return
		}
	}

	resp := extractResponse{Count: len(items), Items: items}
	if req.Save {
		if s.store == nil {
			jsonError(w, "persistence is not configured", http.StatusNotImplemented)
			return
		}
		extraction := &autoextract.Extraction{
			SourceURL: req.URL,
			ItemCount: len(items),
			Items:     items,
		}
		if err := s.store.CreateExtraction(r.Context(), extraction); err != nil {
			s.respondError(w, err)
			return
		}
		resp.ID = extraction.ID
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleListExtractions lists saved extraction runs, newest first.
func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "persistence is not configured", http.StatusNotImplemented)
		return
	}

	filter := autoextract.ExtractionFilter{}
	if v := r.URL.Query().Get("source_url"); v != "" {
		filter.SourceURL = &v
	}
	filter.Offset = intQuery(r, "offset", 0)
	filter.Limit = intQuery(r, "limit", 0)

	extractions, err := s.store.FindExtractions(r.Context(), filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"extractions": extractions,
		"count":       len(extractions),
	})
}

// handleGetExtraction returns one saved run with its items.
func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "persistence is not configured", http.StatusNotImplemented)
		return
	}

	extraction, err := s.store.FindExtractionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(extraction)
}

// handleDeleteExtraction removes one saved run.
func (s *Server) handleDeleteExtraction(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "persistence is not configured", http.StatusNotImplemented)
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.store.DeleteExtraction(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "deleted", "id": id})
}

// respondError maps domain error codes onto HTTP statuses.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch autoextract.ErrorCode(err) {
	case autoextract.EINVALID:
		status = http.StatusBadRequest
	case autoextract.ENOTFOUND:
		status = http.StatusNotFound
	case autoextract.ECONFLICT:
		status = http.StatusConflict
	case autoextract.ENOCANDIDATES, autoextract.ENOLINKEDTITLE:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", "err", err)
	}
	jsonError(w, autoextract.ErrorMessage(err), status)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
