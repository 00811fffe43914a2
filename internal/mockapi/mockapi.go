// Package mockapi is an in-process fake of the Synthex backend for tests.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a fake backend. Its setters change what it serves.
type Server struct {
	*httptest.Server

	APIKey string

	mu          sync.Mutex
	jobs        []map[string]any
	user        map[string]any
	credit      map[string]any
	events      []string
	failures    map[string]failure
	jobRequests []map[string]any
	headers     []http.Header
}

type failure struct {
	status int
	body   string
}

// New starts a fake backend that accepts apiKey and closes it on test cleanup.
func New(t testing.TB, apiKey string) *Server {
	t.Helper()

	s := &Server{
		APIKey:   apiKey,
		failures: make(map[string]failure),
		user: map[string]any{
			"id":                        "abc123",
			"first_name":                "John",
			"last_name":                 "Doe",
			"email":                     "john.doe@example.com",
			"default_payment_method_id": "def456",
			"promo_credit_granted":      "2025-03-15T18:20:41.677278+00:00",
			"is_verified":               true,
		},
		credit: map[string]any{"amount": 100, "currency": "USD"},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.failOverride)
	r.Use(s.auth)

	r.Get("/", s.ping)
	r.Get("/jobs", s.listJobs)
	r.Post("/jobs/create-with-samples", s.createJob)
	r.Get("/users/me", s.me)
	r.Get("/credits/promotional", s.promotional)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetJobs replaces the jobs served by the list endpoint.
func (s *Server) SetJobs(jobs ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
}

// SetEvents sets the lines streamed back by the job creation endpoint.
// Each is written followed by a blank line.
func (s *Server) SetEvents(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = lines
}

// Fail makes path answer with status and body regardless of auth.
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// JobRequests returns the decoded bodies received by the job creation endpoint.
func (s *Server) JobRequests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.jobRequests...)
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.headers)
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.headers) == 0 {
		return nil
	}
	return s.headers[len(s.headers)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.headers = append(s.headers, r.Header.Clone())
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			key = bearer
		}
		if key != s.APIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Success"})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": "invalid offset"})
		return
	}

	s.mu.Lock()
	all := s.jobs
	s.mu.Unlock()

	page := []map[string]any{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		page = append(page, all[i])
	}
	writeEnvelope(w, "Jobs retrieved successfully", map[string]any{
		"total": len(all),
		"jobs":  page,
	})
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
		return
	}

	s.mu.Lock()
	s.jobRequests = append(s.jobRequests, body)
	events := s.events
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	for _, line := range events {
		fmt.Fprintf(w, "%s\n\n", line)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	writeEnvelope(w, "User retrieved successfully", user)
}

func (s *Server) promotional(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	credit := s.credit
	s.mu.Unlock()
	writeEnvelope(w, "Credits retrieved successfully", credit)
}

func writeEnvelope(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status_code": http.StatusOK,
		"status":      "success",
		"message":     message,
		"data":        data,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
