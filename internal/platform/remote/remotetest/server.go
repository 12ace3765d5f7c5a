// Copyright (c) 2026 Citely. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package remotetest provides an in-memory fake of the citation service for tests.
//
// The fake stores the raw JSON documents it receives, so tests can assert
// exactly which keys were transmitted, and it can be switched into failure
// modes (whole service down, specific source types rejected, citation field
// omitted).
package remotetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/citely/internal/platform/remote"
)

// Server is a fake citation service backed by [httptest.Server].
type Server struct {
	*httptest.Server

	mu sync.Mutex

	nextID  int64
	records map[int64]map[string]any

	// Generated records every query string received by /api/citations/generate.
	Generated []url.Values

	down          bool
	rejectTypes   map[string]bool
	omitCitation  bool
	healthStatus  int
	requestsCount int
}

// NewServer starts a fake service and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()

	fake := &Server{
		nextID:       100,
		records:      make(map[int64]map[string]any),
		rejectTypes:  make(map[string]bool),
		healthStatus: http.StatusOK,
	}

	router := chi.NewRouter()
	router.Use(fake.gate)
	router.Get("/health", fake.health)
	router.Post("/api/sources", fake.createSource)
	router.Get("/api/sources/{id}", fake.getSource)
	router.Post("/api/citations/generate", fake.generate)

	fake.Server = httptest.NewServer(router)
	t.Cleanup(fake.Server.Close)

	return fake
}

// Client returns a remote client bound to the fake.
func (fake *Server) Client(opts ...remote.Option) *remote.Client {
	opts = append([]remote.Option{remote.WithHTTPClient(fake.Server.Client())}, opts...)
	return remote.NewClient(fake.URL, opts...)
}

// SetDown makes every endpoint answer 503.
func (fake *Server) SetDown(down bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.down = down
}

// RejectType makes source creation fail with 500 for the given type.
func (fake *Server) RejectType(sourceType string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.rejectTypes[sourceType] = true
}

// OmitCitation makes /api/citations/generate answer 200 without a citation field.
func (fake *Server) OmitCitation(omit bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.omitCitation = omit
}

// SetHealthStatus overrides the status code of /health.
func (fake *Server) SetHealthStatus(status int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.healthStatus = status
}

// Record returns the stored raw document for id.
func (fake *Server) Record(id int64) (map[string]any, bool) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	doc, ok := fake.records[id]
	return doc, ok
}

// RecordCount returns how many sources were created.
func (fake *Server) RecordCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return len(fake.records)
}

// Requests returns how many requests reached the fake (including failed ones).
func (fake *Server) Requests() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.requestsCount
}

// GeneratedCalls returns a copy of the recorded generate queries.
func (fake *Server) GeneratedCalls() []url.Values {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]url.Values(nil), fake.Generated...)
}

func (fake *Server) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		fake.requestsCount++
		down := fake.down
		fake.mu.Unlock()

		if down {
			http.Error(w, `{"error":"maintenance"}`, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fake *Server) health(w http.ResponseWriter, r *http.Request) {
	fake.mu.Lock()
	status := fake.healthStatus
	fake.mu.Unlock()

	w.WriteHeader(status)
	_, _ = io.WriteString(w, "OK")
}

func (fake *Server) createSource(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	fake.mu.Lock()
	sourceType, _ := doc["type"].(string)
	if fake.rejectTypes[sourceType] {
		fake.mu.Unlock()
		http.Error(w, "rejected", http.StatusInternalServerError)
		return
	}
	fake.nextID++
	id := fake.nextID
	doc["id"] = id
	fake.records[id] = doc
	fake.mu.Unlock()

	writeJSON(w, http.StatusCreated, doc)
}

func (fake *Server) getSource(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	doc, ok := fake.Record(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (fake *Server) generate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fake.mu.Lock()
	fake.Generated = append(fake.Generated, query)
	omit := fake.omitCitation
	fake.mu.Unlock()

	id, err := strconv.ParseInt(query.Get("sourceId"), 10, 64)
	if err != nil {
		http.Error(w, "bad sourceId", http.StatusBadRequest)
		return
	}

	doc, ok := fake.Record(id)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	if omit {
		writeJSON(w, http.StatusOK, map[string]any{"CitationID": "c-1"})
		return
	}

	citation := fmt.Sprintf("%v. %v. [%s]", doc["author"], doc["title"], query.Get("style"))
	writeJSON(w, http.StatusOK, map[string]any{"citation": citation})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
