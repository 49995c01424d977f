// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/lexiflow/models"
)

// fakeContentServer is an in-memory content API with optimistic versioning.
type fakeContentServer struct {
	*httptest.Server

	mu          sync.Mutex
	password    string
	tokens      int
	nextID      int64
	items       map[int64]models.ContentRecord
	idempotency map[string]int64
	requests    []string
}

func newFakeContentServer(t *testing.T) *fakeContentServer {
	t.Helper()
	f := &fakeContentServer{
		password:    "secret",
		nextID:      1,
		items:       make(map[int64]models.ContentRecord),
		idempotency: make(map[string]int64),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", f.login)
	mux.HandleFunc("POST /auth/refresh", f.authed(f.refresh))
	mux.HandleFunc("GET /content", f.authed(f.list))
	mux.HandleFunc("POST /content", f.authed(f.create))
	mux.HandleFunc("GET /content/{id}", f.authed(f.get))
	mux.HandleFunc("PUT /content/{id}", f.authed(f.update))
	mux.HandleFunc("DELETE /content/{id}", f.authed(f.delete))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeContentServer) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer tok-") {
			reply(w, http.StatusUnauthorized, map[string]string{"message": "token is expired or invalid"})
			return
		}
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		next(w, r)
	}
}

func (f *fakeContentServer) issueToken() models.RefreshResponse {
	f.tokens++
	exp := time.Now().Add(time.Hour)
	return models.RefreshResponse{Token: "tok-" + strconv.Itoa(f.tokens), ExpiresAt: &exp}
}

func (f *fakeContentServer) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "invalid data provided"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req.Password != f.password {
		reply(w, http.StatusUnauthorized, map[string]string{"message": "invalid login/password"})
		return
	}
	tok := f.issueToken()
	reply(w, http.StatusOK, models.LoginResponse{
		Success:   true,
		Token:     tok.Token,
		ExpiresAt: tok.ExpiresAt,
		User:      &models.User{ID: 1, Username: req.Username},
	})
}

func (f *fakeContentServer) refresh(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reply(w, http.StatusOK, f.issueToken())
}

func (f *fakeContentServer) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	var since time.Time
	if raw := r.URL.Query().Get("updatedSince"); raw != "" {
		since, _ = time.Parse(time.RFC3339Nano, raw)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.ContentRecord
	for _, item := range f.items {
		if item.UpdatedAt.After(since) {
			matched = append(matched, item)
		}
	}
	slices.SortFunc(matched, func(a, b models.ContentRecord) int { return int(a.ID - b.ID) })

	start := min((page-1)*size, len(matched))
	end := min(start+size, len(matched))
	reply(w, http.StatusOK, models.ContentListResponse{
		Data: matched[start:end],
		Pagination: &models.Pagination{
			Page:       page,
			PageSize:   size,
			TotalCount: len(matched),
			TotalPages: max(1, (len(matched)+size-1)/size),
		},
	})
}

func (f *fakeContentServer) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "bad id"})
		return 0, false
	}
	return id, true
}

func (f *fakeContentServer) create(w http.ResponseWriter, r *http.Request) {
	var req models.ContentWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Term == "" {
		reply(w, http.StatusBadRequest, map[string]string{"message": "invalid data provided"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Header.Get("Idempotency-Key")
	if id, ok := f.idempotency[key]; ok && key != "" {
		reply(w, http.StatusOK, models.ContentResponse{Data: ptr(f.items[id])})
		return
	}

	now := time.Now().UTC()
	item := fromWrite(req)
	item.ID = f.nextID
	item.CreatedAt = now
	item.UpdatedAt = now
	item.Version = "v1"
	f.nextID++
	f.items[item.ID] = item
	if key != "" {
		f.idempotency[key] = item.ID
	}
	reply(w, http.StatusCreated, models.ContentResponse{Data: &item})
}

func (f *fakeContentServer) get(w http.ResponseWriter, r *http.Request) {
	id, ok := f.pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	item, found := f.items[id]
	if !found || item.IsDeleted {
		reply(w, http.StatusNotFound, map[string]string{"message": "data not found"})
		return
	}
	reply(w, http.StatusOK, models.ContentResponse{Data: &item})
}

func (f *fakeContentServer) update(w http.ResponseWriter, r *http.Request) {
	id, ok := f.pathID(w, r)
	if !ok {
		return
	}
	var req models.ContentWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "invalid data provided"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	current, found := f.items[id]
	if !found || current.IsDeleted {
		reply(w, http.StatusNotFound, map[string]string{"message": "data not found"})
		return
	}
	if req.Version != current.Version {
		reply(w, http.StatusConflict, map[string]string{"message": "version conflict, please sync"})
		return
	}

	f.items[id] = f.bump(current.WithPayload(fromWrite(req)))
	reply(w, http.StatusOK, models.ContentResponse{Data: ptr(f.items[id])})
}

func (f *fakeContentServer) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := f.pathID(w, r)
	if !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	current, found := f.items[id]
	if !found || current.IsDeleted {
		reply(w, http.StatusNotFound, map[string]string{"message": "data not found"})
		return
	}
	current.IsDeleted = true
	f.items[id] = f.bump(current)
	w.WriteHeader(http.StatusNoContent)
}

// bump advances the version and modification time of item.
func (f *fakeContentServer) bump(item models.ContentRecord) models.ContentRecord {
	n, _ := strconv.Atoi(strings.TrimPrefix(item.Version, "v"))
	item.Version = fmt.Sprintf("v%d", n+1)
	item.UpdatedAt = time.Now().UTC()
	return item
}

// edit changes an item as another device would.
func (f *fakeContentServer) edit(id int64, term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.items[id]
	item.Term = term
	f.items[id] = f.bump(item)
}

// seed stores an item as if another device created it.
func (f *fakeContentServer) seed(term, definition string) models.ContentRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	item := models.ContentRecord{ID: f.nextID, Term: term, Definition: definition, Version: "v1", CreatedAt: now, UpdatedAt: now}
	f.nextID++
	f.items[item.ID] = item
	return item
}

func (f *fakeContentServer) item(id int64) (models.ContentRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	return item, ok
}

func (f *fakeContentServer) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.HasPrefix(r, method+" ") {
			n++
		}
	}
	return n
}

func fromWrite(req models.ContentWriteRequest) models.ContentRecord {
	return models.ContentRecord{
		Term:          req.Term,
		Definition:    req.Definition,
		Example:       req.Example,
		Pronunciation: req.Pronunciation,
		Language:      req.Language,
		Notes:         req.Notes,
	}
}

func ptr[T any](v T) *T { return &v }
