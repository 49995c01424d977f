// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/models"
)

type staticToken string

func (s staticToken) CurrentToken() string { return string(s) }

func newTestClient(t *testing.T, serverURL string, token string) *httpContentClient {
	t.Helper()
	c, err := NewHTTPContentClient(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}, staticToken(token), logger.Nop())
	require.NoError(t, err)
	return c.(*httpContentClient)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL(" localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	_, err = normalizeBaseURL("")
	assert.Error(t, err)
}

func TestNewHTTPContentClient_BadAddress(t *testing.T) {
	_, err := NewHTTPContentClient(config.ClientAdapter{}, staticToken(""), logger.Nop())
	assert.Error(t, err)
}

// ── Login / Refresh ─────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	expires := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body.Username)

		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			Success:   true,
			Token:     "opaque",
			ExpiresAt: &expires,
			User:      &models.User{ID: 1, Username: "alice"},
		})
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv.URL, "stale").Login(context.Background(), models.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "opaque", res.Token.AccessToken)
	assert.True(t, expires.Equal(res.Token.ExpiresAt))
	assert.Equal(t, "alice", res.User.Username)
}

func TestLogin_ExpiryFromJWTClaim(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}).
		SignedString([]byte("server-secret"))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "token": token})
	}))
	defer srv.Close()

	res, err := newTestClient(t, srv.URL, "").Login(context.Background(), models.Credentials{Username: "a", Password: "b"})
	require.NoError(t, err)
	assert.True(t, exp.Equal(res.Token.ExpiresAt))
}

func TestLogin_DefaultLifetimeForOpaqueToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "token": "opaque"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "")
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	res, err := c.Login(context.Background(), models.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, now.Add(defaultTokenLifetime), res.Token.ExpiresAt)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr error
	}{
		{name: "401", status: http.StatusUnauthorized, body: map[string]string{"message": "bad credentials"}, wantErr: ErrUnauthorized},
		{name: "success false", status: http.StatusOK, body: map[string]any{"success": false, "message": "locked"}, wantErr: ErrLoginRejected},
		{name: "empty token", status: http.StatusOK, body: map[string]any{"success": true}, wantErr: ErrMalformedResponse},
		{name: "500", status: http.StatusInternalServerError, body: map[string]string{"message": "boom"}, wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL, "").Login(context.Background(), models.Credentials{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoginRejected_IsUnauthorized(t *testing.T) {
	assert.ErrorIs(t, ErrLoginRejected, ErrUnauthorized)
}

func TestRefresh_SendsGivenToken(t *testing.T) {
	expires := time.Date(2026, 7, 1, 11, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		assert.Equal(t, "Bearer raw-old", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.RefreshResponse{Token: "fresh", ExpiresAt: &expires})
	}))
	defer srv.Close()

	// the token source would report nothing usable; Refresh must not depend on it
	tok, err := newTestClient(t, srv.URL, "").Refresh(context.Background(), "raw-old")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
	assert.True(t, expires.Equal(tok.ExpiresAt))
}

func TestRefresh_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "").Refresh(context.Background(), "raw")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── content ─────────────────────────────────────────────────────────────────

func TestListContent_QueryAndPagination(t *testing.T) {
	since := time.Date(2026, 2, 3, 4, 5, 6, 7, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "2026-02-03T04:05:06.000000007Z", r.URL.Query().Get("updatedSince"))

		writeJSON(t, w, http.StatusOK, models.ContentListResponse{
			Data:       []models.ContentRecord{{ID: 1, Term: "a"}, {ID: 2, Term: "b", IsDeleted: true}},
			Pagination: &models.Pagination{Page: 2, PageSize: 50, TotalCount: 102, TotalPages: 3},
		})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL, "tok").ListContent(context.Background(), models.ContentQuery{Page: 2, PageSize: 50, UpdatedSince: since})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[1].IsDeleted)
	assert.True(t, page.HasMore())
}

func TestListContent_NoPaginationIsSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("updatedSince"))
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	page, err := newTestClient(t, srv.URL, "").ListContent(context.Background(), models.ContentQuery{})
	require.NoError(t, err)
	assert.False(t, page.HasMore())
}

func TestListContent_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "").ListContent(context.Background(), models.ContentQuery{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/content/404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "/content/7", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.ContentResponse{Data: &models.ContentRecord{ID: 7, Term: "seven"}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	rec, err := c.GetContent(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "seven", rec.Term)

	_, err = c.GetContent(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateContent_SendsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/content", r.URL.Path)
		assert.Equal(t, "v-123", r.Header.Get("Idempotency-Key"))

		var body models.ContentWriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hola", body.Term)

		writeJSON(t, w, http.StatusCreated, models.ContentResponse{Data: &models.ContentRecord{ID: 42, Term: body.Term, Version: "srv-1"}})
	}))
	defer srv.Close()

	rec, err := newTestClient(t, srv.URL, "tok").CreateContent(context.Background(), models.ContentRecord{ID: -1, Term: "hola", Version: "v-123"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, "srv-1", rec.Version)
}

func TestCreateContent_MissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]any{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, "tok").CreateContent(context.Background(), models.ContentRecord{Term: "x"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUpdateContent_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusConflict, ErrConflict},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrTransport},
		{http.StatusTooManyRequests, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/content/5", r.URL.Path)

				var body models.ContentWriteRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "base-v", body.Version)

				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL, "tok").UpdateContent(context.Background(), models.ContentRecord{ID: 5, Version: "base-v"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/content/9" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "tok")
	assert.NoError(t, c.DeleteContent(context.Background(), 9))
	assert.ErrorIs(t, c.DeleteContent(context.Background(), 10), ErrNotFound)
}

func TestBulkSync(t *testing.T) {
	synced := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync", r.URL.Path)

		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `[]`, string(raw["modifiedItems"]))
		assert.JSONEq(t, `[3]`, string(raw["deletedItemIds"]))
		assert.JSONEq(t, `"dev-1"`, string(raw["deviceId"]))

		writeJSON(t, w, http.StatusOK, models.BulkSyncResponse{
			SyncedAt:     synced,
			DeletedCount: 1,
			Conflicts:    []models.BulkSyncConflict{{ItemID: 4, ServerVersion: "s4"}},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL, "tok").BulkSync(context.Background(), models.BulkSyncRequest{
		DeletedItemIDs: []int64{3},
		DeviceID:       "dev-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.DeletedCount)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(4), resp.Conflicts[0].ItemID)
}

// ── transport ───────────────────────────────────────────────────────────────

func TestTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url, "tok").ListContent(context.Background(), models.ContentQuery{})
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestTransportErrors_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, srv.URL, "tok").GetContent(ctx, 1)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimitRefusalIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewHTTPContentClient(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: time.Second, RateLimit: 0.001}, staticToken("tok"), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, c.DeleteContent(context.Background(), 1))
	assert.ErrorIs(t, c.DeleteContent(context.Background(), 2), ErrTransport)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "nope", errorMessage([]byte(`{"message":"nope"}`)))
	assert.Equal(t, "bad", errorMessage([]byte(`{"error":"bad"}`)))
	assert.Equal(t, "plain text", errorMessage([]byte("  plain text \n")))
}
