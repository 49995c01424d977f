// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/lexiflow/internal/config"
	"github.com/MKhiriev/lexiflow/internal/logger"
	"github.com/MKhiriev/lexiflow/internal/utils"
	"github.com/MKhiriev/lexiflow/models"
)

// defaultTokenLifetime is assumed when neither expiresAt nor an exp claim
// is present.
const defaultTokenLifetime = time.Hour

const (
	pathLogin   = "/auth/login"
	pathRefresh = "/auth/refresh"
	pathContent = "/content"
	pathItem    = "/content/{id}"
	pathSync    = "/sync"
)

type httpContentClient struct {
	client *utils.HTTPClient
	tokens TokenSource
	logger *logger.Logger
	now    func() time.Time
}

// NewHTTPContentClient constructs the resty implementation of
// [ContentClient]. tokens is consulted on every authenticated request.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed.
func NewHTTPContentClient(cfg config.ClientAdapter, tokens TokenSource, log *logger.Logger) (ContentClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(utils.HTTPClientOptions{
		BaseURL:   baseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
	})

	return &httpContentClient{
		client: client,
		tokens: tokens,
		logger: log,
		now:    time.Now,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpContentClient) request(ctx context.Context) *resty.Request {
	return h.client.R().SetContext(ctx)
}

func (h *httpContentClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.tokens.CurrentToken(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// do executes req and maps both transport and status failures.
func (h *httpContentClient) do(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Debug().Err(err).Str("func", "httpContentClient."+op).Msg("request did not reach the server")
		return nil, transportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("func", "httpContentClient."+op).
			Int("status", resp.StatusCode()).
			Msg("server rejected request")
		return resp, err
	}
	return resp, nil
}

func decode(resp *resty.Response, op string, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedResponse, op, err)
	}
	return nil
}

// resolveExpiry picks the token expiry: explicit field, then exp claim,
// then the default lifetime.
func (h *httpContentClient) resolveExpiry(token string, explicit *time.Time) time.Time {
	if explicit != nil && !explicit.IsZero() {
		return *explicit
	}
	if exp, err := utils.TokenExpiry(token); err == nil {
		return exp
	}
	h.logger.Warn().Str("func", "httpContentClient.resolveExpiry").Msg("token expiry unknown, assuming default lifetime")
	return h.now().Add(defaultTokenLifetime)
}

// Login implements [ContentClient]. POST /auth/login.
func (h *httpContentClient) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: creds.Username, Password: creds.Password})

	resp, err := h.do(req, resty.MethodPost, pathLogin, "login")
	if err != nil {
		return models.LoginResult{}, err
	}

	var body models.LoginResponse
	if err = decode(resp, "login", &body); err != nil {
		return models.LoginResult{}, err
	}
	if !body.Success {
		msg := "server reported failure"
		if body.Message != nil {
			msg = *body.Message
		}
		return models.LoginResult{}, fmt.Errorf("%w: %s", ErrLoginRejected, msg)
	}
	if body.Token == "" {
		return models.LoginResult{}, fmt.Errorf("%w: login: empty token", ErrMalformedResponse)
	}

	result := models.LoginResult{
		Token: models.SessionToken{
			AccessToken: body.Token,
			ExpiresAt:   h.resolveExpiry(body.Token, body.ExpiresAt),
		},
	}
	if body.User != nil {
		result.User = *body.User
	}
	return result, nil
}

// Refresh implements [ContentClient]. POST /auth/refresh.
func (h *httpContentClient) Refresh(ctx context.Context, token string) (models.SessionToken, error) {
	req := h.request(ctx).SetAuthToken(token)

	resp, err := h.do(req, resty.MethodPost, pathRefresh, "refresh")
	if err != nil {
		return models.SessionToken{}, err
	}

	var body models.RefreshResponse
	if err = decode(resp, "refresh", &body); err != nil {
		return models.SessionToken{}, err
	}
	if body.Token == "" {
		return models.SessionToken{}, fmt.Errorf("%w: refresh: empty token", ErrMalformedResponse)
	}

	return models.SessionToken{
		AccessToken: body.Token,
		ExpiresAt:   h.resolveExpiry(body.Token, body.ExpiresAt),
	}, nil
}

// ListContent implements [ContentClient]. GET /content.
func (h *httpContentClient) ListContent(ctx context.Context, q models.ContentQuery) (models.ContentPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	req := h.authedRequest(ctx).SetQueryParam("page", strconv.Itoa(q.Page))
	if q.PageSize > 0 {
		req.SetQueryParam("pageSize", strconv.Itoa(q.PageSize))
	}
	if !q.UpdatedSince.IsZero() {
		req.SetQueryParam("updatedSince", q.UpdatedSince.UTC().Format(time.RFC3339Nano))
	}

	resp, err := h.do(req, resty.MethodGet, pathContent, "listContent")
	if err != nil {
		return models.ContentPage{}, err
	}

	var body models.ContentListResponse
	if err = decode(resp, "listContent", &body); err != nil {
		return models.ContentPage{}, err
	}

	page := models.ContentPage{Items: body.Data}
	if body.Pagination != nil {
		page.Pagination = *body.Pagination
	} else {
		// no pagination block: the response is the whole result
		page.Pagination = models.Pagination{
			Page:       q.Page,
			PageSize:   q.PageSize,
			TotalCount: len(body.Data),
			TotalPages: q.Page,
		}
	}
	return page, nil
}

func (h *httpContentClient) single(req *resty.Request, method, path, op string) (models.ContentRecord, error) {
	resp, err := h.do(req, method, path, op)
	if err != nil {
		return models.ContentRecord{}, err
	}

	var body models.ContentResponse
	if err = decode(resp, op, &body); err != nil {
		return models.ContentRecord{}, err
	}
	if body.Data == nil {
		return models.ContentRecord{}, fmt.Errorf("%w: %s: missing data", ErrMalformedResponse, op)
	}
	return *body.Data, nil
}

// GetContent implements [ContentClient]. GET /content/{id}.
func (h *httpContentClient) GetContent(ctx context.Context, id int64) (models.ContentRecord, error) {
	req := h.authedRequest(ctx).SetPathParam("id", strconv.FormatInt(id, 10))
	return h.single(req, resty.MethodGet, pathItem, "getContent")
}

// CreateContent implements [ContentClient]. POST /content.
func (h *httpContentClient) CreateContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NewContentWriteRequest(rec))
	if rec.Version != "" {
		req.SetHeader("Idempotency-Key", rec.Version)
	}
	return h.single(req, resty.MethodPost, pathContent, "createContent")
}

// UpdateContent implements [ContentClient]. PUT /content/{id}.
func (h *httpContentClient) UpdateContent(ctx context.Context, rec models.ContentRecord) (models.ContentRecord, error) {
	req := h.authedRequest(ctx).
		SetPathParam("id", strconv.FormatInt(rec.ID, 10)).
		SetHeader("Content-Type", "application/json").
		SetBody(models.NewContentWriteRequest(rec))
	return h.single(req, resty.MethodPut, pathItem, "updateContent")
}

// DeleteContent implements [ContentClient]. DELETE /content/{id}.
func (h *httpContentClient) DeleteContent(ctx context.Context, id int64) error {
	req := h.authedRequest(ctx).SetPathParam("id", strconv.FormatInt(id, 10))
	_, err := h.do(req, resty.MethodDelete, pathItem, "deleteContent")
	return err
}

// BulkSync implements [ContentClient]. POST /sync.
func (h *httpContentClient) BulkSync(ctx context.Context, syncReq models.BulkSyncRequest) (models.BulkSyncResponse, error) {
	if syncReq.ModifiedItems == nil {
		syncReq.ModifiedItems = []models.ContentRecord{}
	}
	if syncReq.DeletedItemIDs == nil {
		syncReq.DeletedItemIDs = []int64{}
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(syncReq)

	resp, err := h.do(req, resty.MethodPost, pathSync, "bulkSync")
	if err != nil {
		return models.BulkSyncResponse{}, err
	}

	var body models.BulkSyncResponse
	if err = decode(resp, "bulkSync", &body); err != nil {
		return models.BulkSyncResponse{}, err
	}
	return body, nil
}
