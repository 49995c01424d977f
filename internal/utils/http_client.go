// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures [NewHTTPClient].
type HTTPClientOptions struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the number of requests per second allowed. Requests over
	// the limit fail immediately with resty.ErrRateLimitExceeded. Zero
	// disables throttling.
	RateLimit float64
}

// NewHTTPClient creates an independent resty client configured from opts.
//
//	client := utils.NewHTTPClient(utils.HTTPClientOptions{BaseURL: "https://api.lexiflow.app"})
//	resp, err := client.R().Get("/content")
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json")

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if opts.RateLimit > 0 {
		burst := int(math.Ceil(opts.RateLimit))
		client.SetRateLimiter(rate.NewLimiter(rate.Limit(opts.RateLimit), burst))
	}

	return &HTTPClient{Client: client}
}
