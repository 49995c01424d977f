// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"time"
)

// ParseFlags parses the client flags from args (program name excluded).
//
// Flags:
//
//	-a server base URL (e.g. https://api.lexiflow.app)
//	-d local database DSN
//	-strategy local store strategy: direct | repository
//	-credentials encrypted credential file path
//	-device-id device identifier sent with bulk sync
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit outbound requests per second
//	-sync-interval background sync interval
//	-stale-after watermark age that triggers a sync on read
//	-page-size pull page size
//	-push-mode item | bulk
//	-log log file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("lexiflow-client", flag.ContinueOnError)

	var (
		serverAddress   string
		databaseDSN     string
		strategy        string
		credentialsPath string
		deviceID        string
		jsonConfigPath  string
		requestTimeout  time.Duration
		rateLimit       float64
		syncInterval    time.Duration
		staleAfter      time.Duration
		pageSize        int
		pushMode        string
		logPath         string
	)

	fs.StringVar(&serverAddress, "a", "", "Content API base URL")
	fs.StringVar(&databaseDSN, "d", "", "Local database DSN")
	fs.StringVar(&strategy, "strategy", "", "Local store strategy (direct|repository)")
	fs.StringVar(&credentialsPath, "credentials", "", "Encrypted credential file path")
	fs.StringVar(&deviceID, "device-id", "", "Device identifier")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Float64Var(&rateLimit, "rate-limit", 0, "Outbound requests per second (0 = unlimited)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	fs.DurationVar(&staleAfter, "stale-after", 0, "Watermark age that triggers a sync on read")
	fs.IntVar(&pageSize, "page-size", 0, "Pull page size")
	fs.StringVar(&pushMode, "push-mode", "", "Push mode (item|bulk)")
	fs.StringVar(&logPath, "log", "", "Log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			DeviceID: deviceID,
		},
		Storage: Storage{
			DB: DB{
				DSN:      databaseDSN,
				Strategy: strategy,
			},
			CredentialsPath: credentialsPath,
		},
		Adapter: Adapter{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
			RateLimit:      rateLimit,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			StaleAfter:   staleAfter,
			PageSize:     pageSize,
			PushMode:     pushMode,
		},
		Log:          Log{Path: logPath},
		JSONFilePath: jsonConfigPath,
	}, nil
}
