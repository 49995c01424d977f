// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout accepted from
// a JSON config file.
type StructuredJSONConfig struct {
	App struct {
		DeviceID        string `json:"device_id"`
		CredentialKey   string `json:"credential_key"`
		CredentialScope string `json:"credential_scope"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN      string `json:"dsn"`
			Strategy string `json:"strategy"`
		} `json:"db,omitempty"`
		CredentialsPath string `json:"credentials_path"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      float64  `json:"rate_limit"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		StaleAfter   Duration `json:"stale_after"`
		PageSize     int      `json:"page_size"`
		PushMode     string   `json:"push_mode"`
	} `json:"workers,omitempty"`

	Log struct {
		Path string `json:"path"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DeviceID:        jsonCfg.App.DeviceID,
			CredentialKey:   jsonCfg.App.CredentialKey,
			CredentialScope: jsonCfg.App.CredentialScope,
		},
		Storage: Storage{
			DB: DB{
				DSN:      jsonCfg.Storage.DB.DSN,
				Strategy: jsonCfg.Storage.DB.Strategy,
			},
			CredentialsPath: jsonCfg.Storage.CredentialsPath,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RateLimit:      jsonCfg.Adapter.RateLimit,
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			StaleAfter:   time.Duration(jsonCfg.Workers.StaleAfter),
			PageSize:     jsonCfg.Workers.PageSize,
			PushMode:     jsonCfg.Workers.PushMode,
		},
		Log: Log{Path: jsonCfg.Log.Path},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
