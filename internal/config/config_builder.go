// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// Names of the layers a client config is assembled from.
const (
	sourceDefaults = "defaults"
	sourceFile     = "file"
	sourceEnv      = "env"
	sourceFlags    = "flags"
)

// configSource is one layer of client settings.
type configSource struct {
	name string
	cfg  *StructuredConfig
}

// configBuilder layers client settings: defaults, then the optional JSON
// file, then environment variables, then command-line flags.
// Non-zero fields of a later layer win.
type configBuilder struct {
	sources []configSource
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		sources: make([]configSource, 0, 4),
	}
}

func (b *configBuilder) add(name string, cfg *StructuredConfig) *configBuilder {
	b.sources = append(b.sources, configSource{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) fail(name string, err error) *configBuilder {
	b.err = errors.Join(b.err, fmt.Errorf("%s: %w", name, err))
	return b
}

// build merges the layers in order and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building client config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(config, src.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", src.name, err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add(sourceDefaults, defaults())
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return b.fail(sourceEnv, err)
	}
	return b.add(sourceEnv, envCfg)
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		return b.fail(sourceFlags, err)
	}
	return b.add(sourceFlags, flags)
}

// withJSON loads the file named by the last layer that sets JSONFilePath and
// places it directly above the defaults.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, src := range b.sources {
		if src.cfg.JSONFilePath != "" {
			jsonPath = src.cfg.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		return b.fail(sourceFile, err)
	}

	at := 0
	if len(b.sources) > 0 && b.sources[0].name == sourceDefaults {
		at = 1
	}
	b.sources = append(b.sources[:at], append([]configSource{{name: sourceFile, cfg: jsonCfg}}, b.sources[at:]...)...)
	return b
}
