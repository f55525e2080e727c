package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultModel           = "gemini-3-flash-preview"
	defaultLocalDSN        = "cyber-aware.db"
	defaultRequestTimeout  = 30 * time.Second
	defaultRefreshInterval = time.Minute
)

type configBuilder struct {
	args    []string
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder(args []string) *configBuilder {
	return &configBuilder{
		args:    args,
		configs: make([]*StructuredConfig, 0, 5),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := parseFlags(b.args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withDotEnv() *configBuilder {
	path := b.firstNonEmpty(func(cfg *StructuredConfig) string { return cfg.DotEnvPath })
	if path == "" {
		return b
	}

	dotEnvCfg, err := parseDotEnv(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, dotEnvCfg)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	path := b.firstNonEmpty(func(cfg *StructuredConfig) string { return cfg.JSONFilePath })
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		Assistant: Assistant{Model: defaultModel},
		Storage:   Storage{DB: DB{DSN: defaultLocalDSN}},
		Adapter:   Adapter{RequestTimeout: defaultRequestTimeout},
		Workers:   Workers{RefreshInterval: defaultRefreshInterval},
	})
	return b
}

// firstNonEmpty returns the value selected from the highest-priority
// config collected so far.
func (b *configBuilder) firstNonEmpty(field func(*StructuredConfig) string) string {
	for _, cfg := range b.configs {
		if v := field(cfg); v != "" {
			return v
		}
	}
	return ""
}
