package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"time"
)

// URLValue holds an absolute http(s) URL. It implements the flag.Value
// interface.
type URLValue struct {
	URL *url.URL
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-supabase-url project URL
//	-supabase-anon-key publishable API key
//	-assistant-api-key model API key
//	-assistant-model model name
//	-d local database DSN
//	-remote-dsn backend Postgres DSN (provisioning only)
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-refresh-interval session refresh check interval (e.g., "1m")
//	-c/-config json file path with configs
//	-env-file .env file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("cyber-aware", flag.ContinueOnError)

	var supabaseURL URLValue
	var anonKey, apiKey, model string
	var localDSN, remoteDSN string
	var requestTimeout, refreshInterval time.Duration
	var jsonConfigPath, dotEnvPath string

	fs.Var(&supabaseURL, "supabase-url", "Supabase project URL")
	fs.StringVar(&anonKey, "supabase-anon-key", "", "Supabase publishable (anon) key")
	fs.StringVar(&apiKey, "assistant-api-key", "", "Generative model API key")
	fs.StringVar(&model, "assistant-model", "", "Generative model name")
	fs.StringVar(&localDSN, "d", "", "Local database DSN")
	fs.StringVar(&remoteDSN, "remote-dsn", "", "Backend Postgres DSN")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Session refresh interval (e.g., 1m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&dotEnvPath, "env-file", "", ".env file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Supabase: Supabase{
			URL:     supabaseURL.String(),
			AnonKey: anonKey,
		},
		Assistant: Assistant{
			APIKey: apiKey,
			Model:  model,
		},
		Storage: Storage{
			DB:     DB{DSN: localDSN},
			Remote: DB{DSN: remoteDSN},
		},
		Adapter:      Adapter{RequestTimeout: requestTimeout},
		Workers:      Workers{RefreshInterval: refreshInterval},
		JSONFilePath: jsonConfigPath,
		DotEnvPath:   dotEnvPath,
	}, nil
}

// String returns the URL without a trailing slash, or "" when unset.
func (u *URLValue) String() string {
	if u == nil || u.URL == nil {
		return ""
	}
	s := u.URL.String()
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Set parses s as an absolute http or https URL with a host.
func (u *URLValue) Set(s string) error {
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}
	if parsed.Host == "" {
		return errors.New("url must include a host")
	}

	u.URL = parsed
	return nil
}
