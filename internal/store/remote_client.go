package store

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/cyber-aware/internal/config"
	"github.com/MKhiriev/cyber-aware/internal/logger"
	postgrest "github.com/supabase-community/postgrest-go"
	supabase "github.com/supabase-community/supabase-go"
)

const remoteSchema = "public"

// RemoteDB runs PostgREST queries authorized as a given user.
//
// The backend evaluates row-level security against the bearer token, so
// every call names the access token it acts with. An empty token acts as
// the anonymous role. The client for the most recent token is cached.
//
// Every query is bounded by the request timeout and by the caller's context.
type RemoteDB struct {
	restURL string
	anonKey string
	timeout time.Duration

	transport http.RoundTripper

	mu     sync.Mutex
	token  string
	client *postgrest.Client

	logger *logger.Logger
}

// NewRemoteDB validates the project coordinates and returns a [RemoteDB].
// A zero adapterCfg.RequestTimeout leaves queries bounded by the caller's
// context only.
func NewRemoteDB(supabaseCfg config.ClientSupabase, adapterCfg config.ClientAdapter, logger *logger.Logger) (*RemoteDB, error) {
	url := strings.TrimRight(strings.TrimSpace(supabaseCfg.URL), "/")
	if url == "" || supabaseCfg.AnonKey == "" {
		return nil, fmt.Errorf("supabase url and anon key are required")
	}

	timeout := adapterCfg.RequestTimeout
	return &RemoteDB{
		restURL: url + supabase.REST_URL,
		anonKey: supabaseCfg.AnonKey,
		timeout: timeout,
		transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
		},
		logger: logger,
	}, nil
}

// Execute runs query against table authorized with accessToken. It returns
// as soon as ctx is done or the request timeout passes, even if the backend
// never answers; query must not be read by the caller after an error.
func (r *RemoteDB) Execute(ctx context.Context, accessToken, table string, query func(q *postgrest.QueryBuilder) error) error {
	client, err := r.clientFor(accessToken)
	if err != nil {
		return err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- query(client.From(table))
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%s request abandoned: %w", table, ctx.Err())
	case err = <-done:
		return err
	}
}

func (r *RemoteDB) clientFor(accessToken string) (*postgrest.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil && r.token == accessToken {
		return r.client, nil
	}

	bearer := accessToken
	if bearer == "" {
		bearer = r.anonKey
	}

	client := postgrest.NewClient(r.restURL, remoteSchema, map[string]string{
		"apikey":        r.anonKey,
		"Authorization": "Bearer " + bearer,
	})
	if client.ClientError != nil {
		r.logger.Err(client.ClientError).Str("func", "RemoteDB.clientFor").Msg("error creating postgrest client")
		return nil, fmt.Errorf("create postgrest client: %w", client.ClientError)
	}
	client.Transport.Parent = r.transport

	r.token, r.client = accessToken, client
	return client, nil
}
