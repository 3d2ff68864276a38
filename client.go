// Package client is the remote-resource access layer for the Astra
// short-video app: typed operations against the backend's document, session,
// and file services, a bookmark relation manager with per-pair write
// serialization, and a reusable async fetcher for screens.
package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/astra-video/astra-client/internal/pairqueue"
)

// Client is the handle every resource operation hangs off. It owns the HTTP
// transport (project and session headers are injected automatically), the
// active session token, and the save executor. Construct one per application
// and pass it by reference; there is no package-level singleton.
type Client struct {
	cfg  Config
	http *http.Client
	exec executor

	// session token for the signed-in account, empty when logged out
	session atomic.Value // string

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given configuration.
// Additional options can be provided via functional arguments.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
	c.session.Store("")

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	// Wrap the transport so every request carries the project header and,
	// once signed in, the session token.
	c.wrapTransportWithAuth()

	return c, nil
}

// wrapTransportWithAuth installs the header-injecting transport on top of
// whatever transport the options left in place.
func (c *Client) wrapTransportWithAuth() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &authTransport{
		base:      baseTransport,
		projectID: c.cfg.ProjectID,
		token:     c.sessionToken,
	}
}

// authTransport adds the project header to every request and the session
// token header when a session is active.
type authTransport struct {
	base      http.RoundTripper
	projectID string
	token     func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("X-Project-Id", t.projectID)
	if tok := t.token(); tok != "" {
		cloned.Header.Set("X-Session-Token", tok)
	}
	return t.base.RoundTrip(cloned)
}

// sessionToken returns the current session secret, or "" when logged out.
func (c *Client) sessionToken() string {
	tok, _ := c.session.Load().(string)
	return tok
}

func (c *Client) setSessionToken(tok string) {
	c.session.Store(tok)
}

// Close stops the save executor. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// executor abstracts the internal per-pair job runner used by the bookmark
// manager.
type executor interface {
	Submit(ctx context.Context, key string, job pairqueue.Job) error
	Stop()
}

// newDefaultExecutor constructs the pairqueue executor with defaults for the
// save path. MaxAttempts stays at 1: retries in this layer are always a
// manual user action, and a retried save would repeat a check-then-act
// sequence whose check already ran.
func newDefaultExecutor() *pairqueue.Executor {
	return pairqueue.NewExecutor(pairqueue.Config{
		Shards:      4,
		QueueSize:   256,
		MaxAttempts: 1,
	})
}
