package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/astra-video/astra-client/internal/pairqueue"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:          endpoint,
		ProjectID:         "proj1",
		DatabaseID:        testDatabaseID,
		UserCollectionID:  testUserCol,
		VideoCollectionID: testVideoCol,
		SavesCollectionID: testSavesCol,
		StorageBucketID:   testBucketID,
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := testConfig("https://example.com/v1")
	cfg.ProjectID = ""
	if _, err := New(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

type stubExecutor struct {
	stops int32
}

func (s *stubExecutor) Submit(ctx context.Context, key string, job pairqueue.Job) error {
	return job.Run(ctx)
}

func (s *stubExecutor) Stop() { atomic.AddInt32(&s.stops, 1) }

func TestClose_IsIdempotent(t *testing.T) {
	t.Parallel()
	c, err := New(testConfig("https://example.com/v1"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	stub := &stubExecutor{}
	c.exec = stub

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if n := atomic.LoadInt32(&stub.stops); n != 1 {
		t.Fatalf("executor stopped %d times, want 1", n)
	}
}

func TestAuthTransport_InjectsHeaders(t *testing.T) {
	t.Parallel()
	var gotProject, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotProject = r.Header.Get("X-Project-Id")
		gotToken = r.Header.Get("X-Session-Token")
	}))
	t.Cleanup(srv.Close)

	c, err := New(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ping", nil)
	resp, err := c.http.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if gotProject != "proj1" {
		t.Fatalf("X-Project-Id = %q", gotProject)
	}
	if gotToken != "" {
		t.Fatalf("logged-out request must carry no session token, got %q", gotToken)
	}

	c.setSessionToken("tok-abc")
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/ping", nil)
	resp, err = c.http.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	resp.Body.Close()
	if gotToken != "tok-abc" {
		t.Fatalf("X-Session-Token = %q, want tok-abc", gotToken)
	}
}

func TestWithHTTPTimeout(t *testing.T) {
	t.Parallel()
	c, err := New(testConfig("https://example.com/v1"), WithHTTPTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if c.http.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}

	if _, err := New(testConfig("https://example.com/v1"), WithHTTPTimeout(0)); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Timeout: time.Second}
	c, err := New(testConfig("https://example.com/v1"), WithHTTPClient(hc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if c.http != hc {
		t.Fatal("client must use the supplied http.Client")
	}
	if _, ok := c.http.Transport.(*authTransport); !ok {
		t.Fatalf("auth transport must wrap the supplied client, got %T", c.http.Transport)
	}

	if _, err := New(testConfig("https://example.com/v1"), WithHTTPClient(nil)); err == nil {
		t.Fatal("expected error for nil http client")
	}
}

func TestWithDebugLogging(t *testing.T) {
	t.Parallel()
	c, err := New(testConfig("https://example.com/v1"), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	at, ok := c.http.Transport.(*authTransport)
	if !ok {
		t.Fatalf("outermost transport must inject auth headers, got %T", c.http.Transport)
	}
	if _, ok := at.base.(*debugTransport); !ok {
		t.Fatalf("debug transport must sit under the auth wrapper, got %T", at.base)
	}
}
