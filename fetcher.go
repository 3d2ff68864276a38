package client

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// FetchState is the lifecycle of a Fetcher: Idle until the first fetch,
// Loading while one is in flight, then Ready or Failed. Refetch re-enters
// Loading.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchReady
	FetchFailed
)

func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "Idle"
	case FetchLoading:
		return "Loading"
	case FetchReady:
		return "Ready"
	case FetchFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// fetchAlertMessage is the fixed user-facing message surfaced on any fetch
// failure; the underlying error goes to the log, not the user.
const fetchAlertMessage = "Something went wrong. Pull to refresh to try again."

// FetchFunc loads one remote collection. Typically a Resource Access
// Function bound to its runtime parameters, e.g.
//
//	NewFetcher(func(ctx context.Context) ([]client.VideoPost, error) {
//		return c.ListSaved(ctx, user.ID)
//	})
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Fetcher loads, caches, and refreshes one remote collection for a screen.
//
// Data is stale-while-revalidate: a refetch does not clear the previous
// result, and a failure keeps it visible too, so the view never blanks.
// Each fetch carries a sequence number; a response from a superseded
// refetch, or one arriving after Close, is discarded. Overlapping refetches
// are not deduplicated — callers disable their refresh control while one is
// in flight.
type Fetcher[T any] struct {
	fetch   FetchFunc[T]
	onAlert func(message string)

	mu     sync.Mutex
	state  FetchState
	data   []T
	err    error
	seq    uint64 // increments per fetch; stale responses compare unequal
	closed bool
}

// FetcherOption configures a Fetcher during construction.
type FetcherOption[T any] func(*Fetcher[T])

// WithAlert installs the screen's failure notification. The callback
// receives the fixed generic message, never the raw error.
func WithAlert[T any](fn func(message string)) FetcherOption[T] {
	return func(f *Fetcher[T]) { f.onAlert = fn }
}

// NewFetcher constructs a Fetcher in the Idle state with an empty data
// slice, so consumers never observe nil before the first fetch completes.
func NewFetcher[T any](fetch FetchFunc[T], opts ...FetcherOption[T]) *Fetcher[T] {
	f := &Fetcher[T]{
		fetch: fetch,
		state: FetchIdle,
		data:  []T{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Refetch invokes the fetch function and blocks until it completes,
// returning its error. Screens call it once on mount and again from
// pull-to-refresh, usually on their own goroutine, observing State and Data
// concurrently.
func (f *Fetcher[T]) Refetch(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.state = FetchLoading
	f.seq++
	mySeq := f.seq
	f.mu.Unlock()

	data, err := f.fetch(ctx)

	f.mu.Lock()
	// A later refetch or Close supersedes this response; drop it.
	if f.closed || f.seq != mySeq {
		f.mu.Unlock()
		return err
	}
	if err != nil {
		f.state = FetchFailed
		f.err = err
		f.mu.Unlock()
		f.alert(err)
		return err
	}
	if data == nil {
		data = []T{}
	}
	f.state = FetchReady
	f.data = data
	f.err = nil
	f.mu.Unlock()
	return nil
}

// Data returns the last successful result, or the empty default. Never nil.
func (f *Fetcher[T]) Data() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// State returns the current lifecycle state.
func (f *Fetcher[T]) State() FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Loading reports whether a fetch is in flight.
func (f *Fetcher[T]) Loading() bool { return f.State() == FetchLoading }

// Err returns the failure from the most recent fetch, nil once a later
// fetch succeeds.
func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Close is the unmount guard: any fetch still in flight has its response
// discarded instead of racing a torn-down consumer.
func (f *Fetcher[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *Fetcher[T]) alert(err error) {
	log.Warn().Err(err).Msg("resource fetch failed")
	if f.onAlert != nil {
		f.onAlert(fetchAlertMessage)
	}
}
