package pairqueue

import "time"

// Config tunes an Executor. Zero values fall back to defaults applied in
// NewExecutor.
type Config struct {
	// Shards is the number of worker goroutines / queues.
	Shards int
	// QueueSize is the buffered capacity of each shard queue.
	QueueSize int
	// EnqueueTimeout bounds how long Submit waits for queue space before
	// reporting back-pressure.
	EnqueueTimeout time.Duration
	// MaxAttempts caps executions per job. 1 disables retries entirely;
	// the bookmark manager relies on that, retries there would re-run a
	// check-then-act sequence whose check already happened.
	MaxAttempts int
	// BaseBackoff is the initial retry interval when MaxAttempts > 1.
	BaseBackoff time.Duration
	// MaxInterval caps the exponential backoff interval.
	MaxInterval time.Duration
	// ErrorHandler, when set, receives terminal job errors. It must not
	// block; it runs on the shard worker goroutine.
	ErrorHandler func(error)
}
