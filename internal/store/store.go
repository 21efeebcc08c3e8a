// Package store persists the leaderboard blob. Every backend keeps one opaque
// value per key and overwrites it whole on each Put.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("store: key not found")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("store: unknown backend")
)

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendSQLite   = "sqlite"
)

// BlobStore is a single-value-per-key store
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// Prometheus metrics
var (
	storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mmba_store_ops_total",
		Help: "Blob store operations by backend, op and result",
	}, []string{"backend", "op", "result"})

	storeOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mmba_store_op_duration_seconds",
		Help:    "Duration of blob store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
)

// Observed wraps a BlobStore and records per-operation metrics.
type Observed struct {
	backend string
	next    BlobStore
}

// Observe wraps next so its calls are counted under backend.
func Observe(backend string, next BlobStore) *Observed {
	return &Observed{backend: backend, next: next}
}

func (o *Observed) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := o.next.Get(ctx, key)
	o.record("get", start, err)
	return v, err
}

func (o *Observed) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := o.next.Put(ctx, key, value)
	o.record("put", start, err)
	return err
}

func (o *Observed) Ping(ctx context.Context) error {
	start := time.Now()
	err := o.next.Ping(ctx)
	o.record("ping", start, err)
	return err
}

func (o *Observed) record(op string, start time.Time, err error) {
	storeOpDuration.WithLabelValues(o.backend, op).Observe(time.Since(start).Seconds())

	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	storeOps.WithLabelValues(o.backend, op, result).Inc()
}
