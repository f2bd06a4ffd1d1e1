// Package journal keeps a short-lived local record of CLI exchanges.
package journal

import (
	"strings"
	"time"
)

// Entry summarizes one exchange.
type Entry struct {
	ID          string    `json:"id" yaml:"id"`
	Method      string    `json:"method" yaml:"method"`
	URL         string    `json:"url" yaml:"url"`
	StatusCode  int       `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	ContentType string    `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	At          time.Time `json:"at" yaml:"at"`
}

// Store records exchanges and lists the most recent ones.
type Store interface {
	Close() error
	Record(e Entry) error
	Recent(n int) ([]Entry, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore opens the bbolt journal at path. An empty path disables journaling.
func NewStore(path string, opts Options) (Store, error) {
	if strings.TrimSpace(path) == "" {
		return noopStore{}, nil
	}
	store, err := openBolt(path, normalizeOptions(opts))
	if err != nil {
		return nil, err
	}
	return store, nil
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                { return nil }
func (noopStore) Record(Entry) error          { return nil }
func (noopStore) Recent(int) ([]Entry, error) { return nil, nil }
