package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Factory creates a Source from a location (directory, base URL or bucket).
type Factory func(ctx context.Context, location string) (Source, error)

// Registry manages source factories by kind.
type Registry interface {
	// Register adds a new source factory
	Register(kind string, factory Factory) error
	// Create instantiates a source of the given kind for location
	Create(ctx context.Context, kind, location string) (Source, error)
	// ListKinds returns the registered kinds, sorted
	ListKinds() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry seeded with factories.
func NewRegistry(factories map[string]Factory) Registry {
	r := &registry{factories: make(map[string]Factory, len(factories))}
	for kind, f := range factories {
		r.factories[kind] = f
	}
	return r
}

// DefaultRegistry knows the dir, http, s3 and azblob kinds. The s3 location is
// "<bucket>/<prefix>" and the azblob location "<container>/<prefix>"; the
// remaining settings come from s3cfg and azcfg.
func DefaultRegistry(s3cfg S3Config, azcfg AzureConfig, timeout time.Duration) Registry {
	return NewRegistry(map[string]Factory{
		"dir": func(_ context.Context, location string) (Source, error) {
			return NewDir(location)
		},
		"http": func(_ context.Context, location string) (Source, error) {
			return NewHTTP(location, &http.Client{Timeout: timeout})
		},
		"s3": func(ctx context.Context, location string) (Source, error) {
			cfg := s3cfg
			if location != "" {
				cfg.Bucket, cfg.Prefix = splitBucket(location)
			}
			return NewS3(ctx, cfg)
		},
		"azblob": func(_ context.Context, location string) (Source, error) {
			cfg := azcfg
			if location != "" {
				cfg.Container, cfg.Prefix = splitBucket(location)
			}
			return NewAzureBlob(cfg)
		},
	})
}

func (r *registry) Register(kind string, factory Factory) error {
	if kind == "" {
		return fmt.Errorf("source kind cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("source kind %q is already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, kind, location string) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source kind %q is not registered", kind)
	}

	return factory(ctx, location)
}

func (r *registry) ListKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func splitBucket(location string) (string, string) {
	for i, ch := range location {
		if ch == '/' {
			return location[:i], location[i+1:]
		}
	}
	return location, ""
}
