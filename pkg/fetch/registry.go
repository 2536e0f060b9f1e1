package fetch

import (
	"fmt"
	"sync"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// Registry maps a collection type to its registered Fetcher, mirroring
// original_source/app/repositories/typed_records.py's TYPED_REPO_MAP
// factory pattern for the fetch side of the pipeline.
type Registry struct {
	mu       sync.RWMutex
	fetchers map[models.CollectionType]Fetcher
}

func NewRegistry() *Registry {
	return &Registry{fetchers: make(map[models.CollectionType]Fetcher)}
}

func (r *Registry) Register(f Fetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[f.CollectionType()] = f
}

func (r *Registry) Get(collectionType models.CollectionType) (Fetcher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fetchers[collectionType]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for collection type %q", collectionType)
	}
	return f, nil
}
