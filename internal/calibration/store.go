package calibration

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Store caches loaded calibration artifacts by path. Artifacts are written
// atomically by the fitter, so a cached read always reflects one complete
// artifact; the TTL bounds how long a retrain takes to become visible.
type Store struct {
	cache *cache.Cache
}

// NewStore creates an artifact store with the given TTL
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{cache: cache.New(ttl, ttl*2)}
}

// Load returns the model at path, reading from disk at most once per TTL
func (s *Store) Load(path string) (Model, error) {
	if cached, found := s.cache.Get(path); found {
		if model, ok := cached.(Model); ok {
			return model, nil
		}
	}
	model, err := LoadModel(path)
	if err != nil {
		return Model{}, err
	}
	s.cache.Set(path, model, cache.DefaultExpiration)
	return model, nil
}

// Invalidate drops the cached copy so the next Load re-reads the artifact
func (s *Store) Invalidate(path string) {
	s.cache.Delete(path)
}
