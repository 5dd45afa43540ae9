package wards

import (
	"sync"

	"gati.bengalurutransit.org/internal/geo"
)

// Lazy defers index construction to first use and shares the result across
// goroutines. The API server builds its Index at startup instead, to fail
// fast on a bad dataset; Lazy is for embedding callers that want the load
// cost paid on first query.
type Lazy struct {
	load func() (*Index, error)
	once sync.Once
	idx  *Index
	err  error
}

// NewLazy wraps an index loader. load runs at most once, on the first Get,
// no matter how many goroutines arrive concurrently.
func NewLazy(load func() (*Index, error)) *Lazy {
	return &Lazy{load: load}
}

// Get returns the shared Index, building it on first call. A failed load is
// reported to every caller and never retried.
func (l *Lazy) Get() (*Index, error) {
	l.once.Do(func() {
		l.idx, l.err = l.load()
	})
	return l.idx, l.err
}

// Locate resolves loc through the lazily built index.
func (l *Lazy) Locate(loc geo.LatLng) (Ref, error) {
	idx, err := l.Get()
	if err != nil {
		return Ref{}, err
	}
	return idx.Locate(loc), nil
}
