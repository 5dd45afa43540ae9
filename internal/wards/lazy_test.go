package wards

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gati.bengalurutransit.org/internal/geo"
)

func TestLazy_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazy(func() (*Index, error) {
		calls.Add(1)
		return NewIndex([]Ward{
			squareWard(94, "Gandhinagar", 77.50, 12.90, 77.60, 13.00),
		}), nil
	})

	const goroutines = 20
	var wg sync.WaitGroup
	refs := make([]Ref, goroutines)

	wg.Add(goroutines)
	for i := range goroutines {
		go func(i int) {
			defer wg.Done()
			ref, err := lazy.Locate(geo.LatLng{Lat: 12.95, Lng: 77.55})
			assert.NoError(t, err)
			refs[i] = ref
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "loader should run exactly once")
	for _, ref := range refs {
		assert.Equal(t, Ref{ID: 94, Name: "Gandhinagar"}, ref)
	}
}

func TestLazy_LoadErrorSticks(t *testing.T) {
	var calls atomic.Int32
	loadErr := errors.New("dataset unreadable")
	lazy := NewLazy(func() (*Index, error) {
		calls.Add(1)
		return nil, loadErr
	})

	for range 3 {
		_, err := lazy.Get()
		require.ErrorIs(t, err, loadErr)

		ref, err := lazy.Locate(geo.LatLng{Lat: 12.95, Lng: 77.55})
		require.ErrorIs(t, err, loadErr)
		assert.Equal(t, Ref{}, ref)
	}

	assert.Equal(t, int32(1), calls.Load(), "failed loads are not retried")
}
