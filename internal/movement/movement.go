// Package movement holds ward-to-ward travel time measurements and answers
// directed pairwise lookups against them.
package movement

// Sample is one time-bucketed measurement for a ward pair, as published in
// Uber Movement aggregates.
type Sample struct {
	Day            int     `json:"day"`
	MeanTravelTime float64 `json:"mean_travel_time"`
}

// PairKey identifies a directed ward pair. Src to Dst is a different key
// than Dst to Src.
type PairKey struct {
	Src int
	Dst int
}

// Matrix is an immutable lookup table of mean transit durations keyed by
// directed ward pairs. Safe for concurrent readers.
type Matrix struct {
	means map[PairKey]float64
}

// NewMatrix averages the supplied per-day samples into one mean duration per
// pair. Pairs with no samples are dropped, so they look up as unavailable.
func NewMatrix(samples map[PairKey][]Sample) *Matrix {
	means := make(map[PairKey]float64, len(samples))
	for pair, list := range samples {
		if len(list) == 0 {
			continue
		}
		var total float64
		for _, s := range list {
			total += s.MeanTravelTime
		}
		means[pair] = total / float64(len(list))
	}
	return &Matrix{means: means}
}

// NewMatrixFromMeans builds a Matrix from already-averaged durations, the
// shape the measurement database hands back.
func NewMatrixFromMeans(means map[PairKey]float64) *Matrix {
	copied := make(map[PairKey]float64, len(means))
	for pair, mean := range means {
		copied[pair] = mean
	}
	return &Matrix{means: copied}
}

// MeanTransit returns the mean duration in seconds from src to dst. The
// second return is false when the pair was never measured.
func (m *Matrix) MeanTransit(src, dst int) (float64, bool) {
	mean, ok := m.means[PairKey{Src: src, Dst: dst}]
	return mean, ok
}

// Len returns the number of measured pairs.
func (m *Matrix) Len() int {
	return len(m.means)
}
