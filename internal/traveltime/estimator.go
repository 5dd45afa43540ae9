// Package traveltime turns a bus route's stop geography into an end-to-end
// travel time estimate: stops reduce to an ordered ward sequence, and known
// ward-to-ward measurements along that sequence sum into a total.
package traveltime

import (
	"gati.bengalurutransit.org/internal/routes"
	"gati.bengalurutransit.org/internal/wards"
)

// PairSource answers directed ward-to-ward mean transit lookups. The second
// return is false when the pair was never measured.
type PairSource interface {
	MeanTransit(src, dst int) (float64, bool)
}

// Estimate is the result of aggregating one ward sequence. TotalSeconds sums
// only the measured pairs; MissingData reports whether any pair along the
// sequence had no measurement, so a partial total is never mistaken for a
// complete one.
type Estimate struct {
	TotalSeconds float64
	MissingData  bool
}

// Estimator binds the ward index and a measurement source into the
// reduce/aggregate pipeline. It is read-only after construction and safe for
// concurrent use.
type Estimator struct {
	wards *wards.Index
	pairs PairSource
}

func NewEstimator(index *wards.Index, pairs PairSource) *Estimator {
	return &Estimator{wards: index, pairs: pairs}
}

// Reduce maps a route to its ordered ward sequence. A route whose stop
// geometry is missing or unparsable reduces to an empty sequence; that is
// the "no geometry available" signal, not a fault.
func (e *Estimator) Reduce(route *routes.Route) []wards.Ref {
	stops, err := route.StopPositions()
	if err != nil {
		return []wards.Ref{}
	}
	return e.ReduceStops(stops)
}

// ReduceStops resolves each stop to a ward in order, then deduplicates so
// every ward keeps only its first occurrence. Stops outside every ward all
// resolve to the zero Ref and collapse to a single entry. The dedup key is
// the ward ID, tracked as a first-seen set in one pass.
func (e *Estimator) ReduceStops(stops []routes.Stop) []wards.Ref {
	seen := make(map[int]struct{}, len(stops))
	sequence := make([]wards.Ref, 0, len(stops))
	for _, stop := range stops {
		ref := e.wards.Locate(stop.Position)
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		sequence = append(sequence, ref)
	}
	return sequence
}

// Aggregate walks consecutive pairs of the ward sequence, summing measured
// transit durations. An unmeasured pair contributes zero and marks the
// estimate as missing data; the partial total is still returned. Sequences
// with fewer than two wards have no pairs and aggregate to a zero Estimate.
func (e *Estimator) Aggregate(sequence []wards.Ref) Estimate {
	var est Estimate
	for i := 0; i+1 < len(sequence); i++ {
		mean, ok := e.pairs.MeanTransit(sequence[i].ID, sequence[i+1].ID)
		if !ok {
			est.MissingData = true
			continue
		}
		est.TotalSeconds += mean
	}
	return est
}

// ForRoute composes Reduce and Aggregate for one route, returning the
// estimate together with the ward sequence it was computed over.
func (e *Estimator) ForRoute(route *routes.Route) (Estimate, []wards.Ref) {
	sequence := e.Reduce(route)
	return e.Aggregate(sequence), sequence
}
