package traveltime

import (
	"encoding/json"
	"fmt"
	"os"

	"gati.bengalurutransit.org/internal/routes"
	"gati.bengalurutransit.org/internal/wards"
)

// Endpoint is one side of a planned measurement pair: the ward number plus
// the measurement provider's Movement ID for the same area.
type Endpoint struct {
	WardID     int
	MovementID int
}

// PlannedPair is a directed ward pair whose transit time a deployment wants
// measured. The JSON form is a pair of [wardID, movementID] tuples, the
// layout of the ward-pairs artifact consumed by the measurement downloader.
type PlannedPair struct {
	Src Endpoint
	Dst Endpoint
}

func (p PlannedPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][2]int{
		{p.Src.WardID, p.Src.MovementID},
		{p.Dst.WardID, p.Dst.MovementID},
	})
}

func (p *PlannedPair) UnmarshalJSON(data []byte) error {
	var tuple [2][2]int
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("planned pair must be a pair of [wardID, movementID] tuples: %w", err)
	}
	p.Src = Endpoint{WardID: tuple[0][0], MovementID: tuple[0][1]}
	p.Dst = Endpoint{WardID: tuple[1][0], MovementID: tuple[1][1]}
	return nil
}

// PlanPairs collects every consecutive ward pair crossed by the given
// routes, in first-seen order. Each pair is followed by its reverse so both
// the up and down direction of a route get measured. Pairs touching the
// outside-coverage pseudo-ward are skipped, and duplicates across routes and
// directions are emitted once.
func (e *Estimator) PlanPairs(all []routes.Route) []PlannedPair {
	seen := make(map[wardPair]struct{})
	var planned []PlannedPair

	add := func(src, dst wards.Ref) {
		key := wardPair{src: src.ID, dst: dst.ID}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		planned = append(planned, PlannedPair{
			Src: e.endpoint(src),
			Dst: e.endpoint(dst),
		})
	}

	for i := range all {
		sequence := e.Reduce(&all[i])
		for j := 0; j+1 < len(sequence); j++ {
			src, dst := sequence[j], sequence[j+1]
			if !src.Found() || !dst.Found() {
				continue
			}
			add(src, dst)
			add(dst, src)
		}
	}
	return planned
}

type wardPair struct {
	src int
	dst int
}

func (e *Estimator) endpoint(ref wards.Ref) Endpoint {
	ep := Endpoint{WardID: ref.ID}
	if w, ok := e.wards.ByID(ref.ID); ok {
		ep.MovementID = w.MovementID
	}
	return ep
}

// WritePairsArtifact persists planned pairs as the ward-pairs JSON artifact.
func WritePairsArtifact(path string, pairs []PlannedPair) error {
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ward pairs: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ward pairs artifact %s: %w", path, err)
	}
	return nil
}

// ReadPairsArtifact loads a previously written ward-pairs artifact.
func ReadPairsArtifact(path string) ([]PlannedPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ward pairs artifact %s: %w", path, err)
	}
	var pairs []PlannedPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse ward pairs artifact %s: %w", path, err)
	}
	return pairs, nil
}
