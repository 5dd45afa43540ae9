package movement

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadTravelTimes reads a travel time dataset from a JSON file on disk.
func LoadTravelTimes(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read travel time dataset %s: %w", path, err)
	}
	matrix, err := ParseTravelTimes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse travel time dataset %s: %w", path, err)
	}
	return matrix, nil
}

// ParseTravelTimes parses a travel time dataset: a JSON object mapping
// "srcWardId-dstWardId" keys to lists of per-day samples. A malformed key or
// document is a hard error; a corrupt reference dataset is not recoverable.
func ParseTravelTimes(data []byte) (*Matrix, error) {
	var raw map[string][]Sample
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid travel time document: %w", err)
	}

	samples := make(map[PairKey][]Sample, len(raw))
	for key, list := range raw {
		pair, err := parsePairKey(key)
		if err != nil {
			return nil, err
		}
		samples[pair] = list
	}
	return NewMatrix(samples), nil
}

func parsePairKey(key string) (PairKey, error) {
	srcText, dstText, found := strings.Cut(key, "-")
	if !found {
		return PairKey{}, fmt.Errorf("measurement key %q is not in src-dst form", key)
	}
	src, err := strconv.Atoi(srcText)
	if err != nil {
		return PairKey{}, fmt.Errorf("measurement key %q has a bad source ward: %w", key, err)
	}
	dst, err := strconv.Atoi(dstText)
	if err != nil {
		return PairKey{}, fmt.Errorf("measurement key %q has a bad destination ward: %w", key, err)
	}
	return PairKey{Src: src, Dst: dst}, nil
}
