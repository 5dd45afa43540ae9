package wards

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	geojson "github.com/paulmach/go.geojson"

	"gati.bengalurutransit.org/internal/geo"
)

// Property names in the BBMP ward boundary dataset.
const (
	wardNumberProperty = "WARD_NO"
	wardNameProperty   = "WARD_NAME"
	movementIDProperty = "MOVEMENT_ID"
)

// LoadIndex reads a ward boundary GeoJSON file and builds the containment
// index. Any malformed feature fails the whole load; the service cannot
// estimate over a partial ward map.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ward dataset %s: %w", path, err)
	}

	idx, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ward dataset %s: %w", path, err)
	}
	return idx, nil
}

// ParseIndex builds the containment index from ward boundary GeoJSON,
// keeping the dataset's feature order for containment tie-breaks.
func ParseIndex(data []byte) (*Index, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("invalid feature collection: %w", err)
	}

	loaded := make([]Ward, 0, len(fc.Features))
	for i, f := range fc.Features {
		w, err := wardFromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		loaded = append(loaded, w)
	}

	return NewIndex(loaded), nil
}

func wardFromFeature(f *geojson.Feature) (Ward, error) {
	id, err := f.PropertyInt(wardNumberProperty)
	if err != nil {
		return Ward{}, fmt.Errorf("missing %s property: %w", wardNumberProperty, err)
	}

	name, err := f.PropertyString(wardNameProperty)
	if err != nil {
		return Ward{}, fmt.Errorf("missing %s property: %w", wardNameProperty, err)
	}

	boundary, err := boundaryFromGeometry(f.Geometry)
	if err != nil {
		return Ward{}, fmt.Errorf("ward %d: %w", id, err)
	}

	return Ward{ID: id, Name: name, MovementID: movementIDFromProperties(f), Boundary: boundary}, nil
}

// movementIDFromProperties reads the optional provider zone mapping. Uber
// boundary exports carry MOVEMENT_ID as a JSON string while merged BBMP
// datasets use a number; both forms are accepted. Wards without one still
// answer containment queries, they just have no measurements.
func movementIDFromProperties(f *geojson.Feature) int {
	if id, err := f.PropertyInt(movementIDProperty); err == nil {
		return id
	}
	if s, err := f.PropertyString(movementIDProperty); err == nil {
		if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return id
		}
	}
	return 0
}

func boundaryFromGeometry(g *geojson.Geometry) (geo.MultiPolygon, error) {
	switch {
	case g == nil:
		return nil, errors.New("feature has no geometry")
	case g.IsPolygon():
		pg, err := polygonFromRings(g.Polygon)
		if err != nil {
			return nil, err
		}
		return geo.MultiPolygon{pg}, nil
	case g.IsMultiPolygon():
		mp := make(geo.MultiPolygon, 0, len(g.MultiPolygon))
		for _, rings := range g.MultiPolygon {
			pg, err := polygonFromRings(rings)
			if err != nil {
				return nil, err
			}
			mp = append(mp, pg)
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func polygonFromRings(rings [][][]float64) (geo.Polygon, error) {
	if len(rings) == 0 {
		return geo.Polygon{}, errors.New("polygon has no rings")
	}

	exterior, err := ringFromPositions(rings[0])
	if err != nil {
		return geo.Polygon{}, err
	}

	pg := geo.Polygon{Exterior: exterior}
	for _, hole := range rings[1:] {
		r, err := ringFromPositions(hole)
		if err != nil {
			return geo.Polygon{}, err
		}
		pg.Holes = append(pg.Holes, r)
	}
	return pg, nil
}

func ringFromPositions(positions [][]float64) (geo.Ring, error) {
	if len(positions) < 3 {
		return nil, fmt.Errorf("ring has %d positions, need at least 3", len(positions))
	}

	ring := make(geo.Ring, 0, len(positions))
	for _, pos := range positions {
		if len(pos) < 2 {
			return nil, fmt.Errorf("position has %d coordinates, need at least 2", len(pos))
		}
		// GeoJSON positions are (lng, lat), already the plane's (x, y).
		ring = append(ring, geo.Point{X: pos[0], Y: pos[1]})
	}
	return ring, nil
}
