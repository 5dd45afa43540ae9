// Package wards resolves geographic positions to BBMP wards. The ward
// boundary dataset is a GeoJSON FeatureCollection; containment queries run
// against an in-memory index with an R-tree bounding-box prefilter.
package wards

import (
	"github.com/tidwall/rtree"

	"gati.bengalurutransit.org/internal/geo"
)

// Ref identifies the ward a position resolved to. The zero Ref is the
// "outside every ward" result; all uncovered positions share it.
type Ref struct {
	ID   int
	Name string
}

// Found reports whether the Ref names an actual ward.
func (r Ref) Found() bool {
	return r != Ref{}
}

// Ward is one administrative ward with its boundary geometry.
type Ward struct {
	// ID is the BBMP ward number.
	ID int
	// Name is the ward's display name.
	Name string
	// MovementID is the travel-time provider's zone identifier for this
	// ward. It is a separate numbering scheme from ID; zero means the
	// dataset carries no provider mapping.
	MovementID int
	// Boundary holds the ward polygons in (x=lng, y=lat) order.
	Boundary geo.MultiPolygon

	bounds geo.Rect
}

// Ref returns the ward's identifying Ref.
func (w *Ward) Ref() Ref {
	return Ref{ID: w.ID, Name: w.Name}
}

// Contains reports whether the plane point p falls inside the ward.
func (w *Ward) Contains(p geo.Point) bool {
	return w.bounds.ContainsPoint(p) && w.Boundary.Contains(p)
}

// Index answers point-to-ward containment queries. It is immutable after
// construction and safe for concurrent use.
type Index struct {
	wards []Ward
	byID  map[int]int
	tree  rtree.RTree
}

// NewIndex builds an Index over the wards in dataset order. When ward
// boundaries overlap, the earlier ward wins containment ties, so callers
// must pass wards in the order the dataset lists them.
func NewIndex(wards []Ward) *Index {
	idx := &Index{
		wards: wards,
		byID:  make(map[int]int, len(wards)),
	}
	for i := range idx.wards {
		w := &idx.wards[i]
		w.bounds = w.Boundary.Bounds()
		idx.tree.Insert(
			[2]float64{w.bounds.Min.X, w.bounds.Min.Y},
			[2]float64{w.bounds.Max.X, w.bounds.Max.Y},
			i)
		if _, seen := idx.byID[w.ID]; !seen {
			idx.byID[w.ID] = i
		}
	}
	return idx
}

// Locate resolves a (lat, lng) position to the ward containing it. Boundary
// geometry is stored in (x=lng, y=lat) order, so the axes are swapped here,
// once, on the way in. Positions outside every ward yield the zero Ref;
// Locate never fails.
func (idx *Index) Locate(loc geo.LatLng) Ref {
	p := loc.XY()

	// The tree prefilters by bounding box only. Candidates come back in
	// tree order, so track the smallest dataset position among real hits
	// to keep the earliest-ward tie policy.
	best := -1
	idx.tree.Search([2]float64{p.X, p.Y}, [2]float64{p.X, p.Y},
		func(min, max [2]float64, value interface{}) bool {
			i := value.(int)
			if best != -1 && i > best {
				return true
			}
			if idx.wards[i].Boundary.Contains(p) {
				best = i
			}
			return true
		})

	if best == -1 {
		return Ref{}
	}
	return idx.wards[best].Ref()
}

// ByID returns the ward with the given BBMP ward number.
func (idx *Index) ByID(id int) (*Ward, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return nil, false
	}
	return &idx.wards[i], true
}

// All returns the wards in dataset order. Callers must not mutate the
// returned slice.
func (idx *Index) All() []Ward {
	return idx.wards
}

// Len returns the number of indexed wards.
func (idx *Index) Len() int {
	return len(idx.wards)
}
