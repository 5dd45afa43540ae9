package geo

// Point is a position on the projected plane. Ward geometry keeps GeoJSON
// coordinate order, so X is longitude and Y is latitude.
type Point struct {
	X float64
	Y float64
}

// LatLng is a position in the (latitude, longitude) order callers usually
// carry coordinates in.
type LatLng struct {
	Lat float64
	Lng float64
}

// XY maps the pair onto the plane, swapping into (x=lng, y=lat) order.
func (ll LatLng) XY() Point {
	return Point{X: ll.Lng, Y: ll.Lat}
}

// Rect is an axis-aligned bounding box on the plane.
type Rect struct {
	Min Point
	Max Point
}

// ContainsPoint reports whether p lies inside or on the edge of r.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest Rect covering both r and other.
func (r Rect) Union(other Rect) Rect {
	out := r
	if other.Min.X < out.Min.X {
		out.Min.X = other.Min.X
	}
	if other.Min.Y < out.Min.Y {
		out.Min.Y = other.Min.Y
	}
	if other.Max.X > out.Max.X {
		out.Max.X = other.Max.X
	}
	if other.Max.Y > out.Max.Y {
		out.Max.Y = other.Max.Y
	}
	return out
}

// Ring is a loop of vertices. A repeated closing vertex is accepted but not
// required; the degenerate closing edge never flips the crossing parity.
type Ring []Point

// Contains reports whether p is inside the ring, using even-odd ray casting.
func (rg Ring) Contains(p Point) bool {
	if len(rg) < 3 {
		return false
	}

	inside := false
	j := len(rg) - 1
	for i := 0; i < len(rg); i++ {
		if ((rg[i].Y > p.Y) != (rg[j].Y > p.Y)) &&
			p.X < (rg[j].X-rg[i].X)*(p.Y-rg[i].Y)/(rg[j].Y-rg[i].Y)+rg[i].X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Bounds returns the bounding box of the ring. An empty ring yields the
// zero Rect.
func (rg Ring) Bounds() Rect {
	if len(rg) == 0 {
		return Rect{}
	}

	b := Rect{Min: rg[0], Max: rg[0]}
	for _, p := range rg[1:] {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
	}
	return b
}

// Polygon is an exterior ring with zero or more interior holes, mirroring
// the GeoJSON polygon layout (first ring outer, remaining rings holes).
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// Contains reports whether p is inside the exterior and outside every hole.
func (pg Polygon) Contains(p Point) bool {
	if !pg.Exterior.Contains(p) {
		return false
	}
	for _, h := range pg.Holes {
		if h.Contains(p) {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of the exterior ring.
func (pg Polygon) Bounds() Rect {
	return pg.Exterior.Bounds()
}

// MultiPolygon is a collection of disjoint polygon parts.
type MultiPolygon []Polygon

// Contains reports whether any part contains p.
func (mp MultiPolygon) Contains(p Point) bool {
	for _, pg := range mp {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// Bounds returns the union of the part bounding boxes. An empty
// MultiPolygon yields the zero Rect.
func (mp MultiPolygon) Bounds() Rect {
	if len(mp) == 0 {
		return Rect{}
	}

	b := mp[0].Bounds()
	for _, pg := range mp[1:] {
		b = b.Union(pg.Bounds())
	}
	return b
}
