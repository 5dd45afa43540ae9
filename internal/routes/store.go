package routes

import "strings"

// Store holds a loaded route dataset with lookup by route number.
type Store struct {
	routes   []Route
	byNumber map[string]int
}

// NewStore builds a Store from routes in dataset order. When two routes
// share a number the first one wins, matching how ward lookups resolve
// duplicates elsewhere.
func NewStore(routes []Route) *Store {
	s := &Store{
		routes:   routes,
		byNumber: make(map[string]int, len(routes)),
	}
	for i := range routes {
		key := normalizeNumber(routes[i].Number)
		if key == "" {
			continue
		}
		if _, ok := s.byNumber[key]; !ok {
			s.byNumber[key] = i
		}
	}
	return s
}

// ByNumber looks up a route by its number. Matching is case-insensitive
// and ignores surrounding whitespace, so "335-e" finds "335-E".
func (s *Store) ByNumber(number string) (*Route, bool) {
	i, ok := s.byNumber[normalizeNumber(number)]
	if !ok {
		return nil, false
	}
	return &s.routes[i], true
}

// All returns every route in dataset order.
func (s *Store) All() []Route {
	return s.routes
}

// Len returns the number of loaded routes.
func (s *Store) Len() int {
	return len(s.routes)
}

func normalizeNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
