package models

// Cache durations (in seconds) for different API data types. Ward and route
// datasets are immutable for the process lifetime, so those endpoints can
// cache aggressively; estimates stay on the short tier to keep the door open
// for measurement refreshes.
const (
	CacheDurationLong  = 300
	CacheDurationShort = 30
	CacheDurationNone  = 0
)

// Coordinate bounds accepted by location queries.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)
