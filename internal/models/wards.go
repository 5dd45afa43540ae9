package models

// WardReference identifies a BBMP ward. It doubles as the entry type of the
// ward list endpoint and the reference type other entries point at by ward
// number.
type WardReference struct {
	WardNo     int    `json:"wardNo"`
	Name       string `json:"name"`
	MovementID int    `json:"movementId,omitempty"`
}

// NewWardReference creates a ward reference.
func NewWardReference(wardNo int, name string, movementID int) WardReference {
	return WardReference{
		WardNo:     wardNo,
		Name:       name,
		MovementID: movementID,
	}
}

// WardForLocationEntry is the payload of the ward-for-location endpoint.
// Found is false when the position lies outside every ward; WardNo and Name
// are then zero values.
type WardForLocationEntry struct {
	Found  bool    `json:"found"`
	WardNo int     `json:"wardNo,omitempty"`
	Name   string  `json:"name,omitempty"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// NewWardForLocationEntry creates the containment query payload.
func NewWardForLocationEntry(found bool, wardNo int, name string, lat, lon float64) WardForLocationEntry {
	return WardForLocationEntry{
		Found:  found,
		WardNo: wardNo,
		Name:   name,
		Lat:    lat,
		Lon:    lon,
	}
}
