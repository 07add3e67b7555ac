package models

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// RawStation is a fuel station as returned by the POI source. The address
// is resolved separately and may be the "Unknown Location" sentinel when
// reverse geocoding fails.
type RawStation struct {
	ID         string     `json:"id"`
	Coordinate Coordinate `json:"coordinate"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
}

// FuelPrice is a single (fuel type, price) pair within a price entry.
type FuelPrice struct {
	ID    string  `json:"id,omitempty"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// PriceEntry is one registry record: a station name carrying an ordered
// list of fuel prices. The registry guarantees at most one entry per
// case-insensitive, whitespace-trimmed station name.
type PriceEntry struct {
	ID           string      `json:"id,omitempty"`
	StationName  string      `json:"stationName"`
	PriceAndType []FuelPrice `json:"priceAndType"`
}

// EnrichedStation is a RawStation joined with its matched price list
// (empty when no registry entry matches) and the great-circle distance
// from the reference position. Instances are built fresh on every
// enrichment pass and never mutated afterwards.
type EnrichedStation struct {
	RawStation
	Prices     []FuelPrice `json:"priceAndType"`
	DistanceKm float64     `json:"distanceKm"`
}
