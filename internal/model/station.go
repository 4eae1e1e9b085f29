// Package model defines the collector's core data types: the station
// catalog entry, the normalized weather record, and run metadata.
package model

import "fmt"

// allowedTimezones is the exact set of IANA zones a station may declare.
// Any other zone is a configuration error caught before a station is ever
// dispatched to a reader.
var allowedTimezones = map[string]bool{
	"Europe/Madrid": true,
	"Europe/Lisbon": true,
	"Etc/UTC":       true,
}

// ValidTimezone reports whether tz is one of the collector's supported
// station timezones.
func ValidTimezone(tz string) bool {
	return allowedTimezones[tz]
}

// Station describes one weather station in the catalog: where to fetch
// its data, how to authenticate, and how to interpret its timestamps.
type Station struct {
	ID             string
	Name           string
	ConnectionType string
	Timezone       string
	Active         bool
	PressureOffset float64

	// Field1-3 hold connection-type-specific credentials/identifiers
	// (API keys, station codes, usernames) — each reader documents which
	// of these it consumes and how.
	Field1 string
	Field2 string
	Field3 string
}

// Equal compares stations by ID only, matching the catalog's identity
// semantics: two Station values with the same ID are the same station
// even if other fields differ across a reload.
func (s Station) Equal(other Station) bool {
	return s.ID == other.ID
}

func (s Station) String() string {
	return fmt.Sprintf("Station(id=%s, name=%s, type=%s)", s.ID, s.Name, s.ConnectionType)
}
