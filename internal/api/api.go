package api

// PluginAPI defines the notifications a host delivers to the plugin.
//
// The host calls these one at a time and never concurrently. Every call
// completes all of its file writes before returning.
type PluginAPI interface {
	// Start writes every output file and returns the plugin identifier.
	Start() string

	// Journal Events - system, station, body and ship changes
	OnJournalEntry(system, station string, entry JournalEntry, state GameState)

	// Dashboard Events - live Status.json telemetry
	OnDashboardEntry(entry DashboardEntry)

	// Preference Events - settings may have been edited
	OnPrefsChanged()
}

// Settings is a read-only view of the host's key-value configuration.
type Settings interface {
	// GetString returns the value stored under key and whether it was set.
	GetString(key string) (string, bool)
}

// ShipNames maps internal ship type identifiers to display names.
type ShipNames interface {
	// DisplayName returns the display name for shipType, or shipType itself
	// when the identifier is unknown.
	DisplayName(shipType string) string
}

// NumberFormatter renders numbers the way the user's locale expects.
type NumberFormatter interface {
	// Format renders v with exactly precision fractional digits.
	Format(v float64, precision int) string
}

// Writer replaces the content of one output file.
type Writer interface {
	// EnsureDir creates dir if it does not exist.
	EnsureDir(dir string) error

	// Write replaces dir/name with text followed by a newline.
	Write(dir, name, text string) error
}

// EventType is the journal "event" tag
type EventType string

const (
	EventStartUp          EventType = "StartUp"
	EventLocation         EventType = "Location"
	EventFSDJump          EventType = "FSDJump"
	EventCarrierJump      EventType = "CarrierJump"
	EventLeaveBody        EventType = "LeaveBody"
	EventApproachBody     EventType = "ApproachBody"
	EventSupercruiseEntry EventType = "SupercruiseEntry"
	EventSupercruiseExit  EventType = "SupercruiseExit"
	EventDocked           EventType = "Docked"
	EventUndocked         EventType = "Undocked"
	EventLoadGame         EventType = "LoadGame"
	EventLoadout          EventType = "Loadout"
	EventShipyardSwap     EventType = "ShipyardSwap"
	EventShipyardNew      EventType = "ShipyardNew"
	EventSetUserShipName  EventType = "SetUserShipName"
)

// BodyTypeStation is the BodyType reported when the nearest body is a station
const BodyTypeStation = "Station"

// JournalEntry carries the fields of a journal event the plugin reads.
// Pointer and slice fields are nil when the event does not carry them.
type JournalEntry struct {
	Event    EventType `json:"event"`
	StarPos  []float64 `json:"StarPos,omitempty"`
	Body     *string   `json:"Body,omitempty"`
	BodyType *string   `json:"BodyType,omitempty"`
}

// GameState is the host's running view of the commander's ship
type GameState struct {
	ShipType string `json:"ShipType"` // Internal identifier, e.g. "sidewinder"
	ShipName string `json:"ShipName"` // User-assigned name, may be empty
}

// DashboardEntry carries the Status.json fields the plugin reads
type DashboardEntry struct {
	Latitude  *float64 `json:"Latitude,omitempty"`
	Longitude *float64 `json:"Longitude,omitempty"`
}
