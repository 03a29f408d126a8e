package journal

import (
	"strings"

	"streamsource/internal/api"
)

// Monitor follows the journal to know where the commander is and which ship
// they fly, the way the host application does before notifying plugins.
type Monitor struct {
	system  string
	station string
	state   api.GameState
}

// NewMonitor creates a monitor with nothing known yet
func NewMonitor() *Monitor {
	return &Monitor{}
}

// System returns the current star system, empty until one is reported
func (m *Monitor) System() string { return m.system }

// Station returns the station the commander is docked at, or empty
func (m *Monitor) Station() string { return m.station }

// State returns the current ship state
func (m *Monitor) State() api.GameState { return m.state }

// Apply updates the tracked values from one journal record
func (m *Monitor) Apply(r Record) {
	switch r.Event {
	case api.EventLocation, api.EventFSDJump, api.EventCarrierJump:
		if r.StarSystem != "" {
			m.system = r.StarSystem
		}
		if r.Docked {
			m.station = r.StationName
		} else {
			m.station = ""
		}

	case api.EventDocked:
		if r.StarSystem != "" {
			m.system = r.StarSystem
		}
		m.station = r.StationName

	case api.EventUndocked, api.EventSupercruiseEntry:
		m.station = ""

	case api.EventLoadGame, api.EventLoadout:
		if r.Ship != "" {
			m.state.ShipType = strings.ToLower(r.Ship)
		}
		m.state.ShipName = r.ShipName

	case api.EventShipyardSwap, api.EventShipyardNew:
		m.state.ShipType = strings.ToLower(r.ShipType)
		m.state.ShipName = ""

	case api.EventSetUserShipName:
		m.state.ShipName = r.UserShipName
	}
}
