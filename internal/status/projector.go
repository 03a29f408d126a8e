package status

import (
	"streamsource/internal/api"
	"streamsource/internal/log"
)

// bodyClearingEvents leave the current body unless they report a non-station BodyType
var bodyClearingEvents = map[api.EventType]bool{
	api.EventFSDJump:          true,
	api.EventLeaveBody:        true,
	api.EventLocation:         true,
	api.EventSupercruiseEntry: true,
	api.EventSupercruiseExit:  true,
}

// Projector keeps the output files in step with the game state. A file is
// rewritten only when its value changes, or when every file is refreshed by
// Start or a change of output directory.
//
// Projector is not safe for concurrent use; the host delivers one
// notification at a time.
type Projector struct {
	snap     *Snapshot
	settings api.Settings
	ships    api.ShipNames
	numbers  api.NumberFormatter
	writer   api.Writer
}

var _ api.PluginAPI = (*Projector)(nil)

// NewProjector creates a projector that owns snap
func NewProjector(snap *Snapshot, settings api.Settings, ships api.ShipNames, numbers api.NumberFormatter, writer api.Writer) *Projector {
	return &Projector{
		snap:     snap,
		settings: settings,
		ships:    ships,
		numbers:  numbers,
		writer:   writer,
	}
}

// Snapshot returns a copy of the current values
func (p *Projector) Snapshot() Snapshot {
	return p.snap.clone()
}

// Start creates the output directory and writes every file with the current
// values. It returns the plugin identifier.
func (p *Projector) Start() string {
	p.ensureOutputDir()
	p.writeAll()
	return PluginName
}

// OnPrefsChanged rewrites every file in the new location when the configured
// output directory has changed.
func (p *Projector) OnPrefsChanged() {
	dir, _ := p.settings.GetString(SettingOutputDir)
	if dir == p.snap.OutputDir {
		return
	}

	log.Info("Output directory changed", "from", p.snap.OutputDir, "to", dir)
	p.snap.OutputDir = dir
	p.ensureOutputDir()
	p.writeAll()
}

// OnJournalEntry applies a journal event. The steps run in order because the
// combined location and ship name values read fields updated earlier in the
// same call.
func (p *Projector) OnJournalEntry(system, station string, entry api.JournalEntry, state api.GameState) {
	p.updateSystem(system, entry)
	p.updateStation(station)
	p.updateBody(entry)
	p.updateCombinedLocation()
	p.updateShip(state)
}

// OnDashboardEntry applies Status.json telemetry
func (p *Projector) OnDashboardEntry(entry api.DashboardEntry) {
	s := p.snap

	if entry.Latitude != nil && entry.Longitude != nil {
		latlon := LatLon{Latitude: *entry.Latitude, Longitude: *entry.Longitude}
		if s.LatLon == nil || *s.LatLon != latlon {
			s.LatLon = &latlon
			p.write(FileLatLon, p.formatLatLon())
		}
	} else if s.LatLon != nil {
		s.LatLon = nil
		p.write(FileLatLon, "")
	}
}

func (p *Projector) updateSystem(system string, entry api.JournalEntry) {
	s := p.snap

	if s.System != system {
		s.System = system
		p.write(FileSystem, s.System)
	}

	if entry.StarPos == nil {
		return
	}
	if len(entry.StarPos) != 3 {
		log.Warn("Ignoring malformed StarPos", "event", entry.Event, "StarPos", entry.StarPos)
		return
	}
	starPos := [3]float64{entry.StarPos[0], entry.StarPos[1], entry.StarPos[2]}
	if s.StarPos != starPos {
		s.StarPos = starPos
		p.write(FileStarPos, p.formatStarPos())
	}
}

func (p *Projector) updateStation(station string) {
	if p.snap.Station != station {
		p.snap.Station = station
		p.write(FileStation, station)
	}
}

// updateBody picks the first matching rule: a clearing event without a
// non-station BodyType, an explicit Body, or StartUp without a Body. The
// StartUp rule writes the body file even when it is already empty.
func (p *Projector) updateBody(entry api.JournalEntry) {
	s := p.snap

	switch {
	case bodyClearingEvents[entry.Event] && (entry.BodyType == nil || *entry.BodyType == api.BodyTypeStation):
		if s.Body != "" {
			s.Body = ""
			p.write(FileBody, "")
		}
	case entry.Body != nil:
		if s.Body != *entry.Body {
			s.Body = *entry.Body
			p.write(FileBody, s.Body)
		}
	case entry.Event == api.EventStartUp:
		s.Body = ""
		p.write(FileBody, "")
	}
}

func (p *Projector) updateCombinedLocation() {
	s := p.snap

	stationOrBody := firstNonEmpty(s.Station, s.Body)
	if s.StationOrBody != stationOrBody {
		s.StationOrBody = stationOrBody
		p.write(FileStationOrBody, stationOrBody)
	}

	stationOrBodyOrSystem := firstNonEmpty(s.Station, s.Body, s.System)
	if s.StationOrBodyOrSystem != stationOrBodyOrSystem {
		s.StationOrBodyOrSystem = stationOrBodyOrSystem
		p.write(FileStationOrBodyOrSystem, stationOrBodyOrSystem)
	}
}

// updateShip tracks the raw ship type; the files show its display name. The
// ship name falls back to the ship type when the commander has not named the ship.
func (p *Projector) updateShip(state api.GameState) {
	s := p.snap

	if s.ShipType != state.ShipType {
		s.ShipType = state.ShipType
		p.write(FileShipType, p.ships.DisplayName(s.ShipType))
	}

	shipName := firstNonEmpty(state.ShipName, s.ShipType)
	if s.ShipName != shipName {
		s.ShipName = shipName
		p.write(FileShipName, firstNonEmpty(state.ShipName, p.ships.DisplayName(s.ShipType)))
	}
}

// writeAll writes every file from the snapshot
func (p *Projector) writeAll() {
	s := p.snap
	p.write(FileSystem, s.System)
	p.write(FileStarPos, p.formatStarPos())
	p.write(FileStation, s.Station)
	p.write(FileBody, s.Body)
	p.write(FileLatLon, p.formatLatLon())
	p.write(FileStationOrBody, s.StationOrBody)
	p.write(FileStationOrBodyOrSystem, s.StationOrBodyOrSystem)
	p.write(FileShipType, p.ships.DisplayName(s.ShipType))
	p.write(FileShipName, p.shipNameText())
}

// shipNameText is the ship name as shown to viewers: a name equal to the ship
// type is the fallback and is shown as the type's display name.
func (p *Projector) shipNameText() string {
	s := p.snap
	if s.ShipName == s.ShipType {
		return p.ships.DisplayName(s.ShipType)
	}
	return s.ShipName
}

func (p *Projector) formatStarPos() string {
	pos := p.snap.StarPos
	return p.numbers.Format(pos[0], 5) + " " + p.numbers.Format(pos[1], 5) + " " + p.numbers.Format(pos[2], 5)
}

func (p *Projector) formatLatLon() string {
	ll := p.snap.LatLon
	if ll == nil {
		return ""
	}
	return p.numbers.Format(ll.Latitude, 6) + " " + p.numbers.Format(ll.Longitude, 6)
}

func (p *Projector) ensureOutputDir() {
	dir := p.snap.OutputDir
	if dir == "" {
		log.Warn("No output directory configured")
		return
	}
	if err := p.writer.EnsureDir(dir); err != nil {
		log.Error("Failed to create output directory", "path", dir, "error", err)
		return
	}
	log.Debug("Output directory ready", "path", dir)
}

// write failures are logged and otherwise ignored; the snapshot keeps the new
// value and the next change writes the file again.
func (p *Projector) write(name, text string) {
	if p.snap.OutputDir == "" {
		log.Warn("No output directory configured", "file", name)
		return
	}
	if err := p.writer.Write(p.snap.OutputDir, name, text); err != nil {
		log.Error("Failed to write file", "file", name, "error", err)
		return
	}
	log.Debug("Updated file", "file", name, "content", text)
}
