package journal

import (
	"streamsource/internal/api"
)

// Session forwards journal records and status updates to a plugin, supplying
// the system, station and ship state the plugin expects with each event.
type Session struct {
	monitor *Monitor
	plugin  api.PluginAPI

	records  int
	statuses int
}

// NewSession creates a session delivering to plugin
func NewSession(plugin api.PluginAPI) *Session {
	return &Session{
		monitor: NewMonitor(),
		plugin:  plugin,
	}
}

// HandleRecord applies a journal record and notifies the plugin
func (s *Session) HandleRecord(r Record) {
	s.monitor.Apply(r)
	s.plugin.OnJournalEntry(s.monitor.System(), s.monitor.Station(), r.Entry(), s.monitor.State())
	s.records++
}

// HandleStatus notifies the plugin of a Status.json update
func (s *Session) HandleStatus(entry api.DashboardEntry) {
	s.plugin.OnDashboardEntry(entry)
	s.statuses++
}

// Records returns how many journal records were delivered
func (s *Session) Records() int { return s.records }

// Statuses returns how many status updates were delivered
func (s *Session) Statuses() int { return s.statuses }
