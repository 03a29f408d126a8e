package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"streamsource/internal/api"
	"streamsource/internal/config"
	"streamsource/internal/locale"
	"streamsource/internal/log"
	"streamsource/internal/output"
	"streamsource/internal/ships"
	"streamsource/internal/status"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func resetLogging(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel("info")
	})
}

// prefsCounter counts OnPrefsChanged calls
type prefsCounter struct {
	api.PluginAPI
	calls int
}

func (p *prefsCounter) OnPrefsChanged() { p.calls++ }

func TestReloadSettingsAppliesLanguageAndLevel(t *testing.T) {
	t.Setenv(config.EnvOutputDir, "")
	resetLogging(t)

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.toml")
	firstOut := filepath.Join(dir, "first")
	writeFile(t, settingsPath, "outdir = \""+filepath.ToSlash(firstOut)+"\"\nlanguage = \"en\"\nlog_level = \"info\"\n")

	store, err := config.Load(settingsPath)
	require.NoError(t, err)
	defer store.Close()

	formatter := locale.NewFormatter("")
	applySettings(store, formatter, false)
	assert.Equal(t, language.English, formatter.Language())
	assert.Equal(t, slog.LevelInfo, log.Level())

	projector := status.NewProjector(status.NewSnapshot(firstOut), store, ships.NewTable(), formatter, output.NewFileWriter())
	projector.Start()

	secondOut := filepath.Join(dir, "second")
	writeFile(t, settingsPath, "outdir = \""+filepath.ToSlash(secondOut)+"\"\nlanguage = \"de\"\nlog_level = \"error\"\n")
	reloadSettings(store, formatter, false, projector)

	assert.Equal(t, language.German, formatter.Language())
	assert.Equal(t, slog.LevelError, log.Level())
	assert.Equal(t, secondOut, projector.Snapshot().OutputDir)

	// The rewrite in the new directory already uses the new language
	projector.OnJournalEntry("Sol", "", api.JournalEntry{Event: api.EventFSDJump, StarPos: []float64{1.5, 0, 0}}, api.GameState{})
	data, err := os.ReadFile(filepath.Join(secondOut, status.FileStarPos))
	require.NoError(t, err)
	assert.Equal(t, "1,50000 0,00000 0,00000\n", string(data))
}

func TestReloadSettingsVerboseKeepsDebug(t *testing.T) {
	t.Setenv(config.EnvOutputDir, "")
	resetLogging(t)

	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, settingsPath, "log_level: warn\n")
	store, err := config.Load(settingsPath)
	require.NoError(t, err)

	plugin := &prefsCounter{}
	reloadSettings(store, locale.NewFormatter(""), true, plugin)
	assert.Equal(t, slog.LevelDebug, log.Level())
	assert.Equal(t, 1, plugin.calls)
}

func TestReloadSettingsKeepsValuesOnError(t *testing.T) {
	t.Setenv(config.EnvOutputDir, "")
	resetLogging(t)

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	writeFile(t, settingsPath, "language = \"de\"\nlog_level = \"warn\"\n")
	store, err := config.Load(settingsPath)
	require.NoError(t, err)

	formatter := locale.NewFormatter("")
	applySettings(store, formatter, false)

	writeFile(t, settingsPath, "language = \n")
	plugin := &prefsCounter{}
	reloadSettings(store, formatter, false, plugin)

	assert.Equal(t, language.German, formatter.Language())
	assert.Equal(t, slog.LevelWarn, log.Level())
	assert.Zero(t, plugin.calls)
}

func TestRunReportsBadSettings(t *testing.T) {
	resetLogging(t)
	dir := t.TempDir()

	var stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(dir, "settings.ini"), "-log", filepath.Join(dir, "streamsource.log")}, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error loading settings")
}

func TestRunReplaysJournal(t *testing.T) {
	t.Setenv(config.EnvOutputDir, "")
	resetLogging(t)
	dir := t.TempDir()

	outdir := filepath.Join(dir, "obs")
	settingsPath := filepath.Join(dir, "settings.toml")
	writeFile(t, settingsPath, "outdir = \""+filepath.ToSlash(outdir)+"\"\n")

	journalPath := filepath.Join(dir, "Journal.2024-01-01T100000.01.log")
	writeFile(t, journalPath, `{"event":"LoadGame","Ship":"SideWinder","ShipName":""}`+"\n"+
		`{"event":"Location","StarSystem":"Sol","StarPos":[0,0,0],"Docked":true,"StationName":"Galileo"}`+"\n")

	var stderr bytes.Buffer
	code := run([]string{"-config", settingsPath, "-replay", journalPath, "-log", filepath.Join(dir, "streamsource.log")}, &stderr)
	require.Equal(t, 0, code, stderr.String())

	for name, expected := range map[string]string{
		status.FileSystem:   "Sol\n",
		status.FileStation:  "Galileo\n",
		status.FileShipType: "Sidewinder\n",
	} {
		data, err := os.ReadFile(filepath.Join(outdir, name))
		require.NoError(t, err)
		assert.Equal(t, expected, string(data), name)
	}

	// A missing replay file is reported through the exit code
	stderr.Reset()
	code = run([]string{"-config", settingsPath, "-replay", filepath.Join(dir, "missing.log"), "-log", filepath.Join(dir, "streamsource.log")}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error replaying")
}

func TestRunRequiresJournalDirectory(t *testing.T) {
	t.Setenv(config.EnvOutputDir, "")
	resetLogging(t)
	dir := t.TempDir()

	settingsPath := filepath.Join(dir, "settings.toml")
	writeFile(t, settingsPath, "outdir = \""+filepath.ToSlash(filepath.Join(dir, "obs"))+"\"\njournal_dir = \"\"\n")

	var stderr bytes.Buffer
	code := run([]string{"-config", settingsPath, "-log", filepath.Join(dir, "streamsource.log")}, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "No journal directory configured")
}
