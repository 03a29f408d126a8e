// Package journal reads the game's journal and Status.json files and turns
// them into plugin notifications.
package journal

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"streamsource/internal/api"
	"streamsource/internal/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxLineSize bounds a single journal line; Loadout events can be large
const maxLineSize = 1024 * 1024

// Record is one decoded journal line. Only the fields used to track location
// and ship are kept.
type Record struct {
	Timestamp    string        `json:"timestamp"`
	Event        api.EventType `json:"event"`
	StarSystem   string        `json:"StarSystem"`
	StarPos      []float64     `json:"StarPos"`
	StationName  string        `json:"StationName"`
	Docked       bool          `json:"Docked"`
	Body         *string       `json:"Body"`
	BodyType     *string       `json:"BodyType"`
	Ship         string        `json:"Ship"`
	ShipName     string        `json:"ShipName"`
	ShipType     string        `json:"ShipType"`
	UserShipName string        `json:"UserShipName"`
}

// Entry returns the part of the record the plugin reads
func (r Record) Entry() api.JournalEntry {
	return api.JournalEntry{
		Event:    r.Event,
		StarPos:  r.StarPos,
		Body:     r.Body,
		BodyType: r.BodyType,
	}
}

// ParseRecord decodes a single journal line
func ParseRecord(line []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(line, &r); err != nil {
		return Record{}, fmt.Errorf("decode journal line: %w", err)
	}
	if r.Event == "" {
		return Record{}, fmt.Errorf("journal line has no event")
	}
	return r, nil
}

// ReadRecords decodes every line of r and passes each record to fn. Blank and
// malformed lines are logged and skipped. It returns the number of records
// delivered.
func ReadRecords(r io.Reader, fn func(Record)) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	count := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			log.Warn("Skipping journal line", "line", lineNum, "error", err)
			continue
		}
		fn(rec)
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read journal: %w", err)
	}
	return count, nil
}

// ReadRecordsFile decodes the journal file at path
func ReadRecordsFile(path string, fn func(Record)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	return ReadRecords(f, fn)
}

// ParseStatus decodes the content of Status.json
func ParseStatus(data []byte) (api.DashboardEntry, error) {
	var entry api.DashboardEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return api.DashboardEntry{}, fmt.Errorf("decode status: %w", err)
	}
	return entry, nil
}
