package journal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"streamsource/internal/api"
	"streamsource/internal/log"
)

// StatusFile is the name of the live status file in the journal directory
const StatusFile = "Status.json"

// Handler receives what the watcher reads
type Handler interface {
	HandleRecord(r Record)
	HandleStatus(entry api.DashboardEntry)
}

// Watcher polls a journal directory for new journal lines and Status.json
// changes. It is not safe for concurrent use.
type Watcher struct {
	dir string

	journalPath string
	offset      int64

	statusModTime time.Time
	statusSize    int64
}

// NewWatcher creates a watcher for dir. The first poll delivers the whole
// current journal unless SkipExisting is called first.
func NewWatcher(dir string) *Watcher {
	return &Watcher{dir: dir}
}

// LatestJournal returns the newest Journal.*.log file in dir. Journal names
// embed their creation time, so the lexically greatest name is the newest.
func LatestJournal(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "Journal.*.log"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no journal files in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// SkipExisting positions the watcher at the end of the current journal so
// that only new events are delivered.
func (w *Watcher) SkipExisting() error {
	path, err := LatestJournal(w.dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	w.journalPath = path
	w.offset = info.Size()
	return nil
}

// Poll delivers journal lines appended since the previous poll, then the
// status file if it changed.
func (w *Watcher) Poll(h Handler) error {
	if err := w.pollJournal(h); err != nil {
		return err
	}
	w.pollStatus(h)
	return nil
}

func (w *Watcher) pollJournal(h Handler) error {
	path, err := LatestJournal(w.dir)
	if err != nil {
		// The game may not have created a journal yet
		log.Debug("No journal yet", "dir", w.dir, "error", err)
		return nil
	}
	if path != w.journalPath {
		// Finish the previous journal before moving on
		if w.journalPath != "" {
			if _, err := w.readLines(w.journalPath, w.offset, h); err != nil {
				log.Warn("Could not finish previous journal", "file", filepath.Base(w.journalPath), "error", err)
			}
		}
		log.Info("Following journal", "file", filepath.Base(path))
		w.journalPath = path
		w.offset = 0
	}

	n, err := w.readLines(path, w.offset, h)
	w.offset += n
	return err
}

// readLines delivers the complete lines of path after offset and returns the
// number of bytes consumed. A trailing line without a newline is left for
// the next read.
func (w *Watcher) readLines(path string, offset int64, h Handler) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek journal: %w", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read journal: %w", err)
	}

	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return 0, nil
	}
	complete := data[:end+1]

	for _, line := range strings.Split(string(complete), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := ParseRecord([]byte(line))
		if err != nil {
			log.Warn("Skipping journal line", "file", filepath.Base(path), "error", err)
			continue
		}
		h.HandleRecord(rec)
	}
	return int64(len(complete)), nil
}

func (w *Watcher) pollStatus(h Handler) {
	path := filepath.Join(w.dir, StatusFile)
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.ModTime().Equal(w.statusModTime) && info.Size() == w.statusSize {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("Status file unreadable", "error", err)
		return
	}
	entry, err := ParseStatus(data)
	if err != nil {
		// Caught mid-write; the next poll retries
		log.Debug("Status file incomplete", "error", err)
		return
	}

	w.statusModTime = info.ModTime()
	w.statusSize = info.Size()
	h.HandleStatus(entry)
}
