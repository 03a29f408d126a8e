package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoOutputDir is returned when no output directory has been configured
var ErrNoOutputDir = errors.New("no output directory configured")

// DirError reports an output directory that is missing and could not be created
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("create output directory %s: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// WriteError reports an output file that could not be opened or written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileWriter replaces output files in one step so that programs polling them
// never read a half-written value. When the destination cannot be replaced,
// as on Windows while a reader holds it open, the file is truncated and
// rewritten in place instead.
type FileWriter struct {
	rename func(oldpath, newpath string) error
}

// NewFileWriter creates a new file writer
func NewFileWriter() *FileWriter {
	return &FileWriter{rename: os.Rename}
}

// EnsureDir creates dir and any missing parents.
func (w *FileWriter) EnsureDir(dir string) error {
	if dir == "" {
		return ErrNoOutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &DirError{Path: dir, Err: err}
	}
	return nil
}

// Write replaces dir/name with text and a single trailing newline. Line
// endings inside text are normalized to "\n" and invalid UTF-8 sequences are
// replaced with U+FFFD. The directory must already exist.
func (w *FileWriter) Write(dir, name, text string) error {
	if dir == "" {
		return ErrNoOutputDir
	}
	path := filepath.Join(dir, name)
	content := normalizeNewlines(text) + "\n"

	err := w.atomicWrite(path, content, dir)
	var renameErr *os.LinkError
	if errors.As(err, &renameErr) {
		err = overwrite(path, content)
	}
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// atomicWrite writes text to path via a temporary file and rename. The
// temporary file is fully closed before the rename. A failed rename is
// returned as an *os.LinkError.
func (w *FileWriter) atomicWrite(path, text, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if err := encode(tmp, text); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	rename := w.rename
	if rename == nil {
		rename = os.Rename
	}
	if err := rename(tmpName, path); err != nil {
		var linkErr *os.LinkError
		if !errors.As(err, &linkErr) {
			err = &os.LinkError{Op: "rename", Old: tmpName, New: path, Err: err}
		}
		return err
	}

	success = true
	return nil
}

// overwrite truncates path and writes text into it
func overwrite(path, text string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if err := encode(f, text); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// encode writes text as UTF-8, replacing invalid sequences with U+FFFD
func encode(dst io.Writer, text string) error {
	enc := transform.NewWriter(dst, unicode.UTF8.NewDecoder())
	if _, err := enc.Write([]byte(text)); err != nil {
		return err
	}
	return enc.Close()
}
