// Package filestore implements the flat-file persistence used across the
// service: whole-file JSON collections, newline-delimited code lists and
// append-only JSONL logs. Reads that fail for any reason fall back to an
// empty default; the data set is small enough that files are always
// rewritten in full.
package filestore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cyberguardng/cyberguard/pkg/logger"
)

// Store reads and writes named flat files under a single data directory
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a store over it
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a named file
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether the named file exists
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Remove deletes the named file. Missing files are not an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ReadJSON unmarshals the named file into v. A missing, unreadable or
// corrupt file leaves v at its zero/default value.
func (s *Store) ReadJSON(name string, v interface{}) {
	raw, err := os.ReadFile(s.Path(name))
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logger.Warn("Ignoring corrupt JSON file",
			zap.String("file", name),
			zap.Error(err),
		)
	}
}

// WriteJSON rewrites the named file with the indented JSON encoding of v
func (s *Store) WriteJSON(name string, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(name), append(raw, '\n'), 0o644)
}

// ReadLines returns the trimmed non-empty lines of the named file,
// or nil when the file is missing or unreadable.
func (s *Store) ReadLines(name string) []string {
	f, err := os.Open(s.Path(name))
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WriteLines rewrites the named file with one entry per line
func (s *Store) WriteLines(name string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(s.Path(name), []byte(content), 0o644)
}

// AppendLine appends a single line to the named file, creating it if needed
func (s *Store) AppendLine(name, line string) error {
	f, err := os.OpenFile(s.Path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}

// ReadString returns the file contents as a trimmed string, or "" on any error
func (s *Store) ReadString(name string) string {
	raw, err := os.ReadFile(s.Path(name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// WriteString rewrites the named file with the given string
func (s *Store) WriteString(name, content string) error {
	return os.WriteFile(s.Path(name), []byte(content), 0o644)
}

// AppendJSONL appends v as a single JSON line to the named file
func (s *Store) AppendJSONL(name string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.AppendLine(name, string(raw))
}

// ReadJSONL returns every parseable JSON line of the named file
func (s *Store) ReadJSONL(name string) []json.RawMessage {
	var out []json.RawMessage
	for _, line := range s.ReadLines(name) {
		if json.Valid([]byte(line)) {
			out = append(out, json.RawMessage(line))
		}
	}
	return out
}
