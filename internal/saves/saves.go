package saves

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gamebook/internal/session"

	"github.com/sirupsen/logrus"
)

// ErrSaveNotFound is returned when a save record's backing file vanished
// between listing and action, typically an external deletion.
var ErrSaveNotFound = errors.New("save not found")

const (
	filenamePrefix  = "save_"
	filenameExt     = ".json"
	timestampLayout = "20060102150405"
)

// Record is a persisted snapshot of the session: which book and paragraph
// the player was at, a user-supplied title, and when it was taken.
// Filename identifies the backing file and is not part of the body.
type Record struct {
	Filename  string `json:"-"`
	Title     string `json:"title"`
	BookID    string `json:"book_id"`
	Paragraph int    `json:"paragraph"`
	Timestamp string `json:"timestamp"`
}

// Store reads and writes save records in a saves directory, one JSON file
// per record. Filenames embed the creation instant at second precision
// (save_YYYYMMDDHHMMSS.json), so two saves within the same second overwrite
// each other; an accepted limitation of the naming scheme.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store over the given directory, creating it if absent.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create saves directory %q: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// SaveGame snapshots the session under the given title. When no book is
// active this is an explicit no-op, not an error: the save control is
// reachable from screens where saving has nothing to capture.
func (s *Store) SaveGame(sess *session.Session, title string) error {
	if !sess.InBook() {
		return nil
	}

	now := s.now()
	rec := Record{
		Filename:  filenamePrefix + now.Format(timestampLayout) + filenameExt,
		Title:     title,
		BookID:    sess.Book().ID,
		Paragraph: sess.Paragraph(),
		Timestamp: now.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal save record: %w", err)
	}

	path := filepath.Join(s.dir, rec.Filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write save file %q: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"file":      rec.Filename,
		"book":      rec.BookID,
		"paragraph": rec.Paragraph,
	}).Info("Saved game")

	return nil
}

// ListSaves returns all save records sorted by timestamp, most recent
// first. A save file that fails to parse is logged and skipped rather than
// aborting the listing.
func (s *Store) ListSaves() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read saves directory %q: %w", s.dir, err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filenamePrefix) || !strings.HasSuffix(name, filenameExt) {
			continue
		}
		rec, err := s.readRecord(name)
		if err != nil {
			logrus.WithError(err).WithField("file", name).Warn("Skipping unreadable save file")
			continue
		}
		records = append(records, rec)
	}

	// RFC 3339 timestamps from the same clock sort correctly as strings.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	return records, nil
}

// LoadSave re-reads the record's backing file and returns the stored book
// id and paragraph number for the caller to resolve into a live book. The
// store itself never holds a live book reference.
func (s *Store) LoadSave(rec Record) (string, int, error) {
	stored, err := s.readRecord(rec.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, fmt.Errorf("save file %q: %w", rec.Filename, ErrSaveNotFound)
		}
		return "", 0, err
	}
	return stored.BookID, stored.Paragraph, nil
}

// DeleteSave removes the record's backing file.
func (s *Store) DeleteSave(rec Record) error {
	path := filepath.Join(s.dir, rec.Filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("save file %q: %w", rec.Filename, ErrSaveNotFound)
		}
		return fmt.Errorf("failed to delete save file %q: %w", path, err)
	}
	logrus.WithField("file", rec.Filename).Info("Deleted save")
	return nil
}

func (s *Store) readRecord(filename string) (Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse save file: %w", err)
	}
	rec.Filename = filename
	return rec, nil
}
