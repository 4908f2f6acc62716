package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gamebook/internal/domain/book"

	"github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Catalog discovers and parses book definition files from a content
// directory and caches the validated result in memory.
type Catalog struct {
	booksDir string
	cache    []book.Book
}

// New creates a catalog over the given books directory. Nothing is read
// until LoadBooks is called.
func New(booksDir string) *Catalog {
	return &Catalog{booksDir: booksDir}
}

// bookFile mirrors the on-disk layout of a book definition. Pointer fields
// distinguish a missing key from a zero value, which drives the
// skip-on-incomplete rules below.
type bookFile struct {
	Metadata struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
	} `json:"metadata"`
	Paragraphs []paragraphEntry `json:"paragraphs"`
}

type paragraphEntry struct {
	Number    *int          `json:"number"`
	Text      *string       `json:"text"`
	ImagePath string        `json:"image_path"`
	Options   []book.Option `json:"options"`
}

// LoadBooks returns the validated book list, scanning the books directory
// on the first call or when forceReload is set. A malformed or incomplete
// individual file is logged and skipped; the scan continues with the rest.
// Only a directory read failure is returned as an error.
func (c *Catalog) LoadBooks(forceReload bool) ([]book.Book, error) {
	if c.cache != nil && !forceReload {
		return c.cache, nil
	}

	entries, err := os.ReadDir(c.booksDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read books directory %q: %w", c.booksDir, err)
	}

	books := make([]book.Book, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		b, err := parseBookFile(filepath.Join(c.booksDir, entry.Name()))
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Warn("Skipping unreadable book file")
			continue
		}
		if b == nil {
			logrus.WithField("file", entry.Name()).Debug("Skipping book with incomplete metadata")
			continue
		}
		books = append(books, *b)
	}

	logrus.WithFields(logrus.Fields{
		"dir":   c.booksDir,
		"books": len(books),
	}).Info("Loaded book catalog")

	c.cache = books
	return books, nil
}

// FindBook resolves a book id (as stored in a save record) to a live book
// from the catalog. Returns false when no book with that id exists.
func (c *Catalog) FindBook(id string) (*book.Book, bool, error) {
	books, err := c.LoadBooks(false)
	if err != nil {
		return nil, false, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], true, nil
		}
	}
	return nil, false, nil
}

// parseBookFile reads and validates a single book definition. It returns
// (nil, nil) when the file parses but its metadata is incomplete, so the
// caller can fold the book out of the catalog without treating it as a
// failure. Content files saved by Windows editors may carry a UTF-8 BOM.
func parseBookFile(path string) (*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var bf bookFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse book file: %w", err)
	}

	md := bf.Metadata
	if md.Title == nil || md.Description == nil || md.Image == nil {
		return nil, nil
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	b := &book.Book{
		ID:          id,
		Title:       *md.Title,
		Description: *md.Description,
		Image:       *md.Image,
		Paragraphs:  make([]book.Paragraph, 0, len(bf.Paragraphs)),
	}

	for _, p := range bf.Paragraphs {
		if p.Number == nil || p.Text == nil {
			continue
		}
		b.Paragraphs = append(b.Paragraphs, book.Paragraph{
			Number:    *p.Number,
			Text:      *p.Text,
			ImagePath: p.ImagePath,
			Options:   p.Options,
		})
	}

	return b, nil
}
