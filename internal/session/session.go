package session

import (
	"errors"

	"gamebook/internal/domain/book"
)

// ErrNoBookSelected is returned when an operation that needs an active book
// is invoked without one. This is a caller bug, not a user-facing state.
var ErrNoBookSelected = errors.New("no book selected")

// Session holds the player's position during a run: the active book and the
// current paragraph number. There is exactly one session per run and only
// the navigation methods below mutate it.
type Session struct {
	book      *book.Book
	paragraph int
}

// New creates an empty session. No book is active until SelectBook.
func New() *Session {
	return &Session{paragraph: 1}
}

// Book returns the active book, or nil when the player is at the
// book-selection screen.
func (s *Session) Book() *book.Book {
	return s.book
}

// InBook reports whether a book is currently active.
func (s *Session) InBook() bool {
	return s.book != nil
}

// Paragraph returns the current paragraph number. The value is inert while
// no book is active.
func (s *Session) Paragraph() int {
	return s.paragraph
}

// SelectBook makes the given book active. The paragraph number is left
// untouched; callers start or restore a position separately.
func (s *Session) SelectBook(b *book.Book) {
	s.book = b
}

// StartNewGame resets the position to paragraph 1.
func (s *Session) StartNewGame() error {
	if s.book == nil {
		return ErrNoBookSelected
	}
	s.paragraph = 1
	return nil
}

// ChooseOption moves the position to the option's target. The target is not
// checked here; a dangling target fails on the next Current lookup.
func (s *Session) ChooseOption(o book.Option) {
	s.paragraph = o.Target
}

// Restore places the session at a saved position within the given book.
func (s *Session) Restore(b *book.Book, paragraph int) {
	s.book = b
	s.paragraph = paragraph
}

// ExitToMenu clears the active book, returning the player to the
// book-selection screen. The paragraph number keeps its last value.
func (s *Session) ExitToMenu() {
	s.book = nil
}

// Current resolves the current paragraph in the active book.
func (s *Session) Current() (*book.Paragraph, error) {
	if s.book == nil {
		return nil, ErrNoBookSelected
	}
	return s.book.Paragraph(s.paragraph)
}
