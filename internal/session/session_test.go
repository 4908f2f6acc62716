package session

import (
	"errors"
	"testing"

	"gamebook/internal/domain/book"
)

func twoParagraphBook() *book.Book {
	return &book.Book{
		ID:    "b1",
		Title: "Two Rooms",
		Paragraphs: []book.Paragraph{
			{Number: 1, Text: "Start", Options: []book.Option{{Text: "Go", Target: 2}}},
			{Number: 2, Text: "End"},
		},
	}
}

func TestStartNewGame_NoBook(t *testing.T) {
	s := New()

	err := s.StartNewGame()
	if err == nil {
		t.Fatal("StartNewGame() succeeded without a book, expected error")
	}
	if !errors.Is(err, ErrNoBookSelected) {
		t.Errorf("StartNewGame() returned %q, expected ErrNoBookSelected", err)
	}
}

func TestStartNewGame_ResetsParagraph(t *testing.T) {
	s := New()
	s.SelectBook(twoParagraphBook())
	s.ChooseOption(book.Option{Target: 42})

	if err := s.StartNewGame(); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}
	if s.Paragraph() != 1 {
		t.Errorf("Paragraph() after StartNewGame = %d, want 1", s.Paragraph())
	}
}

func TestSelectBook_KeepsParagraph(t *testing.T) {
	s := New()
	s.ChooseOption(book.Option{Target: 7})
	s.SelectBook(twoParagraphBook())

	if s.Paragraph() != 7 {
		t.Errorf("SelectBook changed the paragraph to %d, want 7", s.Paragraph())
	}
}

func TestExitToMenu(t *testing.T) {
	s := New()
	s.SelectBook(twoParagraphBook())
	if err := s.StartNewGame(); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}
	s.ChooseOption(book.Option{Target: 2})

	s.ExitToMenu()

	if s.InBook() {
		t.Error("InBook() is true after ExitToMenu")
	}
	if s.Book() != nil {
		t.Error("Book() is not nil after ExitToMenu")
	}
	// The paragraph value stays, inert until a book is reselected.
	if s.Paragraph() != 2 {
		t.Errorf("Paragraph() after ExitToMenu = %d, want 2", s.Paragraph())
	}
}

func TestCurrent_NoBook(t *testing.T) {
	s := New()

	_, err := s.Current()
	if !errors.Is(err, ErrNoBookSelected) {
		t.Errorf("Current() without a book returned %v, expected ErrNoBookSelected", err)
	}
}

func TestWalkToTerminalParagraph(t *testing.T) {
	s := New()
	s.SelectBook(twoParagraphBook())
	if err := s.StartNewGame(); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}

	p, err := s.Current()
	if err != nil {
		t.Fatalf("Current() failed: %v", err)
	}
	if p.Text != "Start" {
		t.Errorf("Current() text = %q, want %q", p.Text, "Start")
	}

	s.ChooseOption(p.Options[0])

	p, err = s.Current()
	if err != nil {
		t.Fatalf("Current() failed after ChooseOption: %v", err)
	}
	if p.Text != "End" {
		t.Errorf("Current() text = %q, want %q", p.Text, "End")
	}
	if !p.Terminal() {
		t.Error("paragraph 2 should be terminal")
	}
}

func TestDanglingOptionTarget(t *testing.T) {
	s := New()
	s.SelectBook(twoParagraphBook())
	if err := s.StartNewGame(); err != nil {
		t.Fatalf("StartNewGame() failed: %v", err)
	}

	// ChooseOption itself never validates; the failure surfaces at lookup.
	s.ChooseOption(book.Option{Text: "Leap", Target: 99})
	if s.Paragraph() != 99 {
		t.Fatalf("Paragraph() = %d, want 99", s.Paragraph())
	}

	_, err := s.Current()
	if err == nil {
		t.Fatal("Current() succeeded for a dangling target, expected error")
	}
	if !errors.Is(err, book.ErrParagraphNotFound) {
		t.Errorf("Current() returned %q, expected ErrParagraphNotFound", err)
	}
}

func TestRestore(t *testing.T) {
	s := New()
	b := twoParagraphBook()

	s.Restore(b, 2)

	if !s.InBook() || s.Book() != b {
		t.Error("Restore did not set the active book")
	}
	p, err := s.Current()
	if err != nil {
		t.Fatalf("Current() failed after Restore: %v", err)
	}
	if p.Number != 2 {
		t.Errorf("Current() number = %d, want 2", p.Number)
	}
}
