package book

import (
	"errors"
	"fmt"
)

// ErrParagraphNotFound is returned when a paragraph number has no entry in
// the book. This covers both dangling option targets and saves that point
// past edited or removed content.
var ErrParagraphNotFound = errors.New("paragraph not found")

// Option is a labeled choice on a paragraph. Target is the number of the
// paragraph to jump to; it is not checked against the book at load time.
type Option struct {
	Text   string `json:"text"`
	Target int    `json:"target"`
}

// Paragraph is a single narrative beat addressed by an integer number.
// Numbers are unique within a book but need not be contiguous or start at 1.
type Paragraph struct {
	Number    int      `json:"number"`
	Text      string   `json:"text"`
	ImagePath string   `json:"image_path,omitempty"`
	Options   []Option `json:"options,omitempty"`
}

// Terminal reports whether the paragraph offers no further options,
// i.e. it ends the story.
func (p Paragraph) Terminal() bool {
	return len(p.Options) == 0
}

// Book is a complete branching-narrative content unit.
type Book struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Paragraphs  []Paragraph `json:"paragraphs"`
}

// Paragraph returns the paragraph with the given number. Option targets are
// only resolved here, so a dangling target surfaces as ErrParagraphNotFound
// when navigation reaches it, not when the book is loaded.
func (b *Book) Paragraph(number int) (*Paragraph, error) {
	for i := range b.Paragraphs {
		if b.Paragraphs[i].Number == number {
			return &b.Paragraphs[i], nil
		}
	}
	return nil, fmt.Errorf("book %q has no paragraph %d: %w", b.ID, number, ErrParagraphNotFound)
}
