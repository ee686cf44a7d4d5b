// Package slides turns the long-form answers document into a slide deck
// grouped by category.
package slides

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// Slide is one question and its answer within a category.
type Slide struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Stats summarizes a deck.
type Stats struct {
	TotalSlides int            `json:"totalSlides"`
	Categories  map[string]int `json:"categories"`
}

var categorySplit = regexp.MustCompile(`(?m)^## `)

// Parse splits markdown into slides. Each "## " heading starts a category
// and each "### " heading within it starts a slide. Slide IDs are assigned
// in document order starting at zero.
func Parse(text string) []Slide {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	slides := []Slide{}
	for _, section := range categorySplit.Split(text, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		lines := strings.Split(section, "\n")
		category := strings.TrimSpace(lines[0])

		var (
			title   string
			open    bool
			content []string
		)
		flush := func() {
			if !open {
				return
			}
			slides = append(slides, Slide{
				ID:       len(slides),
				Category: category,
				Title:    title,
				Content:  strings.TrimSpace(strings.Join(content, "\n")),
			})
		}

		for _, line := range lines[1:] {
			if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "### ") {
				flush()
				title = strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))
				open = true
				content = nil
				continue
			}
			if open {
				content = append(content, line)
			}
		}
		flush()
	}
	return slides
}

// Deck is an immutable, parsed slide deck.
type Deck struct {
	slides []Slide
}

// NewDeck wraps already parsed slides.
func NewDeck(slides []Slide) *Deck {
	return &Deck{slides: slides}
}

// LoadDeck reads and parses the answers document at path. A missing file
// yields an empty deck.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("slides document not found", "path", path)
		return NewDeck(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slides: %w", err)
	}

	deck := NewDeck(Parse(string(data)))
	slog.Info("slides loaded", "path", path, "slides", len(deck.slides))
	return deck, nil
}

// All returns every slide in order.
func (d *Deck) All() []Slide {
	out := make([]Slide, len(d.slides))
	copy(out, d.slides)
	return out
}

// Get returns the slide with the given ID.
func (d *Deck) Get(id int) (Slide, bool) {
	if id < 0 || id >= len(d.slides) {
		return Slide{}, false
	}
	return d.slides[id], true
}

// Stats counts slides per category.
func (d *Deck) Stats() Stats {
	s := Stats{TotalSlides: len(d.slides), Categories: make(map[string]int)}
	for _, slide := range d.slides {
		s.Categories[slide.Category]++
	}
	return s
}
