package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// minCardWrap keeps glamour from wrapping narrow tiles into single words.
const minCardWrap = 12

// maxCachedCards bounds the rendered-card memo; resizing the terminal mints new widths.
const maxCachedCards = 256

// cardKey identifies one rendered card.
type cardKey struct {
	width    int
	markdown string
}

// cardRenderer turns tile card markdown into styled text.
// Tiles of different widths share one frame, so a glamour renderer is kept per wrap
// width and finished cards are memoized until the cache fills.
type cardRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
	cards     map[cardKey]string
}

// newCardRenderer constructs a renderer for one glamour standard style.
func newCardRenderer(style string) *cardRenderer {
	return &cardRenderer{
		style:     style,
		renderers: map[int]*glamour.TermRenderer{},
		cards:     map[cardKey]string{},
	}
}

// render returns the card for markdown wrapped to width. Render failures fall back to
// the raw markdown so a tile never shows an error.
func (r *cardRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	key := cardKey{width: max(width, minCardWrap), markdown: markdown}
	if card, ok := r.cards[key]; ok {
		return card
	}

	renderer, err := r.rendererFor(key.width)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	card := trimBlankLines(out)
	if len(r.cards) >= maxCachedCards {
		clear(r.cards)
	}
	r.cards[key] = card
	return card
}

// rendererFor returns the cached glamour renderer for one wrap width.
func (r *cardRenderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	if renderer, ok := r.renderers[width]; ok {
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[width] = renderer
	return renderer, nil
}

// trimBlankLines drops the padding lines glamour puts around a document.
// Lines holding only escape codes and spaces count as blank.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	blank := func(line string) bool {
		return strings.TrimSpace(ansi.Strip(line)) == ""
	}
	start, end := 0, len(lines)
	for start < end && blank(lines[start]) {
		start++
	}
	for end > start && blank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
