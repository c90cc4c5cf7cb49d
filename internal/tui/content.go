package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/evanschultz/matter/internal/domain"
)

// tileContentText returns the plain text a tile shows, which is also what gets copied.
func (m Model) tileContentText(c domain.Category) string {
	switch c {
	case domain.Unassigned:
		return "Select a category"
	case domain.CategoryMusic:
		return m.content.MusicURL
	case domain.CategoryColors:
		return strings.Join(m.content.Colors, " ")
	default:
		return c.String() + " content coming soon..."
	}
}

// tileCardMarkdown returns the markdown card rendered inside a tile.
func (m Model) tileCardMarkdown(c domain.Category) string {
	switch c {
	case domain.Unassigned:
		return "_Select a category_"
	case domain.CategoryMusic:
		return "**Playlist**\n\n<" + m.content.MusicURL + ">"
	default:
		return "_" + m.tileContentText(c) + "_"
	}
}

// renderTileBody renders the content area of one tile.
func (m Model) renderTileBody(c domain.Category, width int) string {
	if c == domain.CategoryColors {
		return m.renderSwatches(width)
	}
	if m.cards == nil {
		return m.tileContentText(c)
	}
	return m.cards.render(m.tileCardMarkdown(c), width)
}

// renderSwatches draws one colored block per configured swatch.
func (m Model) renderSwatches(width int) string {
	lines := make([]string, 0, len(m.content.Colors))
	for _, hex := range m.content.Colors {
		block := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
		lines = append(lines, block+" "+truncate(hex, max(0, width-4)))
	}
	return strings.Join(lines, "\n")
}
