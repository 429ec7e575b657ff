package splitpanel

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ScrollThumbChar = "█"
	ScrollTrackChar = "│"
)

// BuildScrollbar returns one cell per visible row. The bar is blank when
// everything fits; otherwise the thumb is proportional to visible/total.
func BuildScrollbar(visible, total, offset int, active, track lipgloss.Color, focused bool) []string {
	bar := make([]string, visible)
	if total <= visible {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}

	thumb := max(visible*visible/total, 1)
	thumb = min(thumb, max(visible-2, 1))

	room := max(visible-thumb, 0)
	pos := offset * room / max(total-visible, 1)
	pos = min(max(pos, 0), room)

	thumbColor := track
	if focused {
		thumbColor = active
	}
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)
	trackStyle := lipgloss.NewStyle().Foreground(track)

	for i := range bar {
		if i >= pos && i < pos+thumb {
			bar[i] = thumbStyle.Render(ScrollThumbChar)
		} else {
			bar[i] = trackStyle.Render(ScrollTrackChar)
		}
	}
	return bar
}
