package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// overlayCenter draws modal centered over a dimmed copy of base.
func overlayCenter(base, modal string, width, height int) string {
	bgLines := strings.Split(base, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}
	modalLines := strings.Split(modal, "\n")

	modalW := 0
	for _, l := range modalLines {
		modalW = max(modalW, ansi.StringWidth(l))
	}
	startX := max(0, (width-modalW)/2)
	startY := max(0, (height-len(modalLines))/3)

	out := make([]string, 0, len(bgLines))
	for y, bg := range bgLines {
		plain := ansi.Strip(bg)
		mi := y - startY
		if mi < 0 || mi >= len(modalLines) {
			out = append(out, dimStyle.Render(plain))
			continue
		}
		left := ansi.Truncate(plain, startX, "")
		pad := startX - ansi.StringWidth(left)
		out = append(out, dimStyle.Render(left)+strings.Repeat(" ", max(0, pad))+modalLines[mi])
	}
	return strings.Join(out, "\n")
}
