package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	Confetti      string
	Board         string
	Overlay       string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Width         int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PanelChrome is the number of columns a panel spends on border and padding.
const PanelChrome = 4

// BoardTop returns the screen row of the first board content line for a
// header of the given rendered text.
func BoardTop(header string) int {
	// header, confetti line, then the panel's top border
	return lipgloss.Height(header) + 1 + 1
}

func RenderApp(data AppData) string {
	width := data.Width
	if width <= PanelChrome {
		width = 80
	}
	board := panelStyle.Width(width - 2).Render(data.Board)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		data.Confetti,
		board,
	}
	if data.Overlay != "" {
		lines = append(lines, panelStyle.Width(width-2).Render(data.Overlay))
	}
	lines = append(lines, status)
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md for a terminal of the given width, falling back
// to the raw text if glamour fails.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
