package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ConfettiShot struct {
	X      float64
	Colors []string
	Seed   uint64
	// Age is the fraction of the burst's lifetime already spent, in [0,1).
	Age float64
}

// RenderConfetti draws every active burst on a single line of the given width.
func RenderConfetti(shots []ConfettiShot, width int) string {
	if width <= 0 {
		width = 80
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	glyphs := []string{"*", "✦", "•", "✧", "+"}
	for _, s := range shots {
		if len(s.Colors) == 0 {
			continue
		}
		center := int(s.X * float64(width-1))
		spread := 2 + int(s.Age*float64(width)/4)
		r := s.Seed*2654435761 + 1
		for n := 0; n < 10; n++ {
			r = r*6364136223846793005 + 1442695040888963407
			off := int(r>>33)%(2*spread+1) - spread
			col := center + off
			if col < 0 || col >= width {
				continue
			}
			g := glyphs[int(r>>40)%len(glyphs)]
			c := s.Colors[int(r>>50)%len(s.Colors)]
			cells[col] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(g)
		}
	}
	return strings.TrimRight(strings.Join(cells, ""), " ")
}

type InputPanelData struct {
	Title string
	Body  string
	Hint  string
	Error string
}

func RenderInputPanel(d InputPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Body)
	if d.Error != "" {
		b.WriteString("\n" + errorStyle.Render(d.Error))
	}
	if d.Hint != "" {
		b.WriteString("\n" + footerStyle.Render(d.Hint))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

type PresetRowData struct {
	Name string
	Body string
}

func RenderPresetList(rows []PresetRowData, width int) string {
	if len(rows) == 0 {
		return emptyStyle.Render("no presets saved; /preset save <name> <tasks...>")
	}
	var b strings.Builder
	b.WriteString("presets:\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("- %s: %s\n", r.Name, truncate(strings.ReplaceAll(r.Body, "\n", " "), width-len(r.Name)-6)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
