package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type HeaderData struct {
	Mode         string
	Level        int
	Exp          int
	Need         int
	Gold         int
	ProgressView string
	Blocks       int
	Defeated     int
}

var (
	modeDailyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	modeLongStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")).Padding(0, 1)
	goldStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// RenderHeader is always exactly two lines so the board starts on a fixed row.
func RenderHeader(d HeaderData) string {
	var title string
	if d.Mode == "longterm" {
		title = modeLongStyle.Render("LONG-TERM")
	} else {
		title = modeDailyStyle.Render("DAILY")
	}
	first := fmt.Sprintf("Todo RPG ⚔  %s  enemies %d  defeated %d", title, d.Blocks, d.Defeated)

	var second string
	if d.Mode == "longterm" {
		second = goldStyle.Render(fmt.Sprintf("gold %d", d.Gold))
	} else {
		second = fmt.Sprintf("Lv.%d %s %d/%d exp", d.Level, d.ProgressView, d.Exp, d.Need)
	}
	return strings.Join([]string{first, second}, "\n")
}
