package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type TaskRowData struct {
	ID       string
	Text     string
	Done     bool
	Selected bool
	// Phase is the press phase while this task is held, empty otherwise.
	Phase  string
	Charge float64
}

type BlockPanelData struct {
	ID        string
	Title     string
	Icon      string
	Bubble    string
	HPGlyphs  string
	HP        int
	Max       int
	Completed bool
	Selected  bool
	Hit       bool
	Slash     bool
	Popups    int
	Blast     bool
	Tasks     []TaskRowData
}

type BoardData struct {
	Blocks []BlockPanelData
	Width  int
	Frame  int
}

const maxHearts = 12

// RowRef identifies what a board line shows. TaskID is empty for block
// header lines and both ids are empty for decoration.
type RowRef struct {
	BlockID string
	TaskID  string
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	doneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8")).Strikethrough(true)
	heartStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	bubbleStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("230"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	doneTaskStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	slashStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	popupStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	phaseStyles = map[string]lipgloss.Style{
		"soft":   lipgloss.NewStyle().Underline(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Underline(true),
		"hard":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Underline(true),
	}
)

var sprites = map[string]string{
	"A_01": "(•̀ᴗ•́)",
	"B_01": "(ಠ益ಠ)",
	"C_01": "(｡•ᴗ•｡)",
}

// Sprite maps an icon selector such as "hit_B_01" to its terminal drawing.
func Sprite(icon string) string {
	pose, char, ok := strings.Cut(icon, "_")
	if !ok {
		return "(?)"
	}
	face, ok := sprites[char]
	if !ok {
		face = sprites["A_01"]
	}
	switch pose {
	case "hit":
		return "(✖﹏✖)"
	case "down":
		return "(x_x)"
	default:
		return face
	}
}

// RenderBoard draws blocks in the given order and returns one RowRef per
// output line so pointer positions can be mapped back to tasks.
func RenderBoard(d BoardData) (string, []RowRef) {
	width := d.Width
	if width < 20 {
		width = 20
	}
	if len(d.Blocks) == 0 {
		msg := emptyStyle.Render("No enemies yet. Press n to summon one from a task list.")
		return msg, []RowRef{{}}
	}

	lines := make([]string, 0, len(d.Blocks)*4)
	refs := make([]RowRef, 0, cap(lines))
	add := func(line string, ref RowRef) {
		lines = append(lines, line)
		refs = append(refs, ref)
	}

	for i, b := range d.Blocks {
		if i > 0 {
			add("", RowRef{})
		}
		add(blockHeader(b, width, d.Frame), RowRef{BlockID: b.ID})
		if b.Bubble != "" {
			bubble := strings.ReplaceAll(b.Bubble, "\n", " ")
			add("    "+bubbleStyle.Render("「"+truncate(bubble, width-8)+"」"), RowRef{BlockID: b.ID})
		}
		for _, t := range b.Tasks {
			add(taskRow(t, width), RowRef{BlockID: b.ID, TaskID: t.ID})
		}
	}
	return strings.Join(lines, "\n"), refs
}

func blockHeader(b BlockPanelData, width, frame int) string {
	cursor := "  "
	if b.Selected {
		cursor = cursorStyle.Render("▶ ")
	}
	sprite := Sprite(b.Icon)
	if b.Hit && frame%2 == 1 {
		sprite = " " + sprite
	}

	title := b.Title
	if strings.TrimSpace(title) == "" {
		title = "Enemy"
	}
	style := titleStyle
	if b.Completed {
		style = doneTitleStyle
	}

	var fx []string
	if b.Slash {
		fx = append(fx, slashStyle.Render("⟋⟋"))
	}
	for n := 0; n < b.Popups; n++ {
		fx = append(fx, popupStyle.Render("-1"))
	}
	if b.Blast {
		fx = append(fx, blastStyle.Render("✸"))
	}

	glyphs := b.HPGlyphs
	if lipgloss.Width(glyphs) > maxHearts {
		glyphs = fmt.Sprintf("♥×%d", b.HP)
	}
	hp := fmt.Sprintf("%s %d/%d", heartStyle.Render(glyphs), b.HP, b.Max)
	tail := "  " + hp
	if len(fx) > 0 {
		tail += " " + strings.Join(fx, " ")
	}
	room := width - lipgloss.Width(cursor) - lipgloss.Width(sprite) - 1 - lipgloss.Width(tail)
	if room < 4 {
		room = 4
	}
	return cursor + sprite + " " + style.Render(truncate(title, room)) + tail
}

func taskRow(t TaskRowData, width int) string {
	cursor := "    "
	if t.Selected {
		cursor = "  " + cursorStyle.Render("› ")
	}
	box := "[ ]"
	budget := width - 8
	switch {
	case t.Done:
		box = "[x]"
		return cursor + box + " " + doneTaskStyle.Render(truncate(t.Text, budget))
	case t.Phase != "":
		text := truncate(t.Text, budget-8)
		if st, ok := phaseStyles[t.Phase]; ok {
			text = st.Render(text)
		}
		return cursor + box + " " + text + " " + chargeMeter(t.Charge)
	}
	text := truncate(t.Text, budget)
	return cursor + box + " " + text
}

func chargeMeter(f float64) string {
	const slots = 5
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	n := int(f*slots + 0.5)
	return "[" + strings.Repeat("■", n) + strings.Repeat("□", slots-n) + "]"
}

func truncate(s string, width int) string {
	if width < 1 {
		width = 1
	}
	return runewidth.Truncate(s, width, "…")
}
