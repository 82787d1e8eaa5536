package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func sampleBoard() BoardData {
	return BoardData{
		Width: 60,
		Blocks: []BlockPanelData{
			{
				ID: "b2", Title: "Chores", Icon: "stand_B_01", Bubble: "2 more, fool", HPGlyphs: "♥♥♡", HP: 2, Max: 3,
				Tasks: []TaskRowData{
					{ID: "t1", Text: "dishes", Done: true},
					{ID: "t2", Text: "laundry", Phase: "medium", Charge: 0.5},
					{ID: "t3", Text: "vacuum"},
				},
			},
			{ID: "b1", Icon: "down_A_01", HPGlyphs: "", Completed: true},
		},
	}
}

func TestRenderBoardRowRefsMatchLines(t *testing.T) {
	out, refs := RenderBoard(sampleBoard())
	lines := strings.Split(out, "\n")
	if len(lines) != len(refs) {
		t.Fatalf("lines=%d refs=%d", len(lines), len(refs))
	}
	want := []RowRef{
		{BlockID: "b2"},
		{BlockID: "b2"},
		{BlockID: "b2", TaskID: "t1"},
		{BlockID: "b2", TaskID: "t2"},
		{BlockID: "b2", TaskID: "t3"},
		{},
		{BlockID: "b1"},
	}
	for i, w := range want {
		if refs[i] != w {
			t.Fatalf("ref[%d] = %+v, want %+v", i, refs[i], w)
		}
	}
	if !strings.Contains(lines[3], "laundry") || !strings.Contains(lines[3], "[") {
		t.Fatalf("pressed task row missing charge meter: %q", lines[3])
	}
}

func TestRenderBoardLinesFitWidth(t *testing.T) {
	d := sampleBoard()
	d.Blocks[0].Title = strings.Repeat("very long title ", 10)
	d.Blocks[0].Tasks[2].Text = strings.Repeat("x", 200)
	d.Blocks[0].Slash, d.Blocks[0].Blast, d.Blocks[0].Popups = true, true, 2
	out, _ := RenderBoard(d)
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > d.Width {
			t.Fatalf("line wider than %d (%d): %q", d.Width, w, line)
		}
	}
}

func TestRenderBoardEmpty(t *testing.T) {
	out, refs := RenderBoard(BoardData{Width: 40})
	if len(refs) != 1 || refs[0] != (RowRef{}) {
		t.Fatalf("unexpected refs for empty board: %+v", refs)
	}
	if !strings.Contains(out, "No enemies") {
		t.Fatalf("unexpected empty board: %q", out)
	}
}

func TestSprite(t *testing.T) {
	if Sprite("down_C_01") != "(x_x)" {
		t.Fatalf("defeated sprite = %q", Sprite("down_C_01"))
	}
	if Sprite("stand_B_01") != sprites["B_01"] {
		t.Fatalf("standing sprite = %q", Sprite("stand_B_01"))
	}
	if Sprite("garbage") != "(?)" {
		t.Fatalf("unknown sprite = %q", Sprite("garbage"))
	}
}

func TestRenderHeaderIsTwoLines(t *testing.T) {
	for _, mode := range []string{"daily", "longterm"} {
		out := RenderHeader(HeaderData{Mode: mode, Level: 2, Exp: 5, Need: 75, Gold: 3})
		if got := lipgloss.Height(out); got != 2 {
			t.Fatalf("%s header height = %d", mode, got)
		}
	}
	if BoardTop(RenderHeader(HeaderData{})) != 4 {
		t.Fatalf("board top = %d", BoardTop(RenderHeader(HeaderData{})))
	}
}

func TestRenderConfettiStaysInWidth(t *testing.T) {
	out := RenderConfetti([]ConfettiShot{{X: 0.99, Colors: []string{"#ff0000"}, Seed: 3, Age: 0.9}}, 30)
	if w := lipgloss.Width(out); w > 30 {
		t.Fatalf("confetti width %d", w)
	}
	if RenderConfetti(nil, 30) != "" {
		t.Fatal("expected empty confetti line")
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("  ", 40) != "" {
		t.Fatal("expected empty output")
	}
	if out := RenderMarkdown("# Help\n\n- item", 40); !strings.Contains(out, "Help") {
		t.Fatalf("markdown output missing heading: %q", out)
	}
}
