package game

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todorpg/internal/model"
)

type Mood string

const (
	MoodDefault Mood = "default"
	MoodLow     Mood = "low"
	MoodHit     Mood = "hit"
	MoodDown    Mood = "down"
)

// MoodOf resolves the display state of a block. A hit flash wins over
// everything else, then defeat, then the last-hit-point warning.
func MoodOf(b model.Block, hit bool) Mood {
	switch {
	case hit:
		return MoodHit
	case b.Completed:
		return MoodDown
	case b.HP == 1:
		return MoodLow
	default:
		return MoodDefault
	}
}

// lines holds the speech bubble templates per character and mood; %d is
// replaced by the remaining hit points.
var lines = map[string]map[Mood][]string{
	"A_01": {
		MoodHit:     {"Kyaa!", "Ouch!"},
		MoodDown:    {"I give up...", "You win..."},
		MoodLow:     {"Just one more...!", "Hanging by a thread!"},
		MoodDefault: {"%d left\nto go", "Still %d to beat me"},
	},
	"B_01": {
		MoodHit:     {"Gwah!", "Hrrk!"},
		MoodDown:    {"Grr...", "Impossible..."},
		MoodLow:     {"One more hit!?", "Not like this!"},
		MoodDefault: {"%d more, fool", "Come at me, %d left"},
	},
	"C_01": {
		MoodHit:     {"Hyan!", "Eep!"},
		MoodDown:    {"Defeated...", "So tired..."},
		MoodLow:     {"This might be it...", "Almost done for..."},
		MoodDefault: {"%d remaining", "I have %d lives"},
	},
}

type spoken struct {
	mood Mood
	tmpl string
}

// Flavor picks speech lines for blocks and keeps each pick until the block
// changes mood, so redraws do not reshuffle the text.
type Flavor struct {
	pick   func([]string) string
	chosen map[string]spoken
}

func NewFlavor(pick func([]string) string) *Flavor {
	if pick == nil {
		pick = RandomPick
	}
	return &Flavor{pick: pick, chosen: make(map[string]spoken)}
}

func (f *Flavor) Line(b model.Block, hit bool) string {
	mood := MoodOf(b, hit)
	cur, ok := f.chosen[b.ID]
	if !ok || cur.mood != mood {
		cur = spoken{mood: mood, tmpl: f.pick(linesFor(b.CharID)[mood])}
		f.chosen[b.ID] = cur
	}
	if strings.Contains(cur.tmpl, "%d") {
		return fmt.Sprintf(cur.tmpl, b.HP)
	}
	return cur.tmpl
}

// Forget drops cached picks for blocks that no longer exist.
func (f *Flavor) Forget(keep []model.Block) {
	alive := make(map[string]bool, len(keep))
	for _, b := range keep {
		alive[b.ID] = true
	}
	for id := range f.chosen {
		if !alive[id] {
			delete(f.chosen, id)
		}
	}
}

func linesFor(charID string) map[Mood][]string {
	if set, ok := lines[charID]; ok {
		return set
	}
	return lines[model.DefaultCharacter]
}

func character(b model.Block) string {
	if model.IsCharacter(b.CharID) {
		return b.CharID
	}
	return model.DefaultCharacter
}

// Icon returns the sprite selector for a block, e.g. "hit_B_01".
func Icon(b model.Block, hit bool) string {
	c := character(b)
	switch {
	case b.Completed:
		return "down_" + c
	case hit:
		return "hit_" + c
	default:
		return "stand_" + c
	}
}

const (
	HeartFull  = "♥"
	HeartEmpty = "♡"
)

// HPGlyphs renders remaining hit points followed by lost ones.
func HPGlyphs(b model.Block) string {
	hp := max(b.HP, 0)
	lost := max(b.Max-hp, 0)
	return strings.Repeat(HeartFull, hp) + strings.Repeat(HeartEmpty, lost)
}
