package progression

import (
	"testing"
	"time"

	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwardDailyAddsExpAndLevels(t *testing.T) {
	r := Rules{ExpPerTask: 30, LevelBase: 50, LevelStep: 0}
	p := model.Progress{Level: 1, Gold: 7}

	p, up := Award(p, model.ModeDaily, r)
	assert.False(t, up)
	assert.Equal(t, 30, p.Exp)

	p, up = Award(p, model.ModeDaily, r)
	assert.True(t, up)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 10, p.Exp, "remainder carries over")
	assert.Equal(t, 7, p.Gold, "gold untouched in daily mode")
}

func TestAwardLoopsOverMultipleLevels(t *testing.T) {
	r := Rules{ExpPerTask: 200, LevelBase: 50, LevelStep: 0}
	p, up := Award(model.Progress{Level: 1}, model.ModeDaily, r)
	require.True(t, up)
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, 0, p.Exp)
}

func TestAwardLongTermAddsGoldOnly(t *testing.T) {
	r := DefaultRules()
	p, up := Award(model.Progress{Exp: 3, Level: 2}, model.ModeLongTerm, r)
	assert.False(t, up)
	assert.Equal(t, model.Progress{Exp: 3, Level: 2, Gold: r.GoldPerTask}, p)
}

func TestAwardUnknownModeIsNoop(t *testing.T) {
	p := model.Progress{Exp: 1, Level: 1}
	got, up := Award(p, model.Mode("x"), DefaultRules())
	assert.False(t, up)
	assert.Equal(t, p, got)
}

func TestReset(t *testing.T) {
	got := Reset(model.Progress{Exp: 40, Level: 6, Gold: 9})
	assert.Equal(t, model.Progress{Exp: 0, Level: StartLevel, Gold: 9}, got)
}

func TestRatio(t *testing.T) {
	r := Rules{LevelBase: 100}
	assert.InDelta(t, 0.25, Ratio(model.Progress{Exp: 25, Level: 1}, r), 1e-9)
	assert.Equal(t, 0.0, Ratio(model.Progress{Exp: -5, Level: 1}, r))
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
	assert.ErrorIs(t, Rules{LevelBase: 0}.Validate(), ErrInvalidRules)
	assert.ErrorIs(t, Rules{LevelBase: 1, ResetHour: 24}.Validate(), ErrInvalidRules)
	assert.ErrorIs(t, Rules{LevelBase: 1, ExpPerTask: -1}.Validate(), ErrInvalidRules)
}

func TestNextResetAfter(t *testing.T) {
	loc := time.UTC
	before := time.Date(2026, 3, 1, 3, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 1, 4, 0, 0, 0, loc), NextResetAfter(before, 4))

	at := time.Date(2026, 3, 1, 4, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 2, 4, 0, 0, 0, loc), NextResetAfter(at, 4))
}

func TestResetDue(t *testing.T) {
	loc := time.UTC
	last := time.Date(2026, 3, 1, 4, 30, 0, 0, loc)

	assert.True(t, ResetDue(time.Time{}, last, 4), "never reset")
	assert.False(t, ResetDue(last, time.Date(2026, 3, 1, 23, 0, 0, 0, loc), 4))
	assert.False(t, ResetDue(last, time.Date(2026, 3, 2, 3, 59, 0, 0, loc), 4))
	assert.True(t, ResetDue(last, time.Date(2026, 3, 2, 4, 0, 0, 0, loc), 4))
	assert.True(t, ResetDue(last, time.Date(2026, 3, 9, 12, 0, 0, 0, loc), 4))

	// Once stamped, the same boundary does not fire twice.
	stamped := time.Date(2026, 3, 2, 4, 0, 1, 0, loc)
	assert.False(t, ResetDue(stamped, time.Date(2026, 3, 2, 5, 0, 0, 0, loc), 4))
}
