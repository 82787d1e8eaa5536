// Package progression owns the auxiliary counters earned by completing tasks:
// experience and levels on the daily board, gold on the long-term board, and
// the once-a-day reset of the daily track.
package progression

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/todorpg/internal/model"
)

var ErrInvalidRules = errors.New("progression: invalid rules")

const StartLevel = 1

type Rules struct {
	ExpPerTask  int
	LevelBase   int
	LevelStep   int
	GoldPerTask int
	ResetHour   int
}

func DefaultRules() Rules {
	return Rules{
		ExpPerTask:  10,
		LevelBase:   50,
		LevelStep:   25,
		GoldPerTask: 5,
		ResetHour:   4,
	}
}

func (r Rules) Validate() error {
	if r.ExpPerTask < 0 || r.GoldPerTask < 0 {
		return fmt.Errorf("%w: rewards must be non-negative", ErrInvalidRules)
	}
	if r.LevelBase <= 0 || r.LevelStep < 0 {
		return fmt.Errorf("%w: level threshold must be positive", ErrInvalidRules)
	}
	if r.ResetHour < 0 || r.ResetHour > 23 {
		return fmt.Errorf("%w: reset hour must be in [0,23]", ErrInvalidRules)
	}
	return nil
}

// Threshold is the experience needed to leave the given level.
func (r Rules) Threshold(level int) int {
	if level < StartLevel {
		level = StartLevel
	}
	return r.LevelBase + level*r.LevelStep
}

// Award applies one task completion to the track selected by mode. The
// counters of the other track are left untouched.
func Award(p model.Progress, mode model.Mode, r Rules) (model.Progress, bool) {
	switch mode {
	case model.ModeLongTerm:
		p.Gold += r.GoldPerTask
		return p, false
	case model.ModeDaily:
		if p.Level < StartLevel {
			p.Level = StartLevel
		}
		p.Exp += r.ExpPerTask
		leveled := false
		for r.LevelBase > 0 && p.Exp >= r.Threshold(p.Level) {
			p.Exp -= r.Threshold(p.Level)
			p.Level++
			leveled = true
		}
		return p, leveled
	default:
		return p, false
	}
}

// Reset clears the daily track.
func Reset(p model.Progress) model.Progress {
	p.Exp = 0
	p.Level = StartLevel
	return p
}

// Ratio is the fill of the current level's experience bar in [0,1].
func Ratio(p model.Progress, r Rules) float64 {
	need := r.Threshold(p.Level)
	if need <= 0 {
		return 0
	}
	f := float64(p.Exp) / float64(need)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// boundaryAtOrBefore is the latest reset instant not after t, in t's location.
func boundaryAtOrBefore(t time.Time, hour int) time.Time {
	b := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	if b.After(t) {
		b = b.AddDate(0, 0, -1)
	}
	return b
}

// NextResetAfter returns the first reset boundary strictly after t.
func NextResetAfter(t time.Time, hour int) time.Time {
	return boundaryAtOrBefore(t, hour).AddDate(0, 0, 1)
}

// ResetDue reports whether a reset boundary, in now's location, has passed
// since last. A zero last means no reset was ever recorded.
func ResetDue(last, now time.Time, hour int) bool {
	if last.IsZero() {
		return true
	}
	return last.Before(boundaryAtOrBefore(now, hour))
}
