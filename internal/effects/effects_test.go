package effects

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/todorpg/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tok-%d", n)
	}
}

func TestStrikeSpawnsOneTokenPerKind(t *testing.T) {
	s := NewScheduler(nil, seqIDs())
	toks := s.Strike("b1", t0)
	require.Len(t, toks, len(Kinds))
	seen := map[string]bool{}
	for _, tok := range toks {
		assert.False(t, seen[tok.ID], "ids must be unique")
		seen[tok.ID] = true
		assert.Equal(t, "b1", tok.BlockID)
		assert.Len(t, s.Active(tok.Kind, "b1"), 1)
	}
	assert.Equal(t, 4, s.Len())
}

func TestTokensExpireIndependently(t *testing.T) {
	clk := clock.NewFake(t0)
	s := NewScheduler(nil, seqIDs())
	s.Strike("b1", clk.Now())

	assert.Equal(t, 1, s.Sweep(clk.Advance(400*time.Millisecond)), "blast only")
	assert.Empty(t, s.Active(KindBlast, "b1"))
	assert.Len(t, s.Active(KindSlash, "b1"), 1)

	assert.Equal(t, 2, s.Sweep(clk.Advance(400*time.Millisecond)), "hit and slash")
	assert.Len(t, s.Active(KindPopup, "b1"), 1)

	assert.Equal(t, 1, s.Sweep(clk.Advance(300*time.Millisecond)), "popup")
	assert.Equal(t, 0, s.Len())

	assert.Equal(t, 0, s.Sweep(clk.Advance(time.Hour)), "nothing left to remove")
}

func TestExpireIsSilentForMissingTokens(t *testing.T) {
	s := NewScheduler(nil, seqIDs())
	toks := s.Strike("b1", t0)
	assert.True(t, s.Expire(toks[0].Kind, toks[0].ID))
	assert.False(t, s.Expire(toks[0].Kind, toks[0].ID))
	assert.False(t, s.Expire(Kind("nope"), "x"))
}

func TestHitRespectsDelay(t *testing.T) {
	s := NewScheduler(nil, seqIDs())
	s.Strike("b1", t0)
	assert.False(t, s.Has(KindHit, "b1", t0))
	assert.True(t, s.Has(KindHit, "b1", t0.Add(100*time.Millisecond)))
	assert.False(t, s.Has(KindHit, "b1", t0.Add(800*time.Millisecond)))
	assert.True(t, s.Has(KindSlash, "b1", t0))
}

func TestOverlappingStrikesKeepSeparateTokens(t *testing.T) {
	s := NewScheduler(nil, seqIDs())
	s.Strike("b1", t0)
	s.Strike("b1", t0.Add(300*time.Millisecond))
	assert.Len(t, s.Active(KindPopup, "b1"), 2)
	s.Sweep(t0.Add(1100 * time.Millisecond))
	assert.Len(t, s.Active(KindPopup, "b1"), 1)
}

func TestSetLifetimesIgnoresInvalidEntries(t *testing.T) {
	s := NewScheduler(Lifetimes{KindHit: {TTL: 300 * time.Millisecond}, KindBlast: {TTL: 0}}, nil)
	assert.Equal(t, 300*time.Millisecond, s.Lifetime(KindHit).TTL)
	assert.Equal(t, 400*time.Millisecond, s.Lifetime(KindBlast).TTL)
}

func TestClearDropsBlockTokens(t *testing.T) {
	s := NewScheduler(nil, seqIDs())
	s.Strike("b1", t0)
	s.Strike("b2", t0)
	s.Clear("b1")
	assert.Equal(t, 4, s.Len())
	assert.Empty(t, s.Active(KindHit, "b1"))
}
