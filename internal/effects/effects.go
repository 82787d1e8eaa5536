package effects

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindHit   Kind = "hit"
	KindSlash Kind = "slash"
	KindPopup Kind = "popup"
	KindBlast Kind = "blast"
)

// Kinds is the fixed spawn order of a strike.
var Kinds = []Kind{KindHit, KindSlash, KindPopup, KindBlast}

// Lifetime controls how long a token stays active. Delay postpones the moment
// it becomes visible without extending its expiry.
type Lifetime struct {
	Delay time.Duration
	TTL   time.Duration
}

type Lifetimes map[Kind]Lifetime

func DefaultLifetimes() Lifetimes {
	return Lifetimes{
		KindHit:   {Delay: 100 * time.Millisecond, TTL: 800 * time.Millisecond},
		KindSlash: {TTL: 800 * time.Millisecond},
		KindPopup: {TTL: 1100 * time.Millisecond},
		KindBlast: {TTL: 400 * time.Millisecond},
	}
}

type Token struct {
	ID        string
	Kind      Kind
	BlockID   string
	CreatedAt time.Time
	VisibleAt time.Time
	ExpiresAt time.Time
}

func (t Token) VisibleAtTime(now time.Time) bool {
	return !now.Before(t.VisibleAt) && now.Before(t.ExpiresAt)
}

// Scheduler keeps the active token set of every kind. Tokens are independent
// of each other and of the store.
type Scheduler struct {
	lifetimes Lifetimes
	newID     func() string
	active    map[Kind]map[string]Token
}

func NewScheduler(l Lifetimes, newID func() string) *Scheduler {
	if newID == nil {
		newID = uuid.NewString
	}
	s := &Scheduler{newID: newID, active: make(map[Kind]map[string]Token, len(Kinds))}
	for _, k := range Kinds {
		s.active[k] = make(map[string]Token)
	}
	s.SetLifetimes(l)
	return s
}

func (s *Scheduler) SetLifetimes(l Lifetimes) {
	merged := DefaultLifetimes()
	for k, v := range l {
		if v.TTL > 0 && v.Delay >= 0 {
			merged[k] = v
		}
	}
	s.lifetimes = merged
}

func (s *Scheduler) Lifetime(k Kind) Lifetime {
	return s.lifetimes[k]
}

// Strike spawns one token of every kind for the block.
func (s *Scheduler) Strike(blockID string, now time.Time) []Token {
	out := make([]Token, 0, len(Kinds))
	for _, k := range Kinds {
		lt := s.lifetimes[k]
		tok := Token{
			ID:        s.newID(),
			Kind:      k,
			BlockID:   blockID,
			CreatedAt: now,
			VisibleAt: now.Add(lt.Delay),
			ExpiresAt: now.Add(lt.TTL),
		}
		s.active[k][tok.ID] = tok
		out = append(out, tok)
	}
	return out
}

// Expire removes a single token. Unknown ids are ignored.
func (s *Scheduler) Expire(k Kind, id string) bool {
	set, ok := s.active[k]
	if !ok {
		return false
	}
	if _, ok := set[id]; !ok {
		return false
	}
	delete(set, id)
	return true
}

// Sweep removes every token whose lifetime has elapsed at now.
func (s *Scheduler) Sweep(now time.Time) int {
	n := 0
	for _, set := range s.active {
		for id, tok := range set {
			if !now.Before(tok.ExpiresAt) {
				delete(set, id)
				n++
			}
		}
	}
	return n
}

// Active lists the live tokens of a kind for a block, oldest first.
func (s *Scheduler) Active(k Kind, blockID string) []Token {
	out := make([]Token, 0)
	for _, tok := range s.active[k] {
		if tok.BlockID == blockID {
			out = append(out, tok)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Has reports whether a token of the kind is visible for the block at now.
func (s *Scheduler) Has(k Kind, blockID string, now time.Time) bool {
	for _, tok := range s.active[k] {
		if tok.BlockID == blockID && tok.VisibleAtTime(now) {
			return true
		}
	}
	return false
}

func (s *Scheduler) Len() int {
	n := 0
	for _, set := range s.active {
		n += len(set)
	}
	return n
}

// Clear drops every token belonging to the block, e.g. after it is removed.
func (s *Scheduler) Clear(blockID string) {
	for _, set := range s.active {
		for id, tok := range set {
			if tok.BlockID == blockID {
				delete(set, id)
			}
		}
	}
}
