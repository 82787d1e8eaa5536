package model

import (
	"errors"
	"fmt"
)

var ErrDuplicateBlock = errors.New("model: duplicate block id")

type Mode string

const (
	ModeDaily    Mode = "daily"
	ModeLongTerm Mode = "longterm"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeDaily, ModeLongTerm:
		return true
	default:
		return false
	}
}

func (m Mode) Toggle() Mode {
	if m == ModeLongTerm {
		return ModeDaily
	}
	return ModeLongTerm
}

// Progress holds the auxiliary counters updated by completion events.
// Exp and Level belong to the daily track, Gold to the long-term track.
type Progress struct {
	Exp   int `json:"exp"`
	Level int `json:"level"`
	Gold  int `json:"gold"`
}

type Store struct {
	Blocks   []Block  `json:"blocks"`
	Progress Progress `json:"progress"`
}

func NewStore() Store {
	return Store{Blocks: []Block{}, Progress: Progress{Level: 1}}
}

func (s Store) BlockIndex(id string) int {
	for i, b := range s.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s Store) Block(id string) (Block, bool) {
	i := s.BlockIndex(id)
	if i < 0 {
		return Block{}, false
	}
	return s.Blocks[i], true
}

// Newest returns blocks in display order: newest first.
func (s Store) Newest() []Block {
	out := make([]Block, 0, len(s.Blocks))
	for i := len(s.Blocks) - 1; i >= 0; i-- {
		out = append(out, s.Blocks[i])
	}
	return out
}

func (s Store) Clone() Store {
	out := Store{Blocks: make([]Block, len(s.Blocks)), Progress: s.Progress}
	for i, b := range s.Blocks {
		out.Blocks[i] = b.Clone()
	}
	return out
}

// Check validates every block invariant and rejects task ids shared across blocks.
func (s Store) Check() error {
	blocks := make(map[string]bool, len(s.Blocks))
	owners := make(map[string]string)
	for _, b := range s.Blocks {
		if blocks[b.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateBlock, b.ID)
		}
		blocks[b.ID] = true
		if err := b.Validate(); err != nil {
			return err
		}
		for _, t := range b.Tasks {
			if owner, ok := owners[t.ID]; ok {
				return fmt.Errorf("%w: task %s belongs to blocks %s and %s", ErrInvalidTask, t.ID, owner, b.ID)
			}
			owners[t.ID] = b.ID
		}
	}
	if s.Progress.Exp < 0 || s.Progress.Gold < 0 || s.Progress.Level < 0 {
		return errors.New("model: progress counters must not be negative")
	}
	return nil
}
