package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTask  = errors.New("model: invalid task")
	ErrInvalidBlock = errors.New("model: invalid block")
)

// Characters is the fixed set of cosmetic variants a block can be drawn as.
var Characters = []string{"A_01", "B_01", "C_01"}

const DefaultCharacter = "A_01"

type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: text is required (task %s)", ErrInvalidTask, t.ID)
	}
	return nil
}

type Block struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Tasks     []Task `json:"tasks"`
	HP        int    `json:"hp"`
	Max       int    `json:"max"`
	Completed bool   `json:"completed"`
	CharID    string `json:"charId,omitempty"`
}

// Remaining counts tasks that are not done yet.
func (b Block) Remaining() int {
	n := 0
	for _, t := range b.Tasks {
		if !t.Done {
			n++
		}
	}
	return n
}

func (b Block) TaskIndex(id string) int {
	for i, t := range b.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (b Block) Task(id string) (Task, bool) {
	i := b.TaskIndex(id)
	if i < 0 {
		return Task{}, false
	}
	return b.Tasks[i], true
}

func (b Block) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidBlock)
	}
	seen := make(map[string]bool, len(b.Tasks))
	for _, t := range b.Tasks {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate task id %s in block %s", ErrInvalidBlock, t.ID, b.ID)
		}
		seen[t.ID] = true
	}
	if b.HP < 0 || b.HP > b.Max {
		return fmt.Errorf("%w: hp %d outside [0, %d] (block %s)", ErrInvalidBlock, b.HP, b.Max, b.ID)
	}
	if b.HP != b.Remaining() {
		return fmt.Errorf("%w: hp %d does not match %d open tasks (block %s)", ErrInvalidBlock, b.HP, b.Remaining(), b.ID)
	}
	if b.Completed != (b.HP == 0) {
		return fmt.Errorf("%w: completed=%v with hp %d (block %s)", ErrInvalidBlock, b.Completed, b.HP, b.ID)
	}
	return nil
}

func (b Block) Clone() Block {
	out := b
	out.Tasks = append([]Task(nil), b.Tasks...)
	return out
}

func IsCharacter(id string) bool {
	for _, c := range Characters {
		if c == id {
			return true
		}
	}
	return false
}
