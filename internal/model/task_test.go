package model

import (
	"errors"
	"testing"
)

func sampleBlock() Block {
	return Block{
		ID:    "block-1",
		Title: "chores",
		Tasks: []Task{
			{ID: "t1", Text: "dishes", Done: true},
			{ID: "t2", Text: "laundry"},
		},
		HP:     1,
		Max:    2,
		CharID: "B_01",
	}
}

func TestBlockValidateSuccess(t *testing.T) {
	if err := sampleBlock().Validate(); err != nil {
		t.Fatalf("expected valid block, got error: %v", err)
	}
}

func TestBlockValidateHPMismatch(t *testing.T) {
	b := sampleBlock()
	b.HP = 2
	err := b.Validate()
	if err == nil || !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected ErrInvalidBlock, got: %v", err)
	}
}

func TestBlockValidateCompletedFlag(t *testing.T) {
	b := sampleBlock()
	b.Completed = true
	if err := b.Validate(); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected completed/hp mismatch error, got: %v", err)
	}

	empty := Block{ID: "empty", Tasks: []Task{}, Completed: true}
	if err := empty.Validate(); err != nil {
		t.Fatalf("expected zero-task completed block to be valid, got: %v", err)
	}
}

func TestBlockValidateHPAboveMax(t *testing.T) {
	b := sampleBlock()
	b.Max = 0
	if err := b.Validate(); !errors.Is(err, ErrInvalidBlock) {
		t.Fatalf("expected hp > max to fail, got: %v", err)
	}
}

func TestTaskValidateRequiresText(t *testing.T) {
	b := sampleBlock()
	b.Tasks[1].Text = "  "
	if err := b.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask, got: %v", err)
	}
}

func TestBlockCloneDetachesTasks(t *testing.T) {
	b := sampleBlock()
	c := b.Clone()
	c.Tasks[0].Text = "changed"
	if b.Tasks[0].Text != "dishes" {
		t.Fatalf("clone shares task storage: %q", b.Tasks[0].Text)
	}
}

func TestIsCharacter(t *testing.T) {
	for _, c := range Characters {
		if !IsCharacter(c) {
			t.Fatalf("expected %q to be a character", c)
		}
	}
	if IsCharacter("Z_99") {
		t.Fatal("expected unknown character")
	}
}
