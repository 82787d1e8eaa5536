package model

import (
	"errors"
	"testing"
)

func TestStoreCheckRejectsSharedTaskIDs(t *testing.T) {
	s := NewStore()
	s.Blocks = append(s.Blocks,
		Block{ID: "a", Tasks: []Task{{ID: "t1", Text: "x"}}, HP: 1, Max: 1},
		Block{ID: "b", Tasks: []Task{{ID: "t1", Text: "y"}}, HP: 1, Max: 1},
	)
	if err := s.Check(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected shared task id to fail, got: %v", err)
	}
}

func TestStoreCheckRejectsDuplicateBlocks(t *testing.T) {
	s := NewStore()
	s.Blocks = append(s.Blocks,
		Block{ID: "a", Tasks: []Task{}, Completed: true},
		Block{ID: "a", Tasks: []Task{}, Completed: true},
	)
	if err := s.Check(); !errors.Is(err, ErrDuplicateBlock) {
		t.Fatalf("expected ErrDuplicateBlock, got: %v", err)
	}
}

func TestStoreNewestIsReverseInsertion(t *testing.T) {
	s := NewStore()
	s.Blocks = append(s.Blocks, Block{ID: "first"}, Block{ID: "second"}, Block{ID: "third"})
	got := s.Newest()
	if got[0].ID != "third" || got[2].ID != "first" {
		t.Fatalf("unexpected display order: %+v", got)
	}
}

func TestStoreCloneIsDeep(t *testing.T) {
	s := NewStore()
	s.Blocks = append(s.Blocks, Block{ID: "a", Tasks: []Task{{ID: "t", Text: "x"}}, HP: 1, Max: 1})
	c := s.Clone()
	c.Blocks[0].Tasks[0].Done = true
	c.Blocks[0].HP = 0
	if s.Blocks[0].Tasks[0].Done || s.Blocks[0].HP != 1 {
		t.Fatalf("clone mutated source: %+v", s.Blocks[0])
	}
}

func TestModeToggle(t *testing.T) {
	if ModeDaily.Toggle() != ModeLongTerm || ModeLongTerm.Toggle() != ModeDaily {
		t.Fatal("unexpected toggle result")
	}
	if Mode("weekly").IsValid() {
		t.Fatal("expected invalid mode")
	}
}

func TestPresetHelpers(t *testing.T) {
	list := UpsertPreset(nil, Preset{Name: "morning", Body: "##am stretch coffee"})
	list = UpsertPreset(list, Preset{Name: "Morning", Body: "##am run"})
	if len(list) != 1 || list[0].Body != "##am run" {
		t.Fatalf("expected upsert to replace by name, got %+v", list)
	}
	if _, ok := FindPreset(list, "MORNING"); !ok {
		t.Fatal("expected case-insensitive lookup")
	}
	list, removed := RemovePreset(list, "morning")
	if !removed || len(list) != 0 {
		t.Fatalf("expected preset removed, got %+v", list)
	}
	if err := (Preset{Name: "x", Body: " "}).Validate(); !errors.Is(err, ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset, got %v", err)
	}
}
