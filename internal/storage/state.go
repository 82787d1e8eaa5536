package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
)

const keyPrefix = "todorpg."

const (
	KeyDaily     = "todorpg.daily"
	KeyLongTerm  = "todorpg.longterm"
	KeyPresets   = "todorpg.presets"
	KeyLastReset = "todorpg.lastReset"
	KeyMode      = "todorpg.mode"
)

func StoreKey(mode model.Mode) string {
	if mode == model.ModeLongTerm {
		return KeyLongTerm
	}
	return KeyDaily
}

// State maps the application's persisted documents onto a KV. Store and
// preset documents that are missing or unreadable load as defaults.
type State struct {
	kv     KV
	logger *slog.Logger
	deps   game.Deps
}

func NewState(kv KV, logger *slog.Logger, deps game.Deps) *State {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &State{kv: kv, logger: logger, deps: deps}
}

func (s *State) KV() KV { return s.kv }

func (s *State) LoadStore(ctx context.Context, mode model.Mode) (model.Store, error) {
	key := StoreKey(mode)
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return model.NewStore(), nil
	}
	if err != nil {
		return model.NewStore(), err
	}

	var st model.Store
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.Warn("discarding unreadable store", "key", key, "error", err)
		return model.NewStore(), nil
	}
	if st.Blocks == nil {
		st.Blocks = []model.Block{}
	}
	st = game.Backfill(st, s.deps)
	if err := st.Check(); err != nil {
		s.logger.Warn("discarding inconsistent store", "key", key, "error", err)
		return model.NewStore(), nil
	}
	return st, nil
}

func (s *State) SaveStore(ctx context.Context, mode model.Mode, st model.Store) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: encode store: %w", err)
	}
	return s.kv.Put(ctx, StoreKey(mode), raw)
}

func (s *State) LoadPresets(ctx context.Context) ([]model.Preset, error) {
	raw, err := s.kv.Get(ctx, KeyPresets)
	if errors.Is(err, ErrNotFound) {
		return []model.Preset{}, nil
	}
	if err != nil {
		return []model.Preset{}, err
	}
	var list []model.Preset
	if err := json.Unmarshal(raw, &list); err != nil {
		s.logger.Warn("discarding unreadable presets", "error", err)
		return []model.Preset{}, nil
	}
	out := make([]model.Preset, 0, len(list))
	for _, p := range list {
		if p.Validate() == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *State) SavePresets(ctx context.Context, list []model.Preset) error {
	if list == nil {
		list = []model.Preset{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("storage: encode presets: %w", err)
	}
	return s.kv.Put(ctx, KeyPresets, raw)
}

// LoadLastReset returns the zero time when no reset was recorded.
func (s *State) LoadLastReset(ctx context.Context) (time.Time, error) {
	raw, err := s.kv.Get(ctx, KeyLastReset)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	tm, err := time.Parse(sqliteTimeLayout, string(raw))
	if err != nil {
		s.logger.Warn("ignoring unreadable last reset", "error", err)
		return time.Time{}, nil
	}
	return tm, nil
}

func (s *State) SaveLastReset(ctx context.Context, at time.Time) error {
	return s.kv.Put(ctx, KeyLastReset, []byte(at.Format(sqliteTimeLayout)))
}

func (s *State) LoadMode(ctx context.Context, fallback model.Mode) model.Mode {
	raw, err := s.kv.Get(ctx, KeyMode)
	if err != nil {
		return fallback
	}
	mode := model.Mode(raw)
	if !mode.IsValid() {
		return fallback
	}
	return mode
}

func (s *State) SaveMode(ctx context.Context, mode model.Mode) error {
	return s.kv.Put(ctx, KeyMode, []byte(mode))
}

// Wipe deletes every todorpg document and returns the removed keys.
func (s *State) Wipe(ctx context.Context) ([]string, error) {
	keys, err := s.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	removed := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := s.kv.Delete(ctx, k); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, fmt.Errorf("storage: delete %s: %w", k, err)
		}
		removed = append(removed, k)
	}
	s.logger.Info("state wiped", "keys", len(removed))
	return removed, nil
}
