package cli

import (
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/todorpg/internal/config"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/storage"
)

// session bundles what every command needs: the effective config, a logger
// and the persisted state.
type session struct {
	cfg     config.Config
	cfgPath string
	logger  *slog.Logger
	kv      *storage.SQLiteKV
	state   *storage.State
	closers []func() error
}

func openSession(flags *rootFlags) (*session, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	s := &session{cfg: cfg, cfgPath: path, logger: logger, closers: []func() error{logCloser.Close}}

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.kv = kv
	s.closers = append(s.closers, kv.Close)
	s.state = storage.NewState(kv, logger, game.DefaultDeps())
	logger.Debug("session opened", "db", cfg.DBPath, "config", path)
	return s, nil
}

func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
