package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/celebrate"
	"github.com/sandeepkv93/todorpg/internal/config"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/scheduler"
	"github.com/sandeepkv93/todorpg/internal/update"
)

// programRef lets goroutines send to the program once it exists and stops
// them after it exits.
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

func runTUI(ctx context.Context, flags *rootFlags) error {
	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine := scheduler.NewEngine(s.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	ref := &programRef{}
	var sink celebrate.Sink = celebrate.Noop{}
	if s.cfg.DesktopCelebrations {
		d := celebrate.NewDesktop("todorpg", "Enemy defeated!")
		d.OnError = func(err error) {
			s.logger.Warn("desktop celebration failed", "error", err)
			ref.Send(update.AppErrorMsg{Err: err})
		}
		sink = d
	}

	m := update.NewModel(update.Options{
		Config:  s.cfg,
		State:   s.state,
		Logger:  s.logger,
		Deps:    game.DefaultDeps(),
		Engine:  engine,
		Sink:    sink,
		Context: ctx,
	})

	if err := os.MkdirAll(filepath.Dir(s.cfgPath), 0o755); err == nil {
		err = config.Watch(ctx, s.cfgPath, s.logger, func(c config.Config) {
			if flags.dbPath != "" {
				c.DBPath = flags.dbPath
			}
			ref.Send(update.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			s.logger.Warn("config watch disabled", "error", err)
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	ref.Set(p)
	defer ref.Clear()

	s.logger.Info("tui started", "mode", m.Mode, "dropped_events", engine.Dropped())
	_, err = p.Run()
	s.logger.Info("tui stopped", "dropped_events", engine.Dropped(), "deferred_events", engine.Deferred())
	return err
}
