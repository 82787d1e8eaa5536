package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/todorpg/internal/celebrate"
	"github.com/sandeepkv93/todorpg/internal/clock"
	"github.com/sandeepkv93/todorpg/internal/config"
	"github.com/sandeepkv93/todorpg/internal/effects"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/sandeepkv93/todorpg/internal/press"
	"github.com/sandeepkv93/todorpg/internal/progression"
	"github.com/sandeepkv93/todorpg/internal/scheduler"
	"github.com/sandeepkv93/todorpg/internal/storage"
	"github.com/sandeepkv93/todorpg/internal/views"
)

type Overlay string

const (
	OverlayNone    Overlay = ""
	OverlayCreate  Overlay = "create"
	OverlayAppend  Overlay = "append"
	OverlayPalette Overlay = "palette"
	OverlayHelp    Overlay = "help"
	OverlayPresets Overlay = "presets"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Selection is the board cursor. TaskID is empty when a block header is
// selected.
type Selection struct {
	BlockID string
	TaskID  string
}

type Options struct {
	Config config.Config
	// State persists stores and presets. Nil keeps everything in memory.
	State  *storage.State
	Logger *slog.Logger
	Clock  clock.Clock
	Deps   game.Deps
	// Engine delivers press and effect deadlines. Nil falls back to tea.Tick.
	Engine *scheduler.Engine
	// Sink receives celebrations in addition to the in-terminal confetti.
	Sink    celebrate.Sink
	Context context.Context
}

type Model struct {
	cfg    config.Config
	state  *storage.State
	logger *slog.Logger
	clock  clock.Clock
	deps   game.Deps
	engine *scheduler.Engine
	ctx    context.Context

	Mode      model.Mode
	Stores    map[model.Mode]model.Store
	Presets   []model.Preset
	LastReset time.Time
	Selected  Selection

	// completedOnce holds blocks that have already been celebrated, seeded
	// with the blocks that were completed at load.
	completedOnce map[string]bool
	pendingRemove string

	press    *press.Machine
	fx       *effects.Scheduler
	flavor   *game.Flavor
	confetti *celebrate.Overlay
	sink     celebrate.Sink
	rules    progression.Rules

	hold      keyHold
	animating bool
	frame     int

	Overlay   Overlay
	Status    StatusBar
	statusSeq uint64
	LastError error
	Quitting  bool

	keys     keyMap
	help     help.Model
	bulk     textarea.Model
	palette  textinput.Model
	xp       progress.Model
	board    viewport.Model
	helpView viewport.Model
	rows     []views.RowRef
	width    int
	height   int
}

// keyHold tracks a keyboard press. Terminals report no key release, so the
// press lasts while auto-repeat keeps delivering the key.
type keyHold struct {
	active bool
	gen    uint64
	last   time.Time
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg.Validate() != nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	deps := opts.Deps
	if deps.NewID == nil || deps.Pick == nil {
		def := game.DefaultDeps()
		if deps.NewID == nil {
			deps.NewID = def.NewID
		}
		if deps.Pick == nil {
			deps.Pick = def.Pick
		}
	}
	state := opts.State
	if state == nil {
		state = storage.NewState(storage.NewMemoryKV(), logger, deps)
	}

	confetti := celebrate.NewOverlay(clk.Now, 1200*time.Millisecond)
	sinks := celebrate.Multi{confetti}
	if opts.Sink != nil {
		sinks = append(sinks, opts.Sink)
	}

	bulk := textarea.New()
	bulk.Placeholder = "##Title task one task two\none task per word or line"
	bulk.ShowLineNumbers = false
	bulk.SetHeight(4)

	palette := textinput.New()
	palette.Prompt = "/"
	palette.Placeholder = "add ##Boss task task | preset use morning | mode long"
	palette.CharLimit = 512

	m := Model{
		cfg:           cfg,
		state:         state,
		logger:        logger,
		clock:         clk,
		deps:          deps,
		engine:        opts.Engine,
		ctx:           ctx,
		Mode:          cfg.StartMode,
		Stores:        map[model.Mode]model.Store{model.ModeDaily: model.NewStore(), model.ModeLongTerm: model.NewStore()},
		Presets:       []model.Preset{},
		completedOnce: make(map[string]bool),
		press:         press.NewMachine(cfg.Timing()),
		fx:            effects.NewScheduler(cfg.Lifetimes(), deps.NewID),
		flavor:        game.NewFlavor(deps.Pick),
		confetti:      confetti,
		sink:          sinks,
		rules:         cfg.ProgressionRules(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		bulk:          bulk,
		palette:       palette,
		xp:            progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage()),
		board:         viewport.New(80, 20),
		helpView:      viewport.New(80, 20),
		width:         80,
		height:        30,
	}
	m.load()
	m.resize(m.width, m.height)
	m.syncBoard()
	return m
}

// load reads both boards, the presets and the reset stamp. Failures leave
// defaults in place and are reported in the status bar.
func (m *Model) load() {
	m.Mode = m.state.LoadMode(m.ctx, m.Mode)
	for _, mode := range []model.Mode{model.ModeDaily, model.ModeLongTerm} {
		st, err := m.state.LoadStore(m.ctx, mode)
		if err != nil {
			m.fail("load "+string(mode)+" board", err)
			continue
		}
		m.Stores[mode] = st
		for _, b := range st.Blocks {
			if b.Completed {
				m.completedOnce[b.ID] = true
			}
		}
	}
	presets, err := m.state.LoadPresets(m.ctx)
	if err != nil {
		m.fail("load presets", err)
	} else {
		m.Presets = presets
	}
	last, err := m.state.LoadLastReset(m.ctx)
	if err != nil {
		m.fail("load last reset", err)
	} else {
		m.LastReset = last
	}
}

func (m Model) Store() model.Store {
	return m.Stores[m.Mode]
}

func (m Model) Press() *press.Machine { return m.press }

func (m Model) Effects() *effects.Scheduler { return m.fx }

func (m Model) Confetti() *celebrate.Overlay { return m.confetti }

func (m *Model) resize(width, height int) {
	if width > 0 {
		m.width = width
	}
	if height > 0 {
		m.height = height
	}
	inner := max(m.width-views.PanelChrome, 20)
	// header(2) + confetti(1) + borders(2) + status(1) + footer(1)
	boardHeight := max(m.height-7, 3)
	if m.Overlay == OverlayCreate || m.Overlay == OverlayAppend {
		boardHeight = max(boardHeight-8, 3)
	}
	if m.Overlay == OverlayPalette || m.Overlay == OverlayPresets {
		boardHeight = max(boardHeight-3, 3)
	}
	m.board.Width = inner
	m.board.Height = boardHeight
	m.helpView.Width = inner
	m.helpView.Height = boardHeight
	m.bulk.SetWidth(inner - 2)
	m.palette.Width = inner - 4
	m.help.Width = m.width
	m.xp.Width = min(24, max(m.width/4, 8))
}
