// Package celebrate fires fire-and-forget celebrations when a block is
// defeated or a level is gained.
package celebrate

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Origin is the burst position as a fraction of the screen, (0,0) top left.
type Origin struct {
	X float64
	Y float64
}

type Palette []string

var (
	PaletteDefeat  = Palette{"#ff5f87", "#ffd75f", "#5fd7ff", "#87ff87"}
	PaletteLevelUp = Palette{"#ffd700", "#ffaf00", "#ffffff"}
)

// Sink receives bursts. Implementations must not block the caller.
type Sink interface {
	Burst(Origin, Palette)
}

type Noop struct{}

func (Noop) Burst(Origin, Palette) {}

// Multi fans a burst out to every sink.
type Multi []Sink

func (m Multi) Burst(o Origin, p Palette) {
	for _, s := range m {
		if s != nil {
			s.Burst(o, p)
		}
	}
}

// Desktop raises an OS notification through notify-send or osascript.
type Desktop struct {
	Title string
	Body  string
	// Run executes the notifier command; tests replace it.
	Run func(name string, args ...string) error
	// OnError is told about failed deliveries.
	OnError func(error)
}

func NewDesktop(title, body string) *Desktop {
	return &Desktop{
		Title: title,
		Body:  body,
		Run:   func(name string, args ...string) error { return exec.Command(name, args...).Run() },
	}
}

func (d *Desktop) Burst(Origin, Palette) {
	name, args, ok := desktopCommand(runtime.GOOS, d.Title, d.Body)
	if !ok || d.Run == nil {
		return
	}
	go func() {
		if err := d.Run(name, args...); err != nil && d.OnError != nil {
			d.OnError(fmt.Errorf("celebrate: %s: %w", name, err))
		}
	}()
}

func desktopCommand(goos, title, body string) (string, []string, bool) {
	switch goos {
	case "linux":
		return "notify-send", []string{title, body}, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// Shot is one burst as seen by Overlay.
type Shot struct {
	Origin  Origin
	Palette Palette
	At      time.Time
	Seed    uint64
}

// Overlay keeps recent bursts so the terminal view can draw confetti around
// their origins until they fade.
type Overlay struct {
	mu    sync.Mutex
	now   func() time.Time
	ttl   time.Duration
	seq   uint64
	shots []Shot
}

func NewOverlay(now func() time.Time, ttl time.Duration) *Overlay {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 1200 * time.Millisecond
	}
	return &Overlay{now: now, ttl: ttl}
}

func (o *Overlay) Burst(origin Origin, p Palette) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seq++
	o.shots = append(o.shots, Shot{Origin: origin, Palette: p, At: o.now(), Seed: o.seq})
}

// Active drops faded bursts and returns the rest.
func (o *Overlay) Active() []Shot {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.now()
	kept := o.shots[:0]
	for _, s := range o.shots {
		if now.Sub(s.At) < o.ttl {
			kept = append(kept, s)
		}
	}
	o.shots = kept
	return append([]Shot(nil), kept...)
}

func (o *Overlay) TTL() time.Duration { return o.ttl }

// Recorder keeps every burst; used by tests and the headless CLI.
type Recorder struct {
	mu     sync.Mutex
	Bursts []Shot
}

func (r *Recorder) Burst(o Origin, p Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Bursts = append(r.Bursts, Shot{Origin: o, Palette: p})
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Bursts)
}
