// Package config loads runtime settings from a YAML file and TODORPG_*
// environment overrides, and watches the file for edits.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/todorpg/internal/effects"
	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/sandeepkv93/todorpg/internal/press"
	"github.com/sandeepkv93/todorpg/internal/progression"
)

var ErrInvalidConfig = errors.New("config: invalid")

const appDirName = "todorpg"

type PressConfig struct {
	MediumMs   int `yaml:"medium_ms"`
	HardMs     int `yaml:"hard_ms"`
	CompleteMs int `yaml:"complete_ms"`
}

type EffectsConfig struct {
	HitMs      int `yaml:"hit_ms"`
	HitDelayMs int `yaml:"hit_delay_ms"`
	SlashMs    int `yaml:"slash_ms"`
	PopupMs    int `yaml:"popup_ms"`
	BlastMs    int `yaml:"blast_ms"`
}

type RulesConfig struct {
	ExpPerTask  int `yaml:"exp_per_task"`
	LevelBase   int `yaml:"level_base"`
	LevelStep   int `yaml:"level_step"`
	GoldPerTask int `yaml:"gold_per_task"`
	ResetHour   int `yaml:"reset_hour"`
}

type Config struct {
	DBPath              string        `yaml:"db_path"`
	LogPath             string        `yaml:"log_path"`
	LogLevel            string        `yaml:"log_level"`
	StartMode           model.Mode    `yaml:"start_mode"`
	Press               PressConfig   `yaml:"press"`
	Effects             EffectsConfig `yaml:"effects"`
	Rules               RulesConfig   `yaml:"rules"`
	ResetPollSeconds    int           `yaml:"reset_poll_seconds"`
	KeyHoldGraceMs      int           `yaml:"key_hold_grace_ms"`
	SchedulerBuffer     int           `yaml:"scheduler_buffer"`
	DesktopCelebrations bool          `yaml:"desktop_celebrations"`
}

// Dir is the per-user directory holding the config file, database and log.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = "."
	}
	return filepath.Join(base, appDirName)
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	tm := press.DefaultTiming()
	lt := effects.DefaultLifetimes()
	rules := progression.DefaultRules()
	dir := Dir()
	return Config{
		DBPath:    filepath.Join(dir, "todorpg.db"),
		LogPath:   filepath.Join(dir, "todorpg.log"),
		LogLevel:  "info",
		StartMode: model.ModeDaily,
		Press: PressConfig{
			MediumMs:   int(tm.Medium.Milliseconds()),
			HardMs:     int(tm.Hard.Milliseconds()),
			CompleteMs: int(tm.Complete.Milliseconds()),
		},
		Effects: EffectsConfig{
			HitMs:      int(lt[effects.KindHit].TTL.Milliseconds()),
			HitDelayMs: int(lt[effects.KindHit].Delay.Milliseconds()),
			SlashMs:    int(lt[effects.KindSlash].TTL.Milliseconds()),
			PopupMs:    int(lt[effects.KindPopup].TTL.Milliseconds()),
			BlastMs:    int(lt[effects.KindBlast].TTL.Milliseconds()),
		},
		Rules: RulesConfig{
			ExpPerTask:  rules.ExpPerTask,
			LevelBase:   rules.LevelBase,
			LevelStep:   rules.LevelStep,
			GoldPerTask: rules.GoldPerTask,
			ResetHour:   rules.ResetHour,
		},
		ResetPollSeconds:    60,
		KeyHoldGraceMs:      700,
		SchedulerBuffer:     64,
		DesktopCelebrations: false,
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadYAMLOrDefault(path, Default)
	if err != nil {
		return Config{}, err
	}
	out := FromEnv(cfg)
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, fmt.Errorf("%w: db_path is required", ErrInvalidConfig))
	}
	if !c.StartMode.IsValid() {
		errs = append(errs, fmt.Errorf("%w: start_mode %q", ErrInvalidConfig, c.StartMode))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := c.Timing().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: press: %w", ErrInvalidConfig, err))
	}
	e := c.Effects
	if e.HitMs <= 0 || e.SlashMs <= 0 || e.PopupMs <= 0 || e.BlastMs <= 0 || e.HitDelayMs < 0 || e.HitDelayMs >= e.HitMs {
		errs = append(errs, fmt.Errorf("%w: effect lifetimes must be positive and the hit delay shorter than the hit", ErrInvalidConfig))
	}
	if err := c.ProgressionRules().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: rules: %w", ErrInvalidConfig, err))
	}
	if c.ResetPollSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%w: reset_poll_seconds must be positive", ErrInvalidConfig))
	}
	if c.KeyHoldGraceMs <= 0 {
		errs = append(errs, fmt.Errorf("%w: key_hold_grace_ms must be positive", ErrInvalidConfig))
	}
	if c.SchedulerBuffer <= 0 {
		errs = append(errs, fmt.Errorf("%w: scheduler_buffer must be positive", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func (c Config) Timing() press.Timing {
	return press.Timing{
		Medium:   ms(c.Press.MediumMs),
		Hard:     ms(c.Press.HardMs),
		Complete: ms(c.Press.CompleteMs),
	}
}

func (c Config) Lifetimes() effects.Lifetimes {
	return effects.Lifetimes{
		effects.KindHit:   {Delay: ms(c.Effects.HitDelayMs), TTL: ms(c.Effects.HitMs)},
		effects.KindSlash: {TTL: ms(c.Effects.SlashMs)},
		effects.KindPopup: {TTL: ms(c.Effects.PopupMs)},
		effects.KindBlast: {TTL: ms(c.Effects.BlastMs)},
	}
}

func (c Config) ProgressionRules() progression.Rules {
	return progression.Rules{
		ExpPerTask:  c.Rules.ExpPerTask,
		LevelBase:   c.Rules.LevelBase,
		LevelStep:   c.Rules.LevelStep,
		GoldPerTask: c.Rules.GoldPerTask,
		ResetHour:   c.Rules.ResetHour,
	}
}

func (c Config) ResetPoll() time.Duration {
	return time.Duration(c.ResetPollSeconds) * time.Second
}

// KeyHoldGrace is how long a keyboard press survives without a repeated key.
func (c Config) KeyHoldGrace() time.Duration {
	return ms(c.KeyHoldGraceMs)
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
