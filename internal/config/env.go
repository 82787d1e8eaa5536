package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todorpg/internal/model"
)

const envPrefix = "TODORPG_"

// FromEnv overlays TODORPG_* variables on base. Unparseable values are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString(envPrefix + "DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString(envPrefix + "LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString(envPrefix + "START_MODE"); ok {
		cfg.StartMode = model.Mode(strings.ToLower(v))
	}
	if v, ok := getEnvInt(envPrefix + "PRESS_MEDIUM_MS"); ok && v > 0 {
		cfg.Press.MediumMs = v
	}
	if v, ok := getEnvInt(envPrefix + "PRESS_HARD_MS"); ok && v > 0 {
		cfg.Press.HardMs = v
	}
	if v, ok := getEnvInt(envPrefix + "PRESS_COMPLETE_MS"); ok && v > 0 {
		cfg.Press.CompleteMs = v
	}
	if v, ok := getEnvInt(envPrefix + "EXP_PER_TASK"); ok && v >= 0 {
		cfg.Rules.ExpPerTask = v
	}
	if v, ok := getEnvInt(envPrefix + "GOLD_PER_TASK"); ok && v >= 0 {
		cfg.Rules.GoldPerTask = v
	}
	if v, ok := getEnvInt(envPrefix + "RESET_HOUR"); ok {
		cfg.Rules.ResetHour = v
	}
	if v, ok := getEnvInt(envPrefix + "RESET_POLL_SECONDS"); ok && v > 0 {
		cfg.ResetPollSeconds = v
	}
	if v, ok := getEnvInt(envPrefix + "KEY_HOLD_GRACE_MS"); ok && v > 0 {
		cfg.KeyHoldGraceMs = v
	}
	if v, ok := getEnvInt(envPrefix + "SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool(envPrefix + "DESKTOP_CELEBRATIONS"); ok {
		cfg.DesktopCelebrations = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
