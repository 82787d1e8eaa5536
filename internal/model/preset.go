package model

import (
	"errors"
	"strings"
)

var ErrInvalidPreset = errors.New("model: invalid preset")

// Preset is a named bulk-input body that can be turned into a block.
type Preset struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

func (p Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Join(ErrInvalidPreset, errors.New("name is required"))
	}
	if strings.TrimSpace(p.Body) == "" {
		return errors.Join(ErrInvalidPreset, errors.New("body is required"))
	}
	return nil
}

// UpsertPreset replaces a preset with the same name or appends a new one.
func UpsertPreset(list []Preset, p Preset) []Preset {
	out := make([]Preset, 0, len(list)+1)
	replaced := false
	for _, item := range list {
		if strings.EqualFold(item.Name, p.Name) {
			out = append(out, p)
			replaced = true
			continue
		}
		out = append(out, item)
	}
	if !replaced {
		out = append(out, p)
	}
	return out
}

func RemovePreset(list []Preset, name string) ([]Preset, bool) {
	out := make([]Preset, 0, len(list))
	removed := false
	for _, item := range list {
		if strings.EqualFold(item.Name, name) {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

func FindPreset(list []Preset, name string) (Preset, bool) {
	for _, item := range list {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return Preset{}, false
}
