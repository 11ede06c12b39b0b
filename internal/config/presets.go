package config

import "sort"

// Presets holds named stick geometries. Only the stick section differs from
// the defaults.
var Presets = map[string]StickConfig{
	"default":  {OuterRadius: 60, InnerRadius: 30, TapArea: 250},
	"terminal": {OuterRadius: 24, InnerRadius: 9, TapArea: 40},
	"compact":  {OuterRadius: 40, InnerRadius: 20, TapArea: 120},
	"wide":     {OuterRadius: 90, InnerRadius: 30, TapArea: 300},
}

// GetPreset returns a full configuration for name, or nil if it does not exist.
func GetPreset(name string) *Config {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Stick = s
	return cfg
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
