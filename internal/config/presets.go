package config

import (
	"math"
	"sort"
)

// Presets are complete configurations; each one tunes the section its name
// refers to and leaves the other at its defaults.
var Presets = map[string]*Config{
	"walking":     walker(WalkerConfig{Target: 50, Start: 0, Kp: 0.1, Dt: 0.05, Duration: 40}),
	"walking_pid": walker(WalkerConfig{Target: 50, Start: 0, Kp: 0.4, Ki: 0.02, Kd: 0.05, Dt: 0.05, Duration: 40, IntegralLimit: 100}),
	"backwards":   walker(WalkerConfig{Target: -20, Start: 10, Kp: 0.3, Dt: 0.05, Duration: 20}),

	"msd":        system(SystemConfig{Mass: 1, Damping: 5, Stiffness: 20, Samples: 500, Span: 5, Method: "zoh"}),
	"practice":   system(SystemConfig{Mass: 1, Damping: 4, Stiffness: 20, Samples: 500, Span: 5, Method: "zoh"}),
	"overdamped": system(SystemConfig{Mass: 1, Damping: 20, Stiffness: 20, Samples: 500, Span: 5, Method: "zoh"}),
	"critical":   system(SystemConfig{Mass: 1, Damping: 2 * math.Sqrt(20), Stiffness: 20, Samples: 500, Span: 5, Method: "zoh"}),
	"undamped":   system(SystemConfig{Mass: 1, Damping: 0, Stiffness: 20, Samples: 500, Span: 5, Method: "spring"}),
}

var walkerPresets = map[string]bool{"walking": true, "walking_pid": true, "backwards": true}

// PresetSection names the section a preset tunes: "walker" or "system".
// Unknown presets report "".
func PresetSection(name string) string {
	if _, ok := Presets[name]; !ok {
		return ""
	}
	if walkerPresets[name] {
		return "walker"
	}
	return "system"
}

func walker(w WalkerConfig) *Config {
	cfg := DefaultConfig()
	cfg.Walker = w
	return cfg
}

func system(s SystemConfig) *Config {
	cfg := DefaultConfig()
	cfg.System = s
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
