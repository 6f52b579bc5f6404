package config

import "sort"

var Presets = map[string]GalaxyConfig{
	"classic": {
		Count: 100000, Size: 0.01, Radius: 5, Branches: 7, Spin: 1.5,
		Randomness: 0.2, RandomnessPower: 3, InsideColor: "#ff6030", OutsideColor: "#1b3984",
	},
	"pinwheel": {
		Count: 200000, Size: 0.008, Radius: 6, Branches: 3, Spin: 2.5,
		Randomness: 0.35, RandomnessPower: 4, InsideColor: "#ffd27a", OutsideColor: "#3a0ca3",
	},
	"barred": {
		Count: 150000, Size: 0.01, Radius: 8, Branches: 2, Spin: 0.6,
		Randomness: 0.5, RandomnessPower: 2.5, InsideColor: "#fff1c1", OutsideColor: "#4361ee",
	},
	"nebula": {
		Count: 300000, Size: 0.005, Radius: 10, Branches: 12, Spin: -1.2,
		Randomness: 1.4, RandomnessPower: 1.5, InsideColor: "#ff4d6d", OutsideColor: "#2b2d42",
	},
	"sparse": {
		Count: 2000, Size: 0.05, Radius: 4, Branches: 5, Spin: 1,
		Randomness: 0.1, RandomnessPower: 3, InsideColor: "#ffffff", OutsideColor: "#1b3984",
	},
}

// GetPreset returns the named galaxy preset.
func GetPreset(name string) (GalaxyConfig, bool) {
	g, ok := Presets[name]
	return g, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
