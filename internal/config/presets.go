package config

var Presets = map[string]*Config{
	"quick": {
		SeedSize: 8, FinalSize: 64, Steps: 30,
		Source: "pi", Resampler: "bicubic",
	},
	"reference": {
		SeedSize: 8, FinalSize: 256, Steps: 30,
		Source: "pi", Resampler: "bicubic",
	},
	"deep": {
		SeedSize: 16, FinalSize: 512, Steps: 30,
		Source: "pi", Resampler: "bicubic",
	},
	"euler": {
		SeedSize: 8, FinalSize: 128, Steps: 30,
		Source: "e", Resampler: "bicubic",
	},
	"soft": {
		SeedSize: 8, FinalSize: 128, Steps: 30,
		Source: "pi", Resampler: "bilinear",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
