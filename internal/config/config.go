package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/merthusman/fractalcode/internal/builder"
)

const (
	DefaultSeedSize  = 8
	DefaultFinalSize = 256
	DefaultSteps     = 30
	DefaultSource    = "pi"
	DefaultResampler = "bicubic"
)

type Config struct {
	SeedSize   int    `yaml:"seed_size"`
	FinalSize  int    `yaml:"final_size"`
	Steps      int    `yaml:"steps"`
	Source     string `yaml:"source"`
	Resampler  string `yaml:"resampler"`
	DigitsFile string `yaml:"digits_file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		SeedSize:  DefaultSeedSize,
		FinalSize: DefaultFinalSize,
		Steps:     DefaultSteps,
		Source:    DefaultSource,
		Resampler: DefaultResampler,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Schedule derives the construction schedule from the configured seed
// and final sizes.
func (c *Config) Schedule() (builder.Schedule, error) {
	return builder.NewSchedule(c.SeedSize, c.FinalSize)
}
