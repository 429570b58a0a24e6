// Package automation runs scripted sequences of constructions defined
// in YAML, and side-by-side comparisons of digit sources.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/merthusman/fractalcode/internal/config"
	"github.com/merthusman/fractalcode/internal/experiment"
)

// Scenario defines a scripted construction sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single construction in a scenario. Zero fields fall
// back to the package defaults.
type ScenarioStep struct {
	Name      string `yaml:"name"`
	SeedSize  int    `yaml:"seed_size"`
	FinalSize int    `yaml:"final_size"`
	Steps     int    `yaml:"steps"`
	Source    string `yaml:"source"`
	Resampler string `yaml:"resampler"`
}

func (s ScenarioStep) config() experiment.Config {
	cfg := experiment.Config{
		SeedSize:  s.SeedSize,
		FinalSize: s.FinalSize,
		Steps:     s.Steps,
		Source:    s.Source,
		Resampler: s.Resampler,
	}
	if cfg.SeedSize == 0 {
		cfg.SeedSize = config.DefaultSeedSize
	}
	if cfg.FinalSize == 0 {
		cfg.FinalSize = config.DefaultFinalSize
	}
	if cfg.Steps == 0 {
		cfg.Steps = config.DefaultSteps
	}
	if cfg.Source == "" {
		cfg.Source = config.DefaultSource
	}
	if cfg.Resampler == "" {
		cfg.Resampler = config.DefaultResampler
	}
	return cfg
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// StepResult pairs a step name with what its construction produced.
type StepResult struct {
	Name   string
	Result *experiment.Result
}

// RunScenario executes all steps in order. On failure the results of the
// completed steps are returned along with the error.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		fmt.Printf("running %d/%d: %s\n", i+1, len(scenario.Steps), name)

		res, err := experiment.New(step.config()).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		results = append(results, StepResult{Name: name, Result: res})
	}

	return results, nil
}

// SourceComparison is one digit source measured under a shared geometry.
type SourceComparison struct {
	Source string
	Result *experiment.Result
}

// CompareSources builds the same construction once per digit source,
// concurrently, and returns the measurements in source order.
func CompareSources(ctx context.Context, sources []string, base experiment.Config) ([]SourceComparison, error) {
	configs := make([]experiment.Config, len(sources))
	for i, s := range sources {
		cfg := base
		cfg.Source = s
		cfg.Digits = nil
		configs[i] = cfg
	}

	results, err := experiment.NewBatch(configs).Run(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SourceComparison, len(sources))
	for i := range sources {
		out[i] = SourceComparison{Source: sources[i], Result: results[i]}
	}
	return out, nil
}
