package experiment

import (
	"fmt"
	"sort"

	"github.com/merthusman/fractalcode/internal/digits"
	"github.com/merthusman/fractalcode/internal/resample"
)

// Registry maps the names accepted in configs and on the command line to
// digit generators and resamplers.
type Registry struct {
	sources    map[string]digits.Generator
	resamplers map[string]func() resample.Resampler
}

func NewRegistry() *Registry {
	r := &Registry{
		sources:    make(map[string]digits.Generator),
		resamplers: make(map[string]func() resample.Resampler),
	}

	r.sources["pi"] = digits.Pi
	r.sources["e"] = digits.E

	r.resamplers["bicubic"] = func() resample.Resampler { return resample.Bicubic{} }
	r.resamplers["bilinear"] = func() resample.Resampler { return resample.Bilinear{} }

	return r
}

func (r *Registry) GetSource(name string) (digits.Generator, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown digit source: %s", name)
	}
	return fn, nil
}

func (r *Registry) GetResampler(name string) (resample.Resampler, error) {
	fn, ok := r.resamplers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resampler: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListResamplers() []string {
	names := make([]string, 0, len(r.resamplers))
	for name := range r.resamplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
