package experiment

import (
	"context"
	"sync"

	"github.com/merthusman/fractalcode/internal/builder"
)

// Batch runs a set of configurations concurrently. Results come back in
// config order; the first error wins. Configs may share one Digits
// slice: every run reads it through its own cursor.
type Batch struct {
	configs    []Config
	newMetrics func() []builder.Metric
}

func NewBatch(configs []Config) *Batch {
	return &Batch{configs: configs}
}

// WithMetrics sets a factory invoked once per run, so concurrent runs
// never share metric state.
func (b *Batch) WithMetrics(fn func() []builder.Metric) *Batch {
	b.newMetrics = fn
	return b
}

func (b *Batch) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(b.configs))
	errs := make([]error, len(b.configs))

	var wg sync.WaitGroup
	for i := range b.configs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			exp := New(b.configs[idx])
			if b.newMetrics != nil {
				for _, m := range b.newMetrics() {
					exp.AddMetric(m)
				}
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
