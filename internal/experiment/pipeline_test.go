package experiment_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/merthusman/fractalcode/internal/builder"
	"github.com/merthusman/fractalcode/internal/digits"
	"github.com/merthusman/fractalcode/internal/experiment"
	"github.com/merthusman/fractalcode/internal/metrics"
	"github.com/merthusman/fractalcode/internal/noise"
)

// Digit budget for the 8 → 64 schedule: 64 + 256 + 1024 + 4096.
const pipelineBudget = 5440

var piDigits []uint8

var _ = BeforeSuite(func() {
	piDigits = digits.Pi(pipelineBudget)
})

var _ = Describe("Construction pipeline", func() {
	baseConfig := func() experiment.Config {
		return experiment.Config{
			SeedSize:  8,
			FinalSize: 64,
			Steps:     10,
			Resampler: "bicubic",
			Digits:    piDigits,
		}
	}

	run := func(cfg experiment.Config) *experiment.Result {
		GinkgoHelper()
		res, err := experiment.New(cfg).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		return res
	}

	It("builds the final grid at the requested side", func() {
		res := run(baseConfig())
		Expect(res.Field.Size()).To(Equal(64))
		Expect(res.Field.IsValid()).To(BeTrue())
		Expect(res.Schedule).To(Equal(builder.Schedule{8, 16, 32, 64}))
	})

	It("consumes exactly the digit budget", func() {
		res := run(baseConfig())
		Expect(res.DigitsUsed).To(Equal(pipelineBudget))
	})

	It("measures a dimension in the plane-filling band", func() {
		res := run(baseConfig())
		Expect(res.Whole.Valid).To(BeTrue())
		Expect(res.Whole.Dimension).To(BeNumerically(">", 1.2))
		Expect(res.Whole.Dimension).To(BeNumerically("<", 2.4))
	})

	It("agrees between the whole grid and its top-left quadrant", func() {
		res := run(baseConfig())
		Expect(res.Whole.Valid).To(BeTrue())
		Expect(res.Quadrant.Valid).To(BeTrue())
		Expect(math.Abs(res.Whole.Dimension - res.Quadrant.Dimension)).To(BeNumerically("<", 0.3))
	})

	It("is deterministic for a fixed configuration", func() {
		a := run(baseConfig())
		b := run(baseConfig())
		Expect(a.Whole.Dimension).To(Equal(b.Whole.Dimension))
		Expect(a.Field.Data()).To(Equal(b.Field.Data()))
	})

	It("runs a batch concurrently with per-run metrics", func() {
		configs := []experiment.Config{baseConfig(), baseConfig()}
		configs[1].Steps = 20

		batch := experiment.NewBatch(configs).WithMetrics(func() []builder.Metric {
			return []builder.Metric{metrics.NewCoverage()}
		})
		results, err := batch.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Field.Size()).To(Equal(64))
		Expect(results[1].Field.Size()).To(Equal(64))
		Expect(results[0].Metrics).To(HaveKey("coverage"))

		// Batch order matches config order and matches a solo run.
		solo := run(baseConfig())
		Expect(results[0].Whole.Dimension).To(Equal(solo.Whole.Dimension))
	})

	It("surfaces the first batch error", func() {
		bad := baseConfig()
		bad.SeedSize = 7

		_, err := experiment.NewBatch([]experiment.Config{baseConfig(), bad}).Run(context.Background())
		Expect(err).To(MatchError(builder.ErrNotPowerOfTwo))
	})

	It("collects metric values by name", func() {
		exp := experiment.New(baseConfig())
		exp.AddMetric(metrics.NewCoverage())
		exp.AddMetric(metrics.NewAmplitude())

		res, err := exp.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKey("coverage"))
		Expect(res.Metrics).To(HaveKey("amplitude"))
		Expect(res.Metrics["coverage"]).To(BeNumerically(">", 0))
		Expect(res.Metrics["coverage"]).To(BeNumerically("<", 1))
	})

	It("generates digits when none are provided", func() {
		cfg := experiment.Config{
			SeedSize:  8,
			FinalSize: 16,
			Steps:     5,
			Source:    "e",
			Resampler: "bilinear",
		}
		res := run(cfg)
		Expect(res.Field.Size()).To(Equal(16))
		Expect(res.DigitsUsed).To(Equal(320))
	})

	It("fails with the exhaustion cause when given too few digits", func() {
		cfg := baseConfig()
		cfg.Digits = piDigits[:100]

		_, err := experiment.New(cfg).Run(context.Background())
		Expect(err).To(MatchError(noise.ErrExhausted))
	})

	It("rejects an unknown digit source before building", func() {
		cfg := experiment.Config{
			SeedSize:  8,
			FinalSize: 16,
			Source:    "sqrt2",
			Resampler: "bicubic",
		}
		_, err := experiment.New(cfg).Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("unknown digit source")))
	})

	It("rejects a seed side that is not a power of two", func() {
		cfg := experiment.Config{
			SeedSize:  7,
			FinalSize: 64,
			Resampler: "bicubic",
		}
		_, err := experiment.New(cfg).Run(context.Background())
		Expect(err).To(MatchError(builder.ErrNotPowerOfTwo))
	})

	It("stops between scales when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := experiment.New(baseConfig()).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})
