// Package resample enlarges grids between construction scales.
//
// Both resamplers share the boundary policy of the evolution stencil: the
// grid is toroidal, so interpolation across an edge sees the same wrapped
// neighborhood the update law does and upscaling introduces no seam.
// Source coordinates map as u = c·src/target, which for a doubling places
// every even output sample exactly on a source sample.
package resample

import (
	"errors"

	"github.com/merthusman/fractalcode/internal/field"
)

// ErrTargetTooSmall rejects a target side at or below the source side;
// these resamplers only enlarge.
var ErrTargetTooSmall = errors.New("resample: target side must exceed the source side")

// Resampler enlarges a grid to a target side length.
type Resampler interface {
	Name() string
	Upscale(g *field.Field, target int) (*field.Field, error)
}

// tap is one output coordinate resolved against the source grid: the
// wrapped source indices it reads and their kernel weights.
type tap struct {
	idx [4]int
	w   [4]float64
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// cubicTaps precomputes a Catmull-Rom tap per output coordinate.
func cubicTaps(target, src int) []tap {
	ratio := float64(src) / float64(target)
	taps := make([]tap, target)
	for c := 0; c < target; c++ {
		u := float64(c) * ratio
		base := int(u)
		t := u - float64(base)
		for k := 0; k < 4; k++ {
			taps[c].idx[k] = wrapIndex(base-1+k, src)
		}
		taps[c].w = catmullWeights(t)
	}
	return taps
}

// catmullWeights returns the four Catmull-Rom kernel weights for
// fractional position t inside the center interval. The weights sum to 1
// at every t and collapse to (0, 1, 0, 0) at t = 0.
func catmullWeights(t float64) [4]float64 {
	t2 := t * t
	t3 := t2 * t
	return [4]float64{
		0.5 * (-t3 + 2*t2 - t),
		0.5 * (3*t3 - 5*t2 + 2),
		0.5 * (-3*t3 + 4*t2 + t),
		0.5 * (t3 - t2),
	}
}
