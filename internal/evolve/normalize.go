package evolve

import "github.com/merthusman/fractalcode/internal/field"

// DefaultEpsilon is the standard deviation below which a grid counts as
// flat and normalization is skipped to avoid dividing by a vanishing
// spread.
const DefaultEpsilon = 1e-9

// Normalizer rescales grids to zero mean and unit variance.
type Normalizer struct {
	Epsilon float64
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Epsilon: DefaultEpsilon}
}

// Normalize returns a rescaled copy of the grid, or the input itself,
// unmodified, when its standard deviation is at or below Epsilon.
func (nz *Normalizer) Normalize(g *field.Field) *field.Field {
	mean, std := g.Stats()
	if std <= nz.Epsilon {
		return g
	}
	out, _ := field.New(g.Size())
	src, dst := g.Data(), out.Data()
	inv := 1 / std
	for i, v := range src {
		dst[i] = (v - mean) * inv
	}
	return out
}
