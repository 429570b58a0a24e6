package digits

import "math/big"

// Generator produces the first n decimal digits of a constant, most
// significant first, one digit per element, each in [0, 9]. The integer
// part counts: Pi starts 3, 1, 4 and E starts 2, 7, 1.
type Generator func(n int) []uint8

var (
	big1  = big.NewInt(1)
	big2  = big.NewInt(2)
	big3  = big.NewInt(3)
	big4  = big.NewInt(4)
	big7  = big.NewInt(7)
	big10 = big.NewInt(10)
)

// Pi returns the first n decimal digits of π.
//
// This is the unbounded spigot: a digit is emitted whenever the current
// linear fractional state pins it down, otherwise another continued
// fraction term is folded in. State grows without bound, so cost per digit
// rises with n, but no precision has to be chosen up front and every digit
// is exact. Divisions must floor (big.Int.Div, not Quo): the remainder
// term r goes negative between emissions.
func Pi(n int) []uint8 {
	if n <= 0 {
		return nil
	}
	out := make([]uint8, 0, n)

	q := big.NewInt(1)
	r := big.NewInt(0)
	t := big.NewInt(1)
	k := big.NewInt(1)
	d := big.NewInt(3)
	l := big.NewInt(3)

	u := new(big.Int)
	v := new(big.Int)

	for len(out) < n {
		u.Mul(big4, q)
		u.Add(u, r)
		u.Sub(u, t)
		v.Mul(d, t)
		if u.Cmp(v) < 0 {
			// d is settled; rescale the state by 10 and shift it out.
			out = append(out, uint8(d.Int64()))

			u.Mul(big3, q)
			u.Add(u, r)
			u.Mul(u, big10)
			u.Div(u, t)
			v.Mul(big10, d)
			u.Sub(u, v) // next digit estimate

			v.Mul(d, t)
			r.Sub(r, v)
			r.Mul(r, big10)
			q.Mul(q, big10)
			d.Set(u)
		} else {
			// Fold in the next term of the continued fraction.
			u.Mul(big7, k)
			u.Add(u, big2)
			u.Mul(u, q)
			v.Mul(r, l)
			u.Add(u, v)
			v.Mul(t, l)
			u.Div(u, v) // next digit estimate

			v.Mul(big2, q)
			v.Add(v, r)
			r.Mul(v, l)
			q.Mul(q, k)
			t.Mul(t, l)
			k.Add(k, big1)
			l.Add(l, big2)
			d.Set(u)
		}
	}
	return out
}
