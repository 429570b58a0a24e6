package digits

// E returns the first n decimal digits of e.
//
// The fractional part e−2 is held in mixed-radix form as coefficients of
// 1/2!, 1/3!, ... and repeatedly multiplied by 10: sweeping from the least
// significant position, each coefficient is reduced modulo its radix and
// the carry propagated left. The carry out of the top position is the next
// decimal digit. The mixed-radix representation keeps every normalized
// fraction below 1, so each carry is a single digit and no lookahead is
// needed. Ten guard positions absorb the truncated factorial tail.
func E(n int) []uint8 {
	if n <= 0 {
		return nil
	}
	out := make([]uint8, 0, n)
	out = append(out, 2)
	if n == 1 {
		return out
	}

	frac := n - 1
	a := make([]int, frac+10)
	for i := range a {
		a[i] = 1
	}
	for len(out) < n {
		carry := 0
		for i := len(a) - 1; i >= 0; i-- {
			// a[i] carries weight 1/(i+2)!, so its radix is i+2.
			x := a[i]*10 + carry
			a[i] = x % (i + 2)
			carry = x / (i + 2)
		}
		out = append(out, uint8(carry))
	}
	return out
}
