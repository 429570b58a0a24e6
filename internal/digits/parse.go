package digits

import (
	"fmt"
	"io"
	"unicode"
)

// Parse reads a digit sequence from textual form. Decimal digits are
// collected in order; whitespace and a decimal point are ignored, so both
// bare digit dumps and "3.14159..." renderings load back cleanly. Any
// other rune is an error.
func Parse(r io.Reader) ([]uint8, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("digits: read: %w", err)
	}
	out := make([]uint8, 0, len(raw))
	for i, b := range string(raw) {
		switch {
		case b >= '0' && b <= '9':
			out = append(out, uint8(b-'0'))
		case b == '.' || unicode.IsSpace(b):
			// ignore
		default:
			return nil, fmt.Errorf("digits: unexpected character %q at offset %d", b, i)
		}
	}
	return out, nil
}

// Format renders a digit sequence for display: an integer part digit, a
// decimal point, then the fraction wrapped at width digits per line. A
// width at or below zero disables wrapping.
func Format(ds []uint8, width int) string {
	if len(ds) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(ds)+len(ds)/60+2)
	buf = append(buf, '0'+ds[0], '.')
	for i, d := range ds[1:] {
		if width > 0 && i > 0 && i%width == 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, '0'+d)
	}
	return string(buf)
}
