// Package digits produces the leading decimal digits of mathematical
// constants using exact integer arithmetic.
//
// Two spigot generators are provided:
//
//   - [Pi]: unbounded streaming spigot on big integers
//   - [E]: fixed-length factorial-base spigot on machine integers
//
// Both are exact at every step. No floating point enters the digit
// computation, so a given prefix length yields the identical digit
// sequence on every platform, build, and run. That property is what makes
// grids built from these digits reproducible bit for bit.
package digits
