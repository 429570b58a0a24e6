package builder

import "errors"

var (
	// ErrScheduleTooShort indicates fewer than two schedule entries.
	ErrScheduleTooShort = errors.New("builder: schedule needs at least two sizes")

	// ErrScheduleOrder indicates sizes that fail to strictly increase.
	ErrScheduleOrder = errors.New("builder: schedule sizes must strictly increase")

	// ErrNotPowerOfTwo indicates a size that is not a power of two.
	ErrNotPowerOfTwo = errors.New("builder: schedule sizes must be powers of two")

	// ErrNotDoubling indicates consecutive sizes whose ratio is not 2.
	ErrNotDoubling = errors.New("builder: each schedule size must double the previous one")
)

// Schedule is the ordered list of grid side lengths a construction passes
// through, seed first. A valid schedule has at least two entries, every
// entry a power of two, each entry exactly double its predecessor.
type Schedule []int

// NewSchedule doubles from seed up to final inclusive. Both bounds must
// be powers of two with final above seed.
func NewSchedule(seed, final int) (Schedule, error) {
	if !isPowerOfTwo(seed) || !isPowerOfTwo(final) {
		return nil, ErrNotPowerOfTwo
	}
	if final <= seed {
		return nil, ErrScheduleOrder
	}
	var s Schedule
	for size := seed; size <= final; size *= 2 {
		s = append(s, size)
	}
	return s, nil
}

// Validate checks the schedule invariants. It touches no grid data, so a
// bad schedule is rejected before a single digit is consumed.
func (s Schedule) Validate() error {
	if len(s) < 2 {
		return ErrScheduleTooShort
	}
	for i, size := range s {
		if !isPowerOfTwo(size) {
			return ErrNotPowerOfTwo
		}
		if i == 0 {
			continue
		}
		if size <= s[i-1] {
			return ErrScheduleOrder
		}
		if size != 2*s[i-1] {
			return ErrNotDoubling
		}
	}
	return nil
}

// DigitBudget returns how many digits a build over this schedule
// consumes: one size² block per entry, seed included.
func (s Schedule) DigitBudget() int {
	total := 0
	for _, size := range s {
		total += size * size
	}
	return total
}

// Seed returns the first side length.
func (s Schedule) Seed() int { return s[0] }

// Final returns the last side length.
func (s Schedule) Final() int { return s[len(s)-1] }

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
