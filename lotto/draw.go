package lotto

import "slices"

// Draw is one historical result: exactly 15 distinct numbers in [1,25]
type Draw struct {
	Numbers Set
	Contest int    // Contest number, 0 when the source had none
	Date    string // Draw date as supplied by the source
}

// NewDraw validates numbers and builds a Draw
func NewDraw(numbers []int) (Draw, error) {
	if len(numbers) != DrawSize {
		return Draw{}, Invalid("draw", len(numbers), "must contain exactly %d numbers", DrawSize)
	}
	var s Set
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return Draw{}, Invalid("draw number", n, "must be between %d and %d", MinNumber, MaxNumber)
		}
		if s.Has(n) {
			return Draw{}, Invalid("draw number", n, "is repeated")
		}
		s.Add(n)
	}
	return Draw{Numbers: s}, nil
}

// MustDraw is like NewDraw but panics on invalid input
func MustDraw(numbers ...int) Draw {
	d, err := NewDraw(numbers)
	if err != nil {
		panic(err)
	}
	return d
}

// History is an ordered, oldest-first sequence of draws.
// Windows share the underlying draws; a History is never mutated after
// construction.
type History struct {
	draws []Draw
}

// NewHistory wraps draws, ordered oldest first
func NewHistory(draws []Draw) History {
	return History{draws: slices.Clip(draws)}
}

// Len returns the number of draws
func (h History) Len() int {
	return len(h.draws)
}

// At returns the i-th draw, oldest first
func (h History) At(i int) Draw {
	return h.draws[i]
}

// Latest returns the most recent draw
func (h History) Latest() (Draw, bool) {
	if len(h.draws) == 0 {
		return Draw{}, false
	}
	return h.draws[len(h.draws)-1], true
}

// Draws returns the draws, oldest first. The slice must not be modified.
func (h History) Draws() []Draw {
	return h.draws
}

// Window returns the n most recent draws. n <= 0 or n >= Len returns the
// whole history.
func (h History) Window(n int) History {
	if n <= 0 || n >= len(h.draws) {
		return h
	}
	return History{draws: h.draws[len(h.draws)-n:]}
}
