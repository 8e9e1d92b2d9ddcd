package lotto

import (
	"strconv"
	"strings"
)

// ParseNumbers parses a comma-separated list of integers into a set.
// Duplicates collapse; whitespace around entries is ignored.
func ParseNumbers(field, input string) (Set, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, Invalid(field, input, "must not be empty")
	}

	var s Set
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, Invalid(field, part, "must contain only integers")
		}
		if n < MinNumber || n > MaxNumber {
			return 0, Invalid(field, n, "numbers must be between %d and %d", MinNumber, MaxNumber)
		}
		s.Add(n)
	}
	return s, nil
}

// ParseGame parses exactly 15 distinct numbers
func ParseGame(input string) (Set, error) {
	s, err := ParseNumbers("game", input)
	if err != nil {
		return 0, err
	}
	if s.Len() != DrawSize {
		return 0, Invalid("game", s.Len(), "must contain exactly %d distinct numbers", DrawSize)
	}
	return s, nil
}

// ParsePool parses a pool whose distinct size lies in [minSize, MaxPoolSize]
func ParsePool(input string, minSize int) (Set, error) {
	s, err := ParseNumbers("pool", input)
	if err != nil {
		return 0, err
	}
	if n := s.Len(); n < minSize || n > MaxPoolSize {
		return 0, Invalid("pool", n, "must contain between %d and %d distinct numbers", minSize, MaxPoolSize)
	}
	return s, nil
}
