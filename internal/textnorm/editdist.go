// ABOUTME: Bounded Levenshtein distance with hard length and distance caps
// ABOUTME: Pure utility backing the dictionary's typo-tolerant match tier

package textnorm

import "unicode/utf8"

// maxEditInputRunes is the hard cap on input length. Fuzzy matching is for
// short command words; anything longer is rejected outright.
const maxEditInputRunes = 64

// BoundedEditDistance returns the Levenshtein distance between a and b.
// ok is false when the distance exceeds max or either input exceeds the
// length cap; the returned distance is meaningless in that case.
func BoundedEditDistance(a, b string, max int) (dist int, ok bool) {
	if max < 0 {
		return 0, false
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) > maxEditInputRunes || len(rb) > maxEditInputRunes {
		return 0, false
	}
	if utf8.RuneCountInString(a) == 0 {
		if len(rb) > max {
			return 0, false
		}
		return len(rb), true
	}
	if len(rb) == 0 {
		if len(ra) > max {
			return 0, false
		}
		return len(ra), true
	}
	// Length difference is a lower bound on the distance.
	if diff := len(ra) - len(rb); diff > max || -diff > max {
		return 0, false
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		// Early exit: every cell in the row already exceeds the cap.
		if rowMin > max {
			return 0, false
		}
		prev, curr = curr, prev
	}

	if prev[len(rb)] > max {
		return 0, false
	}
	return prev[len(rb)], true
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
