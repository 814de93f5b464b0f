// ABOUTME: Tests for the bounded edit distance utility
// ABOUTME: Covers exact matches, caps, early exit, and multi-byte runes

package textnorm

import "testing"

func TestBoundedEditDistance(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b     string
		max      int
		wantDist int
		wantOK   bool
	}{
		{"lint", "lint", 1, 0, true},
		{"lint", "litn", 2, 2, true},
		{"commit", "comit", 1, 1, true},
		{"commit", "kommit", 1, 1, true},
		{"fix", "fax", 1, 1, true},
		{"fix", "box", 1, 0, false},
		{"", "ab", 1, 0, false},
		{"", "a", 1, 1, true},
		{"refactor", "refactory", 1, 1, true},
		{"short", "muchlongerword", 2, 0, false}, // length diff quick reject
		{"バグ", "バグズ", 1, 1, true},
		{"直して", "直した", 1, 1, true},
	}

	for _, tc := range cases {
		dist, ok := BoundedEditDistance(tc.a, tc.b, tc.max)
		if ok != tc.wantOK {
			t.Errorf("BoundedEditDistance(%q, %q, %d) ok = %v; want %v", tc.a, tc.b, tc.max, ok, tc.wantOK)
			continue
		}
		if ok && dist != tc.wantDist {
			t.Errorf("BoundedEditDistance(%q, %q, %d) = %d; want %d", tc.a, tc.b, tc.max, dist, tc.wantDist)
		}
	}
}

func TestBoundedEditDistanceLengthCap(t *testing.T) {
	t.Parallel()

	long := make([]byte, maxEditInputRunes+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, ok := BoundedEditDistance(string(long), string(long), 10); ok {
		t.Error("ok = true for input beyond the length cap; want false")
	}
}

func TestBoundedEditDistanceNegativeMax(t *testing.T) {
	t.Parallel()

	if _, ok := BoundedEditDistance("a", "a", -1); ok {
		t.Error("ok = true for negative max; want false")
	}
}
