package match

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// PartialRatio scores how well needle occurs inside haystack on a 0-100
// scale, case-insensitively. A full substring occurrence scores 100;
// otherwise the best edit-distance alignment of needle against same-length
// windows of haystack decides. The score is monotonic with textual overlap;
// no parity with any particular fuzzy-matching library is promised.
func PartialRatio(needle, haystack string) int {
	needle = strings.ToUpper(needle)
	haystack = strings.ToUpper(haystack)

	nr := []rune(needle)
	hr := []rune(haystack)
	if len(nr) == 0 {
		return 0
	}
	if strings.Contains(haystack, needle) {
		return 100
	}
	if len(hr) < len(nr) {
		d := levenshtein.DistanceForStrings(hr, nr, levenshtein.DefaultOptions)
		return ratioScore(d, len(nr))
	}

	best := 0
	for i := 0; i+len(nr) <= len(hr); i++ {
		d := levenshtein.DistanceForStrings(nr, hr[i:i+len(nr)], levenshtein.DefaultOptions)
		if s := ratioScore(d, len(nr)); s > best {
			best = s
		}
	}
	return best
}

func ratioScore(distance, length int) int {
	if distance >= length {
		return 0
	}
	return (100 * (length - distance)) / length
}
