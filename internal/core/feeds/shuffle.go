package feeds

import (
	"math"
	"unicode/utf16"
)

// Deterministic shuffle for the "default" sort mode.
//
// The ordering is not expressible as a range condition on a stored column, so
// each page request recomputes a full permutation of the filtered set and
// pages it by integer offset. Identical filter parameters always yield the
// identical permutation; the permutation changes only when the filtered set's
// membership changes. Rows inserted or deleted mid-session shift offsets and
// can surface duplicates or skips across pages; that is a documented
// limitation of this mode.
//
// The generator is NOT cryptographic and must never be used where
// unpredictability matters.

// seedString serializes the filter parameters into the permutation seed
func seedString(f Filter) string {
	if f.Kind == FilterAuthor {
		return `{"filterType":"author","authorFilter":"` + f.Author + `"}`
	}
	return `{"filterType":"` + string(f.Kind) + `"}`
}

// foldSeed accumulates hash = hash*31 + codeUnit over the seed's UTF-16 code
// units, truncated to 32-bit width at each step
func foldSeed(seed string) int32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash = hash*31 + int32(unit)
	}
	return hash
}

// seededValue derives the pseudo-random value for one position:
// abs(sin(hash + position) * 10000) mod 1
func seededValue(hash int32, position int) float64 {
	v := math.Abs(math.Sin(float64(hash)+float64(position)) * 10000)
	return math.Mod(v, 1)
}

// Permutation returns the shuffled index order for n items filtered by f.
// Callers apply it to the filtered set ordered by ascending identifier.
func Permutation(n int, f Filter) []int {
	hash := foldSeed(seedString(f))

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	// Fisher-Yates from the last position down, swap target scaled to the
	// remaining prefix
	for i := n - 1; i > 0; i-- {
		j := int(seededValue(hash, i) * float64(i+1))
		order[i], order[j] = order[j], order[i]
	}

	return order
}
