package domest

// OverhangScore is the fidelity oracle's assessment of a single overhang
type OverhangScore struct {
	// Score is in [0,100], higher ligates more specifically
	Score float64 `json:"score"`

	// GCContent of the overhang
	GCContent float64 `json:"gcContent"`

	// Palindrome overhangs ligate to themselves and are heavily penalized
	Palindrome bool `json:"isPalindrome"`
}

// overhangQuality scores a single overhang for use as a ligation
// junction. GC balance is rewarded, palindromes and homopolymers are
// penalized, and the TNNA pattern gets a small empirical bonus
func overhangQuality(overhang string) OverhangScore {
	gc := gcContent(overhang)
	palindrome := isPalindrome(overhang)

	score := 100.0

	// 25-75% GC ligates best. All-AT and all-GC overhangs are the
	// least specific
	switch {
	case gc == 0 || gc == 1:
		score -= 30
	case gc < 0.25 || gc > 0.75:
		score -= 15
	}

	if palindrome {
		score -= 40
	}
	if isHomopolymer(overhang) {
		score -= 25
	}

	// TNNA overhangs ligate with above average fidelity
	if len(overhang) == 4 && overhang[0] == 'T' && overhang[3] == 'A' {
		score += 5
	}

	return OverhangScore{
		Score:      clamp(score, 0, 100),
		GCContent:  gc,
		Palindrome: palindrome,
	}
}

// ligationFreq is the observed ligation frequency between overhang a
// and the Watson-Crick partner of overhang b. The diagonal freq(o, o)
// is the correct-ligation event. Derived from pairwise complementarity:
// a perfect match ligates far more often than a single mismatch, G:T
// mismatches ligate more often than other mismatches
func ligationFreq(a, b string) int {
	if len(a) != len(b) {
		return 0
	}

	// a anneals to the strand revComp(b): position i of a pairs against
	// the complement of b[i], so a == b is the perfect duplex
	matches := 0
	wobble := 0
	for i := range a {
		if a[i] == b[i] {
			matches++
			continue
		}
		// G:T wobble pairs anneal more readily than other mismatches
		if (a[i] == 'G' && b[i] == 'A') || (a[i] == 'T' && b[i] == 'C') {
			wobble++
		}
	}

	switch len(a) - matches {
	case 0:
		return 500
	case 1:
		if wobble == 1 {
			return 40
		}
		return 15
	case 2:
		return 2
	default:
		return 0
	}
}

// setFidelity is the probability that every overhang in the set
// ligates only to its intended partner: the product, over overhangs,
// of correct ligations over all ligations within the set
func setFidelity(overhangs []string) float64 {
	if len(overhangs) == 0 {
		return 0
	}

	fidelity := 1.0
	for _, overhang := range overhangs {
		correct := ligationFreq(overhang, overhang)
		total := 0
		for _, other := range overhangs {
			total += ligationFreq(overhang, other)

			// an overhang also sees the complements of every other
			// overhang in the pot
			if other != overhang {
				total += ligationFreq(overhang, revComp(other))
			}
		}
		if total == 0 {
			return 0
		}
		fidelity *= float64(correct) / float64(total)
	}
	return fidelity
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
