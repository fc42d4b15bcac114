package domest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/koeng101/poly"
)

// seqRegex matches valid, unambiguous DNA
var seqRegex = regexp.MustCompile("^[ATGCatgc]+$")

// validateSeq checks a sequence for non-ATGC characters and uppercases it.
// One of the two hard validation failures: everything downstream assumes
// an unambiguous sequence
func validateSeq(seq string) (string, error) {
	if seq == "" {
		return "", fmt.Errorf("empty sequence")
	}
	if !seqRegex.MatchString(seq) {
		return "", fmt.Errorf("sequence contains non-ATGC characters")
	}
	return strings.ToUpper(seq), nil
}

// revComp returns the reverse complement of a sequence
func revComp(seq string) string {
	return poly.ReverseComplement(seq)
}

// spliceBase returns seq with the base at pos swapped out
func spliceBase(seq string, pos int, base byte) string {
	return seq[:pos] + string(base) + seq[pos+1:]
}

// gcContent is the fraction of G and C bases in seq
func gcContent(seq string) float64 {
	if seq == "" {
		return 0
	}

	gc := 0
	for _, c := range seq {
		if c == 'G' || c == 'C' {
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

// isPalindrome is whether seq is its own reverse complement.
// Palindromic overhangs ligate to themselves
func isPalindrome(seq string) bool {
	return seq == revComp(seq)
}

// isHomopolymer is whether seq is a run of a single base
func isHomopolymer(seq string) bool {
	if seq == "" {
		return false
	}

	for i := 1; i < len(seq); i++ {
		if seq[i] != seq[0] {
			return false
		}
	}
	return true
}

// countSites is the number of times recog or its reverse complement
// occurs in seq. Substring counting, not regex: the registry's
// recognition sequences are unambiguous and the before/after comparison
// in scoring needs exact semantics
func countSites(seq, recog string) int {
	return strings.Count(seq, recog) + strings.Count(seq, revComp(recog))
}
