package domest

import (
	"sort"
	"strings"

	"domest/config"
)

// religationFlank is how much context on each side of an overhang is
// rebuilt when checking whether an assembled junction recreates the
// recognition sequence
const religationFlank = 10

// JunctionMutation is the base change a mutagenic junction carries in
// its primer tail
type JunctionMutation struct {
	// Position of the changed base on the full sequence
	Position int `json:"position"`

	// NewBase replacing the original
	NewBase string `json:"newBase"`
}

// JunctionCandidate is one fragment-boundary position that splits an
// internal site, together with the overhang (scar) it would leave
type JunctionCandidate struct {
	// Position is the 0-based start of the overhang window
	Position int `json:"position"`

	// Overhang is the scar left in the assembled product. If Mutation
	// is set it differs from the template at one base
	Overhang string `json:"overhang"`

	// Quality is the fidelity oracle's score for the overhang
	Quality float64 `json:"qualityScore"`

	// BreaksForward / BreaksReverse are whether the assembled junction
	// context lacks a template / reverse strand recognition match
	BreaksForward bool `json:"breaksForward"`
	BreaksReverse bool `json:"breaksReverse"`

	// RecreatesSite is whether re-ligating the two fragment ends
	// rebuilds the recognition sequence in either orientation
	RecreatesSite bool `json:"recreatesSite"`

	// Valid junctions don't recreate the site and meet the quality bar
	Valid bool `json:"isValid"`

	// Mutation carried in the overhang, nil for a pure split. A pure
	// split reassembles the original text and so always recreates the
	// site (the legacy junction failure mode)
	Mutation *JunctionMutation `json:"mutation,omitempty"`
}

// JunctionResult is every junction candidate for one site, sorted
// valid-first then by quality. Invalid candidates are kept so a caller
// can see why no valid option existed
type JunctionResult struct {
	Site       InternalSite        `json:"site"`
	Candidates []JunctionCandidate `json:"candidates"`

	// HasValidOption false is a legitimate terminal state requiring a
	// strategy fallback, not an error
	HasValidOption bool `json:"hasValidOption"`
}

// recommended is the top valid candidate, nil when there is none
func (r *JunctionResult) recommended() *JunctionCandidate {
	if !r.HasValidOption || len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// placeJunctions enumerates fragment-boundary positions whose overhang
// window overlaps the interior of the site's recognition span, scores
// each resulting overhang, and checks whether the re-ligated product
// would regenerate the recognition sequence.
//
// For each position both the pure split and every single-base variant
// within the window's overlap of the site are candidates: the variant
// is the mutation a mutagenic junction carries in its primer tail
func placeJunctions(seq string, site InternalSite, enz enzyme, conf *config.Config) JunctionResult {
	result := JunctionResult{Site: site, Candidates: []JunctionCandidate{}}

	ohLen := enz.overhangLen
	siteStart, siteEnd := site.Position, site.end()

	// the window [p, p+ohLen) must cover at least one strictly interior
	// base of the site: overlap that only touches an edge doesn't split
	// the recognition text
	interiorStart, interiorEnd := siteStart+1, siteEnd-1
	for p := siteStart - ohLen + 1; p < siteEnd; p++ {
		if p < 0 || p+ohLen > len(seq) {
			continue
		}
		if p+ohLen <= interiorStart || p >= interiorEnd {
			continue
		}

		// pure split first
		result.Candidates = append(result.Candidates, newJunctionCandidate(seq, p, enz, nil, conf))

		// single-base variants within the window's overlap of the site
		overlapStart := max(p, siteStart)
		overlapEnd := min(p+ohLen, siteEnd)
		for mp := overlapStart; mp < overlapEnd; mp++ {
			for _, base := range []byte{'A', 'C', 'G', 'T'} {
				if base == seq[mp] {
					continue
				}
				mut := &JunctionMutation{Position: mp, NewBase: string(base)}
				result.Candidates = append(result.Candidates, newJunctionCandidate(seq, p, enz, mut, conf))
			}
		}
	}

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		a, b := result.Candidates[i], result.Candidates[j]
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Quality > b.Quality
	})

	result.HasValidOption = len(result.Candidates) > 0 && result.Candidates[0].Valid
	return result
}

// newJunctionCandidate builds and scores a single candidate at overhang
// window position p, with an optional carried mutation
func newJunctionCandidate(seq string, p int, enz enzyme, mut *JunctionMutation, conf *config.Config) JunctionCandidate {
	scarSeq := seq
	if mut != nil {
		scarSeq = spliceBase(seq, mut.Position, mut.NewBase[0])
	}
	overhang := scarSeq[p : p+enz.overhangLen]

	// what the assembled product reads around this junction: the scar
	// with up to religationFlank bases of context on each side. This is
	// a different question from whether the pre-assembly boundary
	// overlaps the site: the new splice point is what must avoid
	// recreating the recognition sequence
	flankStart := max(0, p-religationFlank)
	flankEnd := min(len(scarSeq), p+enz.overhangLen+religationFlank)
	context := scarSeq[flankStart:flankEnd]

	fwd := strings.Count(context, enz.recog)
	rev := strings.Count(context, revComp(enz.recog))

	quality := overhangQuality(overhang)
	cand := JunctionCandidate{
		Position:      p,
		Overhang:      overhang,
		Quality:       quality.Score,
		BreaksForward: fwd == 0,
		BreaksReverse: rev == 0,
		RecreatesSite: fwd+rev > 0,
		Mutation:      mut,
	}
	cand.Valid = !cand.RecreatesSite && cand.Quality >= conf.Junctions.QualityMin
	return cand
}
