package domest

import (
	"fmt"

	"domest/config"
)

// search methods reported on an OverhangSetResult
const (
	searchExhaustive = "exhaustive"
	searchGreedy     = "greedy"
)

// OverhangSelection is the junction candidate chosen for one site
type OverhangSelection struct {
	Overhang string  `json:"overhang"`
	Position int     `json:"position"`
	Quality  float64 `json:"quality"`
}

// OverhangValidation is the collision check over a chosen overhang set
type OverhangValidation struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// OverhangSetResult is the best overhang combination found for an
// assembly, with diagnostics about how the search ran
type OverhangSetResult struct {
	Selections []OverhangSelection `json:"selections"`
	Overhangs  []string            `json:"overhangs"`
	Fidelity   float64             `json:"fidelity"`
	Validation OverhangValidation  `json:"validation"`

	// SearchMethod is exhaustive below the combination cap, greedy above
	SearchMethod string `json:"searchMethod"`

	// Evaluated is how many combinations were actually scored
	Evaluated int `json:"combinationsEvaluated"`
}

// radixCounter enumerates index vectors in mixed-radix order: the
// least-significant index increments first and carries on overflow.
// The enumeration is deterministic and restartable
type radixCounter struct {
	radices []int
	digits  []int
	started bool
	done    bool
}

func newRadixCounter(radices []int) *radixCounter {
	c := &radixCounter{radices: radices, digits: make([]int, len(radices))}
	for _, r := range radices {
		if r < 1 {
			c.done = true
		}
	}
	return c
}

// next returns the next index vector, or false once every position has
// cycled back to zero after the first pass. The returned slice is
// reused between calls
func (c *radixCounter) next() ([]int, bool) {
	if c.done {
		return nil, false
	}
	if !c.started {
		c.started = true
		return c.digits, true
	}

	for i := 0; i < len(c.digits); i++ {
		c.digits[i]++
		if c.digits[i] < c.radices[i] {
			return c.digits, true
		}
		c.digits[i] = 0 // carry
	}

	// carried off the end: back at all zeros
	c.done = true
	return nil, false
}

// reset rewinds the counter to its initial state
func (c *radixCounter) reset() {
	for i := range c.digits {
		c.digits[i] = 0
	}
	c.started = false
	c.done = false
	for _, r := range c.radices {
		if r < 1 {
			c.done = true
		}
	}
}

// validateOverhangSet checks a set of chosen overhangs, plus any
// already committed elsewhere in the assembly, for equal or mutual
// reverse-complement pairs
func validateOverhangSet(chosen, existing []string) OverhangValidation {
	validation := OverhangValidation{Valid: true, Issues: []string{}}

	all := append(append([]string{}, chosen...), existing...)
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[i] == all[j] {
				validation.Issues = append(validation.Issues, fmt.Sprintf("duplicate overhang %s", all[i]))
			} else if all[i] == revComp(all[j]) {
				validation.Issues = append(validation.Issues, fmt.Sprintf("overhangs %s and %s are reverse complements", all[i], all[j]))
			}
		}
		if isPalindrome(all[i]) {
			validation.Issues = append(validation.Issues, fmt.Sprintf("overhang %s is palindromic", all[i]))
		}
	}

	validation.Valid = len(validation.Issues) == 0
	return validation
}

// optimizeOverhangSet searches the cross product of each site's
// junction candidates for the overhang combination with the best
// whole-assembly fidelity.
//
// Below the combination cap the search is exhaustive and the result is
// the true optimum. Above it, a greedy local search starts from each
// site's best candidate and swaps one site at a time, keeping the
// first strictly-improving swap, until a full pass improves nothing or
// the iteration cap is reached. Both are deterministic
func optimizeOverhangSet(perSite [][]JunctionCandidate, existing []string, conf *config.Config) (OverhangSetResult, *PlanError) {
	for i, candidates := range perSite {
		if len(candidates) == 0 {
			return OverhangSetResult{}, &PlanError{
				Type:    errNoCandidates,
				Message: fmt.Sprintf("no junction candidates for site %d", i),
				Site:    i,
			}
		}
	}
	if len(perSite) == 0 {
		return OverhangSetResult{}, &PlanError{Type: errNoCandidates, Message: "no sites requiring junctions"}
	}

	// combination count, capped to avoid overflow
	total := 1
	radices := make([]int, len(perSite))
	for i, candidates := range perSite {
		radices[i] = len(candidates)
		if total <= conf.Search.ExhaustiveCap {
			total *= len(candidates)
		}
	}

	var best []int
	var bestFidelity float64
	evaluated := 0
	method := searchExhaustive

	score := func(indices []int) float64 {
		chosen := make([]string, len(indices))
		for site, idx := range indices {
			chosen[site] = perSite[site][idx].Overhang
		}
		if v := validateOverhangSet(chosen, existing); !v.Valid {
			return 0
		}
		return setFidelity(append(chosen, existing...))
	}

	if total <= conf.Search.ExhaustiveCap {
		counter := newRadixCounter(radices)
		for indices, ok := counter.next(); ok; indices, ok = counter.next() {
			evaluated++
			fidelity := score(indices)
			if best == nil || fidelity > bestFidelity {
				best = append([]int{}, indices...)
				bestFidelity = fidelity
			}
		}
	} else {
		method = searchGreedy

		// seed with each site's best-scoring candidate
		best = make([]int, len(perSite))
		bestFidelity = score(best)
		evaluated++

		for pass := 0; pass < conf.Search.GreedyIterations; pass++ {
			improved := false
			for site := range perSite {
				for alt := 0; alt < len(perSite[site]); alt++ {
					if alt == best[site] {
						continue
					}
					prev := best[site]
					best[site] = alt
					evaluated++
					if fidelity := score(best); fidelity > bestFidelity {
						bestFidelity = fidelity
						improved = true
						break // first improving swap is kept
					}
					best[site] = prev
				}
			}
			if !improved {
				break
			}
		}
	}

	// assemble the result from the winning index vector
	result := OverhangSetResult{
		Selections:   make([]OverhangSelection, len(best)),
		Overhangs:    make([]string, len(best)),
		SearchMethod: method,
		Evaluated:    evaluated,
	}
	for site, idx := range best {
		cand := perSite[site][idx]
		result.Selections[site] = OverhangSelection{
			Overhang: cand.Overhang,
			Position: cand.Position,
			Quality:  cand.Quality,
		}
		result.Overhangs[site] = cand.Overhang
	}
	result.Validation = validateOverhangSet(result.Overhangs, existing)
	result.Fidelity = setFidelity(append(append([]string{}, result.Overhangs...), existing...))
	return result, nil
}
