package domest

import (
	"fmt"
	"sort"
)

// primerLen is how much of each fragment end is turned into a primer
// annealing region. The enzyme recognition tail is prepended by the
// surrounding application, it isn't part of the domestication scar
const primerLen = 20

// Primer is one amplification primer for a fragment
type Primer struct {
	Seq string `json:"seq"`

	// Forward primers anneal at the fragment's 5' end
	Forward bool `json:"forward"`

	// CarriesMutation is whether this primer's annealing region
	// contains a junction's base change
	CarriesMutation bool `json:"carriesMutation"`
}

// Fragment is one piece of the split sequence, sharing its overhang
// scar with the next fragment
type Fragment struct {
	ID  string `json:"id"`
	Seq string `json:"seq"`

	// Start and End are the fragment's span on the original sequence
	Start int `json:"start"`
	End   int `json:"end"`

	// Overhang is the scar shared with the next fragment, empty for
	// the last one
	Overhang string `json:"overhang,omitempty"`

	Primers []Primer `json:"primers"`
}

// AppliedJunction is one junction as executed
type AppliedJunction struct {
	Position int               `json:"position"`
	Overhang string            `json:"overhang"`
	Mutation *JunctionMutation `json:"mutation,omitempty"`
}

// Check is a single named pass/fail item on the verification checklist
type Check struct {
	Name string `json:"name"`
	Pass bool   `json:"pass"`
}

// Verification is the post-execution report: site re-detection and
// protein/primer checks
type Verification struct {
	IsValid bool     `json:"isValid"`
	Issues  []string `json:"issues"`
	Checks  []Check  `json:"checks"`
}

// check records one checklist item, collecting an issue on failure
func (v *Verification) check(name string, pass bool, issueFormat string, args ...interface{}) {
	v.Checks = append(v.Checks, Check{Name: name, Pass: pass})
	if !pass {
		v.IsValid = false
		v.Issues = append(v.Issues, fmt.Sprintf(issueFormat, args...))
	}
}

// Selections is the user's confirmed choices applied at execution.
// Nil maps mean the engine's top-ranked option per site
type Selections struct {
	// Strategy overrides the plan's selected strategy
	Strategy Strategy

	// Mutations is site index -> index into that site's ranked mutations
	Mutations map[int]int

	// Junctions is site index -> index into that site's junction candidates
	Junctions map[int]int
}

// DomesticationResult is the final product of an executed plan: the
// domesticated sequence or the fragment/primer set, with a
// verification report. A verification failure flips Success, it never
// panics
type DomesticationResult struct {
	Strategy Strategy `json:"strategy"`

	// Seq is the domesticated sequence (silent mutation strategies)
	Seq string `json:"domesticatedSeq,omitempty"`

	// Fragments is the fragment/primer set (junction strategies)
	Fragments []Fragment `json:"fragments,omitempty"`

	Mutations []ScoredMutation  `json:"mutations,omitempty"`
	Junctions []AppliedJunction `json:"junctions,omitempty"`

	// AltEnzyme is the recommended enzyme for alternative_enzyme plans
	AltEnzyme string `json:"altEnzyme,omitempty"`

	Verification Verification `json:"verification"`
	Success      bool         `json:"success"`
}

// Execute applies the confirmed selections of a plan and verifies the
// product. The plan is discarded afterwards: the result is the only
// record of what was done
func Execute(plan *DomesticationPlan, sel *Selections) *DomesticationResult {
	if sel == nil {
		sel = &Selections{}
	}

	strategy := plan.Strategy
	if sel.Strategy != "" {
		strategy = sel.Strategy
	}

	result := &DomesticationResult{
		Strategy:     strategy,
		Verification: Verification{IsValid: true, Issues: []string{}, Checks: []Check{}},
	}
	plan.step(stepExecution, "executing %s", strategy)

	registry := NewEnzymeRegistry()
	enz, err := registry.Get(plan.Enzyme)
	if err != nil {
		result.Verification.check("enzyme known", false, "%v", err)
		result.Success = false
		return result
	}

	switch strategy {
	case StrategyNone:
		result.Seq = plan.Seq

	case StrategyAlternativeEnzyme:
		executeAlternativeEnzyme(plan, result)

	case StrategySilentMutation:
		executeSilent(plan, sel, enz, result)

	case StrategyMutagenicJunction, StrategyLegacyJunction, StrategyHybrid:
		executeJunctions(plan, sel, enz, strategy, result)

	default:
		result.Verification.check("strategy known", false, "can't execute strategy %s", strategy)
	}

	result.Success = result.Verification.IsValid
	return result
}

// executeAlternativeEnzyme doesn't change the sequence: it hands back
// the zero-site enzyme to switch the assembly to
func executeAlternativeEnzyme(plan *DomesticationPlan, result *DomesticationResult) {
	result.Seq = plan.Seq
	if len(plan.AltEnzymes) == 0 {
		result.Verification.check("alternative enzyme available", false, "no registry enzyme is free of internal sites")
		return
	}

	result.AltEnzyme = plan.AltEnzymes[0]
	registry := NewEnzymeRegistry()
	alt, err := registry.Get(result.AltEnzyme)
	remaining := -1
	if err == nil {
		remaining = len(findInternalSites(plan.Seq, alt))
	}
	result.Verification.check("no internal sites for alternative enzyme", remaining == 0,
		"%s still has %d internal site(s)", result.AltEnzyme, remaining)
}

// chosenMutation is the user's (or the engine's top-ranked) mutation
// for a site, nil when the site has none
func chosenMutation(plan *DomesticationPlan, sel *Selections, site int) *ScoredMutation {
	mutations := plan.Analyses[site].Mutations
	if len(mutations) == 0 {
		return nil
	}
	idx := 0
	if sel.Mutations != nil {
		if chosen, ok := sel.Mutations[site]; ok && chosen >= 0 && chosen < len(mutations) {
			idx = chosen
		}
	}
	return &mutations[idx]
}

// executeSilent splices the chosen mutation for every site into the
// sequence, highest position first to avoid offset drift, then
// verifies site removal and protein identity
func executeSilent(plan *DomesticationPlan, sel *Selections, enz enzyme, result *DomesticationResult) {
	applied := []ScoredMutation{}
	for i := range plan.Analyses {
		mutation := chosenMutation(plan, sel, i)
		if mutation == nil {
			result.Verification.check(fmt.Sprintf("site %d has a mutation", i), false,
				"site %d has no silent mutation to apply", i)
			continue
		}
		applied = append(applied, *mutation)
	}

	sort.Slice(applied, func(i, j int) bool {
		return applied[i].Position > applied[j].Position
	})

	domesticated := plan.Seq
	for _, mutation := range applied {
		domesticated = mutation.apply(domesticated)
	}
	result.Seq = domesticated
	result.Mutations = applied

	remaining := len(findInternalSites(domesticated, enz))
	result.Verification.check("internal sites removed", remaining == 0,
		"%d internal site(s) remain after mutation", remaining)

	if plan.Frame >= 0 && plan.Frame <= 2 {
		tables := newCodonTables()
		before := tables.translateFrame(plan.Seq, plan.Frame)
		after := tables.translateFrame(domesticated, plan.Frame)
		result.Verification.check("protein unchanged", before == after,
			"domestication changed the protein sequence")
	}
}

// executeJunctions splits the sequence at the optimizer's chosen
// junctions (applying each junction's carried mutation and, for
// hybrid, the silent mutations) and builds the fragment and primer
// set. Verifies that every junction mutation lands in a primer
// annealing region, and for mutagenic junctions that the re-assembled
// product is site free
func executeJunctions(plan *DomesticationPlan, sel *Selections, enz enzyme, strategy Strategy, result *DomesticationResult) {
	if plan.OverhangSet == nil || len(plan.OverhangSet.Selections) == 0 {
		result.Verification.check("overhang set chosen", false, "no overhang set to execute")
		return
	}

	domesticated := plan.Seq

	// hybrid: silent mutations first for the tractable sites
	if strategy == StrategyHybrid {
		silent := []ScoredMutation{}
		for i, analysis := range plan.Analyses {
			if !analysis.SilentOK {
				continue
			}
			if mutation := chosenMutation(plan, sel, i); mutation != nil {
				silent = append(silent, *mutation)
			}
		}
		sort.Slice(silent, func(i, j int) bool {
			return silent[i].Position > silent[j].Position
		})
		for _, mutation := range silent {
			domesticated = mutation.apply(domesticated)
		}
		result.Mutations = silent
	}

	// resolve each selection back to its junction candidate, honoring
	// per-site overrides
	junctions := []AppliedJunction{}
	indexes := plan.junctionSites()
	for i, idx := range indexes {
		if i >= len(plan.OverhangSet.Selections) {
			break
		}

		cand := selectedCandidate(plan.Analyses[idx], plan.OverhangSet.Selections[i])
		if sel.Junctions != nil {
			if chosen, ok := sel.Junctions[idx]; ok && chosen >= 0 && chosen < len(plan.Analyses[idx].Junctions.Candidates) {
				cand = &plan.Analyses[idx].Junctions.Candidates[chosen]
			}
		}
		if cand == nil {
			result.Verification.check(fmt.Sprintf("junction for site %d", idx), false,
				"selection for site %d doesn't match any candidate", idx)
			continue
		}

		if cand.Mutation != nil {
			domesticated = spliceBase(domesticated, cand.Mutation.Position, cand.Mutation.NewBase[0])
		}
		junctions = append(junctions, AppliedJunction{
			Position: cand.Position,
			Overhang: cand.Overhang,
			Mutation: cand.Mutation,
		})
	}
	result.Junctions = junctions

	sort.Slice(junctions, func(i, j int) bool {
		return junctions[i].Position < junctions[j].Position
	})
	result.Fragments = buildFragments(domesticated, junctions, enz)

	// every junction mutation must land in a primer annealing region
	for _, junction := range junctions {
		if junction.Mutation == nil {
			continue
		}
		found := false
		for _, frag := range result.Fragments {
			fwdEnd := min(frag.Start+primerLen, frag.End)
			revStart := max(frag.Start, frag.End-primerLen)
			p := junction.Mutation.Position
			if (p >= frag.Start && p < fwdEnd) || (p >= revStart && p < frag.End) {
				found = true
				break
			}
		}
		result.Verification.check(fmt.Sprintf("mutation at %d in a primer", junction.Mutation.Position), found,
			"junction mutation at %d isn't covered by any primer", junction.Mutation.Position)
	}

	// the assembled product must be site free, except for legacy
	// junctions where recreation is the accepted tradeoff
	if strategy != StrategyLegacyJunction {
		remaining := len(findInternalSites(domesticated, enz))
		result.Verification.check("assembled product site free", remaining == 0,
			"%d internal site(s) would survive assembly", remaining)
	}
}

// buildFragments cuts seq at each junction, fragments sharing the
// overhang scar, and derives amplification primers for each fragment
func buildFragments(seq string, junctions []AppliedJunction, enz enzyme) []Fragment {
	// mutation positions, for primer annotation
	mutations := []int{}
	for _, junction := range junctions {
		if junction.Mutation != nil {
			mutations = append(mutations, junction.Mutation.Position)
		}
	}
	covers := func(start, end int) bool {
		for _, p := range mutations {
			if p >= start && p < end {
				return true
			}
		}
		return false
	}

	fragments := []Fragment{}
	start := 0
	for i := 0; i <= len(junctions); i++ {
		end := len(seq)
		overhang := ""
		if i < len(junctions) {
			end = junctions[i].Position + enz.overhangLen
			overhang = junctions[i].Overhang
		}

		fwdEnd := min(start+primerLen, end)
		revStart := max(start, end-primerLen)
		frag := Fragment{
			ID:       fmt.Sprintf("fragment-%d", i+1),
			Seq:      seq[start:end],
			Start:    start,
			End:      end,
			Overhang: overhang,
			Primers: []Primer{
				{Seq: seq[start:fwdEnd], Forward: true, CarriesMutation: covers(start, fwdEnd)},
				{Seq: revComp(seq[revStart:end]), Forward: false, CarriesMutation: covers(revStart, end)},
			},
		}
		fragments = append(fragments, frag)

		if i < len(junctions) {
			start = junctions[i].Position
		}
	}
	return fragments
}
