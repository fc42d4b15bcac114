package domest

import (
	"fmt"
	"sort"

	"domest/config"
)

// ScoredMutation is a MutationCandidate ranked against the others for
// the same site. Score is in [0,100]
type ScoredMutation struct {
	MutationCandidate

	Score     float64  `json:"score"`
	Penalties []string `json:"penalties"`
	Bonuses   []string `json:"bonuses"`

	// CreatesNewSite is whether the substitution introduces a new
	// recognition site nearby. A severe penalty but not a rejection:
	// callers should see when there were no clean options
	CreatesNewSite bool `json:"createsNewSite"`
}

// scoreMutations ranks candidates for a site. Disruption correctness is
// already guaranteed by generation, so scoring is about picking the
// least disruptive of otherwise valid options: codon usage preservation,
// wobble position substitutions, and above all not creating a new site
func scoreMutations(
	candidates []MutationCandidate,
	seq string,
	site InternalSite,
	enz enzyme,
	registry *EnzymeRegistry,
	usage map[string]float64,
	conf *config.Config,
) []ScoredMutation {
	// the enzymes whose sites a mutation must not create
	checked := []enzyme{enz}
	if conf.Mutations.CheckAllEnzymes {
		checked = []enzyme{}
		seen := map[string]bool{}
		for _, name := range registry.Names() {
			other, _ := registry.Get(name)
			if !seen[other.recog] {
				seen[other.recog] = true
				checked = append(checked, other)
			}
		}
	}

	scored := make([]ScoredMutation, 0, len(candidates))
	for _, cand := range candidates {
		s := ScoredMutation{MutationCandidate: cand, Score: 70, Penalties: []string{}, Bonuses: []string{}}

		// scan a window centered on the mutation for created sites,
		// counting before and after so pre-existing ones don't count
		window := conf.Mutations.ScanWindow
		start := max(0, cand.Position-window/2)
		end := min(len(seq), cand.Position+window/2+1)
		mutated := cand.apply(seq)

		for _, check := range checked {
			before := countSites(seq[start:end], check.recog)
			after := countSites(mutated[start:end], check.recog)
			if after > before {
				s.CreatesNewSite = true
				s.Score -= 60
				s.Penalties = append(s.Penalties, fmt.Sprintf("%s: new %s site", errCreatesNewSite, check.name))
			}
		}

		if usage[cand.NewCodon] < conf.Mutations.RareCodonThreshold {
			s.Score -= 15
			s.Penalties = append(s.Penalties, fmt.Sprintf("rare codon %s", cand.NewCodon))
		}

		if cand.FreqRatio >= 0.8 {
			s.Score += 10
			s.Bonuses = append(s.Bonuses, "codon usage preserved")
		}

		if cand.CodonPos == 2 {
			s.Score += 5
			s.Bonuses = append(s.Bonuses, "wobble position")
		}

		// favor substitutions near the middle of the site, where a
		// single change is furthest from regenerating either edge
		mid := float64(site.Position) + float64(len(site.Seq)-1)/2
		span := float64(len(site.Seq)) / 2
		dist := float64(cand.Position) - mid
		if dist < 0 {
			dist = -dist
		}
		centered := 5 * (1 - dist/span)
		if centered > 0 {
			s.Score += centered
			s.Bonuses = append(s.Bonuses, "central position")
		}

		s.Score = clamp(s.Score, 0, 100)
		scored = append(scored, s)
	}

	// best first, position as a deterministic tiebreak
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Position < scored[j].Position
	})
	return scored
}
