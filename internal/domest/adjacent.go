package domest

import (
	"sort"

	"domest/config"
)

// group kinds
const (
	groupSingle    = "single"
	groupAdjacent  = "adjacent"
	groupClustered = "clustered"
)

// resolution kinds, in the order they're attempted
const (
	resolveSharedMutation    = "shared_mutation"
	resolveGapJunction       = "gap_junction"
	resolveAlternativeEnzyme = "alternative_enzyme"
)

// sitePair is two internal sites closer together than the minimum
// distance for independent junctions
type sitePair struct {
	A        InternalSite `json:"a"`
	B        InternalSite `json:"b"`
	Distance int          `json:"distance"`
}

// GroupResolution is how a group of too-close sites can be handled as
// a unit
type GroupResolution struct {
	Kind string `json:"type"`

	// Mutation set for shared_mutation: one substitution disrupting
	// every site in the group
	Mutation *MutationCandidate `json:"mutation,omitempty"`

	// Junction set for gap_junction
	Junction *JunctionCandidate `json:"junction,omitempty"`

	// Enzyme set for alternative_enzyme: a registry enzyme with no
	// internal sites at all
	Enzyme string `json:"enzyme,omitempty"`
}

// SiteGroup is a cluster of internal sites within the merge distance
// of one another
type SiteGroup struct {
	Sites []InternalSite `json:"sites"`

	// Kind is single, adjacent (two sites) or clustered (three or more)
	Kind string `json:"type"`

	// CanHandle is whether the group can be resolved at all. A
	// clustered group whose span can't fit the required inter-fragment
	// spacing is never handleable
	CanHandle bool `json:"canHandle"`

	// Resolution is nil when the sites are far enough apart to be
	// handled independently, or when nothing worked
	Resolution *GroupResolution `json:"resolution,omitempty"`
}

// span is the distance from the group's first site start to its last
// site end
func (g *SiteGroup) span() int {
	if len(g.Sites) == 0 {
		return 0
	}
	return g.Sites[len(g.Sites)-1].end() - g.Sites[0].Position
}

// detectAdjacentSites scans consecutive site pairs (by position) and
// returns those closer than minDistance
func detectAdjacentSites(sites []InternalSite, minDistance int) []sitePair {
	sorted := make([]InternalSite, len(sites))
	copy(sorted, sites)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	pairs := []sitePair{}
	for i := 0; i+1 < len(sorted); i++ {
		distance := sorted[i+1].Position - sorted[i].Position
		if distance < minDistance {
			pairs = append(pairs, sitePair{A: sorted[i], B: sorted[i+1], Distance: distance})
		}
	}
	return pairs
}

// groupSites merges sites within minDistance of their neighbor into
// groups. Isolated sites become single groups
func groupSites(sites []InternalSite, minDistance int) []SiteGroup {
	sorted := make([]InternalSite, len(sites))
	copy(sorted, sites)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	groups := []SiteGroup{}
	for _, site := range sorted {
		if len(groups) > 0 {
			last := &groups[len(groups)-1]
			prev := last.Sites[len(last.Sites)-1]
			if site.Position-prev.Position < minDistance {
				last.Sites = append(last.Sites, site)
				continue
			}
		}
		groups = append(groups, SiteGroup{Sites: []InternalSite{site}})
	}

	for i := range groups {
		switch len(groups[i].Sites) {
		case 1:
			groups[i].Kind = groupSingle
			groups[i].CanHandle = true
		case 2:
			groups[i].Kind = groupAdjacent
		default:
			groups[i].Kind = groupClustered
		}
	}
	return groups
}

// resolveGroup decides whether a multi-site group can be handled as a
// unit. Attempts, in priority order: a single mutation that disrupts
// every site, a single junction whose carried mutation disrupts every
// site, and an alternative enzyme with zero internal sites.
//
// A group for which nothing works, and whose span can't fit one
// fragment per site, is marked unhandleable and surfaced for manual
// review
func resolveGroup(
	seq string,
	group *SiteGroup,
	enz enzyme,
	registry *EnzymeRegistry,
	frame int,
	tables *codonTables,
	usage map[string]float64,
	conf *config.Config,
) {
	if group.Kind == groupSingle {
		return
	}

	// (a) one silent mutation breaking every site in the group
	for _, cand := range generateMutations(seq, group.Sites[0], frame, tables, usage) {
		all := true
		for _, site := range group.Sites[1:] {
			if !cand.disrupts(seq, site, enz) {
				all = false
				break
			}
		}
		if all {
			shared := cand
			group.CanHandle = true
			group.Resolution = &GroupResolution{Kind: resolveSharedMutation, Mutation: &shared}
			return
		}
	}

	// (b) one junction whose mutation disrupts every site in the group
	for _, site := range group.Sites {
		junctions := placeJunctions(seq, site, enz, conf)
		for _, cand := range junctions.Candidates {
			if !cand.Valid || cand.Mutation == nil {
				continue
			}
			mut := MutationCandidate{Position: cand.Mutation.Position, NewBase: cand.Mutation.NewBase}
			all := true
			for _, other := range group.Sites {
				if !mut.disrupts(seq, other, enz) {
					all = false
					break
				}
			}
			if all {
				junction := cand
				group.CanHandle = true
				group.Resolution = &GroupResolution{Kind: resolveGapJunction, Junction: &junction}
				return
			}
		}
	}

	// (c) an enzyme with no internal sites anywhere in the sequence
	if clean := registry.zeroSiteEnzymes(seq, enz); len(clean) > 0 {
		group.CanHandle = true
		group.Resolution = &GroupResolution{Kind: resolveAlternativeEnzyme, Enzyme: clean[0]}
		return
	}

	// nothing worked: handleable only if every site can get its own
	// fragment within the group's span
	group.CanHandle = group.span() >= len(group.Sites)*conf.Fragments.MinSize
}
