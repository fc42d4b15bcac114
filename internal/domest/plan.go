package domest

import (
	"fmt"

	"domest/config"
)

// plan step names, in execution order
const (
	stepSiteDetection     = "SITE_DETECTION"
	stepStrategySelection = "STRATEGY_SELECTION"
	stepFrameDetection    = "FRAME_DETECTION"
	stepAdjacentSiteCheck = "ADJACENT_SITE_CHECK"
	stepMutationOptions   = "MUTATION_OPTIONS"
	stepPreflightPreview  = "PREFLIGHT_PREVIEW"
	stepExecution         = "EXECUTION"
)

// user action kinds
const (
	actionConfirmFrame    = "confirm_frame"
	actionConfirmStrategy = "confirm_strategy"
	actionChooseMutation  = "choose_mutation"
)

// error types, carried as structured plan fields, never panics.
// CREATES_NEW_SITE is a soft penalty and only tags scoring detail
const (
	errNoSynonymousMutation  = "NO_SYNONYMOUS_MUTATION"
	errAdjacentSitesTooClose = "ADJACENT_SITES_TOO_CLOSE"
	errFragmentSizeViolation = "FRAGMENT_SIZE_VIOLATION"
	errNoValidJunction       = "NO_VALID_JUNCTION"
	errNoCandidates          = "NO_CANDIDATES"
	errCreatesNewSite        = "CREATES_NEW_SITE"
)

// PlanStep is the record of one orchestration step
type PlanStep struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// UserAction is a choice the engine can't make with high confidence,
// surfaced instead of auto-advancing
type UserAction struct {
	Step    string   `json:"step"`
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	Options []string `json:"options,omitempty"`
}

// Warning is a non-fatal plan level caveat
type Warning struct {
	Severity string `json:"severity"` // low, medium, high
	Message  string `json:"message"`
}

// PlanError is a structured failure for one part of the plan. The plan
// itself still carries whatever else could be computed
type PlanError struct {
	Type    string `json:"type"`
	Message string `json:"message"`

	// Site is the index of the affected site, where one applies
	Site int `json:"site,omitempty"`

	// AltEnzyme is a recommended replacement enzyme, where one exists
	AltEnzyme string `json:"altEnzyme,omitempty"`
}

// Preview is the original vs. domesticated comparison shown before
// execution
type Preview struct {
	OriginalProtein     string `json:"originalProtein,omitempty"`
	DomesticatedProtein string `json:"domesticatedProtein,omitempty"`
	DomesticatedSeq     string `json:"domesticatedSeq,omitempty"`
	DiffPositions       []int  `json:"diffPositions"`
}

// SiteAnalysis is everything worked out for a single internal site
type SiteAnalysis struct {
	Site InternalSite `json:"site"`

	// Mutations is the ranked silent mutation candidates, best first
	Mutations []ScoredMutation `json:"mutations"`

	// Junctions is every junction candidate for the site
	Junctions JunctionResult `json:"junctions"`

	// SilentOK is whether the site has a clean silent option: a
	// candidate that doesn't create a new site
	SilentOK bool `json:"hasSilentOption"`
}

// PlanRequest is the input to planning. Everything downstream is a
// pure function of these fields and the config
type PlanRequest struct {
	// Seq is the sequence to domesticate
	Seq string

	// Enzyme is the assembly enzyme's registry name
	Enzyme string

	// Frame is the reading frame offset (0, 1 or 2) from the frame
	// detection oracle, or -1 when unknown/ambiguous
	Frame int

	// Preferred is the caller's preferred strategy, "" for the
	// configured default
	Preferred Strategy

	// Existing is overhangs already committed elsewhere in the assembly
	Existing []string

	// Custom asks for per-site mutation selection by the user
	Custom bool
}

// DomesticationPlan is a pending, unexecuted description of the work:
// steps taken, choices awaiting the user, and everything computed on
// the way. JSON-serializable for the surrounding application
type DomesticationPlan struct {
	Enzyme string `json:"enzyme"`
	Seq    string `json:"seq"`
	Frame  int    `json:"frame"`

	NeedsDomestication bool `json:"needsDomestication"`

	Sites    []InternalSite `json:"sites"`
	Pairs    []sitePair     `json:"adjacentPairs"`
	Groups   []SiteGroup    `json:"groups"`
	Analyses []SiteAnalysis `json:"siteAnalyses"`

	Strategy     Strategy `json:"selectedStrategy"`
	StrategyRule string   `json:"strategyRule,omitempty"`

	// AltEnzymes is every registry enzyme with zero internal sites
	AltEnzymes []string `json:"altEnzymes"`

	// OverhangSet is set when the strategy needs junctions
	OverhangSet *OverhangSetResult `json:"overhangSet,omitempty"`

	Steps       []PlanStep   `json:"steps"`
	UserActions []UserAction `json:"userActions"`
	Warnings    []Warning    `json:"warnings"`
	Errors      []PlanError  `json:"errors"`

	Preview *Preview `json:"preview,omitempty"`

	// request and config are kept for execution
	request PlanRequest
	conf    *config.Config
}

// step appends a step record
func (p *DomesticationPlan) step(name, format string, args ...interface{}) {
	p.Steps = append(p.Steps, PlanStep{Name: name, Summary: fmt.Sprintf(format, args...)})
}

// warn appends a warning
func (p *DomesticationPlan) warn(severity, format string, args ...interface{}) {
	p.Warnings = append(p.Warnings, Warning{Severity: severity, Message: fmt.Sprintf(format, args...)})
}

// Ready is whether the plan can be executed without further user input
func (p *DomesticationPlan) Ready() bool {
	return len(p.UserActions) == 0
}

// Plan works a sequence through site detection, adjacency resolution,
// per-site candidate generation, strategy selection and overhang
// optimization, recording each step. Only an unknown enzyme or a
// malformed sequence return an error; everything else is reported in
// the plan's errors and warnings.
//
// Step records follow the orchestration order with one deliberate
// difference from the presentation order: the strategy step is
// recorded after mutation options, since its decision table consumes
// the per-site feasibility those options establish
func Plan(req PlanRequest, conf *config.Config) (*DomesticationPlan, error) {
	seq, err := validateSeq(req.Seq)
	if err != nil {
		return nil, err
	}

	registry := NewEnzymeRegistry()
	enz, err := registry.Get(req.Enzyme)
	if err != nil {
		return nil, err
	}

	tables := newCodonTables()
	usage := usageTable(conf.Organism)

	plan := &DomesticationPlan{
		Enzyme:      enz.name,
		Seq:         seq,
		Frame:       req.Frame,
		UserActions: []UserAction{},
		Warnings:    []Warning{},
		Errors:      []PlanError{},
		AltEnzymes:  []string{},
		request:     req,
		conf:        conf,
	}

	// 1. find every internal recognition site, both strands
	plan.Sites = findInternalSites(seq, enz)
	plan.step(stepSiteDetection, "found %d internal %s site(s)", len(plan.Sites), enz.name)

	if len(plan.Sites) == 0 {
		plan.Strategy = StrategyNone
		plan.step(stepStrategySelection, "no internal sites, nothing to domesticate")
		return plan, nil
	}
	plan.NeedsDomestication = true
	plan.AltEnzymes = registry.zeroSiteEnzymes(seq, enz)

	// 2. reading frame: supplied by the caller (or their frame
	// detection oracle). An unknown frame is a user confirmation point
	if req.Frame >= 0 && req.Frame <= 2 {
		plan.step(stepFrameDetection, "using reading frame %d", req.Frame)
	} else {
		plan.step(stepFrameDetection, "reading frame unknown, silent mutations disabled until confirmed")
		plan.UserActions = append(plan.UserActions, UserAction{
			Step:    stepFrameDetection,
			Kind:    actionConfirmFrame,
			Message: "reading frame is ambiguous: confirm the frame offset (0, 1 or 2) or mark the region non-coding",
			Options: []string{"0", "1", "2", "non-coding"},
		})
	}

	// 3. group sites too close for independent junctions and try to
	// resolve each group as a unit
	plan.Pairs = detectAdjacentSites(plan.Sites, conf.Fragments.MinSiteDistance)
	plan.Groups = groupSites(plan.Sites, conf.Fragments.MinSiteDistance)
	for i := range plan.Groups {
		resolveGroup(seq, &plan.Groups[i], enz, registry, req.Frame, tables, usage, conf)
	}
	plan.step(stepAdjacentSiteCheck, "%d adjacent pair(s), %d group(s)", len(plan.Pairs), len(plan.Groups))

	for i, group := range plan.Groups {
		if group.Kind == groupSingle {
			continue
		}

		switch {
		case group.Resolution == nil:
			msg := fmt.Sprintf("group %d: %d sites within %dbp and no group-level resolution", i, len(group.Sites), group.span())
			plan.Errors = append(plan.Errors, PlanError{Type: errAdjacentSitesTooClose, Message: msg, Site: i})
			if !group.CanHandle {
				plan.warn("high", "group %d requires manual review", i)
			}
		case group.Resolution.Kind == resolveAlternativeEnzyme:
			// resolvable, but only by abandoning the current enzyme
			plan.Errors = append(plan.Errors, PlanError{
				Type:      errAdjacentSitesTooClose,
				Message:   fmt.Sprintf("group %d can't be resolved with %s, switch to %s", i, enz.name, group.Resolution.Enzyme),
				Site:      i,
				AltEnzyme: group.Resolution.Enzyme,
			})
		}
	}

	// 4. per-site candidates: ranked silent mutations and junction
	// placements
	plan.Analyses = make([]SiteAnalysis, len(plan.Sites))
	silentCount := 0
	junctionCount := 0
	for i, site := range plan.Sites {
		analysis := SiteAnalysis{Site: site}

		candidates := generateMutations(seq, site, req.Frame, tables, usage)
		analysis.Mutations = scoreMutations(candidates, seq, site, enz, registry, usage, conf)
		for _, scored := range analysis.Mutations {
			if !scored.CreatesNewSite {
				analysis.SilentOK = true
				break
			}
		}

		if len(analysis.Mutations) == 0 && req.Frame >= 0 {
			plan.Errors = append(plan.Errors, PlanError{
				Type:    errNoSynonymousMutation,
				Message: fmt.Sprintf("site %d at position %d has no synonymous mutation option", i, site.Position),
				Site:    i,
			})
		} else if len(analysis.Mutations) > 0 && !analysis.SilentOK {
			plan.warn("medium", "every silent option for site %d creates a new recognition site", i)
		}

		analysis.Junctions = placeJunctions(seq, site, enz, conf)
		if !analysis.Junctions.HasValidOption {
			plan.Errors = append(plan.Errors, PlanError{
				Type:    errNoValidJunction,
				Message: fmt.Sprintf("site %d at position %d has no valid junction candidate", i, site.Position),
				Site:    i,
			})
		}

		if analysis.SilentOK {
			silentCount++
		}
		if analysis.Junctions.HasValidOption {
			junctionCount++
		}
		plan.Analyses[i] = analysis

		if req.Custom {
			plan.UserActions = append(plan.UserActions, UserAction{
				Step:    stepMutationOptions,
				Kind:    actionChooseMutation,
				Message: fmt.Sprintf("choose a mutation or junction for site %d at position %d", i, site.Position),
			})
		}
	}
	plan.step(stepMutationOptions, "%d/%d sites silently mutable, %d/%d with valid junctions",
		silentCount, len(plan.Sites), junctionCount, len(plan.Sites))

	// 5. pick a strategy from the ranked rule table
	preferred := req.Preferred
	if preferred == "" {
		preferred = parseStrategy(conf.PreferredStrategy)
	}

	altEnzyme := ""
	if len(plan.AltEnzymes) > 0 {
		altEnzyme = plan.AltEnzymes[0]
	}
	f := feasibility{
		siteCount:   len(plan.Sites),
		allSilent:   silentCount == len(plan.Sites),
		someSilent:  silentCount > 0,
		anyJunction: junctionCount > 0,
		allJunction: junctionCount == len(plan.Sites),
		altEnzyme:   altEnzyme,
		preferred:   preferred,
	}
	plan.Strategy, plan.StrategyRule = selectStrategy(f)
	plan.step(stepStrategySelection, "selected %s (%s)", plan.Strategy, plan.StrategyRule)

	if plan.Strategy == StrategyLegacyJunction {
		plan.warn("high", "legacy junctions recreate the recognition site in the assembled product and are not compatible with one-pot reactions")
	}

	// both fully viable and the caller stated no preference: confirm
	if req.Preferred == "" && f.allSilent && f.anyJunction {
		plan.UserActions = append(plan.UserActions, UserAction{
			Step:    stepStrategySelection,
			Kind:    actionConfirmStrategy,
			Message: "silent mutation and mutagenic junctions are both viable: confirm the strategy",
			Options: []string{string(StrategySilentMutation), string(StrategyMutagenicJunction)},
		})
	}

	// 6. pick the overhang set for junction strategies
	if plan.Strategy == StrategyMutagenicJunction || plan.Strategy == StrategyHybrid || plan.Strategy == StrategyLegacyJunction {
		optimizeOverhangs(plan, enz, conf)
	}

	// 7. preview the outcome
	buildPreview(plan, tables)
	plan.step(stepPreflightPreview, "plan ready, %d user action(s), %d warning(s), %d error(s)",
		len(plan.UserActions), len(plan.Warnings), len(plan.Errors))

	return plan, nil
}

// junctionSites is the indexes of sites that need a junction under the
// plan's strategy: all of them for a junction strategy, only the
// silently-intractable ones for hybrid
func (p *DomesticationPlan) junctionSites() []int {
	indexes := []int{}
	for i, analysis := range p.Analyses {
		if p.Strategy == StrategyHybrid && analysis.SilentOK {
			continue
		}
		indexes = append(indexes, i)
	}
	return indexes
}

// optimizeOverhangs runs the overhang set optimizer over the junction
// candidates of every site that needs a junction
func optimizeOverhangs(plan *DomesticationPlan, enz enzyme, conf *config.Config) {
	indexes := plan.junctionSites()
	if len(indexes) == 0 {
		return
	}

	perSite := make([][]JunctionCandidate, len(indexes))
	for i, idx := range indexes {
		candidates := plan.Analyses[idx].Junctions.Candidates

		// prefer valid candidates, but fall back to best-available so
		// the caller can see what the least-bad set looks like
		valid := []JunctionCandidate{}
		for _, cand := range candidates {
			if cand.Valid {
				valid = append(valid, cand)
			}
		}
		if len(valid) > 0 && plan.Strategy != StrategyLegacyJunction {
			perSite[i] = valid
		} else {
			perSite[i] = candidates
		}
	}

	result, planErr := optimizeOverhangSet(perSite, plan.request.Existing, conf)
	if planErr != nil {
		plan.Errors = append(plan.Errors, *planErr)
		return
	}
	plan.OverhangSet = &result

	// junction positions must leave every fragment at least the
	// minimum size
	positions := make([]int, len(result.Selections))
	for i, sel := range result.Selections {
		positions[i] = sel.Position
	}
	checkFragmentSizes(plan, positions, enz, conf)
}

// checkFragmentSizes verifies the spacing between chosen junctions
// (and the sequence ends) against the minimum fragment size
func checkFragmentSizes(plan *DomesticationPlan, positions []int, enz enzyme, conf *config.Config) {
	bounds := append([]int{0}, positions...)
	bounds = append(bounds, len(plan.Seq))
	for i := 0; i+1 < len(bounds); i++ {
		size := bounds[i+1] - bounds[i]
		if i > 0 {
			size += enz.overhangLen // fragments share the scar
		}
		if size < conf.Fragments.MinSize {
			plan.Errors = append(plan.Errors, PlanError{
				Type:    errFragmentSizeViolation,
				Message: fmt.Sprintf("junction at %d leaves a %dbp fragment, minimum is %d", bounds[i+1], size, conf.Fragments.MinSize),
			})
		}
	}
}

// selectedCandidate finds the junction candidate an optimizer
// selection refers to
func selectedCandidate(analysis SiteAnalysis, sel OverhangSelection) *JunctionCandidate {
	for i, cand := range analysis.Junctions.Candidates {
		if cand.Position == sel.Position && cand.Overhang == sel.Overhang {
			return &analysis.Junctions.Candidates[i]
		}
	}
	return nil
}

// buildPreview fills in the original vs. domesticated comparison
func buildPreview(plan *DomesticationPlan, tables *codonTables) {
	preview := &Preview{DiffPositions: []int{}}

	domesticated := plan.Seq
	switch plan.Strategy {
	case StrategySilentMutation:
		for _, analysis := range plan.Analyses {
			if !analysis.SilentOK || len(analysis.Mutations) == 0 {
				continue
			}
			domesticated = analysis.Mutations[0].apply(domesticated)
		}
	case StrategyMutagenicJunction, StrategyHybrid:
		if plan.Strategy == StrategyHybrid {
			for _, analysis := range plan.Analyses {
				if analysis.SilentOK && len(analysis.Mutations) > 0 {
					domesticated = analysis.Mutations[0].apply(domesticated)
				}
			}
		}
		if plan.OverhangSet != nil {
			for i, idx := range plan.junctionSites() {
				if i >= len(plan.OverhangSet.Selections) {
					break
				}
				cand := selectedCandidate(plan.Analyses[idx], plan.OverhangSet.Selections[i])
				if cand != nil && cand.Mutation != nil {
					domesticated = spliceBase(domesticated, cand.Mutation.Position, cand.Mutation.NewBase[0])
				}
			}
		}
	default:
		// nothing sequence-level to preview
	}

	for i := range plan.Seq {
		if plan.Seq[i] != domesticated[i] {
			preview.DiffPositions = append(preview.DiffPositions, i)
		}
	}
	if domesticated != plan.Seq {
		preview.DomesticatedSeq = domesticated
	}

	if plan.Frame >= 0 && plan.Frame <= 2 {
		preview.OriginalProtein = tables.translateFrame(plan.Seq, plan.Frame)
		preview.DomesticatedProtein = tables.translateFrame(domesticated, plan.Frame)
	}

	plan.Preview = preview
}
