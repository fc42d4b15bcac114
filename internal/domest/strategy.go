package domest

// Strategy is a way of domesticating a sequence: removing its internal
// recognition sites so it survives a one-pot assembly reaction
type Strategy string

const (
	// StrategyNone when there's nothing to domesticate
	StrategyNone Strategy = "none"

	// StrategySilentMutation swaps synonymous codons to erase sites,
	// leaving the sequence a single fragment
	StrategySilentMutation Strategy = "silent_mutation"

	// StrategyMutagenicJunction splits each site across a fragment
	// boundary, with the breaking base change carried in a primer tail
	StrategyMutagenicJunction Strategy = "mutagenic_junction"

	// StrategyAlternativeEnzyme switches to a registry enzyme with no
	// internal sites
	StrategyAlternativeEnzyme Strategy = "alternative_enzyme"

	// StrategyHybrid silently mutates the tractable sites and places
	// junctions through the rest
	StrategyHybrid Strategy = "hybrid"

	// StrategyLegacyJunction splits sites without mutating them. The
	// assembled product recreates the site, so it is incompatible with
	// one-pot chemistry and carries a high severity warning
	StrategyLegacyJunction Strategy = "legacy_junction"
)

// feasibility is the per-sequence flags the strategy rules are
// evaluated against
type feasibility struct {
	// siteCount is the number of internal sites found
	siteCount int

	// allSilent / someSilent: every / at least one site has a clean
	// silent mutation option
	allSilent  bool
	someSilent bool

	// anyJunction: at least one site has a valid junction candidate
	anyJunction bool

	// allJunction: every site has a valid junction candidate
	allJunction bool

	// altEnzyme is a zero-site registry enzyme, "" if none
	altEnzyme string

	// preferred is the caller's preferred strategy
	preferred Strategy
}

// strategyRule is one row of the ranked decision table
type strategyRule struct {
	name     string
	applies  func(f feasibility) bool
	strategy Strategy
}

// strategyRules is evaluated top to bottom; the first applicable rule
// wins. The order preserves the tie-breaks of the decision procedure:
// an explicit alternative-enzyme preference beats everything, the
// default junction preference beats silent mutation whenever any
// junction exists, and a legacy junction is the last resort. An
// alternative enzyme is never auto-selected: without an explicit
// preference a clean enzyme is only recommended, through the plan's
// altEnzymes list and the adjacency errors
var strategyRules = []strategyRule{
	{
		name:     "no sites",
		applies:  func(f feasibility) bool { return f.siteCount == 0 },
		strategy: StrategyNone,
	},
	{
		name: "explicit alternative enzyme",
		applies: func(f feasibility) bool {
			return f.preferred == StrategyAlternativeEnzyme && f.altEnzyme != ""
		},
		strategy: StrategyAlternativeEnzyme,
	},
	{
		name: "preferred junctions",
		applies: func(f feasibility) bool {
			return f.preferred == StrategyMutagenicJunction && f.anyJunction
		},
		strategy: StrategyMutagenicJunction,
	},
	{
		name:     "all sites silently mutable",
		applies:  func(f feasibility) bool { return f.allSilent },
		strategy: StrategySilentMutation,
	},
	{
		name: "some silent, junctions for the rest",
		applies: func(f feasibility) bool {
			return f.someSilent && f.anyJunction
		},
		strategy: StrategyHybrid,
	},
	{
		name:     "junctions only",
		applies:  func(f feasibility) bool { return f.allJunction },
		strategy: StrategyMutagenicJunction,
	},
	{
		name:     "legacy junction last resort",
		applies:  func(f feasibility) bool { return true },
		strategy: StrategyLegacyJunction,
	},
}

// selectStrategy evaluates the ranked rule table and returns the
// chosen strategy and the name of the rule that chose it
func selectStrategy(f feasibility) (Strategy, string) {
	for _, rule := range strategyRules {
		if rule.applies(f) {
			return rule.strategy, rule.name
		}
	}

	// the last rule always applies
	return StrategyLegacyJunction, "legacy junction last resort"
}

// parseStrategy maps a config string to a Strategy, defaulting to
// mutagenic_junction for unrecognized values
func parseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategyNone, StrategySilentMutation, StrategyMutagenicJunction,
		StrategyAlternativeEnzyme, StrategyHybrid, StrategyLegacyJunction:
		return Strategy(s)
	}
	return StrategyMutagenicJunction
}
