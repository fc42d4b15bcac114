package domest

import "testing"

func Test_selectStrategy(t *testing.T) {
	tests := []struct {
		name string
		f    feasibility
		want Strategy
		rule string
	}{
		{
			"no sites",
			feasibility{siteCount: 0},
			StrategyNone,
			"no sites",
		},
		{
			"explicit alternative enzyme wins over everything",
			feasibility{siteCount: 2, allSilent: true, someSilent: true, anyJunction: true, allJunction: true, altEnzyme: "BbsI", preferred: StrategyAlternativeEnzyme},
			StrategyAlternativeEnzyme,
			"explicit alternative enzyme",
		},
		{
			"alternative enzyme preference without a clean enzyme",
			feasibility{siteCount: 1, allSilent: true, someSilent: true, preferred: StrategyAlternativeEnzyme},
			StrategySilentMutation,
			"all sites silently mutable",
		},
		{
			"default junction preference beats silent mutation",
			feasibility{siteCount: 1, allSilent: true, someSilent: true, anyJunction: true, allJunction: true, preferred: StrategyMutagenicJunction},
			StrategyMutagenicJunction,
			"preferred junctions",
		},
		{
			"all silent, no junctions",
			feasibility{siteCount: 2, allSilent: true, someSilent: true, preferred: StrategyMutagenicJunction},
			StrategySilentMutation,
			"all sites silently mutable",
		},
		{
			"mixed tractability",
			feasibility{siteCount: 3, someSilent: true, anyJunction: true},
			StrategyHybrid,
			"some silent, junctions for the rest",
		},
		{
			"junctions everywhere, no silent options",
			feasibility{siteCount: 2, anyJunction: true, allJunction: true},
			StrategyMutagenicJunction,
			"junctions only",
		},
		{
			"clean enzyme exists but wasn't asked for",
			feasibility{siteCount: 2, altEnzyme: "SapI"},
			StrategyLegacyJunction,
			"legacy junction last resort",
		},
		{
			"clean enzyme exists under the default junction preference",
			feasibility{siteCount: 2, altEnzyme: "BbsI", preferred: StrategyMutagenicJunction},
			StrategyLegacyJunction,
			"legacy junction last resort",
		},
		{
			"legacy junction last resort",
			feasibility{siteCount: 2},
			StrategyLegacyJunction,
			"legacy junction last resort",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := selectStrategy(tt.f)
			if got != tt.want || rule != tt.rule {
				t.Errorf("selectStrategy() = %q via %q, want %q via %q", got, rule, tt.want, tt.rule)
			}
		})
	}
}

func Test_parseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"silent_mutation", StrategySilentMutation},
		{"mutagenic_junction", StrategyMutagenicJunction},
		{"alternative_enzyme", StrategyAlternativeEnzyme},
		{"hybrid", StrategyHybrid},
		{"legacy_junction", StrategyLegacyJunction},
		{"none", StrategyNone},
		{"", StrategyMutagenicJunction},
		{"bogus", StrategyMutagenicJunction},
	}

	for _, tt := range tests {
		if got := parseStrategy(tt.in); got != tt.want {
			t.Errorf("parseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
