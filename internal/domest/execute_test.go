package domest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Execute_none(t *testing.T) {
	conf := testConfig()
	seq := testBackground(300)

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0}, conf)
	require.NoError(t, err)

	result := Execute(plan, nil)
	assert.True(t, result.Success)
	assert.Equal(t, StrategyNone, result.Strategy)
	assert.Equal(t, seq, result.Seq)
	assert.Empty(t, result.Fragments)
}

func Test_Execute_silent(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategySilentMutation}, conf)
	require.NoError(t, err)
	require.True(t, plan.Ready())

	result := Execute(plan, nil)
	require.True(t, result.Success, "issues: %v", result.Verification.Issues)

	assert.Equal(t, StrategySilentMutation, result.Strategy)
	require.Len(t, result.Mutations, 1)
	assert.NotContains(t, result.Seq, "GGTCTC")
	assert.NotContains(t, result.Seq, "GAGACC")
	assert.Len(t, result.Seq, len(seq))

	tables := newCodonTables()
	assert.Equal(t, tables.translateFrame(seq, 0), tables.translateFrame(result.Seq, 0))

	for _, check := range result.Verification.Checks {
		assert.True(t, check.Pass, "check %q failed", check.Name)
	}
}

func Test_Execute_silent_userSelection(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategySilentMutation}, conf)
	require.NoError(t, err)
	require.Greater(t, len(plan.Analyses[0].Mutations), 1)

	// pick the second-ranked mutation instead of the engine's choice
	result := Execute(plan, &Selections{Mutations: map[int]int{0: 1}})
	require.True(t, result.Success)
	assert.Equal(t, plan.Analyses[0].Mutations[1].Position, result.Mutations[0].Position)
	assert.Equal(t, plan.Analyses[0].Mutations[1].NewBase, result.Mutations[0].NewBase)
}

func Test_Execute_junctions(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: -1, Preferred: StrategyMutagenicJunction}, conf)
	require.NoError(t, err)
	require.NotNil(t, plan.OverhangSet)

	result := Execute(plan, &Selections{})
	require.True(t, result.Success, "issues: %v", result.Verification.Issues)

	require.Len(t, result.Junctions, 1)
	junction := result.Junctions[0]
	require.NotNil(t, junction.Mutation, "mutagenic junctions carry a base change")
	assert.Len(t, junction.Overhang, 4)

	require.Len(t, result.Fragments, 2)
	first, second := result.Fragments[0], result.Fragments[1]

	// neighbors share the overhang scar
	assert.Equal(t, junction.Overhang, first.Overhang)
	assert.Empty(t, second.Overhang)
	assert.Equal(t, first.End-4, second.Start)
	assert.Equal(t, first.Seq[len(first.Seq)-4:], second.Seq[:4])
	assert.Equal(t, len(seq), second.End)

	// two primers per fragment, forward then reverse
	for _, frag := range result.Fragments {
		require.Len(t, frag.Primers, 2)
		assert.True(t, frag.Primers[0].Forward)
		assert.False(t, frag.Primers[1].Forward)
		assert.Equal(t, frag.Seq[:primerLen], frag.Primers[0].Seq)
		assert.Equal(t, revComp(frag.Seq[len(frag.Seq)-primerLen:]), frag.Primers[1].Seq)
	}

	// the breaking mutation rides in a primer annealing region
	carried := false
	for _, frag := range result.Fragments {
		for _, primer := range frag.Primers {
			if primer.CarriesMutation {
				carried = true
			}
		}
	}
	assert.True(t, carried, "no primer carries the junction mutation")

	// reassembling the fragments yields the site-free product
	assembled := first.Seq + second.Seq[4:]
	assert.Len(t, assembled, len(seq))
	assert.False(t, strings.Contains(assembled, "GGTCTC"))
	assert.False(t, strings.Contains(assembled, "GAGACC"))
}

func Test_Execute_alternativeEnzyme(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategyMutagenicJunction}, conf)
	require.NoError(t, err)
	require.NotEmpty(t, plan.AltEnzymes)

	result := Execute(plan, &Selections{Strategy: StrategyAlternativeEnzyme})
	require.True(t, result.Success, "issues: %v", result.Verification.Issues)
	assert.Equal(t, plan.AltEnzymes[0], result.AltEnzyme)
	assert.Equal(t, seq, result.Seq)
}

func Test_Execute_verificationFailure(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: -1, Preferred: StrategyMutagenicJunction}, conf)
	require.NoError(t, err)

	// force the pure split: the product recreates the site and the
	// site-free check must flip Success
	candidates := plan.Analyses[0].Junctions.Candidates
	pure := -1
	for i, cand := range candidates {
		if cand.Mutation == nil {
			pure = i
			break
		}
	}
	require.GreaterOrEqual(t, pure, 0)

	result := Execute(plan, &Selections{Junctions: map[int]int{0: pure}})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Verification.Issues)
}
