package domest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Plan_hardErrors(t *testing.T) {
	conf := testConfig()

	_, err := Plan(PlanRequest{Seq: "ATGCXTGA", Enzyme: "BsaI"}, conf)
	assert.Error(t, err, "malformed sequence")

	_, err = Plan(PlanRequest{Seq: testBackground(60), Enzyme: "NotAnEnzyme"}, conf)
	assert.Error(t, err, "unknown enzyme")
}

func Test_Plan_noSites(t *testing.T) {
	conf := testConfig()

	plan, err := Plan(PlanRequest{Seq: testBackground(300), Enzyme: "BsaI", Frame: 0}, conf)
	require.NoError(t, err)

	assert.False(t, plan.NeedsDomestication)
	assert.Equal(t, StrategyNone, plan.Strategy)
	assert.Empty(t, plan.Sites)
	assert.True(t, plan.Ready())
}

// one internal site, unknown reading frame: junctions are proposed,
// silent mutations wait on frame confirmation
func Test_Plan_singleSiteUnknownFrame(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: -1}, conf)
	require.NoError(t, err)

	assert.True(t, plan.NeedsDomestication)
	require.Len(t, plan.Sites, 1)
	assert.Equal(t, 150, plan.Sites[0].Position)
	assert.True(t, plan.Sites[0].Forward)

	// frame unknown: a confirmation action, no silent candidates, no
	// missing-mutation error
	require.False(t, plan.Ready())
	frameAction := false
	for _, action := range plan.UserActions {
		if action.Kind == actionConfirmFrame {
			frameAction = true
			assert.Contains(t, action.Options, "non-coding")
		}
	}
	assert.True(t, frameAction, "expected a confirm_frame action")
	assert.Empty(t, plan.Analyses[0].Mutations)
	for _, planErr := range plan.Errors {
		assert.NotEqual(t, errNoSynonymousMutation, planErr.Type)
	}

	// junctions don't need a frame
	junctions := plan.Analyses[0].Junctions
	assert.True(t, junctions.HasValidOption)
	for _, cand := range junctions.Candidates {
		assert.Len(t, cand.Overhang, 4)
	}

	assert.Equal(t, StrategyMutagenicJunction, plan.Strategy)
	require.NotNil(t, plan.OverhangSet)
	require.Len(t, plan.OverhangSet.Selections, 1)
	assert.True(t, plan.OverhangSet.Validation.Valid)

	// the chosen junction carries its breaking mutation into the preview
	require.NotNil(t, plan.Preview)
	assert.NotEmpty(t, plan.Preview.DiffPositions)
	assert.NotContains(t, plan.Preview.DomesticatedSeq, "GGTCTC")
}

// two sites 30bp apart: too close for independent junctions, resolved
// only by switching enzymes
func Test_Plan_adjacentSites(t *testing.T) {
	conf := testConfig()
	seq := withSites(600, map[int]string{150: "GGTCTC", 180: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0}, conf)
	require.NoError(t, err)

	require.Len(t, plan.Sites, 2)
	require.Len(t, plan.Pairs, 1)
	assert.Equal(t, 30, plan.Pairs[0].Distance)

	require.Len(t, plan.Groups, 1)
	assert.Equal(t, groupAdjacent, plan.Groups[0].Kind)

	var adjacency *PlanError
	for i, planErr := range plan.Errors {
		if planErr.Type == errAdjacentSitesTooClose {
			adjacency = &plan.Errors[i]
		}
	}
	require.NotNil(t, adjacency, "expected an adjacency error")
	assert.NotEmpty(t, adjacency.AltEnzyme)
	assert.Contains(t, plan.AltEnzymes, adjacency.AltEnzyme)
}

// both strategies fully viable and no caller preference: the engine
// picks the configured default but asks for confirmation
func Test_Plan_confirmStrategy(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0}, conf)
	require.NoError(t, err)

	assert.True(t, plan.Analyses[0].SilentOK)
	assert.True(t, plan.Analyses[0].Junctions.HasValidOption)

	confirm := false
	for _, action := range plan.UserActions {
		if action.Kind == actionConfirmStrategy {
			confirm = true
		}
	}
	assert.True(t, confirm, "expected a confirm_strategy action")

	// an explicit preference silences the confirmation
	plan, err = Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategySilentMutation}, conf)
	require.NoError(t, err)
	assert.Equal(t, StrategySilentMutation, plan.Strategy)
	assert.True(t, plan.Ready())
}

func Test_Plan_customSelection(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategyMutagenicJunction, Custom: true}, conf)
	require.NoError(t, err)

	choose := 0
	for _, action := range plan.UserActions {
		if action.Kind == actionChooseMutation {
			choose++
		}
	}
	assert.Equal(t, len(plan.Sites), choose)
	assert.False(t, plan.Ready())
}

func Test_Plan_fragmentSizes(t *testing.T) {
	conf := testConfig()

	// a site 20bp from the start can't leave a minimum-size fragment
	seq := withSites(300, map[int]string{18: "GGTCTC"})
	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: -1, Preferred: StrategyMutagenicJunction}, conf)
	require.NoError(t, err)

	violation := false
	for _, planErr := range plan.Errors {
		if planErr.Type == errFragmentSizeViolation {
			violation = true
		}
	}
	assert.True(t, violation, "expected a fragment size violation")
}

func Test_Plan_silentPreview(t *testing.T) {
	conf := testConfig()
	seq := withSites(300, map[int]string{150: "GGTCTC"})

	plan, err := Plan(PlanRequest{Seq: seq, Enzyme: "BsaI", Frame: 0, Preferred: StrategySilentMutation}, conf)
	require.NoError(t, err)
	require.NotNil(t, plan.Preview)

	// one base changed, protein untouched
	assert.Len(t, plan.Preview.DiffPositions, 1)
	assert.Equal(t, plan.Preview.OriginalProtein, plan.Preview.DomesticatedProtein)
	assert.NotContains(t, plan.Preview.DomesticatedSeq, "GGTCTC")
	assert.NotContains(t, plan.Preview.DomesticatedSeq, "GAGACC")
}
