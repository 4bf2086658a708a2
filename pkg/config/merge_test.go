package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkboxDefaults() map[string]any {
	return map[string]any{
		"classes": map[string]any{
			"base":    "checkbox",
			"checked": "checkbox--checked",
		},
		"triggers": []any{"blur", "change", "submit"},
	}
}

func TestMergeStrategyDeepMerges(t *testing.T) {
	overrides := map[string]any{
		"classes": map[string]any{
			"checked": "is-checked",
		},
	}

	got, err := Merge(checkboxDefaults(), overrides, StrategyMerge)
	require.NoError(t, err)

	classes, ok := got["classes"].(map[string]any)
	require.True(t, ok, "classes subtree must survive the merge")
	assert.Equal(t, "checkbox", classes["base"], "unoverridden keys are kept")
	assert.Equal(t, "is-checked", classes["checked"], "override scalars win")
	assert.Equal(t, []any{"blur", "change", "submit"}, got["triggers"])
}

func TestOverrideStrategyReplacesSubtrees(t *testing.T) {
	overrides := map[string]any{
		"classes": map[string]any{
			"checked": "is-checked",
		},
	}

	got, err := Merge(checkboxDefaults(), overrides, StrategyOverride)
	require.NoError(t, err)

	classes, ok := got["classes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"checked": "is-checked"}, classes, "the default subtree is discarded")
	assert.Equal(t, []any{"blur", "change", "submit"}, got["triggers"], "untouched subtrees survive")
}

func TestMergeRejectsUnknownStrategy(t *testing.T) {
	_, err := Merge(checkboxDefaults(), nil, Strategy("deep"))
	require.Error(t, err)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	defaults := checkboxDefaults()
	overrides := map[string]any{
		"classes": map[string]any{"checked": "is-checked"},
	}

	_, err := Merge(defaults, overrides, StrategyMerge)
	require.NoError(t, err)

	assert.Equal(t, checkboxDefaults(), defaults, "defaults must be untouched")
	assert.Equal(t, map[string]any{"classes": map[string]any{"checked": "is-checked"}}, overrides)
}
