package config

import (
	"fmt"

	"dario.cat/mergo"
)

// Strategy selects how overrides combine with defaults.
type Strategy string

const (
	// StrategyMerge deep-merges overrides into the defaults: nested maps
	// combine key by key, override scalars win.
	StrategyMerge Strategy = "merge"

	// StrategyOverride replaces each overridden top-level subtree wholesale,
	// discarding the default subtree it shadows.
	StrategyOverride Strategy = "override"
)

func (s Strategy) valid() bool {
	return s == StrategyMerge || s == StrategyOverride
}

// Merge combines overrides into defaults according to strategy. Neither
// input map is mutated; the result is a fresh tree.
func Merge(defaults, overrides map[string]any, strategy Strategy) (map[string]any, error) {
	if !strategy.valid() {
		return nil, fmt.Errorf("config: unknown merge strategy %q", strategy)
	}

	out := deepCopyMap(defaults)
	if len(overrides) == 0 {
		return out, nil
	}

	switch strategy {
	case StrategyOverride:
		for key, value := range overrides {
			out[key] = deepCopyValue(value)
		}
	case StrategyMerge:
		src := deepCopyMap(overrides)
		if err := mergo.Merge(&out, src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: merge overrides: %w", err)
		}
	}
	return out, nil
}

func deepCopyMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, element := range v {
			out[i] = deepCopyValue(element)
		}
		return out
	default:
		return value
	}
}
