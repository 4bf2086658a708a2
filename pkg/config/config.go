package config

import (
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/events"
)

// Registry stores component default configuration by component name.
type Registry struct {
	mu       sync.RWMutex
	defaults map[string]map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defaults: make(map[string]map[string]any)}
}

// RegisterDefaults stores the defaults for a named component. Duplicate
// names return an error.
func (r *Registry) RegisterDefaults(component string, defaults map[string]any) error {
	if component == "" {
		return fmt.Errorf("config: component name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defaults[component]; exists {
		return fmt.Errorf("config: component %q already registered", component)
	}
	r.defaults[component] = deepCopyMap(defaults)
	return nil
}

// Defaults returns a copy of the registered defaults for component.
func (r *Registry) Defaults(component string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defaults, ok := r.defaults[component]
	if !ok {
		return nil, false
	}
	return deepCopyMap(defaults), true
}

// Components returns the registered component names, sorted.
func (r *Registry) Components() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defaults))
	for name := range r.defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges overrides into the registered defaults for component.
func (r *Registry) Resolve(component string, overrides map[string]any, strategy Strategy) (map[string]any, error) {
	defaults, ok := r.Defaults(component)
	if !ok {
		return nil, fmt.Errorf("config: component %q not registered", component)
	}
	return Merge(defaults, overrides, strategy)
}

// Document is a YAML override document supplied by a consuming application.
type Document struct {
	Strategy   Strategy                  `yaml:"strategy"`
	Components map[string]map[string]any `yaml:"components"`
}

// ParseDocument decodes an override document. An omitted strategy defaults
// to merge.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse overrides: %w", err)
	}
	if doc.Strategy == "" {
		doc.Strategy = StrategyMerge
	}
	if !doc.Strategy.valid() {
		return nil, fmt.Errorf("config: unknown merge strategy %q", doc.Strategy)
	}
	return &doc, nil
}

// Apply resolves every component named in doc against the registry and
// returns the merged configuration per component.
func (r *Registry) Apply(doc *Document) (map[string]map[string]any, error) {
	if doc == nil {
		return nil, fmt.Errorf("config: document is required")
	}

	out := make(map[string]map[string]any, len(doc.Components))
	for component, overrides := range doc.Components {
		resolved, err := r.Resolve(component, overrides, doc.Strategy)
		if err != nil {
			return nil, err
		}
		out[component] = resolved
	}
	return out, nil
}

// Triggers extracts a lifecycle trigger list from a resolved configuration
// map. Unknown trigger names return an error so typos in override documents
// surface instead of silently disabling validation.
func Triggers(cfg map[string]any) ([]events.Type, error) {
	raw, ok := cfg["triggers"]
	if !ok {
		return nil, nil
	}

	var names []string
	switch v := raw.(type) {
	case []string:
		names = v
	case []any:
		for _, element := range v {
			name, ok := element.(string)
			if !ok {
				return nil, fmt.Errorf("config: trigger entries must be strings, got %T", element)
			}
			names = append(names, name)
		}
	default:
		return nil, fmt.Errorf("config: triggers must be a list, got %T", raw)
	}

	known := make(map[events.Type]struct{}, len(events.Types()))
	for _, t := range events.Types() {
		known[t] = struct{}{}
	}

	out := make([]events.Type, 0, len(names))
	for _, name := range names {
		t := events.Type(name)
		if _, ok := known[t]; !ok {
			return nil, fmt.Errorf("config: unknown trigger %q", name)
		}
		out = append(out, t)
	}
	return out, nil
}
