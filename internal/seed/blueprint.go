// Package seed loads entity blueprints from YAML and materializes them
// into a world at start-up.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

// Blueprint is one entity definition: a name for diagnostics, whether it
// starts active, and a set of named component payloads. Payloads are
// generic YAML nodes; a Decoder turns a component's name and raw node into
// a concrete Go value the world can add.
type Blueprint struct {
	Name       string                    `yaml:"name"`
	Active     bool                      `yaml:"active"`
	Components map[string]yaml.Node `yaml:"components"`
}

type file struct {
	Blueprints []Blueprint `yaml:"blueprints"`
}

// Decoder builds a concrete component value from a blueprint's raw YAML
// node for one named component kind.
type Decoder func(node *yaml.Node) (any, error)

// Registry maps a blueprint's component-kind names to Decoders. Look-ups
// for an unregistered name are a load-time error rather than silently
// ignored, so a typo in a blueprint file surfaces immediately.
type Registry map[string]Decoder

// Load parses path and materializes every blueprint into world via
// world.AddEntity, activating it afterward if the blueprint requests it.
// Returns the created entities in file order.
func Load(path string, world *ecs.World, decoders Registry) ([]*ecs.Entity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}

	entities := make([]*ecs.Entity, 0, len(f.Blueprints))
	for _, bp := range f.Blueprints {
		components := make([]any, 0, len(bp.Components))
		for kind, node := range bp.Components {
			decode, ok := decoders[kind]
			if !ok {
				return nil, fmt.Errorf("seed: blueprint %q: no decoder registered for component %q", bp.Name, kind)
			}
			node := node
			value, err := decode(&node)
			if err != nil {
				return nil, fmt.Errorf("seed: blueprint %q: decode %q: %w", bp.Name, kind, err)
			}
			components = append(components, value)
		}
		e := world.AddEntity(components...)
		if bp.Active {
			e.Activate()
		}
		entities = append(entities, e)
	}
	return entities, nil
}
