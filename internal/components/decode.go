package components

import (
	"gopkg.in/yaml.v3"

	"github.com/l1jgo/ecsrun/internal/seed"
)

// Decoders returns the seed.Registry entries for this package's component
// types, keyed by the blueprint YAML name a world-seed file uses.
func Decoders() seed.Registry {
	return seed.Registry{
		"transform": func(node *yaml.Node) (any, error) {
			var t Transform
			if err := node.Decode(&t); err != nil {
				return nil, err
			}
			return t, nil
		},
		"label": func(node *yaml.Node) (any, error) {
			var l Label
			if err := node.Decode(&l); err != nil {
				return nil, err
			}
			return l, nil
		},
		"velocity": func(node *yaml.Node) (any, error) {
			var v Velocity
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		},
		"vitals": func(node *yaml.Node) (any, error) {
			var v Vitals
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
			return &v, nil
		},
	}
}
