package scenario

import (
	"fmt"
	"sort"
)

type Registry struct {
	scenarios map[string]func() Scenario
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]func() Scenario),
	}

	r.scenarios["uniform"] = func() Scenario { return NewUniform() }
	r.scenarios["wedge"] = func() Scenario { return NewWedge() }
	r.scenarios["masked"] = func() Scenario { return NewMasked() }
	r.scenarios["tidal"] = func() Scenario { return NewTidal() }

	return r
}

// Get returns a fresh scenario with default parameters.
func (r *Registry) Get(name string) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
