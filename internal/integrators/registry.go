package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/projsim/internal/dynamo"
)

// Default is the stepper used for playback.
const Default = "semi-implicit"

var registry = map[string]func() dynamo.Integrator{
	"semi-implicit": func() dynamo.Integrator { return NewSemiImplicitEuler() },
	"euler":         func() dynamo.Integrator { return NewEuler() },
	"rk4":           func() dynamo.Integrator { return NewRK4() },
}

func Get(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
