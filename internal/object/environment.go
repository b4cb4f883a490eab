package object

import (
	"log/slog"
	"sort"
	"sync/atomic"
)

var nextID atomic.Uint64

// Environment maps names to values and falls back to Outer on lookup.
// Set always writes the local frame, so assigning to an outer name from an
// inner scope shadows it.
type Environment struct {
	ID       uint64
	Bindings map[string]Object
	Outer    *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		ID:       nextID.Add(1),
		Bindings: make(map[string]Object),
	}
}

// NewEnclosedEnvironment initializes an environment with a parent.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.Outer = outer
	slog.Debug("new environment", slog.Uint64("id", env.ID), slog.Uint64("outer", outer.ID))
	return env
}

func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.Outer {
		if v, ok := env.Bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal returns a binding from this environment only (it does not walk outers).
func (e *Environment) GetLocal(name string) (Object, bool) {
	v, ok := e.Bindings[name]
	return v, ok
}

func (e *Environment) Set(name string, val Object) Object {
	slog.Debug("bind",
		slog.Uint64("env", e.ID),
		slog.String("name", name),
		slog.String("type", string(val.Type())))
	e.Bindings[name] = val
	return val
}

// Names returns every name visible from e, sorted.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var names []string
	for env := e; env != nil; env = env.Outer {
		for name := range env.Bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
