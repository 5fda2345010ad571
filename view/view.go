// Package view is a minimal rendering host: a Factory holding shared data and render listeners,
// producing Views rendered by a pluggable Engine.
package view

import (
	"io"
	"maps"
)

type (
	// Engine renders a named template with the given bindings.
	Engine interface {
		Render(w io.Writer, name string, data map[string]any) error
	}

	// View is a template name with its own data, created by a Factory.
	//
	// A View is not safe for concurrent use, render distinct views instead.
	View struct {
		name    string
		data    map[string]any
		factory *Factory
	}
)

func (v *View) Name() string {
	return v.name
}

// With adds a binding to the view data.
func (v *View) With(name string, value any) *View {
	v.data[name] = value
	return v
}

// Get returns a binding visible to the view, view data first then shared data.
func (v *View) Get(name string) (any, bool) {
	if value, found := v.data[name]; found {
		return value, true
	}
	return v.factory.sharedValue(name)
}

// Data returns a copy of the view own data, shared data excluded.
func (v *View) Data() map[string]any {
	return maps.Clone(v.data)
}

// Bindings returns the shared data merged with the view data, the latter winning on conflicts.
func (v *View) Bindings() map[string]any {
	bindings := v.factory.Shared()
	maps.Copy(bindings, v.data)
	return bindings
}

// Set overwrites a binding in the view data. Shared data is never modified.
func (v *View) Set(name string, value any) {
	v.data[name] = value
}

// Render renders the view through its factory.
func (v *View) Render(w io.Writer) error {
	return v.factory.Render(w, v)
}
