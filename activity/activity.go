// Package activity holds the enriched activity record of an activity feed: the activity fields
// with their references (actor, object, target...) replaced by the loaded domain objects.
package activity

import (
	"fmt"
	"maps"
	"slices"
)

// Enriched is a composite activity record. Fields are optional: a feed may omit the target of an
// activity, or fail to enrich one of its references.
type Enriched struct {
	fields      map[string]any
	notEnriched map[string]any
}

// New creates an enriched activity from its fields. The map is copied.
func New(fields map[string]any) *Enriched {
	return &Enriched{
		fields:      maps.Clone(fields),
		notEnriched: make(map[string]any),
	}
}

// Clone returns a shallow copy, field values are shared.
func (a *Enriched) Clone() *Enriched {
	return &Enriched{
		fields:      maps.Clone(a.fields),
		notEnriched: maps.Clone(a.notEnriched),
	}
}

// Get returns the value of a field.
func (a *Enriched) Get(field string) (any, bool) {
	value, found := a.fields[field]
	return value, found
}

// Has reports whether the field is present.
func (a *Enriched) Has(field string) bool {
	_, found := a.fields[field]
	return found
}

// Set sets the value of a field.
func (a *Enriched) Set(field string, value any) {
	if a.fields == nil {
		a.fields = make(map[string]any)
	}
	a.fields[field] = value
}

// Unset removes a field.
func (a *Enriched) Unset(field string) {
	delete(a.fields, field)
}

// Fields returns the names of the present fields, sorted.
func (a *Enriched) Fields() []string {
	return slices.Sorted(maps.Keys(a.fields))
}

// Data returns a copy of the fields.
func (a *Enriched) Data() map[string]any {
	return maps.Clone(a.fields)
}

// TrackNotEnriched records a reference the feed could not resolve.
func (a *Enriched) TrackNotEnriched(field string, reference any) {
	if a.notEnriched == nil {
		a.notEnriched = make(map[string]any)
	}
	a.notEnriched[field] = reference
}

// NotEnriched returns the references that could not be resolved, by field.
func (a *Enriched) NotEnriched() map[string]any {
	return maps.Clone(a.notEnriched)
}

// IsEnriched reports whether every reference was resolved.
func (a *Enriched) IsEnriched() bool {
	return len(a.notEnriched) == 0
}

func (a *Enriched) String() string {
	return fmt.Sprintf("EnrichedActivity(%v)", a.Fields())
}
