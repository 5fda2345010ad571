package autopresenter

import (
	"fmt"
	"strings"

	"github.com/a-peyrard/autopresenter/activity"
)

// EnrichedActivityDecorator decorates the domain object fields of an *activity.Enriched.
//
// Only the configured fields are decorated, and only when present on the activity. The decorated
// fields are set on a clone, the subject is never modified.
type EnrichedActivityDecorator struct {
	dispatcher Decorator
	fields     []string
}

// NewEnrichedActivityDecorator creates the decorator for the given fields, DefaultActivityFields
// when none is given.
func NewEnrichedActivityDecorator(dispatcher Decorator, fields ...string) *EnrichedActivityDecorator {
	if len(fields) == 0 {
		fields = DefaultActivityFields
	}
	return &EnrichedActivityDecorator{
		dispatcher: dispatcher,
		fields:     append([]string(nil), fields...),
	}
}

func (e *EnrichedActivityDecorator) CanDecorate(subject any) bool {
	enriched, ok := subject.(*activity.Enriched)
	return ok && enriched != nil
}

func (e *EnrichedActivityDecorator) Decorate(subject any) (any, error) {
	enriched, ok := subject.(*activity.Enriched)
	if !ok || enriched == nil {
		return subject, nil
	}

	decorated := make(map[string]any, len(e.fields))
	for _, field := range e.fields {
		value, present := enriched.Get(field)
		if !present {
			continue
		}
		presented, err := e.dispatcher.Decorate(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decorate field %q of %s:\n\t%w", field, enriched, err)
		}
		decorated[field] = presented
	}

	clone := enriched.Clone()
	for field, value := range decorated {
		clone.Set(field, value)
	}
	return clone, nil
}

func (e *EnrichedActivityDecorator) String() string {
	return fmt.Sprintf("EnrichedActivityDecorator(%s)", strings.Join(e.fields, ", "))
}
