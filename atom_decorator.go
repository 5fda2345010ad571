package autopresenter

import (
	"fmt"
	"maps"
	"slices"

	"github.com/a-peyrard/autopresenter/reflectutils"
)

// AtomDecorator wraps a single domain model into its presenter.
type AtomDecorator struct {
	resolver   *PresenterResolver
	dispatcher Decorator
}

// NewAtomDecorator creates the atom decorator. The dispatcher, when not nil, decorates the
// relations of models implementing RelationHolder.
func NewAtomDecorator(resolver *PresenterResolver, dispatcher Decorator) *AtomDecorator {
	return &AtomDecorator{
		resolver:   resolver,
		dispatcher: dispatcher,
	}
}

func (a *AtomDecorator) CanDecorate(subject any) bool {
	if reflectutils.IsNil(subject) {
		return false
	}
	if _, wrapped := subject.(Wrapper); wrapped {
		return false
	}
	switch subject.(type) {
	case Model, HasPresenter:
		return true
	default:
		return false
	}
}

func (a *AtomDecorator) Decorate(subject any) (any, error) {
	if holder, ok := subject.(RelationHolder); ok && a.dispatcher != nil {
		if err := a.decorateRelations(holder); err != nil {
			return nil, err
		}
	}

	return a.resolver.Resolve(subject)
}

func (a *AtomDecorator) decorateRelations(holder RelationHolder) error {
	relations := holder.Relations()
	for _, name := range slices.Sorted(maps.Keys(relations)) {
		decorated, err := a.dispatcher.Decorate(relations[name])
		if err != nil {
			return fmt.Errorf("failed to decorate relation %q of %T:\n\t%w", name, holder, err)
		}
		holder.SetRelation(name, decorated)
	}
	return nil
}

func (a *AtomDecorator) String() string {
	return "AtomDecorator(models to presenters)"
}
