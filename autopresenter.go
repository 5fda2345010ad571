package autopresenter

import (
	"github.com/a-peyrard/autopresenter/option"
)

// Keys of the decorators registered by New, in dispatch order.
const (
	KeyAtom             = "atom"
	KeyCollection       = "collection"
	KeyPaginator        = "paginator"
	KeyArray            = "array"
	KeyEnrichedActivity = "enrichedactivity"
)

// New creates the application dispatcher with the default decorator chain: atoms, collections,
// paginators, slices/arrays/maps and enriched activities. Presenters are built by container.
func New(container Container, opts ...option.Option[Options]) *Dispatcher {
	options := buildOptions(opts)

	dispatcher := NewDispatcher(opts...)
	resolver := NewPresenterResolver(container, opts...)

	dispatcher.
		AddDecorator(KeyAtom, NewAtomDecorator(resolver, dispatcher)).
		AddDecorator(KeyCollection, NewCollectionDecorator(dispatcher)).
		AddDecorator(KeyPaginator, NewPaginatorDecorator(dispatcher)).
		AddDecorator(KeyArray, NewArrayDecorator(dispatcher)).
		AddDecorator(KeyEnrichedActivity, NewEnrichedActivityDecorator(dispatcher, options.activityFields...))

	return dispatcher
}
