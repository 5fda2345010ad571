// Package autopresenter decorates the values bound to a view with their presenters, right before
// the view renders.
//
// A Dispatcher routes every value to the first registered TypeDecorator claiming it. Container
// decorators (slices, arrays, maps, collections, paginators, enriched activities) walk their
// elements back through the dispatcher, so nested structures resolve at any depth; the atom
// decorator wraps a single domain model into the presenter resolved for its type. Values nobody
// claims are returned unchanged. Containers are never modified, decorated copies are returned.
//
//	c := container.New()
//	c.MustBind(presenters.NewUserPresenter)
//
//	dispatcher := autopresenter.New(c)
//	decorated, err := dispatcher.Decorate([]any{user, "title"})
//
// The dispatcher registry is meant to be filled once at bootstrap; Decorate is then safe to call
// from concurrent render cycles. Registering decorators while values are being decorated is the
// caller's responsibility: in-flight calls keep the registry snapshot they started with.
package autopresenter
