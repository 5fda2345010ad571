package autopresenter

import (
	"fmt"

	"github.com/a-peyrard/autopresenter/collection"
)

type (
	// CollectionDecorator decorates every item of a *collection.Collection into a new collection
	// with the same keys.
	CollectionDecorator struct {
		dispatcher Decorator
	}

	// PaginatorDecorator decorates every item of a *collection.Paginator into a new paginator
	// carrying the same pagination metadata.
	PaginatorDecorator struct {
		dispatcher Decorator
	}
)

func NewCollectionDecorator(dispatcher Decorator) *CollectionDecorator {
	return &CollectionDecorator{dispatcher: dispatcher}
}

func (c *CollectionDecorator) CanDecorate(subject any) bool {
	items, ok := subject.(*collection.Collection)
	return ok && items != nil
}

func (c *CollectionDecorator) Decorate(subject any) (any, error) {
	items, ok := subject.(*collection.Collection)
	if !ok || items == nil {
		return subject, nil
	}
	decorated, err := decorateItems(c.dispatcher, items)
	if err != nil {
		return nil, fmt.Errorf("failed to decorate %s:\n\t%w", items, err)
	}
	return decorated, nil
}

func (c *CollectionDecorator) String() string {
	return "CollectionDecorator(*collection.Collection)"
}

func NewPaginatorDecorator(dispatcher Decorator) *PaginatorDecorator {
	return &PaginatorDecorator{dispatcher: dispatcher}
}

func (p *PaginatorDecorator) CanDecorate(subject any) bool {
	page, ok := subject.(*collection.Paginator)
	return ok && page != nil
}

func (p *PaginatorDecorator) Decorate(subject any) (any, error) {
	page, ok := subject.(*collection.Paginator)
	if !ok || page == nil {
		return subject, nil
	}
	decorated, err := decorateItems(p.dispatcher, page.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to decorate %s:\n\t%w", page, err)
	}
	return page.WithItems(decorated), nil
}

func (p *PaginatorDecorator) String() string {
	return "PaginatorDecorator(*collection.Paginator)"
}

func decorateItems(dispatcher Decorator, items *collection.Collection) (*collection.Collection, error) {
	return items.Map(func(_ any, item any) (any, error) {
		return dispatcher.Decorate(item)
	})
}
