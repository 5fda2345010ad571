package autopresenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"testing"

	"github.com/a-peyrard/autopresenter/collection"
	"github.com/a-peyrard/autopresenter/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeView mimics a view whose render context merges shared data with its own data.
type fakeView struct {
	shared map[string]any
	data   map[string]any
	sets   int
}

func (v *fakeView) Bindings() map[string]any {
	bindings := maps.Clone(v.shared)
	if bindings == nil {
		bindings = map[string]any{}
	}
	maps.Copy(bindings, v.data)
	return bindings
}

func (v *fakeView) Set(name string, value any) {
	v.sets++
	v.data[name] = value
}

type failingDecorator struct{}

func (failingDecorator) Decorate(subject any) (any, error) {
	if _, ok := subject.(*WronglyDecoratedAtom); ok {
		return nil, errors.New("boom")
	}
	return subject, nil
}

// presentersEngine renders the number of presenters bound to "atoms".
type presentersEngine struct{}

func (presentersEngine) Render(w io.Writer, name string, data map[string]any) error {
	presenters := 0
	for _, item := range data["atoms"].([]any) {
		if _, ok := item.(*DecoratedAtomPresenter); ok {
			presenters++
		}
	}
	_, err := fmt.Fprintf(w, "%s: %d presenters", name, presenters)
	return err
}

func TestRenderBindingHook(t *testing.T) {
	t.Run("it should decorate every binding of the view", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{data: map[string]any{
			"atom":  &DecoratedAtom{Name: "a"},
			"atoms": atoms(3),
			"title": "hello",
		}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		assert.IsType(t, &DecoratedAtomPresenter{}, view.data["atom"])
		for _, item := range view.data["atoms"].([]any) {
			assert.IsType(t, &DecoratedAtomPresenter{}, item)
		}
		assert.Equal(t, "hello", view.data["title"])
	})

	t.Run("it should skip reserved bindings", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher(), WithReservedBindings("csrf"))
		view := &fakeView{data: map[string]any{
			"__env": &DecoratedAtom{},
			"app":   &DecoratedAtom{},
			"csrf":  &DecoratedAtom{},
			"atom":  &DecoratedAtom{},
		}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, []string{"__env", "app", "csrf"}, hook.Reserved())
		assert.IsType(t, &DecoratedAtom{}, view.data["__env"])
		assert.IsType(t, &DecoratedAtom{}, view.data["app"])
		assert.IsType(t, &DecoratedAtom{}, view.data["csrf"])
		assert.IsType(t, &DecoratedAtomPresenter{}, view.data["atom"])
	})

	t.Run("it should decorate shared data into the view only", func(t *testing.T) {
		// GIVEN
		sharedAtom := &DecoratedAtom{Name: "shared"}
		shared := map[string]any{"current": sharedAtom}
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{shared: shared, data: map[string]any{}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		assert.Same(t, sharedAtom, shared["current"])
		require.IsType(t, &DecoratedAtomPresenter{}, view.data["current"])
		assert.Same(t, sharedAtom, view.data["current"].(*DecoratedAtomPresenter).Model)
	})

	t.Run("it should leave shared containers untouched", func(t *testing.T) {
		// GIVEN
		sharedAtoms := atoms(2)
		sharedItems := collection.New(atoms(2)...)
		shared := map[string]any{"atoms": sharedAtoms, "items": sharedItems}
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{shared: shared, data: map[string]any{}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		for _, item := range view.data["atoms"].([]any) {
			assert.IsType(t, &DecoratedAtomPresenter{}, item)
		}
		for _, item := range sharedAtoms {
			assert.IsType(t, &DecoratedAtom{}, item)
		}
		for _, item := range sharedItems.All() {
			assert.IsType(t, &DecoratedAtom{}, item)
		}
		assert.NotSame(t, sharedItems, view.data["items"])
	})

	t.Run("it should decorate the same shared data for concurrent views", func(t *testing.T) {
		// GIVEN
		shared := map[string]any{
			"atoms": atoms(4),
			"items": collection.New(atoms(4)...),
			"byKey": map[string]any{"first": &DecoratedAtom{}},
		}
		hook := NewRenderBindingHook(newTestDispatcher())
		views := make([]*fakeView, 8)
		for i := range views {
			views[i] = &fakeView{shared: shared, data: map[string]any{}}
		}

		// WHEN
		var group errgroup.Group
		for _, v := range views {
			group.Go(func() error {
				return hook.BeforeRender(v)
			})
		}
		err := group.Wait()

		// THEN
		require.NoError(t, err)
		for _, v := range views {
			for _, item := range v.data["atoms"].([]any) {
				assert.IsType(t, &DecoratedAtomPresenter{}, item)
			}
			assert.IsType(t, &DecoratedAtomPresenter{}, v.data["byKey"].(map[string]any)["first"])
		}
		for _, item := range shared["atoms"].([]any) {
			assert.IsType(t, &DecoratedAtom{}, item)
		}
		assert.IsType(t, &DecoratedAtom{}, shared["byKey"].(map[string]any)["first"])
	})

	t.Run("it should render views sharing a slice concurrently", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher())
		sharedAtoms := atoms(2)
		factory := view.NewFactory(presentersEngine{}).
			Share("atoms", sharedAtoms).
			Listen(view.ListenerFunc(func(v *view.View) error {
				return hook.BeforeRender(v)
			}))

		// WHEN
		outputs, err := factory.RenderAll(
			context.Background(),
			factory.Make("first", nil),
			factory.Make("second", nil),
		)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, []string{"first: 2 presenters", "second: 2 presenters"}, outputs)
		assert.Equal(t, sharedAtoms, factory.Shared()["atoms"])
		for _, item := range factory.Shared()["atoms"].([]any) {
			assert.IsType(t, &DecoratedAtom{}, item)
		}
	})

	t.Run("it should let view data win over shared data", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{
			shared: map[string]any{"atom": &DecoratedAtom{Name: "shared"}},
			data:   map[string]any{"atom": &DecoratedAtom{Name: "local"}},
		}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "~local~", view.data["atom"].(*DecoratedAtomPresenter).DisplayName())
	})

	t.Run("it should not touch the view when a binding fails", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(failingDecorator{})
		view := &fakeView{data: map[string]any{
			"a": &DecoratedAtom{},
			"b": &WronglyDecoratedAtom{},
		}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), `binding "b"`)
		assert.Zero(t, view.sets)
	})

	t.Run("it should not half decorate a collection when an item fails", func(t *testing.T) {
		// GIVEN
		items := collection.New(&DecoratedAtom{}, &WronglyDecoratedAtom{})
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{data: map[string]any{"items": items}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.ErrorIs(t, err, ErrPresenterNotFound)
		assert.Zero(t, view.sets)
		first, _ := items.Get(0)
		assert.IsType(t, &DecoratedAtom{}, first)
	})

	t.Run("it should propagate presenter errors", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{data: map[string]any{"broken": &WronglyDecoratedAtom{}}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		var notFound *PresenterNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missingPresenter, notFound.Name)
	})

	t.Run("it should do nothing on empty views", func(t *testing.T) {
		// GIVEN
		hook := NewRenderBindingHook(newTestDispatcher())
		view := &fakeView{data: map[string]any{}}

		// WHEN
		err := hook.BeforeRender(view)

		// THEN
		require.NoError(t, err)
		assert.Zero(t, view.sets)
	})
}
