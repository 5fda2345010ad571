package autopresenter

import (
	"errors"
	"testing"

	"github.com/a-peyrard/autopresenter/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomDecorator(t *testing.T) {
	dispatcher := newTestDispatcher()
	atomDecorator := NewAtomDecorator(NewPresenterResolver(newTestContainer()), dispatcher)

	t.Run("it should claim models and declared presenters only", func(t *testing.T) {
		// WHEN / THEN
		assert.True(t, atomDecorator.CanDecorate(&DecoratedAtom{}))
		assert.True(t, atomDecorator.CanDecorate(DecoratedAtom{}))
		assert.True(t, atomDecorator.CanDecorate(&DeclaredAtom{}))
		assert.False(t, atomDecorator.CanDecorate(&UndecoratedAtom{}))
		assert.False(t, atomDecorator.CanDecorate("garbage stuff yo"))
		assert.False(t, atomDecorator.CanDecorate(nil))
	})

	t.Run("it should not claim nil models", func(t *testing.T) {
		// GIVEN
		var atom *DecoratedAtom

		// WHEN / THEN
		assert.False(t, atomDecorator.CanDecorate(atom))
	})

	t.Run("it should not claim values already wrapped", func(t *testing.T) {
		// GIVEN
		presenter := NewDecoratedAtomPresenter(&DecoratedAtom{})
		embedding := SelfEmbeddingPresenter{DecoratedAtom: &DecoratedAtom{}}

		// WHEN / THEN
		assert.False(t, atomDecorator.CanDecorate(presenter))
		assert.False(t, atomDecorator.CanDecorate(embedding))
	})

	t.Run("it should decorate an atom", func(t *testing.T) {
		// GIVEN
		atom := &DecoratedAtom{Name: "hello"}

		// WHEN
		decorated, err := dispatcher.Decorate(atom)

		// THEN
		require.NoError(t, err)
		require.IsType(t, &DecoratedAtomPresenter{}, decorated)
		presenter := decorated.(*DecoratedAtomPresenter)
		assert.Same(t, atom, presenter.WrappedObject())
		assert.Equal(t, "~hello~", presenter.DisplayName())
	})

	t.Run("it should create a fresh presenter on every call", func(t *testing.T) {
		// GIVEN
		atom := &DecoratedAtom{Name: "hello"}

		// WHEN
		first, err := dispatcher.Decorate(atom)
		require.NoError(t, err)
		second, err := dispatcher.Decorate(atom)
		require.NoError(t, err)

		// THEN
		assert.NotSame(t, first, second)
	})

	t.Run("it should decorate an atom with dependencies", func(t *testing.T) {
		// GIVEN
		atom := &DependencyDecoratedAtom{Name: "world"}

		// WHEN
		decorated, err := dispatcher.Decorate(atom)

		// THEN
		require.NoError(t, err)
		require.IsType(t, &DependencyDecoratedAtomPresenter{}, decorated)
		assert.Equal(t, "Hello world", decorated.(*DependencyDecoratedAtomPresenter).Greet())
	})

	t.Run("it should decorate an atom declaring its presenter", func(t *testing.T) {
		// WHEN
		decorated, err := dispatcher.Decorate(&DeclaredAtom{ID: 7})

		// THEN
		require.NoError(t, err)
		assert.IsType(t, &DeclaredAtomView{}, decorated)
	})

	t.Run("it should fail with the missing presenter name", func(t *testing.T) {
		// WHEN
		decorated, err := dispatcher.Decorate(&WronglyDecoratedAtom{})

		// THEN
		require.Error(t, err)
		assert.Nil(t, decorated)
		assert.ErrorIs(t, err, ErrPresenterNotFound)
		assert.ErrorIs(t, err, container.ErrUnknownType)

		var notFound *PresenterNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, missingPresenter, notFound.Name)
		assert.Contains(t, err.Error(), "the presenter '"+missingPresenter+"' was not found")
	})

	t.Run("it should decorate the relations before wrapping the model", func(t *testing.T) {
		// GIVEN
		author := &Author{
			Name: "jane",
			relations: map[string]any{
				"favorite": &DecoratedAtom{Name: "fav"},
				"posts":    atoms(2),
				"count":    2,
			},
		}

		// WHEN
		decorated, err := dispatcher.Decorate(author)

		// THEN
		require.NoError(t, err)
		require.IsType(t, &AuthorPresenter{}, decorated)
		assert.IsType(t, &DecoratedAtomPresenter{}, author.relations["favorite"])
		assert.Equal(t, 2, author.relations["count"])
		posts := author.relations["posts"].([]any)
		for _, post := range posts {
			assert.IsType(t, &DecoratedAtomPresenter{}, post)
		}
	})

	t.Run("it should fail when a relation cannot be decorated", func(t *testing.T) {
		// GIVEN
		author := &Author{relations: map[string]any{"broken": &WronglyDecoratedAtom{}}}

		// WHEN
		_, err := dispatcher.Decorate(author)

		// THEN
		require.ErrorIs(t, err, ErrPresenterNotFound)
		assert.Contains(t, err.Error(), `relation "broken"`)
	})
}
