package autopresenter

import (
	"fmt"
	"time"

	"github.com/a-peyrard/autopresenter/container"
)

// Test models and presenters shared by the package tests
type (
	DecoratedAtom struct {
		BaseModel
		Name string
	}

	DecoratedAtomPresenter struct {
		Base[*DecoratedAtom]
	}

	Greeter struct {
		Greeting string
	}

	DependencyDecoratedAtom struct {
		BaseModel
		Name string
	}

	DependencyDecoratedAtomPresenter struct {
		Base[*DependencyDecoratedAtom]
		Greeter *Greeter
	}

	UndecoratedAtom struct {
		Name string
	}

	WronglyDecoratedAtom struct {
		BaseModel
	}

	// DeclaredAtom is not a Model but declares its presenter.
	DeclaredAtom struct {
		ID int
	}

	DeclaredAtomView struct {
		Base[*DeclaredAtom]
	}

	Author struct {
		BaseModel
		Name      string
		relations map[string]any
	}

	AuthorPresenter struct {
		Base[*Author]
	}

	// SelfEmbeddingPresenter embeds its model, and so is a Model itself.
	SelfEmbeddingPresenter struct {
		*DecoratedAtom
	}

	observation struct {
		key string
		err error
	}

	recordingObserver struct {
		observations []observation
	}
)

const missingPresenter = "ThisClassDoesntExistAnywhereInTheKnownUniverse"

func (a *DecoratedAtomPresenter) DisplayName() string {
	return "~" + a.Model.Name + "~"
}

func (a *DependencyDecoratedAtomPresenter) Greet() string {
	return fmt.Sprintf("%s %s", a.Greeter.Greeting, a.Model.Name)
}

func (WronglyDecoratedAtom) PresenterName() string {
	return missingPresenter
}

func (d *DeclaredAtom) PresenterName() string {
	return "views.Declared"
}

func (a *Author) Relations() map[string]any {
	return a.relations
}

func (a *Author) SetRelation(name string, value any) {
	a.relations[name] = value
}

func (s SelfEmbeddingPresenter) WrappedObject() any {
	return s.DecoratedAtom
}

func (o *recordingObserver) ObserveDecoration(key string, _ time.Duration, err error) {
	o.observations = append(o.observations, observation{key: key, err: err})
}

func NewDecoratedAtomPresenter(atom *DecoratedAtom) *DecoratedAtomPresenter {
	return &DecoratedAtomPresenter{Base: Wrap(atom)}
}

func NewDependencyDecoratedAtomPresenter(atom *DependencyDecoratedAtom, greeter *Greeter) (*DependencyDecoratedAtomPresenter, error) {
	return &DependencyDecoratedAtomPresenter{Base: Wrap(atom), Greeter: greeter}, nil
}

func NewDeclaredAtomView(atom *DeclaredAtom) *DeclaredAtomView {
	return &DeclaredAtomView{Base: Wrap(atom)}
}

func NewAuthorPresenter(author *Author) *AuthorPresenter {
	return &AuthorPresenter{Base: Wrap(author)}
}

func newTestContainer() *container.Container {
	return container.New().
		MustProvide(func() *Greeter { return &Greeter{Greeting: "Hello"} }).
		MustBind(NewDecoratedAtomPresenter).
		MustBind(NewDependencyDecoratedAtomPresenter).
		MustBind(NewDeclaredAtomView, container.Named("views.Declared")).
		MustBind(NewAuthorPresenter)
}

func newTestDispatcher() *Dispatcher {
	return New(newTestContainer())
}

func atoms(n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = &DecoratedAtom{Name: fmt.Sprintf("atom-%d", i)}
	}
	return items
}
