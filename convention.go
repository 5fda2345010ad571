package autopresenter

import (
	"strings"

	"github.com/a-peyrard/autopresenter/reflectutils"
)

type (
	// Convention derives the presenter name of a model.
	//
	// It returns false when it does not handle the model, letting the next convention try.
	Convention interface {
		PresenterName(model any) (name string, handled bool)
	}

	ConventionFunc func(model any) (name string, handled bool)

	// Conventions tries each convention in order and keeps the first handled name.
	Conventions []Convention

	// DeclaredConvention uses the name declared by models implementing HasPresenter.
	DeclaredConvention struct{}

	// NamespaceConvention derives the name from the model type: the "models.User" type gives
	// "presenters.UserPresenter" with ModelNamespace "models", PresenterNamespace "presenters" and
	// Suffix "Presenter". Types from other packages keep their package.
	NamespaceConvention struct {
		ModelNamespace     string
		PresenterNamespace string
		Suffix             string
	}
)

// DefaultConvention is the declared name if any, otherwise the "models" to "presenters" namespace
// rule with the "Presenter" suffix.
func DefaultConvention() Convention {
	return Conventions{
		DeclaredConvention{},
		NamespaceConvention{
			ModelNamespace:     "models",
			PresenterNamespace: "presenters",
			Suffix:             "Presenter",
		},
	}
}

func (f ConventionFunc) PresenterName(model any) (string, bool) {
	return f(model)
}

func (c Conventions) PresenterName(model any) (string, bool) {
	for _, convention := range c {
		if name, handled := convention.PresenterName(model); handled {
			return name, true
		}
	}
	return "", false
}

func (DeclaredConvention) PresenterName(model any) (string, bool) {
	declared, ok := model.(HasPresenter)
	if !ok {
		return "", false
	}
	name := declared.PresenterName()
	return name, name != ""
}

func (c NamespaceConvention) PresenterName(model any) (string, bool) {
	qualified, ok := reflectutils.QualifiedName(model)
	if !ok {
		return "", false
	}
	// package names never contain dots, the first one separates the package from the type
	pkg, typ, _ := strings.Cut(qualified, ".")
	if c.ModelNamespace != "" && c.PresenterNamespace != "" && pkg == c.ModelNamespace {
		pkg = c.PresenterNamespace
	}
	return pkg + "." + typ + c.Suffix, true
}
