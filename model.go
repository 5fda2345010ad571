package autopresenter

type (
	// Model is the capability of domain objects the atom decorator wraps. It is satisfied by
	// embedding BaseModel.
	Model interface {
		isModel()
	}

	// BaseModel is embedded by domain objects to make them presentable.
	BaseModel struct{}

	// HasPresenter is implemented by domain objects declaring the name of their presenter.
	HasPresenter interface {
		PresenterName() string
	}

	// Wrapper is implemented by presenters. Wrapped values are never wrapped again.
	Wrapper interface {
		WrappedObject() any
	}

	// RelationHolder is implemented by models carrying loaded relations. Relations are decorated
	// before the model itself is wrapped.
	RelationHolder interface {
		Relations() map[string]any
		SetRelation(name string, value any)
	}

	// Base is embedded by presenters to hold the model they wrap.
	Base[T any] struct {
		Model T
	}
)

func (BaseModel) isModel() {}

func (b Base[T]) WrappedObject() any {
	return b.Model
}

// Wrap builds the Base of a presenter around model.
func Wrap[T any](model T) Base[T] {
	return Base[T]{Model: model}
}
