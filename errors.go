package autopresenter

import (
	"errors"
	"fmt"
)

// ErrPresenterNotFound matches every PresenterNotFoundError with errors.Is.
var ErrPresenterNotFound = errors.New("presenter not found")

// PresenterNotFoundError is returned when the presenter expected for a model cannot be built.
type PresenterNotFoundError struct {
	// Name is the presenter name derived from the model, as it was looked up.
	Name string
	// Err is the reason reported by the container, if any.
	Err error
}

func (e *PresenterNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("the presenter '%s' was not found", e.Name)
	}
	return fmt.Sprintf("the presenter '%s' was not found:\n\t%v", e.Name, e.Err)
}

func (e *PresenterNotFoundError) Unwrap() error {
	return e.Err
}

func (e *PresenterNotFoundError) Is(target error) bool {
	return target == ErrPresenterNotFound
}
