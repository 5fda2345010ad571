package autopresenter

import (
	"fmt"
	"reflect"

	"github.com/a-peyrard/autopresenter/reflectutils"
)

// ArrayDecorator decorates every element of slices, arrays and maps through the dispatcher.
//
// The subject is never modified: a decorated copy with the same length, order and keys is
// returned. The copy keeps the subject type when its element type can hold every decorated
// element, a []any, [N]any or map[K]any is returned otherwise. Nil slices and maps are returned
// as is.
type ArrayDecorator struct {
	dispatcher Decorator
}

func NewArrayDecorator(dispatcher Decorator) *ArrayDecorator {
	return &ArrayDecorator{dispatcher: dispatcher}
}

func (a *ArrayDecorator) CanDecorate(subject any) bool {
	if subject == nil {
		return false
	}
	switch reflect.TypeOf(subject).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func (a *ArrayDecorator) Decorate(subject any) (any, error) {
	if !a.CanDecorate(subject) {
		return subject, nil
	}
	v := reflect.ValueOf(subject)
	if (v.Kind() == reflect.Slice || v.Kind() == reflect.Map) && v.IsNil() {
		return subject, nil
	}
	if v.Kind() == reflect.Map {
		return a.decorateMap(v)
	}
	return a.decorateSequence(v)
}

func (a *ArrayDecorator) decorateSequence(v reflect.Value) (any, error) {
	var (
		length    = v.Len()
		elemType  = v.Type().Elem()
		decorated = make([]any, length)
		fits      = true
	)
	for i := 0; i < length; i++ {
		elem, err := a.dispatcher.Decorate(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("failed to decorate element %d of %s:\n\t%w", i, v.Type(), err)
		}
		decorated[i] = elem
		fits = fits && reflectutils.CanHold(elemType, elem)
	}

	var target reflect.Value
	switch {
	case v.Kind() == reflect.Slice && fits:
		target = reflect.MakeSlice(v.Type(), length, length)

	case v.Kind() == reflect.Slice:
		return decorated, nil

	case fits:
		target = reflect.New(v.Type()).Elem()

	default:
		elemType = reflectutils.AnyType
		target = reflect.New(reflect.ArrayOf(length, elemType)).Elem()
	}
	for i, elem := range decorated {
		target.Index(i).Set(reflectutils.ValueFor(elemType, elem))
	}
	return target.Interface(), nil
}

func (a *ArrayDecorator) decorateMap(v reflect.Value) (any, error) {
	type entry struct {
		key   reflect.Value
		value any
	}
	var (
		elemType = v.Type().Elem()
		entries  = make([]entry, 0, v.Len())
		fits     = true
	)
	iter := v.MapRange()
	for iter.Next() {
		elem, err := a.dispatcher.Decorate(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("failed to decorate element %v of %s:\n\t%w", iter.Key(), v.Type(), err)
		}
		entries = append(entries, entry{key: iter.Key(), value: elem})
		fits = fits && reflectutils.CanHold(elemType, elem)
	}

	mapType := v.Type()
	if !fits {
		elemType = reflectutils.AnyType
		mapType = reflect.MapOf(mapType.Key(), elemType)
	}
	target := reflect.MakeMapWithSize(mapType, len(entries))
	for _, e := range entries {
		target.SetMapIndex(e.key, reflectutils.ValueFor(elemType, e.value))
	}
	return target.Interface(), nil
}

func (a *ArrayDecorator) String() string {
	return "ArrayDecorator(slices, arrays and maps)"
}
