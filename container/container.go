// Package container is a small reflective dependency container.
//
// It knows two kinds of registrations:
//   - services, built by provider functions and resolved by type, once (singletons);
//   - presenters, built by factory functions bound to a name, once per Make call. The first
//     parameter of a presenter factory receives the wrapped model, the remaining parameters are
//     resolved as services.
package container

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/a-peyrard/autopresenter/reflectutils"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownType is returned when no registration matches the requested name or type.
	ErrUnknownType = errors.New("unknown type")

	// ErrConstructorMismatch is returned when the model handed to Make does not fit the factory.
	ErrConstructorMismatch = errors.New("constructor mismatch")

	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

type (
	// Container holds service providers and presenter factories.
	//
	// Registration is expected during bootstrap; resolution is safe for concurrent use.
	Container struct {
		mu         sync.RWMutex
		services   map[reflect.Type][]*serviceDef
		presenters map[string]*presenterDef

		logger zerolog.Logger
	}

	Options struct {
		logger zerolog.Logger
	}

	BindOptions struct {
		named       string
		description string
	}

	factoryMethod struct {
		fnName       string
		factory      reflect.Value
		dependencies []reflect.Type
	}

	serviceDef struct {
		factoryMethod
		provides reflect.Type

		mu       sync.Mutex
		instance *reflect.Value
	}

	presenterDef struct {
		factoryMethod
		name        string
		model       reflect.Type
		description string
	}
)

func WithLogger(logger zerolog.Logger) option.Option[Options] {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// Named overrides the name a presenter factory is bound to.
func Named(name string) option.Option[BindOptions] {
	return func(opts *BindOptions) {
		opts.named = name
	}
}

func Description(description string) option.Option[BindOptions] {
	return func(opts *BindOptions) {
		opts.description = description
	}
}

// New creates an empty container. The container registers itself as a service.
func New(opts ...option.Option[Options]) *Container {
	options := option.Build(&Options{logger: zerolog.Nop()}, opts...)

	c := &Container{
		services:   make(map[reflect.Type][]*serviceDef),
		presenters: make(map[string]*presenterDef),
		logger:     options.logger.With().Str("component", "container").Logger(),
	}
	c.MustSupply(c)

	return c
}

// Provide registers a service provider.
//
// The provider must be a function returning the service, optionally followed by an error. Its
// parameters are resolved by type when the service is first requested.
func (c *Container) Provide(provider any) error {
	fm, err := newFactoryMethod(provider, 0)
	if err != nil {
		return fmt.Errorf("invalid provider %T:\n\t%w", provider, err)
	}
	provides := fm.factory.Type().Out(0)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[provides] = append(c.services[provides], &serviceDef{
		factoryMethod: fm,
		provides:      provides,
	})

	return nil
}

func (c *Container) MustProvide(provider any) *Container {
	if err := c.Provide(provider); err != nil {
		panic(fmt.Sprintf("failed to register provider %T:\n\t%v", provider, err))
	}
	return c
}

// Supply registers an already built service.
func (c *Container) Supply(service any) error {
	if service == nil {
		return errors.New("cannot supply a nil service")
	}
	value := reflect.ValueOf(service)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[value.Type()] = append(c.services[value.Type()], &serviceDef{
		factoryMethod: factoryMethod{fnName: fmt.Sprintf("supplied %T", service)},
		provides:      value.Type(),
		instance:      &value,
	})

	return nil
}

func (c *Container) MustSupply(service any) *Container {
	if err := c.Supply(service); err != nil {
		panic(fmt.Sprintf("failed to supply service %T:\n\t%v", service, err))
	}
	return c
}

// Bind registers a presenter factory.
//
// The factory must be a function whose first parameter receives the model to wrap, returning the
// presenter, optionally followed by an error. The presenter is bound to the qualified name of its
// type ("package.Type"), unless Named is given.
func (c *Container) Bind(factory any, opts ...option.Option[BindOptions]) error {
	options := option.Build(&BindOptions{}, opts...)

	fm, err := newFactoryMethod(factory, 1)
	if err != nil {
		return fmt.Errorf("invalid presenter factory %T:\n\t%w", factory, err)
	}
	t := fm.factory.Type()

	name := options.named
	if name == "" {
		var ok bool
		name, ok = reflectutils.QualifiedTypeName(t.Out(0))
		if !ok {
			return fmt.Errorf("presenter factory %s returns the unnamed type %s, a name must be given", fm.fnName, t.Out(0))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, found := c.presenters[name]; found {
		return fmt.Errorf("presenter %q is already bound to %s", name, existing.fnName)
	}
	c.presenters[name] = &presenterDef{
		factoryMethod: fm,
		name:          name,
		model:         t.In(0),
		description:   options.description,
	}

	return nil
}

func (c *Container) MustBind(factory any, opts ...option.Option[BindOptions]) *Container {
	if err := c.Bind(factory, opts...); err != nil {
		panic(fmt.Sprintf("failed to bind presenter factory %T:\n\t%v", factory, err))
	}
	return c
}

// Has reports whether a presenter is bound to name.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, found := c.presenters[name]
	return found
}

// Names returns the bound presenter names, sorted.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.presenters))
	for name := range c.presenters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Make builds a fresh presenter bound to name around model.
//
// It fails with ErrUnknownType when nothing is bound to name, and with ErrConstructorMismatch when
// the model does not fit the factory first parameter.
func (c *Container) Make(name string, model any) (any, error) {
	c.mu.RLock()
	def, found := c.presenters[name]
	c.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: no presenter bound to %q", ErrUnknownType, name)
	}

	modelValue, err := fitModel(def.model, model)
	if err != nil {
		return nil, fmt.Errorf("%w: presenter %q (%s):\n\t%v", ErrConstructorMismatch, name, def.fnName, err)
	}

	dependencies, err := c.resolveDependencies(def.dependencies, newTracker())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies of presenter %q:\n\t%w", name, err)
	}

	c.logger.Debug().Str("presenter", name).Msgf("making presenter for %T", model)
	presenter, err := def.call(append([]reflect.Value{modelValue}, dependencies...))
	if err != nil {
		return nil, fmt.Errorf("failed to make presenter %q:\n\t%w", name, err)
	}

	return presenter.Interface(), nil
}

// Resolve returns the service of type T, building it and its dependencies if needed.
func Resolve[T any](c *Container) (T, error) {
	var zero T
	lookFor := reflect.TypeOf((*T)(nil)).Elem()

	val, err := c.resolve(lookFor, newTracker())
	if err != nil {
		return zero, fmt.Errorf("failed to resolve %s:\n\t%w", lookFor, err)
	}
	typed, ok := val.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("resolved service %v is not of type %s", val, lookFor)
	}
	return typed, nil
}

func (c *Container) resolve(lookFor reflect.Type, tracker *tracker) (reflect.Value, error) {
	def, err := c.findService(lookFor)
	if err != nil {
		return reflect.Value{}, err
	}
	return c.instantiate(def, tracker)
}

func (c *Container) findService(lookFor reflect.Type) (*serviceDef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if defs := c.services[lookFor]; len(defs) > 0 {
		if len(defs) > 1 {
			return nil, fmt.Errorf("multiple providers found for %s, expected one and only one, got %d", lookFor, len(defs))
		}
		return defs[0], nil
	}

	var basket []*serviceDef
	if lookFor.Kind() == reflect.Interface {
		for provided, defs := range c.services {
			if provided.Implements(lookFor) {
				basket = append(basket, defs...)
			}
		}
	}
	switch len(basket) {
	case 0:
		return nil, fmt.Errorf("%w: no provider found for %s", ErrUnknownType, lookFor)
	case 1:
		return basket[0], nil
	default:
		return nil, fmt.Errorf("multiple providers found for %s, expected one and only one, got %d", lookFor, len(basket))
	}
}

func (c *Container) instantiate(def *serviceDef, tracker *tracker) (reflect.Value, error) {
	if err := tracker.push(def.provides); err != nil {
		return reflect.Value{}, fmt.Errorf("dependency cycle detected when trying to provide %s using %s:\n\t%w", def.provides, def.fnName, err)
	}
	defer tracker.pop()

	def.mu.Lock()
	defer def.mu.Unlock()

	if def.instance != nil {
		return *def.instance, nil
	}

	dependencies, err := c.resolveDependencies(def.dependencies, tracker)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to resolve dependencies for provider %s:\n\t%w", def.fnName, err)
	}

	c.logger.Debug().Str("service", def.provides.String()).Msgf("providing service using %s", def.fnName)
	instance, err := def.call(dependencies)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to provide %s using %s:\n\t%w", def.provides, def.fnName, err)
	}
	def.instance = &instance

	return instance, nil
}

func (c *Container) resolveDependencies(types []reflect.Type, tracker *tracker) ([]reflect.Value, error) {
	dependencies := make([]reflect.Value, len(types))
	for idx, typ := range types {
		dep, err := c.resolve(typ, tracker)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dependency %s:\n\t%w", typ, err)
		}
		dependencies[idx] = dep
	}
	return dependencies, nil
}

// Describe lists the registered services and presenters.
func (c *Container) Describe() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var b strings.Builder
	b.WriteString("* Services:\n")
	serviceTypes := make([]reflect.Type, 0, len(c.services))
	for typ := range c.services {
		serviceTypes = append(serviceTypes, typ)
	}
	slices.SortFunc(serviceTypes, func(a, b reflect.Type) int { return strings.Compare(a.String(), b.String()) })
	for _, typ := range serviceTypes {
		for _, def := range c.services[typ] {
			b.WriteString(fmt.Sprintf("\t- %s <- %s\n", typ, def.fnName))
			for _, dep := range def.dependencies {
				b.WriteString(fmt.Sprintf("\t\t- needs %s\n", dep))
			}
		}
	}
	b.WriteString("* Presenters:\n")
	names := make([]string, 0, len(c.presenters))
	for name := range c.presenters {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		def := c.presenters[name]
		b.WriteString(fmt.Sprintf("\t- %s wraps %s <- %s\n", name, def.model, def.fnName))
		if def.description != "" {
			b.WriteString(fmt.Sprintf("\t\tdescription: %s\n", def.description))
		}
		for _, dep := range def.dependencies {
			b.WriteString(fmt.Sprintf("\t\t- needs %s\n", dep))
		}
	}
	return b.String()
}

func newFactoryMethod(factory any, reservedParams int) (factoryMethod, error) {
	t := reflect.TypeOf(factory)
	if t == nil || t.Kind() != reflect.Func {
		return factoryMethod{}, errors.New("factory method must be a function")
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return factoryMethod{}, errors.New("factory method must either return the instance and an error, or just the instance")
	}
	if t.NumOut() == 2 && t.Out(1) != errorType {
		return factoryMethod{}, errors.New("if factory method returns two elements, it must return an error as the second element")
	}
	if t.NumIn() < reservedParams {
		return factoryMethod{}, fmt.Errorf("factory method must have at least %d parameter(s)", reservedParams)
	}
	if t.IsVariadic() {
		return factoryMethod{}, errors.New("factory method cannot be variadic")
	}

	dependencies := make([]reflect.Type, 0, t.NumIn()-reservedParams)
	for i := reservedParams; i < t.NumIn(); i++ {
		dependencies = append(dependencies, t.In(i))
	}

	value := reflect.ValueOf(factory)
	return factoryMethod{
		fnName:       runtime.FuncForPC(value.Pointer()).Name(),
		factory:      value,
		dependencies: dependencies,
	}, nil
}

func (f factoryMethod) call(params []reflect.Value) (result reflect.Value, err error) {
	// panic recovery, as `Call` can panic if the factory method has a panic
	var results []reflect.Value
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic calling %s: %v", f.fnName, r)
			}
		}()
		results = f.factory.Call(params)
	}()
	if err != nil {
		return reflect.Value{}, err
	}

	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	return results[0], nil
}

func fitModel(expected reflect.Type, model any) (reflect.Value, error) {
	if model == nil {
		switch expected.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			return reflect.Zero(expected), nil
		default:
			return reflect.Value{}, fmt.Errorf("nil model cannot be passed as %s", expected)
		}
	}
	value := reflect.ValueOf(model)
	if !value.Type().AssignableTo(expected) {
		return reflect.Value{}, fmt.Errorf("model of type %s is not assignable to %s", value.Type(), expected)
	}
	return value, nil
}
