// Package pongo renders views with pongo2 templates.
package pongo

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/a-peyrard/autopresenter/option"
	"github.com/flosch/pongo2/v6"
)

type (
	// Engine is a view.Engine backed by a pongo2 template set. Parsed templates are cached.
	Engine struct {
		set       *pongo2.TemplateSet
		extension string

		mu        sync.RWMutex
		templates map[string]*pongo2.Template
	}

	Options struct {
		name      string
		baseDir   string
		files     fs.FS
		extension string
		globals   map[string]any
	}
)

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) option.Option[Options] {
	return func(opts *Options) {
		opts.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from a file system, after the base directory if both are given.
func WithFS(files fs.FS) option.Option[Options] {
	return func(opts *Options) {
		opts.files = files
	}
}

// WithExtension sets the extension appended to view names, ".html" by default. Blank values are ignored.
func WithExtension(extension string) option.Option[Options] {
	return func(opts *Options) {
		extension = strings.TrimSpace(extension)
		if extension == "" {
			return
		}
		if !strings.HasPrefix(extension, ".") {
			extension = "." + extension
		}
		opts.extension = extension
	}
}

// WithGlobals makes bindings available to every template of the engine.
func WithGlobals(globals map[string]any) option.Option[Options] {
	return func(opts *Options) {
		if opts.globals == nil {
			opts.globals = make(map[string]any, len(globals))
		}
		for name, value := range globals {
			opts.globals[name] = value
		}
	}
}

func New(opts ...option.Option[Options]) (*Engine, error) {
	options := option.Build(&Options{name: "autopresenter", extension: ".html"}, opts...)

	var loaders []pongo2.TemplateLoader
	if options.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(options.baseDir)
		if err != nil {
			return nil, fmt.Errorf("unable to load templates from %q:\n\t%w", options.baseDir, err)
		}
		loaders = append(loaders, loader)
	}
	if options.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(options.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("a template directory or file system must be given")
	}

	set := pongo2.NewSet(options.name, loaders...)
	if len(options.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(pongo2.Context(options.globals))
	}

	return &Engine{
		set:       set,
		extension: options.extension,
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// MustNew is New panicking on errors.
func MustNew(opts ...option.Option[Options]) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Render renders the template of the named view, the extension is appended when missing.
func (e *Engine) Render(w io.Writer, name string, data map[string]any) error {
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tpl, err := e.template(path)
	if err != nil {
		return err
	}
	if err := tpl.ExecuteWriter(pongo2.Context(data), w); err != nil {
		return fmt.Errorf("unable to execute template %q:\n\t%w", path, err)
	}
	return nil
}

// RenderString parses and renders an inline template.
func (e *Engine) RenderString(w io.Writer, source string, data map[string]any) error {
	tpl, err := e.set.FromString(source)
	if err != nil {
		return fmt.Errorf("unable to parse inline template:\n\t%w", err)
	}
	if err := tpl.ExecuteWriter(pongo2.Context(data), w); err != nil {
		return fmt.Errorf("unable to execute inline template:\n\t%w", err)
	}
	return nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tpl, found := e.templates[path]
	e.mu.RUnlock()
	if found {
		return tpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, found = e.templates[path]; found {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to load template %q:\n\t%w", path, err)
	}
	e.templates[path] = tpl
	return tpl, nil
}
