// Package render projects validated component records into output
// representations. Renderers are pure: the output is a deterministic function
// of the record, with no side effects.
package render

import (
	"fmt"
	"time"

	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/util/metrics"
)

// Renderer defines the interface for output format plugins.
type Renderer interface {
	// Name used to differentiate behavior across renderer implementations.
	Name() string

	// Render projects one validated record into the output format.
	Render(meta *components.Metadata) ([]byte, error)
}

// RendererConstructor must be implemented by each Renderer.
// It provides a basic no-arg constructor for instances of a Renderer.
type RendererConstructor interface {
	// New should return an instantiation of a Renderer.
	New() Renderer
}

// RendererConstructorFunc is Constructor implementation for renderers
type RendererConstructorFunc func() Renderer

// New initializes a renderer constructor
func (f RendererConstructorFunc) New() Renderer {
	return f()
}

// Renderers are the constructors to build renderer plugins.
var Renderers = make(map[string]RendererConstructor)

// Register is used to register RendererConstructor implementations. This
// mechanism allows for loose coupling between the configuration and the
// implementation. It is extremely similar to the way sql.DB drivers are
// configured and used.
func Register(name string, constructor RendererConstructor) {
	Renderers[name] = constructor
}

// RendererByName returns a Renderer constructor for the name provided
func RendererByName(name string) (RendererConstructor, error) {
	constructor, ok := Renderers[name]
	if !ok {
		return nil, fmt.Errorf("no Renderer Constructor for %s", name)
	}

	return constructor, nil
}

// Render looks up the named format and projects the record through it.
func Render(meta *components.Metadata, format string) ([]byte, error) {
	constructor, err := RendererByName(format)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.RenderTimeSeconds.Observe(time.Since(start).Seconds())
	}()
	return constructor.New().Render(meta)
}
