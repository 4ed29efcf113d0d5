// Package all registers every built-in renderer.
package all

import (
	// Renderers are registered by their init() functions.
	_ "github.com/GeorgeHahn/vector/render/jsonschema"
	_ "github.com/GeorgeHahn/vector/render/markdown"
)
