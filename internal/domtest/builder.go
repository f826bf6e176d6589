// Package domtest builds deterministic DOM fragments for tests without
// going through the per-dialect extractors. Locations are synthesized from
// a monotonically increasing line counter so fixtures are reproducible.
package domtest

import "a11yscan/internal/model"

// Builder assembles one file's forest with a cursor-style API:
// Open pushes an element, Text adds a text child, Close pops.
type Builder struct {
	file   string
	forest *model.Forest
	stack  []model.NodeID
	line   int
}

// New returns a builder for the given fixture file name.
func New(file string) *Builder {
	return &Builder{file: file, forest: model.NewForest(), line: 0}
}

func (b *Builder) nextLoc() model.SourceLocation {
	b.line++
	return model.SourceLocation{File: b.file, Line: b.line, Column: 1}
}

// Open creates an element and descends into it. Attrs are name/value
// pairs; an odd trailing name is ignored.
func (b *Builder) Open(tag string, attrs ...string) *Builder {
	id := b.forest.NewElement(tag, b.nextLoc())
	el := b.forest.Get(id)
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attributes = append(el.Attributes, model.Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	if len(b.stack) == 0 {
		b.forest.AddRoot(id)
	} else {
		b.forest.AppendChild(b.stack[len(b.stack)-1], id)
	}
	b.stack = append(b.stack, id)
	return b
}

// El creates a leaf element (Open immediately followed by Close).
func (b *Builder) El(tag string, attrs ...string) *Builder {
	return b.Open(tag, attrs...).Close()
}

// Text adds a text node under the current element.
func (b *Builder) Text(s string) *Builder {
	id := b.forest.NewText(s, b.nextLoc())
	if len(b.stack) > 0 {
		b.forest.AppendChild(b.stack[len(b.stack)-1], id)
		cur := b.forest.Get(b.stack[len(b.stack)-1])
		cur.TextContent += s
	} else {
		b.forest.AddRoot(id)
	}
	return b
}

// Meta sets a metadata key on the current element.
func (b *Builder) Meta(key, value string) *Builder {
	if len(b.stack) > 0 {
		b.forest.Get(b.stack[len(b.stack)-1]).SetMeta(key, value)
	}
	return b
}

// Close pops the current element.
func (b *Builder) Close() *Builder {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Forest returns the built forest.
func (b *Builder) Forest() *model.Forest {
	return b.forest
}

// Current returns the id of the element being built, or model.NoNode.
func (b *Builder) Current() model.NodeID {
	if len(b.stack) == 0 {
		return model.NoNode
	}
	return b.stack[len(b.stack)-1]
}

// Extract wraps the forest (and an optional action model) as the
// FileExtract tuple the merge engine consumes.
func (b *Builder) Extract(actions *model.ActionModel) model.FileExtract {
	if actions == nil {
		actions = model.NewActionModel(b.file)
	}
	return model.FileExtract{File: b.file, DOM: b.forest, Actions: actions}
}

// Actions builds an action model for a file with the given nodes.
func Actions(file string, nodes ...model.ActionNode) *model.ActionModel {
	m := model.NewActionModel(file)
	for _, n := range nodes {
		m.Append(n)
	}
	return m
}

// ActionsOnly wraps a DOM-less action model as a FileExtract (degraded
// single-file inputs).
func ActionsOnly(file string, nodes ...model.ActionNode) model.FileExtract {
	return model.FileExtract{File: file, Actions: Actions(file, nodes...)}
}
