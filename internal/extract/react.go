package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// ReactExtractor handles JSX and TSX components. JSX trees contribute DOM
// fragments (lowercase intrinsic elements only; component tags are
// transparent containers), camelCase on* props contribute event handlers,
// and the surrounding imperative code is walked with the shared script
// walker so hooks-era patterns (refs, effects, createPortal) are covered.
type ReactExtractor struct{}

// NewReactExtractor creates a JSX/TSX extractor.
func NewReactExtractor() *ReactExtractor {
	return &ReactExtractor{}
}

// Dialect returns "react".
func (x *ReactExtractor) Dialect() string {
	return "react"
}

// SupportedExtensions returns JSX extensions.
func (x *ReactExtractor) SupportedExtensions() []string {
	return []string{".jsx", ".tsx"}
}

// Parse builds the component's DOM fragment and action model. The tsx
// grammar parses both dialects.
func (x *ReactExtractor) Parse(path string, content []byte) (*model.FileExtract, error) {
	start := time.Now()
	parser := sitter.NewParser()
	parser.SetLanguage(tsx.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	actions := model.NewActionModel(path)
	forest := model.NewForest()

	w := newJSWalker(path, content, actions)
	j := &jsxWalker{w: w, forest: forest, parent: model.NoNode}
	w.hook = j.hook
	w.walk(tree.RootNode())

	logging.ExtractDebug("react: parsed %s - %d nodes, %d actions in %v",
		filepath.Base(path), forest.Len(), actions.Len(), time.Since(start))
	return &model.FileExtract{File: path, DOM: forest, Actions: actions}, nil
}

// jsxWalker builds DOM fragments from JSX subtrees while delegating
// everything imperative back to the shared script walker.
type jsxWalker struct {
	w      *jsWalker
	forest *model.Forest
	parent model.NodeID
}

// hook intercepts JSX nodes during the script walk. Returning true claims
// the subtree.
func (j *jsxWalker) hook(n *sitter.Node) bool {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element":
		j.element(n)
		return true
	}
	return false
}

func (j *jsxWalker) element(n *sitter.Node) {
	selfClosing := n.Type() == "jsx_self_closing_element"
	var opening *sitter.Node
	if selfClosing {
		opening = n
	} else {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c.Type() == "jsx_opening_element" {
				opening = c
				break
			}
		}
	}
	if opening == nil {
		j.children(n)
		return
	}

	tag := j.w.text(opening.ChildByFieldName("name"))

	// Component tags (uppercase or member access) are not DOM elements;
	// their children still flow into the current parent.
	if tag == "" || !isIntrinsicTag(tag) {
		j.attrs(opening, model.NoNode)
		if !selfClosing {
			j.children(n)
		}
		return
	}

	id := j.forest.NewElement(strings.ToLower(tag), j.w.loc(n))
	if j.parent == model.NoNode {
		j.forest.AddRoot(id)
	} else {
		j.forest.AppendChild(j.parent, id)
	}

	j.attrs(opening, id)

	if !selfClosing {
		prev := j.parent
		j.parent = id
		j.children(n)
		j.parent = prev
	}
}

// isIntrinsicTag reports whether a JSX tag names a host element rather
// than a component.
func isIntrinsicTag(tag string) bool {
	c := tag[0]
	return c >= 'a' && c <= 'z' && !strings.Contains(tag, ".")
}

// attrs processes the opening element's jsx_attribute children. id is
// NoNode for component tags, in which case only side effects inside
// expression values are walked.
//
// Expression values can contain nested JSX, so walking them allocates
// arena nodes and may move the backing array. Element pointers are
// therefore re-fetched from the forest before every write instead of
// being held across the loop.
func (j *jsxWalker) attrs(opening *sitter.Node, id model.NodeID) {
	for i := 0; i < int(opening.NamedChildCount()); i++ {
		a := opening.NamedChild(i)
		if a.Type() != "jsx_attribute" {
			continue
		}
		name := ""
		var value *sitter.Node
		for k := 0; k < int(a.NamedChildCount()); k++ {
			c := a.NamedChild(k)
			switch c.Type() {
			case "property_identifier", "identifier", "jsx_namespace_name":
				name = j.w.text(c)
			default:
				value = c
			}
		}
		if name == "" {
			continue
		}

		if id == model.NoNode {
			// Component prop: walk expression values for nested JSX and calls.
			if value != nil {
				j.w.walk(value)
			}
			continue
		}

		switch {
		case isReactEventProp(name):
			event := strings.ToLower(name[2:])
			ref := ensureBinding(j.forest.Get(id), j.w.file)
			handler := j.attrValueText(value)
			j.w.append(model.NewEventHandler(ref, event, handler, j.w.loc(a)))
			for _, method := range []string{"preventDefault", "stopPropagation", "stopImmediatePropagation"} {
				if strings.Contains(handler, method) {
					j.w.append(model.NewEventPropagation(ref, method, j.w.loc(a)))
				}
			}

		case strings.HasPrefix(name, "aria-") && value != nil && value.Type() == "jsx_expression":
			// Literal aria attributes are static DOM state; expression values
			// are runtime mutations.
			el := j.forest.Get(id)
			ref := ensureBinding(el, j.w.file)
			j.w.append(model.NewAriaStateChange(ref, name, j.attrValueText(value), j.w.loc(a)))
			el.Attributes = append(el.Attributes, model.Attr{Name: name, Value: j.attrValueText(value)})

		case name == "ref":
			j.forest.Get(id).SetMeta(model.MetaBinding, j.attrValueText(value))

		default:
			attrName := name
			switch name {
			case "className":
				attrName = "class"
			case "htmlFor":
				attrName = "for"
			}
			el := j.forest.Get(id)
			el.Attributes = append(el.Attributes, model.Attr{Name: attrName, Value: j.attrValueText(value)})
			if value != nil && value.Type() == "jsx_expression" {
				j.w.walk(value)
			}
		}
	}
}

// isReactEventProp matches camelCase handler props: onClick, onKeyDown.
func isReactEventProp(name string) bool {
	return len(name) > 2 && strings.HasPrefix(name, "on") && name[2] >= 'A' && name[2] <= 'Z'
}

// attrValueText returns an attribute value as source text, unwrapping
// string quotes and jsx_expression braces.
func (j *jsxWalker) attrValueText(value *sitter.Node) string {
	if value == nil {
		return ""
	}
	s := j.w.text(value)
	switch value.Type() {
	case "string":
		if len(s) >= 2 {
			return s[1 : len(s)-1]
		}
	case "jsx_expression":
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}"))
	}
	return s
}

// children walks a jsx_element's content: nested elements recurse via the
// hook, text becomes text nodes, expressions are walked for side effects.
func (j *jsxWalker) children(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "jsx_opening_element", "jsx_closing_element":
			continue
		case "jsx_text":
			text := j.w.text(c)
			if strings.TrimSpace(text) == "" {
				continue
			}
			id := j.forest.NewText(text, j.w.loc(c))
			if j.parent == model.NoNode {
				j.forest.AddRoot(id)
			} else {
				j.forest.AppendChild(j.parent, id)
				j.forest.Get(j.parent).TextContent += text
			}
		default:
			j.w.walk(c)
		}
	}
}
