package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"a11yscan/internal/model"
)

// jsWalker extracts action nodes from a JavaScript/TypeScript syntax tree.
// It tracks a nested-scope symbol table for element bindings (const btn =
// document.getElementById("go")) and a deferred flag for code scheduled
// through setTimeout-style APIs. A hook lets the React walker intercept
// JSX nodes while sharing all the imperative extraction logic.
type jsWalker struct {
	file       string
	content    []byte
	lineOffset int
	actions    *model.ActionModel
	scope      *Scope
	deferred   bool

	// hook, when set, gets first look at every node; returning true means
	// the hook consumed the node (including its subtree).
	hook func(n *sitter.Node) bool
}

func newJSWalker(file string, content []byte, actions *model.ActionModel) *jsWalker {
	return &jsWalker{
		file:    file,
		content: content,
		actions: actions,
		scope:   NewScope(),
	}
}

func (w *jsWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(w.content[n.StartByte():n.EndByte()])
}

func (w *jsWalker) loc(n *sitter.Node) model.SourceLocation {
	return model.SourceLocation{
		File:   w.file,
		Line:   int(n.StartPoint().Row) + 1 + w.lineOffset,
		Column: int(n.StartPoint().Column) + 1,
	}
}

// append adds a node, downgrading timing when inside deferred scheduling.
func (w *jsWalker) append(n model.ActionNode) {
	if w.deferred {
		n.Timing = model.TimingDeferred
	}
	w.actions.Append(n)
}

func (w *jsWalker) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	if w.hook != nil && w.hook(n) {
		return
	}

	switch n.Type() {
	case "statement_block", "function_declaration", "function", "function_expression",
		"arrow_function", "method_definition", "generator_function_declaration":
		w.scope = w.scope.Push()
		w.walkChildren(n)
		w.scope = w.scope.Pop()
		return

	case "variable_declarator":
		w.handleDeclarator(n)

	case "assignment_expression":
		w.handleAssignment(n)

	case "call_expression":
		if w.handleCall(n) {
			return
		}
	}

	w.walkChildren(n)
}

func (w *jsWalker) walkChildren(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		w.walk(n.NamedChild(i))
	}
}

// handleDeclarator records element bindings in the symbol table.
func (w *jsWalker) handleDeclarator(n *sitter.Node) {
	name := n.ChildByFieldName("name")
	value := n.ChildByFieldName("value")
	if name == nil || value == nil || name.Type() != "identifier" {
		return
	}
	if ref, ok := w.elementQuery(value); ok {
		w.scope.Declare(w.text(name), ref)
	}
}

// handleAssignment recognizes property writes on elements:
// el.onclick = fn, el.innerHTML = html, el.textContent = s.
func (w *jsWalker) handleAssignment(n *sitter.Node) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || left.Type() != "member_expression" {
		return
	}
	obj := left.ChildByFieldName("object")
	prop := w.text(left.ChildByFieldName("property"))

	switch {
	case strings.HasPrefix(prop, "on") && len(prop) > 2 && isAlpha(strings.ToLower(prop[2:])):
		ref := w.refFromExpr(obj)
		w.append(model.NewEventHandler(ref, strings.ToLower(prop[2:]), w.text(right), w.loc(n)))
	case prop == "innerHTML" || prop == "outerHTML" || prop == "textContent" || prop == "innerText":
		ref := w.refFromExpr(obj)
		w.append(model.NewDOMManipulation(ref, prop, "", w.text(right), w.loc(n)))
	case prop == "tabIndex":
		ref := w.refFromExpr(obj)
		w.append(model.NewDOMManipulation(ref, "tabIndex", "tabindex", w.text(right), w.loc(n)))
	}
}

// handleCall recognizes the imperative UI patterns. Returns true when the
// call was consumed (its subtree should not be walked again), which is the
// case for deferral wrappers that re-walk their callback arguments.
func (w *jsWalker) handleCall(n *sitter.Node) bool {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil {
		return false
	}

	// setTimeout(fn, ...), setInterval, requestAnimationFrame: the callback
	// body runs deferred.
	if fn.Type() == "identifier" {
		switch w.text(fn) {
		case "setTimeout", "setInterval", "requestAnimationFrame", "queueMicrotask":
			if args == nil {
				return true
			}
			prev := w.deferred
			w.deferred = true
			w.walkChildren(args)
			w.deferred = prev
			return true
		case "createPortal":
			w.handlePortal(n, args)
		}
		return false
	}

	if fn.Type() != "member_expression" {
		return false
	}
	obj := fn.ChildByFieldName("object")
	prop := w.text(fn.ChildByFieldName("property"))

	switch prop {
	case "addEventListener":
		event, _ := w.stringArg(args, 0)
		if event == "" {
			return false
		}
		handler := w.argText(args, 1)
		w.append(model.NewEventHandler(w.refFromExpr(obj), event, handler, w.loc(n)))

	case "removeEventListener":
		event, _ := w.stringArg(args, 0)
		w.append(model.NewDOMManipulation(w.refFromExpr(obj), "removeEventListener", event, "", w.loc(n)))

	case "setAttribute":
		attr, ok := w.stringArg(args, 0)
		if !ok {
			return false
		}
		value := w.argText(args, 1)
		if v, lit := w.stringArg(args, 1); lit {
			value = v
		}
		if strings.HasPrefix(attr, "aria-") {
			w.append(model.NewAriaStateChange(w.refFromExpr(obj), attr, value, w.loc(n)))
		} else {
			w.append(model.NewDOMManipulation(w.refFromExpr(obj), "setAttribute", attr, value, w.loc(n)))
		}

	case "removeAttribute", "toggleAttribute":
		attr, ok := w.stringArg(args, 0)
		if !ok {
			return false
		}
		if strings.HasPrefix(attr, "aria-") {
			w.append(model.NewAriaStateChange(w.refFromExpr(obj), attr, "", w.loc(n)))
		} else {
			w.append(model.NewDOMManipulation(w.refFromExpr(obj), prop, attr, "", w.loc(n)))
		}

	case "focus":
		w.append(model.NewFocusChange(w.refFromExpr(obj), "gain", w.loc(n)))

	case "blur":
		w.append(model.NewFocusChange(w.refFromExpr(obj), "loss", w.loc(n)))

	case "preventDefault", "stopPropagation", "stopImmediatePropagation":
		// The receiver is the event object; its name is an opaque binding
		// that deliberately joins to nothing.
		w.append(model.NewEventPropagation(model.ElementReference{Binding: "event:" + w.text(obj)}, prop, w.loc(n)))

	case "add", "remove", "toggle", "replace":
		// classList mutation: obj is someElement.classList.
		if obj != nil && obj.Type() == "member_expression" &&
			w.text(obj.ChildByFieldName("property")) == "classList" {
			target, _ := w.stringArg(args, 0)
			ref := w.refFromExpr(obj.ChildByFieldName("object"))
			w.append(model.NewDOMManipulation(ref, "classList."+prop, target, "", w.loc(n)))
		}

	case "createPortal":
		// ReactDOM.createPortal(children, container)
		w.handlePortal(n, args)
	}

	return false
}

func (w *jsWalker) handlePortal(n *sitter.Node, args *sitter.Node) {
	if args == nil || int(args.NamedChildCount()) < 2 {
		return
	}
	container := args.NamedChild(1)
	ref := model.ElementReference{Binding: w.text(container)}
	if r, ok := w.elementQuery(container); ok {
		ref = r
	} else if container.Type() == "identifier" {
		if r, found := w.scope.Lookup(w.text(container)); found {
			ref = r
		}
	}
	w.append(model.NewPortal(ref, w.text(container), w.loc(n)))
}

// elementQuery recognizes expressions that select a DOM element and
// returns the equivalent reference: document.getElementById("x"),
// querySelector("sel"), querySelectorAll("sel"), closest("sel").
func (w *jsWalker) elementQuery(n *sitter.Node) (model.ElementReference, bool) {
	if n == nil {
		return model.ElementReference{}, false
	}
	// Unwrap grouping and TypeScript cast wrappers.
	switch n.Type() {
	case "parenthesized_expression", "as_expression", "non_null_expression", "satisfies_expression":
		if n.NamedChildCount() > 0 {
			return w.elementQuery(n.NamedChild(0))
		}
	}
	if n.Type() != "call_expression" {
		return model.ElementReference{}, false
	}
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil || fn.Type() != "member_expression" {
		return model.ElementReference{}, false
	}
	arg, ok := w.stringArg(args, 0)
	if !ok {
		return model.ElementReference{}, false
	}
	switch w.text(fn.ChildByFieldName("property")) {
	case "getElementById":
		return model.ElementReference{ID: arg}, true
	case "querySelector", "querySelectorAll", "closest":
		return model.ElementReference{Selector: arg}, true
	}
	return model.ElementReference{}, false
}

// refFromExpr derives an element reference for an arbitrary receiver
// expression: inline query calls resolve directly, identifiers resolve
// through the scope chain, everything else degrades to an opaque binding
// (which joins to nothing unless an extractor declared it).
func (w *jsWalker) refFromExpr(n *sitter.Node) model.ElementReference {
	if n == nil {
		return model.ElementReference{Binding: "unknown"}
	}
	if ref, ok := w.elementQuery(n); ok {
		return ref
	}
	switch n.Type() {
	case "identifier":
		name := w.text(n)
		if ref, ok := w.scope.Lookup(name); ok {
			return ref
		}
		return model.ElementReference{Binding: name}
	case "member_expression":
		// document.body and friends select by tag.
		if w.text(n.ChildByFieldName("object")) == "document" {
			prop := w.text(n.ChildByFieldName("property"))
			switch prop {
			case "body", "head", "documentElement":
				if prop == "documentElement" {
					prop = "html"
				}
				return model.ElementReference{Selector: prop}
			}
		}
		return model.ElementReference{Binding: w.text(n)}
	case "this":
		return model.ElementReference{Binding: "this"}
	}
	return model.ElementReference{Binding: strings.TrimSpace(w.text(n))}
}

// stringArg returns the i-th argument when it is a string or template
// literal, unquoted.
func (w *jsWalker) stringArg(args *sitter.Node, i int) (string, bool) {
	if args == nil || i >= int(args.NamedChildCount()) {
		return "", false
	}
	arg := args.NamedChild(i)
	switch arg.Type() {
	case "string", "template_string":
		s := w.text(arg)
		if len(s) >= 2 {
			return s[1 : len(s)-1], true
		}
		return "", true
	}
	return "", false
}

// argText returns the raw source of the i-th argument.
func (w *jsWalker) argText(args *sitter.Node, i int) string {
	if args == nil || i >= int(args.NamedChildCount()) {
		return ""
	}
	return w.text(args.NamedChild(i))
}
