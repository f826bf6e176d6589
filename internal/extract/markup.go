package extract

import (
	"strings"

	"a11yscan/internal/model"
)

// bindingEvent maps a template attribute name to the DOM event it binds,
// covering the dialect conventions this analyzer understands:
//
//	onclick            plain HTML inline handler
//	@click / v-on:click  Vue
//	on:click           Svelte
//	(click)            Angular
//
// ok is false for attributes that are not event bindings.
func bindingEvent(name string) (event string, ok bool) {
	name = strings.ToLower(name)
	switch {
	case strings.HasPrefix(name, "v-on:"):
		return strings.TrimPrefix(name, "v-on:"), true
	case strings.HasPrefix(name, "@"):
		return strings.TrimPrefix(name, "@"), true
	case strings.HasPrefix(name, "on:"):
		return strings.TrimPrefix(name, "on:"), true
	case strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"):
		return strings.TrimSuffix(strings.TrimPrefix(name, "("), ")"), true
	case strings.HasPrefix(name, "on") && len(name) > 2 && isAlpha(name[2:]):
		return name[2:], true
	}
	return "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// markupActions walks a parsed markup forest and converts binding-style
// attributes into action nodes:
//
//   - event binding attributes become eventHandler actions joined back to
//     the declaring element
//   - dynamic aria attribute bindings ([aria-x], :aria-x, bind:aria-x)
//     become ariaStateChange actions
//   - handler text containing preventDefault/stopPropagation additionally
//     yields eventPropagation actions
//   - ref="x" (Vue) and #x (Angular) declare the element's binding name
//
// Event modifiers are stripped from the event name (@keydown.enter binds
// keydown) but retained implicitly in the handler text.
func markupActions(f *model.Forest, file string, actions *model.ActionModel) {
	f.Walk(func(el *model.DOMElement) bool {
		if !el.IsElement() {
			return true
		}
		for _, attr := range el.Attributes {
			name := attr.Name

			// Template reference variables declare bindings, not events.
			if strings.HasPrefix(name, "#") && len(name) > 1 {
				el.SetMeta(model.MetaBinding, strings.TrimPrefix(name, "#"))
				continue
			}
			if strings.EqualFold(name, "ref") && attr.Value != "" {
				el.SetMeta(model.MetaBinding, attr.Value)
				continue
			}

			if event, ok := bindingEvent(name); ok {
				// Strip framework event modifiers: @keydown.enter and
				// on:keydown|preventDefault both bind keydown.
				if cut := strings.IndexAny(event, ".|"); cut > 0 {
					event = event[:cut]
				}
				ref := ensureBinding(el, file)
				actions.Append(model.NewEventHandler(ref, event, attr.Value, el.Location))
				for _, method := range []string{"preventDefault", "stopPropagation", "stopImmediatePropagation"} {
					if strings.Contains(attr.Value, method) {
						actions.Append(model.NewEventPropagation(ref, method, el.Location))
					}
				}
				// Vue/Svelte modifier shorthand for propagation control.
				lower := strings.ToLower(name)
				if strings.Contains(lower, ".prevent") || strings.Contains(lower, "|preventdefault") {
					actions.Append(model.NewEventPropagation(ref, "preventDefault", el.Location))
				}
				if strings.Contains(lower, ".stop") || strings.Contains(lower, "|stoppropagation") {
					actions.Append(model.NewEventPropagation(ref, "stopPropagation", el.Location))
				}
				continue
			}

			// Dynamic aria state bindings.
			if aria, ok := dynamicAriaAttr(name); ok {
				ref := ensureBinding(el, file)
				actions.Append(model.NewAriaStateChange(ref, aria, attr.Value, el.Location))
			}
		}
		return true
	})
}

// dynamicAriaAttr recognizes template syntaxes that mutate an aria
// attribute at runtime: Angular [aria-x] / [attr.aria-x], Vue :aria-x /
// v-bind:aria-x, Svelte bind:aria-x.
func dynamicAriaAttr(name string) (string, bool) {
	name = strings.ToLower(name)
	trimmed := name
	switch {
	case strings.HasPrefix(name, "[attr."):
		trimmed = strings.TrimSuffix(strings.TrimPrefix(name, "[attr."), "]")
	case strings.HasPrefix(name, "["):
		trimmed = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	case strings.HasPrefix(name, "v-bind:"):
		trimmed = strings.TrimPrefix(name, "v-bind:")
	case strings.HasPrefix(name, ":"):
		trimmed = strings.TrimPrefix(name, ":")
	case strings.HasPrefix(name, "bind:"):
		trimmed = strings.TrimPrefix(name, "bind:")
	default:
		return "", false
	}
	if strings.HasPrefix(trimmed, "aria-") {
		return trimmed, true
	}
	return "", false
}
