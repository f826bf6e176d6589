package model

// ActionType is the discriminant of the ActionNode tagged union.
type ActionType string

const (
	ActionEventHandler     ActionType = "eventHandler"
	ActionDOMManipulation  ActionType = "domManipulation"
	ActionAriaStateChange  ActionType = "ariaStateChange"
	ActionFocusChange      ActionType = "focusChange"
	ActionPortal           ActionType = "portal"
	ActionEventPropagation ActionType = "eventPropagation"
)

// Timing records when an action fires relative to extraction scope.
type Timing string

const (
	TimingImmediate Timing = "immediate"
	TimingDeferred  Timing = "deferred"
)

// ManipulationDetail is the payload of a domManipulation action: a direct
// DOM mutation such as setAttribute, classList.add, or innerHTML
// assignment.
type ManipulationDetail struct {
	// Kind names the mutation ("setAttribute", "removeAttribute",
	// "classList.add", "innerHTML", ...).
	Kind string `json:"kind"`
	// Target is the attribute or property being mutated, when applicable.
	Target string `json:"target,omitempty"`
	// Value is the new value, when statically known.
	Value string `json:"value,omitempty"`
}

// AriaDetail is the payload of an ariaStateChange action.
type AriaDetail struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value,omitempty"`
}

// FocusDetail is the payload of a focusChange action. HasCleanup is
// extractor-supplied pass-through data (focus restored on teardown); the
// merge engine never interprets it.
type FocusDetail struct {
	// Direction is "gain" (focus()) or "loss" (blur()).
	Direction  string `json:"direction"`
	HasCleanup bool   `json:"hasCleanup,omitempty"`
}

// PortalDetail is the payload of a portal action: content rendered outside
// the element's own subtree.
type PortalDetail struct {
	// Container is the source text of the portal target expression.
	Container string `json:"container"`
}

// PropagationDetail is the payload of an eventPropagation action.
type PropagationDetail struct {
	// Method is "preventDefault", "stopPropagation", or
	// "stopImmediatePropagation".
	Method string `json:"method"`
}

// ActionNode is one unit of imperative UI behavior extracted from source
// code, independent of the DOM element it targets. It is a tagged union:
// Type selects which payload field is meaningful; the others are nil.
type ActionNode struct {
	Type     ActionType       `json:"type"`
	Element  ElementReference `json:"element"`
	Event    string           `json:"event,omitempty"`
	Handler  string           `json:"handler,omitempty"`
	Location SourceLocation   `json:"location"`
	Timing   Timing           `json:"timing,omitempty"`

	Manipulation *ManipulationDetail `json:"manipulation,omitempty"`
	Aria         *AriaDetail         `json:"aria,omitempty"`
	Focus        *FocusDetail        `json:"focus,omitempty"`
	Portal       *PortalDetail       `json:"portal,omitempty"`
	Propagation  *PropagationDetail  `json:"propagation,omitempty"`
}

// KeyboardEvents are the event types that count as keyboard handling for
// ElementContext.HasKeyboardHandler.
var KeyboardEvents = map[string]bool{
	"keydown":  true,
	"keypress": true,
	"keyup":    true,
}

// IsClickHandler reports whether the node is a click event handler.
func (a ActionNode) IsClickHandler() bool {
	return a.Type == ActionEventHandler && a.Event == "click"
}

// IsKeyboardHandler reports whether the node handles a keyboard event.
func (a ActionNode) IsKeyboardHandler() bool {
	return a.Type == ActionEventHandler && KeyboardEvents[a.Event]
}

// NewEventHandler builds an eventHandler action.
func NewEventHandler(ref ElementReference, event, handler string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:     ActionEventHandler,
		Element:  ref,
		Event:    event,
		Handler:  handler,
		Location: loc.Normalize(),
		Timing:   TimingImmediate,
	}
}

// NewDOMManipulation builds a domManipulation action.
func NewDOMManipulation(ref ElementReference, kind, target, value string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:         ActionDOMManipulation,
		Element:      ref,
		Location:     loc.Normalize(),
		Timing:       TimingImmediate,
		Manipulation: &ManipulationDetail{Kind: kind, Target: target, Value: value},
	}
}

// NewAriaStateChange builds an ariaStateChange action.
func NewAriaStateChange(ref ElementReference, attribute, value string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:     ActionAriaStateChange,
		Element:  ref,
		Location: loc.Normalize(),
		Timing:   TimingImmediate,
		Aria:     &AriaDetail{Attribute: attribute, Value: value},
	}
}

// NewFocusChange builds a focusChange action.
func NewFocusChange(ref ElementReference, direction string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:     ActionFocusChange,
		Element:  ref,
		Location: loc.Normalize(),
		Timing:   TimingImmediate,
		Focus:    &FocusDetail{Direction: direction},
	}
}

// NewPortal builds a portal action.
func NewPortal(ref ElementReference, container string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:     ActionPortal,
		Element:  ref,
		Location: loc.Normalize(),
		Timing:   TimingImmediate,
		Portal:   &PortalDetail{Container: container},
	}
}

// NewEventPropagation builds an eventPropagation action.
func NewEventPropagation(ref ElementReference, method string, loc SourceLocation) ActionNode {
	return ActionNode{
		Type:        ActionEventPropagation,
		Element:     ref,
		Location:    loc.Normalize(),
		Timing:      TimingImmediate,
		Propagation: &PropagationDetail{Method: method},
	}
}
