package model

import "strings"

// ActionModel is the ordered collection of action nodes extracted from one
// source file or fragment, with file-local query operations. In degraded
// single-file mode (no DOM forest, no cross-file join) detectors query an
// ActionModel directly; results from that path can be false positives and
// callers must surface the degradation.
type ActionModel struct {
	File  string
	nodes []ActionNode
}

// NewActionModel returns an empty model for a file.
func NewActionModel(file string) *ActionModel {
	return &ActionModel{File: file}
}

// Append adds a node, stamping the model's file onto nodes whose location
// lacks one.
func (m *ActionModel) Append(node ActionNode) {
	if node.Location.File == "" || node.Location.File == "unknown" {
		if m.File != "" {
			node.Location.File = m.File
			node.Location = node.Location.Normalize()
		}
	}
	m.nodes = append(m.nodes, node)
}

// All returns the nodes in extraction order. The returned slice is shared;
// callers must not mutate it.
func (m *ActionModel) All() []ActionNode {
	return m.nodes
}

// Len returns the number of nodes.
func (m *ActionModel) Len() int {
	return len(m.nodes)
}

// FindByEvent returns all eventHandler nodes for the given event type.
func (m *ActionModel) FindByEvent(event string) []ActionNode {
	var out []ActionNode
	for _, n := range m.nodes {
		if n.Type == ActionEventHandler && n.Event == event {
			out = append(out, n)
		}
	}
	return out
}

// FindBySelector returns all nodes whose reference uses the given selector.
// A "#id" selector also matches nodes referenced by bare id.
func (m *ActionModel) FindBySelector(selector string) []ActionNode {
	id := ""
	if strings.HasPrefix(selector, "#") {
		id = strings.TrimPrefix(selector, "#")
	}
	var out []ActionNode
	for _, n := range m.nodes {
		if n.Element.Selector == selector || (id != "" && n.Element.ID == id) {
			out = append(out, n)
		}
	}
	return out
}

// FileExtract is the per-file unit handed to the merge engine: the file
// path, an optional DOM fragment forest, and the file's action model. This
// tuple is the sole input to Merge.
type FileExtract struct {
	File    string
	DOM     *Forest
	Actions *ActionModel
}
