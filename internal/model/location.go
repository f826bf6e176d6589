// Package model provides the shared data model for a11yscan: source
// locations, DOM elements and forests, element references, and action nodes.
// This package exists to break import cycles between extract, resolve, and
// merge. Types in this package are foundational data structures with no
// complex dependencies.
package model

import "fmt"

// SourceLocation records where a node or element came from.
// It is provenance for diagnostics only and is never used for identity:
// two nodes with identical locations are independent entities.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// UnknownLocation is the sentinel used when an extractor supplied a
// malformed or missing location. Merge never fails on bad provenance.
func UnknownLocation() SourceLocation {
	return SourceLocation{File: "unknown", Line: 1, Column: 1}
}

// Normalize returns the location itself when well-formed, or the unknown
// sentinel when the file is empty or line/column are non-positive.
func (l SourceLocation) Normalize() SourceLocation {
	if l.File == "" || l.Line < 1 || l.Column < 1 {
		return UnknownLocation()
	}
	return l
}

// IsUnknown reports whether the location is the sentinel.
func (l SourceLocation) IsUnknown() bool {
	return l == UnknownLocation()
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
