package extract

import (
	"path/filepath"
	"time"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// HTMLExtractor handles plain HTML documents and fragments. Angular
// component templates are plain HTML files with (event) bindings and #var
// reference variables, so they route here as well.
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTML/Angular-template extractor.
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Dialect returns "html".
func (x *HTMLExtractor) Dialect() string {
	return "html"
}

// SupportedExtensions returns HTML extensions.
func (x *HTMLExtractor) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

// Parse builds the DOM forest for the file and converts inline and
// template event bindings into action nodes.
func (x *HTMLExtractor) Parse(path string, content []byte) (*model.FileExtract, error) {
	start := time.Now()
	forest := parseMarkup(path, content, 0)
	actions := model.NewActionModel(path)
	markupActions(forest, path, actions)

	logging.ExtractDebug("html: parsed %s - %d nodes, %d actions in %v",
		filepath.Base(path), forest.Len(), actions.Len(), time.Since(start))
	return &model.FileExtract{File: path, DOM: forest, Actions: actions}, nil
}
