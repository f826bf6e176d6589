package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// JSExtractor handles imperative JavaScript and TypeScript sources. These
// files contribute no DOM fragment; everything they know about elements is
// expressed as action nodes referencing elements by id, selector or
// binding.
type JSExtractor struct{}

// NewJSExtractor creates a JavaScript/TypeScript extractor.
func NewJSExtractor() *JSExtractor {
	return &JSExtractor{}
}

// Dialect returns "javascript".
func (x *JSExtractor) Dialect() string {
	return "javascript"
}

// SupportedExtensions returns script extensions.
func (x *JSExtractor) SupportedExtensions() []string {
	return []string{".js", ".mjs", ".cjs", ".ts"}
}

// Parse extracts action nodes from a script file. The DOM in the returned
// extract is nil.
func (x *JSExtractor) Parse(path string, content []byte) (*model.FileExtract, error) {
	start := time.Now()
	actions := model.NewActionModel(path)
	if err := walkScript(path, content, 0, actions, nil); err != nil {
		return nil, err
	}
	logging.ExtractDebug("javascript: parsed %s - %d actions in %v",
		filepath.Base(path), actions.Len(), time.Since(start))
	return &model.FileExtract{File: path, Actions: actions}, nil
}

// grammarFor selects the tree-sitter grammar by extension.
func grammarFor(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".ts") {
		return typescript.GetLanguage()
	}
	return javascript.GetLanguage()
}

// walkScript parses content with the grammar matching path and feeds the
// tree through a jsWalker into actions. hook, when non-nil, is installed
// on the walker (React JSX interception).
func walkScript(path string, content []byte, lineOffset int, actions *model.ActionModel, install func(w *jsWalker)) error {
	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(path))

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	w := newJSWalker(path, content, actions)
	w.lineOffset = lineOffset
	if install != nil {
		install(w)
	}
	w.walk(tree.RootNode())
	return nil
}
