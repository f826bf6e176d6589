package extract

import (
	"path/filepath"
	"time"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// VueExtractor handles single-file components. The three SFC blocks are
// split by byte range and analyzed independently: the template block as
// markup with Vue binding conventions, the script block with the shared
// script walker, the style block only for its scoping signal. Line numbers
// stay true to the original file via offsets.
type VueExtractor struct{}

// NewVueExtractor creates a Vue SFC extractor.
func NewVueExtractor() *VueExtractor {
	return &VueExtractor{}
}

// Dialect returns "vue".
func (x *VueExtractor) Dialect() string {
	return "vue"
}

// SupportedExtensions returns SFC extensions.
func (x *VueExtractor) SupportedExtensions() []string {
	return []string{".vue"}
}

// Parse extracts the template's DOM fragment and the actions from both
// the template bindings and the script block.
func (x *VueExtractor) Parse(path string, content []byte) (*model.FileExtract, error) {
	start := time.Now()
	actions := model.NewActionModel(path)
	forest := model.NewForest()

	if ts, te, ok := findBlock(content, "template"); ok {
		forest = parseMarkup(path, content[ts:te], lineOffsetAt(content, ts))
		markupActions(forest, path, actions)
	}

	if _, _, ok := findBlock(content, "style"); ok {
		// Component styles scope to the template subtree, which counts as
		// external CSS for the document context.
		for _, root := range forest.Roots() {
			forest.Get(root).SetMeta(model.MetaScopedStyle, "true")
		}
	}

	if ss, se, ok := findBlock(content, "script"); ok {
		script := blankRange(content, 0, ss)
		script = blankRange(script, se, len(script))
		if err := walkScript(path, script, 0, actions, nil); err != nil {
			return nil, err
		}
	}

	logging.ExtractDebug("vue: parsed %s - %d nodes, %d actions in %v",
		filepath.Base(path), forest.Len(), actions.Len(), time.Since(start))
	return &model.FileExtract{File: path, DOM: forest, Actions: actions}, nil
}
