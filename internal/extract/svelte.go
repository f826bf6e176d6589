package extract

import (
	"path/filepath"
	"time"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// SvelteExtractor handles Svelte components. Unlike Vue there is no
// template wrapper: the markup is the file minus the script and style
// blocks, so those blocks are blanked (preserving newlines) and the
// remainder parsed as markup with on:event bindings.
type SvelteExtractor struct{}

// NewSvelteExtractor creates a Svelte component extractor.
func NewSvelteExtractor() *SvelteExtractor {
	return &SvelteExtractor{}
}

// Dialect returns "svelte".
func (x *SvelteExtractor) Dialect() string {
	return "svelte"
}

// SupportedExtensions returns Svelte extensions.
func (x *SvelteExtractor) SupportedExtensions() []string {
	return []string{".svelte"}
}

// Parse extracts the component markup and the script block's actions.
func (x *SvelteExtractor) Parse(path string, content []byte) (*model.FileExtract, error) {
	start := time.Now()
	actions := model.NewActionModel(path)

	markup := append([]byte(nil), content...)
	scriptStart, scriptEnd, hasScript := findBlock(content, "script")
	if hasScript {
		// Blank the whole element including tags so the markup parse never
		// sees a <script> node.
		openStart := tagOpenStart(content, scriptStart)
		closeEnd := tagCloseEnd(content, scriptEnd)
		markup = blankRange(markup, openStart, closeEnd)
	}
	styleStart, styleEnd, hasStyle := findBlock(markup, "style")
	if hasStyle {
		markup = blankRange(markup, tagOpenStart(markup, styleStart), tagCloseEnd(markup, styleEnd))
	}

	forest := parseMarkup(path, markup, 0)
	markupActions(forest, path, actions)

	if hasStyle {
		for _, root := range forest.Roots() {
			forest.Get(root).SetMeta(model.MetaScopedStyle, "true")
		}
	}

	if hasScript {
		script := blankRange(content, 0, scriptStart)
		script = blankRange(script, scriptEnd, len(script))
		if err := walkScript(path, script, 0, actions, nil); err != nil {
			return nil, err
		}
	}

	logging.ExtractDebug("svelte: parsed %s - %d nodes, %d actions in %v",
		filepath.Base(path), forest.Len(), actions.Len(), time.Since(start))
	return &model.FileExtract{File: path, DOM: forest, Actions: actions}, nil
}

// tagOpenStart walks back from an inner-content offset to the '<' that
// opened the enclosing tag.
func tagOpenStart(content []byte, innerStart int) int {
	for i := innerStart - 1; i >= 0; i-- {
		if content[i] == '<' {
			return i
		}
	}
	return 0
}

// tagCloseEnd walks forward from an inner-content end offset past the
// closing tag's '>'.
func tagCloseEnd(content []byte, innerEnd int) int {
	for i := innerEnd; i < len(content); i++ {
		if content[i] == '>' {
			return i + 1
		}
	}
	return len(content)
}
