// Package extract turns framework source files into per-file DOM fragments
// and action models. Each dialect (plain HTML, JavaScript, React JSX/TSX,
// Vue SFC, Svelte) has its own Extractor emitting the unified FileExtract
// representation the merge engine consumes; Angular templates are covered
// by the HTML extractor's binding conventions ((event), #var).
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// Extractor defines the contract for dialect-specific extractors. Parse
// accepts raw file bytes so in-memory content can be analyzed without
// touching disk.
type Extractor interface {
	// Parse extracts the DOM fragment forest and action model for one file.
	// The returned extract's DOM may be nil for purely imperative sources.
	Parse(path string, content []byte) (*model.FileExtract, error)

	// SupportedExtensions returns the extensions this extractor handles,
	// leading dot included. The first is the canonical extension.
	SupportedExtensions() []string

	// Dialect returns a short lowercase identifier ("html", "javascript",
	// "react", "vue", "svelte").
	Dialect() string
}

// Factory routes parse requests to the extractor registered for a file's
// extension. Extractors are passed in explicitly; there is no module-level
// registry.
type Factory struct {
	mu         sync.RWMutex
	extractors map[string]Extractor // extension -> extractor
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{extractors: make(map[string]Extractor)}
}

// Register adds an extractor for its supported extensions, replacing any
// previous registration.
func (f *Factory) Register(x Extractor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ext := range x.SupportedExtensions() {
		ext = normalizeExtension(ext)
		logging.ExtractDebug("factory: registering %s extractor for %s", x.Dialect(), ext)
		f.extractors[ext] = x
	}
}

// ForPath returns the extractor for a file path, or nil.
func (f *Factory) ForPath(path string) Extractor {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.extractors[normalizeExtension(filepath.Ext(path))]
}

// HasExtractor reports whether the path's extension is handled.
func (f *Factory) HasExtractor(path string) bool {
	return f.ForPath(path) != nil
}

// Parse extracts one file using the appropriate extractor.
func (f *Factory) Parse(path string, content []byte) (*model.FileExtract, error) {
	x := f.ForPath(path)
	if x == nil {
		return nil, fmt.Errorf("no extractor registered for extension: %s", filepath.Ext(path))
	}
	return x.Parse(path, content)
}

// SupportedExtensions returns all registered extensions.
func (f *Factory) SupportedExtensions() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	exts := make([]string, 0, len(f.extractors))
	for ext := range f.extractors {
		exts = append(exts, ext)
	}
	return exts
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DefaultFactory creates a Factory with all built-in extractors registered.
func DefaultFactory() *Factory {
	f := NewFactory()
	f.Register(NewHTMLExtractor())
	f.Register(NewJSExtractor())
	f.Register(NewReactExtractor())
	f.Register(NewVueExtractor())
	f.Register(NewSvelteExtractor())
	return f
}

// ensureBinding guarantees an element carries a binding name so actions
// discovered on the element itself (inline handlers, JSX props) can be
// joined back to it after the merge. Existing framework bindings win.
func ensureBinding(el *model.DOMElement, file string) model.ElementReference {
	if id, ok := el.Attr("id"); ok && id != "" {
		return model.ElementReference{ID: id}
	}
	if b := el.Binding(); b != "" {
		return model.ElementReference{Binding: b}
	}
	b := fmt.Sprintf("%s:%d", file, el.ID)
	el.SetMeta(model.MetaBinding, b)
	return model.ElementReference{Binding: b}
}
