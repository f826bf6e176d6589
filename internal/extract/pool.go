package extract

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// FileError records a file that could not be extracted. Extraction
// failures are collected, not fatal: one unparseable file must not take
// down an analysis run.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ExtractFiles parses a set of files concurrently through the factory,
// preserving input order in the result slice. workers <= 0 selects
// GOMAXPROCS. The returned extracts omit failed files; failures come back
// as FileErrors. The error return is non-nil only when the context is
// canceled.
func ExtractFiles(ctx context.Context, factory *Factory, paths []string, workers int) ([]model.FileExtract, []FileError, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*model.FileExtract, len(paths))
	errs := make([]*FileError, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				errs[i] = &FileError{Path: path, Err: err}
				return nil
			}
			extract, err := factory.Parse(path, content)
			if err != nil {
				logging.ExtractWarn("skipping %s: %v", path, err)
				errs[i] = &FileError{Path: path, Err: err}
				return nil
			}
			results[i] = extract
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	extracts := make([]model.FileExtract, 0, len(paths))
	var failures []FileError
	for i := range paths {
		if results[i] != nil {
			extracts = append(extracts, *results[i])
		}
		if errs[i] != nil {
			failures = append(failures, *errs[i])
		}
	}

	logging.Extract("extracted %d/%d files (%d workers)", len(extracts), len(paths), workers)
	return extracts, failures, nil
}
