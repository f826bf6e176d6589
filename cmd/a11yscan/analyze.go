package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"a11yscan/internal/config"
	"a11yscan/internal/detect"
	"a11yscan/internal/extract"
	"a11yscan/internal/facts"
	"a11yscan/internal/merge"
	"a11yscan/internal/report"
	"a11yscan/internal/store"
)

var (
	outputFormat string
	saveRun      bool
	diffBaseline bool
	exportFacts  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Extract, merge and check the given files or directories",
	Long: `Analyzes the given files or directories (default: the workspace).
Directories are walked for supported extensions; node_modules and similar
trees are skipped. All files are extracted concurrently, merged into one
document model, and the rule set runs against the merged view.

Exit status is 1 when any error-severity finding remains after filtering.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "Persist this run to the findings store")
	analyzeCmd.Flags().BoolVar(&diffBaseline, "new-only", false, "Report only findings absent from the latest saved run")
	analyzeCmd.Flags().StringVar(&exportFacts, "facts", "", "Write the merged model as Datalog facts to this file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	result, err := analyze(cmd, args)
	if err != nil {
		return err
	}
	if result.Errors() > 0 {
		// Findings already printed; the process exits nonzero after the
		// post-run hooks flush the logs.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		exitCode = 1
	}
	return nil
}

// analyze runs the full pipeline and renders the result. Used by both the
// one-shot analyze command and the watch loop.
func analyze(cmd *cobra.Command, args []string) (*report.Result, error) {
	cfg, err := config.Load(workspace)
	if err != nil {
		return nil, err
	}
	rules, err := config.LoadRules(workspace)
	if err != nil {
		return nil, err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{workspace}
	}

	factory := extract.DefaultFactory()
	paths, err := discoverFiles(roots, factory, cfg.Extraction.MaxFileSizeKB)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported files found under %s", strings.Join(roots, ", "))
	}
	logger.Info("discovered files", zap.Int("count", len(paths)))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	extracts, failures, err := extract.ExtractFiles(ctx, factory, paths, cfg.Extraction.Workers)
	if err != nil {
		return nil, err
	}
	for _, f := range failures {
		logger.Warn("file skipped", zap.String("path", f.Path), zap.Error(f.Err))
	}

	doc := merge.Merge(extracts)
	findings := detect.Run(doc, detect.DefaultDetectors())
	findings = detect.Filter(findings, rules.Disabled, detect.Severity(rules.MinSeverity))

	result := &report.Result{
		Timestamp: time.Now().UTC(),
		Files:     len(extracts),
		Degraded:  doc.Degraded(),
		Findings:  findings,
	}
	for _, f := range failures {
		result.Skipped = append(result.Skipped, f.Path)
	}

	if exportFacts != "" {
		if err := writeFacts(exportFacts, doc); err != nil {
			return nil, err
		}
	}

	if diffBaseline || (saveRun && cfg.Store.Enabled) {
		if err := persistAndDiff(result); err != nil {
			return nil, err
		}
	}

	switch outputFormat {
	case "json":
		if err := report.WriteJSON(cmd.OutOrStdout(), result); err != nil {
			return nil, err
		}
	default:
		report.RenderText(cmd.OutOrStdout(), result)
	}

	return result, nil
}

// discoverFiles expands the given paths into supported source files in
// deterministic order.
func discoverFiles(roots []string, factory *extract.Factory, maxKB int) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(path string, info fs.FileInfo) {
		if seen[path] || !factory.HasExtractor(path) {
			return
		}
		if maxKB > 0 && info.Size() > int64(maxKB)*1024 {
			logger.Warn("file exceeds size limit, skipping", zap.String("path", path))
			return
		}
		seen[path] = true
		out = append(out, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root, info)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			add(path, fi)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}

func skipDir(name string) bool {
	switch name {
	case "node_modules", ".git", "dist", "build", config.WorkspaceDir:
		return true
	}
	return strings.HasPrefix(name, "_")
}

func writeFacts(path string, doc *merge.DocumentModel) error {
	var b strings.Builder
	for _, f := range facts.Export(doc) {
		b.WriteString(f.String())
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// persistAndDiff saves the run when requested and, with --new-only,
// replaces the findings with the delta against the previous run.
func persistAndDiff(result *report.Result) error {
	s, err := store.Open(filepath.Join(workspace, config.WorkspaceDir))
	if err != nil {
		return err
	}
	defer s.Close()

	var baseline *store.Run
	if diffBaseline {
		baseline, err = s.LatestRun()
		if err != nil {
			return err
		}
	}

	if saveRun {
		if _, err := s.SaveRun(result.Files, result.Degraded, result.Findings); err != nil {
			return err
		}
	}

	if diffBaseline && baseline != nil {
		fresh, err := s.NewSince(baseline.ID, result.Findings)
		if err != nil {
			return err
		}
		result.Findings = fresh
	}
	return nil
}
