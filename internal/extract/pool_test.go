package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtractFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFixture(t, dir, "a.html", `<button id="go">Go</button>`),
		writeFixture(t, dir, "b.js", `document.getElementById("go").addEventListener("click", run);`),
		writeFixture(t, dir, "c.html", `<p>text</p>`),
	}

	extracts, failures, err := ExtractFiles(context.Background(), DefaultFactory(), paths, 2)
	if err != nil {
		t.Fatalf("ExtractFiles: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(extracts) != 3 {
		t.Fatalf("extracts = %d, want 3", len(extracts))
	}
	for i, p := range paths {
		if extracts[i].File != p {
			t.Errorf("extracts[%d].File = %q, want %q (input order)", i, extracts[i].File, p)
		}
	}
}

func TestExtractFilesCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "ok.html", `<p>hi</p>`)
	missing := filepath.Join(dir, "gone.html")
	unsupported := writeFixture(t, dir, "style.css", `body {}`)

	extracts, failures, err := ExtractFiles(context.Background(), DefaultFactory(),
		[]string{good, missing, unsupported}, 0)
	if err != nil {
		t.Fatalf("ExtractFiles: %v", err)
	}
	if len(extracts) != 1 || extracts[0].File != good {
		t.Fatalf("expected only the good file, got %d extracts", len(extracts))
	}
	if len(failures) != 2 {
		t.Fatalf("failures = %d, want 2", len(failures))
	}
	if failures[0].Path != missing || failures[1].Path != unsupported {
		t.Errorf("failure order should follow input order: %v", failures)
	}
}

func TestExtractFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	paths := []string{writeFixture(t, dir, "a.html", `<p>x</p>`)}

	_, _, err := ExtractFiles(ctx, DefaultFactory(), paths, 1)
	if err == nil {
		t.Fatal("canceled context should propagate an error")
	}
}
