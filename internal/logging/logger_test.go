package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, ws, body string) {
	t.Helper()
	dir := filepath.Join(ws, ".a11yscan")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestInitialize_NoConfigIsSilent(t *testing.T) {
	t.Cleanup(CloseAll)
	ws := t.TempDir()

	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsDebugMode() {
		t.Errorf("debug mode should default to off without config")
	}
	// No logs directory should be created in production mode.
	if _, err := os.Stat(filepath.Join(ws, ".a11yscan", "logs")); !os.IsNotExist(err) {
		t.Errorf("logs directory created despite debug mode off")
	}
}

func TestInitialize_DebugModeWritesLogs(t *testing.T) {
	t.Cleanup(CloseAll)
	ws := t.TempDir()
	writeConfig(t, ws, `{"logging":{"debug_mode":true,"level":"debug"}}`)

	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !IsDebugMode() {
		t.Fatalf("debug mode should be on")
	}

	Merge("merged %d extracts", 3)
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(ws, ".a11yscan", "logs"))
	if err != nil {
		t.Fatalf("read logs dir: %v", err)
	}
	found := false
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".log" {
			found = true
		}
	}
	if !found {
		t.Errorf("no log files written in debug mode")
	}
}

func TestCategoryFilter(t *testing.T) {
	t.Cleanup(CloseAll)
	ws := t.TempDir()
	writeConfig(t, ws, `{"logging":{"debug_mode":true,"categories":{"merge":false}}}`)

	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if IsCategoryEnabled(CategoryMerge) {
		t.Errorf("merge category should be disabled")
	}
	if !IsCategoryEnabled(CategoryExtract) {
		t.Errorf("unlisted categories should default to enabled")
	}
}
