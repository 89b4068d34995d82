package runner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/CSP-Validator/pkg/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_FindsIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<h1>ok</h1>\n<script>alert(1)</script>\n")
	writeFile(t, dir, "style.css", "body { color: purple; }\n")
	writeFile(t, dir, "notes.txt", "eval(x)\n")
	outFile := filepath.Join(dir, "out.json")

	opts := DefaultOptions()
	opts.Paths = []string{dir}
	opts.Recursive = true
	opts.Silent = true
	opts.Format = "json"
	opts.OutputFile = outFile

	count, err := NewRunner(opts).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 finding, got %d", count)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	var f models.Finding
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &f); err != nil {
		t.Fatalf("output is not one JSON finding: %v", err)
	}
	if f.RuleID != models.RuleInlineScript || f.Line != 2 {
		t.Errorf("unexpected finding: %+v", f)
	}
}

func TestRun_DisabledDetector(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.js", `eval("2+2")`)
	outFile := filepath.Join(dir, "out.txt")

	opts := DefaultOptions()
	opts.Paths = []string{path}
	opts.Disabled = true
	opts.Silent = true
	opts.OutputFile = outFile

	count, err := NewRunner(opts).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 0 {
		t.Errorf("disabled detector must report nothing, got %d findings", count)
	}
}

func TestRun_DirectoryWithoutRecursive(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Paths = []string{dir}
	opts.Silent = true

	if _, err := NewRunner(opts).Run(); err == nil {
		t.Error("expected an error for a directory without -r")
	}
}

func TestRun_StableOrderAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.js", `eval(x)`)
	writeFile(t, dir, "a.js", "var ok = 1;\nsetTimeout(\"go()\", 1)\n")
	outFile := filepath.Join(dir, "out.txt")

	opts := DefaultOptions()
	opts.Paths = []string{dir}
	opts.Recursive = true
	opts.Silent = true
	opts.OutputFile = outFile

	count, err := NewRunner(opts).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 findings, got %d", count)
	}

	data, _ := os.ReadFile(outFile)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "a.js") || !strings.Contains(lines[1], "b.js") {
		t.Errorf("expected a.js before b.js, got:\n%s", data)
	}
}

func TestRun_SARIFOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", `<img src="http://evil.com/x.png">`)
	outFile := filepath.Join(dir, "report.sarif")

	opts := DefaultOptions()
	opts.Paths = []string{dir}
	opts.Recursive = true
	opts.Silent = true
	opts.Format = "sarif"
	opts.OutputFile = outFile

	count, err := NewRunner(opts).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 finding, got %d", count)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "REMOTE_SRC_ATTRIBUTE") {
		t.Errorf("SARIF report missing rule id:\n%s", data)
	}
}
