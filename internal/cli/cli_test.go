package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/driref-dev/driref/internal/frontend"
)

const sampleSource = `package shapes

type Color int

const (
	Red Color = iota
	Green
)

func New(sides int) Color {
	return Red
}
`

func TestResolveCommandPrintsIdentifiers(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "shapes.go"), sampleSource)

	output := captureStdout(t, func() error {
		cmd := NewRootCommand("test")
		cmd.SetArgs([]string{"resolve", root, "--json"})
		return cmd.Execute()
	})

	records := decodeRecords(t, output)
	wantLiterals := []string{
		"shapes////",
		"shapes/Color///",
		"shapes/Color.Red///",
		"shapes/Color.Green///",
		"shapes//New/#int/",
	}
	for _, want := range wantLiterals {
		if _, ok := records[want]; !ok {
			t.Fatalf("missing identifier %q in output:\n%s", want, output)
		}
	}
	for literal := range records {
		if strings.Contains(literal, "param:") {
			t.Fatalf("expected parameter identifiers to be excluded without --all, got %q", literal)
		}
	}
}

func TestResolveCommandAllIncludesPointers(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "shapes.go"), sampleSource)

	output := captureStdout(t, func() error {
		cmd := NewRootCommand("test")
		cmd.SetArgs([]string{"resolve", root, "--json", "--all"})
		return cmd.Execute()
	})

	records := decodeRecords(t, output)
	if _, ok := records["shapes//New/#int/param:0"]; !ok {
		t.Fatalf("expected a value-parameter identifier with --all, got:\n%s", output)
	}
}

func TestResolveCommandIsDeterministic(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.go"), sampleSource)
	mustWriteFile(t, filepath.Join(root, "b.go"), "package shapes\n\ntype Extra struct{}\n")

	run := func() string {
		return captureStdout(t, func() error {
			cmd := NewRootCommand("test")
			cmd.SetArgs([]string{"resolve", root})
			return cmd.Execute()
		})
	}

	if first, second := run(), run(); first != second {
		t.Fatalf("expected identical output between runs:\n%s\nvs\n%s", first, second)
	}
}

func TestLookupCommandReversesClassIdentifiers(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "shapes.go"), sampleSource)

	output := captureStdout(t, func() error {
		cmd := NewRootCommand("test")
		cmd.SetArgs([]string{"lookup", "shapes/Color///", root, "--json"})
		return cmd.Execute()
	})

	var record lookupRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &record); err != nil {
		t.Fatalf("failed to decode lookup output %q: %v", output, err)
	}
	if record.PackageName != "shapes" || record.ClassNames != "Color" {
		t.Fatalf("unexpected class identifier: %+v", record)
	}
	if record.File != "shapes.go" || record.Line == 0 {
		t.Fatalf("unexpected location: %+v", record)
	}
}

func TestLookupCommandRejectsClasslessIdentifier(t *testing.T) {
	cmd := NewRootCommand("test")
	cmd.SetArgs([]string{"lookup", "shapes////"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected lookup of a package-only identifier to fail")
	}
}

func TestCollectRecordsSkipsPointerKindsByDefault(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "shapes.go"), sampleSource)

	result, err := frontend.NewParser().ParsePath(root, nil)
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}

	base, err := collectRecords(result.Decls, false)
	if err != nil {
		t.Fatalf("collectRecords failed: %v", err)
	}
	all, err := collectRecords(result.Decls, true)
	if err != nil {
		t.Fatalf("collectRecords --all failed: %v", err)
	}
	if len(all) <= len(base) {
		t.Fatalf("expected --all to add pointer identifiers: %d vs %d", len(all), len(base))
	}
}

func decodeRecords(t *testing.T, output string) map[string]identifierRecord {
	t.Helper()
	records := make(map[string]identifierRecord)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record identifierRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("failed to decode line %q: %v", line, err)
		}
		records[record.Identifier] = record
	}
	return records
}

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	if runErr != nil {
		t.Fatalf("command failed: %v", runErr)
	}
	return buf.String()
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
