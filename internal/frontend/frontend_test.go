package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/driref-dev/driref/internal/dri"
	"github.com/driref-dev/driref/internal/driformat"
	"github.com/driref-dev/driref/internal/symbol"
)

const sampleSource = `package shapes

import "fmt"

type Color int

const (
	Red Color = iota
	Green
	Blue
)

const Version = "1.0"

var DefaultName = "shape"

type Shape interface {
	Area() float64
}

func New(name string, sides int) Shape {
	fmt.Println(name, sides)
	return nil
}

func (c Color) Label() string {
	return ""
}
`

func resolveAll(t *testing.T, decls []Declaration) map[string]Declaration {
	t.Helper()
	out := make(map[string]Declaration, len(decls))
	for _, decl := range decls {
		id, err := dri.FromSymbol(decl.Sym)
		if err != nil {
			t.Fatalf("resolving %s %q failed: %v", decl.Sym.Kind, decl.Sym.Name, err)
		}
		out[driformat.Format(id)] = decl
	}
	return out
}

func TestParseFileExtractsDeclarations(t *testing.T) {
	decls, err := NewParser().ParseFile("shapes.go", []byte(sampleSource))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	byLiteral := resolveAll(t, decls)
	for _, want := range []string{
		"shapes/Color///",
		"shapes/Color.Red///",
		"shapes/Color.Green///",
		"shapes/Color.Blue///",
		"shapes//Version//",
		"shapes//DefaultName//",
		"shapes/Shape///",
		"shapes//New/#string#int/",
		"shapes//Label/shapes.Color/",
	} {
		if _, ok := byLiteral[want]; !ok {
			t.Fatalf("missing identifier %q; got %v", want, literals(byLiteral))
		}
	}

	// value parameters derive from the owner's identifier
	paramLiteral := "shapes//New/#string#int/param:1"
	decl, ok := byLiteral[paramLiteral]
	if !ok {
		t.Fatalf("missing value-parameter identifier %q; got %v", paramLiteral, literals(byLiteral))
	}
	if decl.Sym.Kind != symbol.KindValueParameter || decl.Sym.Name != "sides" {
		t.Fatalf("unexpected declaration for %q: %s %q", paramLiteral, decl.Sym.Kind, decl.Sym.Name)
	}
}

func TestParseFileGenericTypeParameters(t *testing.T) {
	source := `package box

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

func Map[T any, R any](in []T, f func(T) R) []R {
	return nil
}
`
	decls, err := NewParser().ParseFile("box.go", []byte(source))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	byLiteral := resolveAll(t, decls)
	for _, want := range []string{
		"box/Pair///",
		"box/Pair///generic:0",
		"box/Pair///generic:1",
		"box//Map/#[]T#func(T) R/",
		"box//Map/#[]T#func(T) R/generic:1",
	} {
		if _, ok := byLiteral[want]; !ok {
			t.Fatalf("missing identifier %q; got %v", want, literals(byLiteral))
		}
	}
}

func TestParsePathWalksAndIgnores(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "shapes.go"), sampleSource)
	mustWriteFile(t, filepath.Join(root, "vendor", "dep.go"), "package dep\n\ntype Hidden struct{}\n")
	mustWriteFile(t, filepath.Join(root, "notes.txt"), "not source\n")

	result, err := NewParser().ParsePath(root, nil)
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}

	for _, decl := range result.Decls {
		if decl.Sym.Name == "Hidden" {
			t.Fatalf("expected vendor declarations to be ignored")
		}
	}

	colorID := symbol.ClassID{PackageName: "shapes", ClassNames: "Color"}
	decl, ok := result.Table.Lookup(colorID)
	if !ok {
		t.Fatalf("expected the lookup table to know %v", colorID)
	}
	if decl.File != "shapes.go" || decl.Line == 0 {
		t.Fatalf("unexpected location for Color: %s:%d", decl.File, decl.Line)
	}
}

func TestParsePathSingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "shapes.go")
	mustWriteFile(t, path, sampleSource)

	result, err := NewParser().ParsePath(path, nil)
	if err != nil {
		t.Fatalf("ParsePath failed: %v", err)
	}
	if len(result.Decls) == 0 {
		t.Fatalf("expected declarations from a single-file parse")
	}
}

func literals(m map[string]Declaration) []string {
	out := make([]string, 0, len(m))
	for literal := range m {
		out = append(out, literal)
	}
	return out
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
