// Package frontend adapts Go source files into the symbol graphs the
// identifier core consumes. It is a syntactic adapter, not a type checker:
// type references are rendered from the source text, and cross-package names
// resolve no further than their written qualifier.
package frontend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/driref-dev/driref/internal/ignore"
	"github.com/driref-dev/driref/internal/symbol"
)

// Declaration pairs a symbol with the source position it was extracted from.
type Declaration struct {
	Sym  *symbol.Symbol
	File string
	Line int
}

// Table is the read-only lookup collaborator for reverse resolution: class
// identifier to declaration.
type Table map[symbol.ClassID]Declaration

// Lookup finds the declaration of a class identifier.
func (t Table) Lookup(id symbol.ClassID) (Declaration, bool) {
	decl, ok := t[id]
	return decl, ok
}

// Result holds every declaration extracted from a parse, in source order,
// plus the class lookup table built from them.
type Result struct {
	Decls []Declaration
	Table Table
}

// Parser extracts symbol graphs from Go sources.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a parser wired to the Go grammar.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &Parser{inner: p}
}

// ParsePath parses a single .go file or walks a directory tree, skipping
// paths the ignore rules match. Results are in lexical file order, so output
// is deterministic for a given tree.
func (p *Parser) ParsePath(root string, ignoreRules []string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	result := &Result{Table: make(Table)}

	if !info.IsDir() {
		decls, err := p.parseOne(root, root)
		if err != nil {
			return nil, err
		}
		result.add(decls)
		return result, nil
	}

	matcher := ignore.NewMatcher(ignoreRules)
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		if matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}

		decls, err := p.parseOne(path, relPath)
		if err != nil {
			return fmt.Errorf("parse %s: %w", relPath, err)
		}
		result.add(decls)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ParseFile extracts declarations from one file's content.
func (p *Parser) ParseFile(path string, content []byte) ([]Declaration, error) {
	tree, err := p.inner.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	scope := newFileScope(path, content)
	root := tree.RootNode()

	// Types first, so functions and methods can reference classes declared
	// later in the file.
	scope.collectClasses(root)
	scope.extract(root)

	return scope.decls, nil
}

func (p *Parser) parseOne(path, relPath string) ([]Declaration, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.ParseFile(relPath, content)
}

func (r *Result) add(decls []Declaration) {
	r.Decls = append(r.Decls, decls...)
	for _, decl := range decls {
		if decl.Sym.Kind == symbol.KindClass && decl.Sym.ClassID != nil {
			if _, exists := r.Table[*decl.Sym.ClassID]; !exists {
				r.Table[*decl.Sym.ClassID] = decl
			}
		}
	}
}
