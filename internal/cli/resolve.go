package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driref-dev/driref/internal/dri"
	"github.com/driref-dev/driref/internal/driformat"
	"github.com/driref-dev/driref/internal/frontend"
	"github.com/driref-dev/driref/internal/symbol"
)

type identifierRecord struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
}

func RunResolve(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	includeAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	ignoreRules, err := cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return err
	}

	result, err := frontend.NewParser().ParsePath(path, ignoreRules)
	if err != nil {
		return err
	}

	records, err := collectRecords(result.Decls, includeAll)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		for _, record := range records {
			if err := encoder.Encode(record); err != nil {
				return err
			}
		}
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s:%d\t%s\t%s\n", record.File, record.Line, record.Kind, record.Identifier)
	}
	return nil
}

func collectRecords(decls []frontend.Declaration, includeAll bool) ([]identifierRecord, error) {
	seen := make(map[string]bool)
	records := make([]identifierRecord, 0, len(decls))

	for _, decl := range decls {
		switch decl.Sym.Kind {
		case symbol.KindTypeParameter, symbol.KindValueParameter:
			if !includeAll {
				continue
			}
		}

		id, err := dri.FromSymbol(decl.Sym)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", decl.File, decl.Line, err)
		}

		literal := driformat.Format(id)
		if seen[literal] {
			continue
		}
		seen[literal] = true

		records = append(records, identifierRecord{
			File:       decl.File,
			Line:       decl.Line,
			Kind:       decl.Sym.Kind.String(),
			Identifier: literal,
		})
	}
	return records, nil
}
