package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/driref-dev/driref/internal/dri"
	"github.com/driref-dev/driref/internal/driformat"
	"github.com/driref-dev/driref/internal/frontend"
)

type lookupRecord struct {
	PackageName string `json:"packageName"`
	ClassNames  string `json:"classNames"`
	File        string `json:"file,omitempty"`
	Line        int    `json:"line,omitempty"`
}

func RunLookup(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	id, err := driformat.Parse(args[0])
	if err != nil {
		return err
	}
	classID, err := dri.ClassIDFrom(id)
	if err != nil {
		return err
	}

	record := lookupRecord{
		PackageName: classID.PackageName,
		ClassNames:  classID.ClassNames,
	}

	if len(args) > 1 {
		result, err := frontend.NewParser().ParsePath(args[1], nil)
		if err != nil {
			return err
		}
		decl, ok := result.Table.Lookup(classID)
		if !ok {
			return fmt.Errorf("no declaration for class %s.%s under %s", classID.PackageName, classID.ClassNames, args[1])
		}
		record.File = decl.File
		record.Line = decl.Line
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(record)
	}

	fmt.Printf("package:    %s\n", record.PackageName)
	fmt.Printf("classNames: %s\n", record.ClassNames)
	if record.File != "" {
		fmt.Printf("defined at: %s:%d\n", record.File, record.Line)
	}
	return nil
}
