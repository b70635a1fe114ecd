package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "driref",
		Short: "Construct stable declaration reference identifiers",
		Long: `Driref names the declarations of a codebase with stable, serializable
reference identifiers that survive moves between files and lines.
Identifiers disambiguate overloads by signature and can point at
sub-elements such as type parameters and value parameters.`,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve [path]",
		Short: "Print the reference identifier of every declaration under path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunResolve,
	}
	resolveCmd.Flags().Bool("all", false, "Include type-parameter and value-parameter pointer identifiers")
	resolveCmd.Flags().Bool("json", false, "Print machine-readable identifier records")
	resolveCmd.Flags().StringSlice("ignore", nil, "Additional ignore patterns for the source walk")

	lookupCmd := &cobra.Command{
		Use:   "lookup <identifier> [path]",
		Short: "Reverse-resolve an identifier to its class declaration",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  RunLookup,
	}
	lookupCmd.Flags().Bool("json", false, "Print machine-readable lookup result")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("driref %s\n", version)
		},
	}

	rootCmd.AddCommand(
		resolveCmd,
		lookupCmd,
		versionCmd,
	)

	return rootCmd
}
