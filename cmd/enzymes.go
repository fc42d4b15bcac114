package cmd

import (
	"github.com/spf13/cobra"

	"domest/internal/domest"
)

var enzymeRegistry = domest.NewEnzymeRegistry()

// enzymesCmd lists the supported Type IIS enzymes
var enzymesCmd = &cobra.Command{
	Use:   "enzymes [name]",
	Short: "List the supported Type IIS enzymes",
	Long: `List the supported Type IIS enzymes with their recognition sequence,
cut offset and overhang length. Pass a name to show a single enzyme`,
	Run: enzymeRegistry.ReadCmd,
}

func init() {
	rootCmd.AddCommand(enzymesCmd)
}
