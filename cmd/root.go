// Package cmd is for command line interactions with the domest application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "domest",
	Short: `Domesticate DNA sequences for Type IIS (Golden Gate) assembly.
Remove internal recognition sites by silent mutation or mutagenic junctions
and pick the overhang set with the best assembly fidelity`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
