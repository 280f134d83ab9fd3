// Package cmd wires cfbtool's cobra command tree: list, cat, props, and
// (Linux-only) mount, per SPEC_FULL.md's domain-stack section.
package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "cfbtool"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - inspect Compound File Binary (OLE2) containers",
	}

	rootCmd.AddCommand(DefineListCommand())
	rootCmd.AddCommand(DefineCatCommand())
	rootCmd.AddCommand(DefinePropsCommand())
	rootCmd.AddCommand(DefineMountCommand())

	return rootCmd.Execute()
}
