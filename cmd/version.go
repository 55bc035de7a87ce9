package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobeam",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Beam reactions, internal forces and stresses")
		fmt.Println("Load combinations per NSCP 2015 (National Structural Code of the Philippines)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
