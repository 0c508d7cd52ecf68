package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the mastermind CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mastermind version %s\n", version)
		fmt.Println("A Renko-brick paper-trading desk")
		fmt.Println("https://github.com/rustyeddy/mastermind")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
