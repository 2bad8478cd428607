// cmd/tally/main.go
//
// Entry point for the tally CLI. Point it at an election folder (the current
// directory by default) holding the vote file and a .tally/config.yaml:
//
//	tally init    write .tally/ with a default config
//	tally count   count every position and print the result

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	projectDir string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Count preferential ballots for the annual elections",
	Long: `tally counts the single-seat positions in priority order, excluding each
winner from the positions after it, then counts the general council with
every elected candidate removed from the ballots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", ".", "election folder holding .tally/")
	rootCmd.AddCommand(initCmd, countCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
