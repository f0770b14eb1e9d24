// Package main is the entry point for the dungeon-chat terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dungeon-chat",
	Short: "An LLM-narrated dungeon crawl in your terminal",
	Long: `dungeon-chat is a text RPG whose narration, rules adjudication, and
state transitions are delegated to a remote language model through a
structured-output contract. The local client renders the conversation,
character stats, and inventory.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
}
