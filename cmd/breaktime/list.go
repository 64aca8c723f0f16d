package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaktime/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, runewidth.StringWidth(g.ID))
	}

	fmt.Printf("  %s  %s\n", runewidth.FillRight("ID", maxIDLen), "Title")
	fmt.Printf("  %s  %s\n", runewidth.FillRight("--", maxIDLen), "-----")
	for _, g := range games {
		fmt.Printf("  %s  %s\n", runewidth.FillRight(g.ID, maxIDLen), g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'breaktime play <id>' to play a game.")
}
