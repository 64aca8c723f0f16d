package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top scores and statistics for the specified game.

Examples:
  breaktime scores jumper
  breaktime scores stacker --limit 20
  breaktime scores stacker --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breaktime list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := message.NewPrinter(language.English)

	if flagClear {
		n, err := store.ClearScores(ctx, gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		p.Printf("Deleted %d scores for %s.\n", n, title)
		return
	}

	scores, err := store.TopScores(ctx, gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'breaktime play %s' to set the first high score!\n", gameID)
		return
	}

	// Scores are right-aligned by display width so grouped digits line up
	scoreW := len("Score")
	cells := make([]string, len(scores))
	for i, entry := range scores {
		cells[i] = p.Sprintf("%d", entry.Score)
		scoreW = max(scoreW, runewidth.StringWidth(cells[i]))
	}

	fmt.Printf("  %-4s  %s  %-10s  %s\n", "Rank", runewidth.FillLeft("Score", scoreW), "Difficulty", "Date")
	fmt.Printf("  %-4s  %s  %-10s  %s\n", "----", runewidth.FillLeft("-----", scoreW), "----------", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %s  %-10s  %s\n",
			i+1,
			runewidth.FillLeft(cells[i], scoreW),
			entry.Difficulty,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.GameStats(ctx, gameID)
	if err != nil {
		return
	}
	fmt.Println()
	p.Printf("Best: %d   Games: %d   Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
}
