package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/ehonlab/ehon-server/internal/config"
	"github.com/ehonlab/ehon-server/internal/database"
	"github.com/ehonlab/ehon-server/internal/database/books"
)

// RecomputePopularityCommand refreshes every book's popularity score once,
// outside the scheduled maintenance run.
type RecomputePopularityCommand struct {
	DatabasePath string
}

// NewRecomputePopularityCommand creates a new RecomputePopularityCommand.
func NewRecomputePopularityCommand() *RecomputePopularityCommand {
	return &RecomputePopularityCommand{}
}

// ParseFlags parses command line flags.
func (cmd *RecomputePopularityCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("recompute-popularity", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s recompute-popularity [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Refresh book popularity scores from favorites and reviews.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run recomputes the scores.
func (cmd *RecomputePopularityCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	updated, err := books.NewRepository(db.DB).RecomputePopularityScores()
	if err != nil {
		return fmt.Errorf("recompute popularity: %w", err)
	}

	fmt.Printf("Refreshed popularity scores for %d books\n", updated)
	return nil
}
