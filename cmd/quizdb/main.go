// Command quizdb is the operational entry point for the quiz data layer:
// it loads configuration, opens the database and applies schema
// migrations. The bot front-end wires the services up separately; this
// binary only manages the storage side.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/phrazzld/quiz-api/internal/config"
	"github.com/phrazzld/quiz-api/internal/platform/logger"
	"github.com/phrazzld/quiz-api/internal/platform/postgres"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quizdb: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	migrate := flag.Bool("migrate", false, "apply pending schema migrations and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("database connection established")

	if *migrate {
		if err := postgres.RunMigrations(db); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	}

	// Nothing long-running to do yet: the repository is consumed as a
	// library by the bot process. Verify the schema is reachable and exit.
	repo := postgres.New(db, log)
	count, err := repo.CountQuizzesByLanguage(ctx, "en")
	if err != nil {
		return fmt.Errorf("schema check failed (run with -migrate first?): %w", err)
	}
	log.Info("schema check passed", slog.Int64("en_quizzes", count))
	return nil
}
