// Command syncer ingests current-affairs articles from the configured
// sources into Postgres (and, when reachable, Qdrant).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/upsc-exam-ai/data-scraper/pkg/config"
	"github.com/upsc-exam-ai/data-scraper/pkg/db"
	"github.com/upsc-exam-ai/data-scraper/pkg/source"
	"github.com/upsc-exam-ai/data-scraper/pkg/syncer"
	"github.com/upsc-exam-ai/data-scraper/pkg/vector"
)

var (
	flagConfig  string
	flagDays    int
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "syncer",
	Short: "Sync current-affairs articles into the durable store",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		if flagVerbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and ingest articles over the lookback window",
	RunE:  runSync,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe sources and stores without ingesting anything",
	RunE:  runCheck,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	syncCmd.Flags().IntVar(&flagDays, "days", 0, "lookback window in days (overrides config)")
	rootCmd.AddCommand(syncCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	days := cfg.DaysBack
	if flagDays > 0 {
		days = flagDays
	}

	pg := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.Postgres.DSN()})
	if err := pg.Connect(ctx); err != nil {
		// No partial processing without storage.
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pg.Close()

	store := db.NewArticleStore(pg.DB())
	if err := store.InitSchema(ctx); err != nil {
		return err
	}

	orch := syncer.New(
		store,
		vector.NewQdrantClient(cfg.Qdrant.BaseURL()),
		source.NewSanskriti(),
		source.NewPIB(),
	)

	sum, err := orch.Run(ctx, days)
	if err != nil {
		return err
	}
	fmt.Printf("fetched=%d inserted=%d duplicates=%d errors=%d\n",
		sum.Fetched, sum.Inserted, sum.Duplicates, sum.Errors)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	ok := true

	pg := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.Postgres.DSN()})
	if err := pg.Connect(ctx); err != nil {
		log.Error().Err(err).Msg("postgres: FAILED")
		ok = false
	} else {
		log.Info().Msg("postgres: ok")
		pg.Close()
	}

	qd := vector.NewQdrantClient(cfg.Qdrant.BaseURL())
	if qd.CheckConnection(ctx) {
		log.Info().Msg("qdrant: ok")
	} else {
		log.Warn().Msg("qdrant: not reachable (sync will run postgres-only)")
	}

	orch := syncer.New(nil, nil, source.NewSanskriti(), source.NewPIB())
	for name, err := range orch.CheckSources(ctx) {
		if err != nil {
			log.Error().Err(err).Str("source", name).Msg("source: FAILED")
			ok = false
		}
	}

	if !ok {
		return fmt.Errorf("one or more checks failed")
	}
	return nil
}
