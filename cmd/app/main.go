package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/eihwaz/internal"
	"github.com/starford/eihwaz/internal/apperr"
	"github.com/starford/eihwaz/internal/extract"
	"github.com/starford/eihwaz/internal/forest"
	"github.com/starford/eihwaz/internal/index"
	"github.com/starford/eihwaz/internal/report"
	"github.com/starford/eihwaz/internal/scanner"
	"github.com/starford/eihwaz/internal/snapshot"
	pkgconfig "github.com/starford/eihwaz/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// setup loads configuration (defaults when the file is absent) and
// installs the logger. Reports go to stdout, logs to stderr.
func setup(cmd *cli.Command) (*internal.Config, *slog.Logger, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// loadPair parses both export files in parallel. The engine itself
// stays single-threaded; only the file loads overlap.
func loadPair(ctx context.Context, logger *slog.Logger, pastPath, presentPath string) (past, present snapshot.Snapshot, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("loading snapshot", slog.String("role", "past"), slog.String("path", pastPath))
		var err error
		past, err = snapshot.Load(pastPath, logger)
		return err
	})
	g.Go(func() error {
		logger.Info("loading snapshot", slog.String("role", "present"), slog.String("path", presentPath))
		var err error
		present, err = snapshot.Load(presentPath, logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return past, present, nil
}

func runCompare(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("compare needs <past> <present> arguments: %w", apperr.ErrUsage)
	}
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	pastPath, presentPath := cmd.Args().Get(0), cmd.Args().Get(1)
	past, present, err := loadPair(ctx, logger, pastPath, presentPath)
	if err != nil {
		return err
	}

	cmpRes := forest.Compare(past, present)
	report.Render(os.Stdout, cmpRes, pastPath, presentPath)

	if jsonPath := cmd.String("json"); jsonPath != "" {
		if err := report.WriteJSON(jsonPath, cmpRes); err != nil {
			return err
		}
		logger.Info("comparison report written", slog.String("path", jsonPath))
	}
	return nil
}

func runMerge(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("merge needs <past> <present> arguments: %w", apperr.ErrUsage)
	}
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	pastPath, presentPath := cmd.Args().Get(0), cmd.Args().Get(1)
	past, present, err := loadPair(ctx, logger, pastPath, presentPath)
	if err != nil {
		return err
	}

	merged := forest.Merge(past, present)

	outPath := cmd.String("output")
	if err := snapshot.WriteMerged(outPath, merged); err != nil {
		return err
	}
	logger.Info("merged forests",
		slog.Int("conversations", len(merged)),
		slog.String("path", outPath))
	return nil
}

func runScan(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("scan needs a <file> argument: %w", apperr.ErrUsage)
	}
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().Get(0)
	logger.Info("scanning export", slog.String("path", path))
	snap, err := snapshot.Load(path, logger)
	if err != nil {
		return err
	}

	res := scanner.Scan(path, snap, scanner.Config{
		HandledContentTypes: cfg.Scan.HandledContentTypes,
		HandledPartTypes:    cfg.Scan.HandledPartTypes,
		SampleLimit:         cfg.Scan.SampleLimit,
	})
	res.Render(os.Stdout)
	return nil
}

func runBench(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("bench needs a <file> argument: %w", apperr.ErrUsage)
	}
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().Get(0)
	snap, err := snapshot.Load(path, logger)
	if err != nil {
		return err
	}

	rows := extract.FromSnapshot(snap)
	logger.Info("extracted messages",
		slog.Int("conversations", len(snap)),
		slog.Int("messages", len(rows)))

	queries := cmd.StringSlice("query")
	if len(queries) == 0 {
		queries = cfg.Bench.Queries
	}

	dbPath := cmd.String("db")
	if dbPath == "" {
		dbPath = cfg.Bench.DBPath
	}
	if dbPath == "" {
		f, err := os.CreateTemp("", "eihwaz-bench-*.db")
		if err != nil {
			return fmt.Errorf("create bench db: %w", err)
		}
		f.Close()
		dbPath = f.Name()
		defer func() {
			os.Remove(dbPath)
			os.Remove(dbPath + "-wal")
			os.Remove(dbPath + "-shm")
		}()
	}

	db, err := index.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := index.Bench(db, rows, queries, cfg.Bench.Limit)
	if err != nil {
		return err
	}
	res.Render(os.Stdout)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "eihwaz",
		Usage: "Compare, merge, and inspect conversation-export forests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compare",
				Usage:     "Report conversations present in the past export but missing from the present one",
				ArgsUsage: "<past.json> <present.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "json",
						Usage: "Save the comparison report to a JSON file",
					},
				},
				Action: runCompare,
			},
			{
				Name:      "merge",
				Usage:     "Merge two exports, keeping the more complete version of each conversation",
				ArgsUsage: "<past.json> <present.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Output file for the merged export",
						Required: true,
					},
				},
				Action: runMerge,
			},
			{
				Name:      "scan",
				Usage:     "Report which message content types in an export are handled",
				ArgsUsage: "<export.json>",
				Action:    runScan,
			},
			{
				Name:      "bench",
				Usage:     "Benchmark message indexing and full-text search over an export",
				ArgsUsage: "<export.json>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "db",
						Usage: "Index database path (default: throwaway temp file)",
					},
					&cli.StringSliceFlag{
						Name:  "query",
						Usage: "Search query to time (repeatable; defaults from config)",
					},
				},
				Action: runBench,
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return fmt.Errorf("no command given (want compare, merge, scan, or bench): %w", apperr.ErrUsage)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		if errors.Is(err, apperr.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
