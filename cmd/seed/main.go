package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/logging"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

func main() {
	var (
		all     = flag.Bool("all", false, "Run all seeders")
		only    = flag.String("only", "", "Comma-separated seeders to run")
		count   = flag.Int("count", 10, "Records created per seeder")
		seedVal = flag.Int64("seed", 0, "Random seed (0 picks one)")
		list    = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range seeders {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
	case *only != "":
		names = strings.Split(*only, ",")
	default:
		fmt.Println("usage: seed [-all|-only <names>] [-count n] [-seed n] [-list]")
		flag.PrintDefaults()
		return
	}

	if err := seed(names, *count, *seedVal); err != nil {
		log.Fatal(err)
	}
	fmt.Println("seeding completed successfully")
}

func seed(names []string, count int, randSeed int64) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file load failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config finalize failed: %w", err)
	}

	logger := logging.New(&cfg.Logging)
	store, err := infrastructure.NewStore(&cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("store init failed: %w", err)
	}

	lc := lifecycle.New()
	if err := store.Start(lc); err != nil {
		return fmt.Errorf("store start failed: %w", err)
	}
	lc.WaitForStartup()
	defer func() {
		if err := lc.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	run := &Run{
		Store:  store,
		Faker:  gofakeit.New(randSeed),
		Count:  count,
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(lc.Context(), 5*time.Minute)
	defer cancel()

	return runSeeders(ctx, run, names...)
}
