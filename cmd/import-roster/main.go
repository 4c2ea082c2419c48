// Command import-roster syncs a CSV or YAML coach roster into the configured
// store without starting the HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/config"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

const stopTimeout = 10 * time.Second

func main() {
	var (
		file    = flag.String("file", "", "roster file (.csv, .yaml or .yml)")
		replace = flag.Bool("replace", false, "replace the directory instead of merging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import-roster -file roster.csv [-replace]")
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := importRoster(ctx, *file, *replace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		stop()
		os.Exit(1)
	}

	fmt.Printf("imported %d coaches (%d new availability records", res.Coaches, res.NewAvailability)
	if res.Replaced {
		fmt.Print(", directory replaced")
	}
	fmt.Println(")")
}

func importRoster(ctx context.Context, path string, replace bool) (service.RosterResult, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return service.RosterResult{}, err
	}
	_ = logger.SetLevelString(cfg.LogLevel)
	if cfg.StoreBackend == config.BackendMemory {
		logger.Get().Warn(ctx, "memory backend selected; the imported roster will not outlive this process")
	}

	e, err := service.FromConfig(ctx, cfg, logger.Named("import"))
	if err != nil {
		return service.RosterResult{}, err
	}
	if err := e.Start(ctx); err != nil {
		return service.RosterResult{}, err
	}

	res, err := e.ImportRoster(ctx, path, replace)

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return res, errors.Join(err, e.Stop(stopCtx))
}
