package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/loadtest"
	"github.com/iPranay05/OneAthleteOneNation-sub000/pkg/logger"
)

// Default configuration constants.
const (
	defaultAthletes   = 1000
	defaultDuplicates = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 10 * time.Second
	defaultSettle     = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		athletes   = flag.Int("athletes", defaultAthletes, "Number of athletes to generate decisions for")
		duplicates = flag.Int("duplicates", defaultDuplicates, "Decisions re-sent with the same id")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submitters")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		settle     = flag.Duration("settle", defaultSettle, "How long to wait for decisions to be applied")
		prefix     = flag.String("prefix", "load-", "Athlete id prefix")
		failover   = flag.Bool("failover", false, "Fail over the busiest coach and verify the moves")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	_, err := loadtest.Run(ctx, &loadtest.Config{
		BaseURL:    *baseURL,
		Athletes:   *athletes,
		Duplicates: *duplicates,
		Workers:    *workers,
		Timeout:    *timeout,
		Settle:     *settle,
		Failover:   *failover,
		Prefix:     *prefix,
		Verbose:    *verbose,
	})
	if err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
