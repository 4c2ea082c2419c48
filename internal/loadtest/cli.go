package loadtest

import "os"

// ShowHelp prints usage information for the load tool.
func ShowHelp() {
	os.Stdout.WriteString(`Decision Load Tool
==================

Submits accepted coach request decisions to a running service, waits for the
workers to apply them and checks every athlete ends up with the planned
primary and backup coach.

Usage:
  go run ./cmd/load-decisions [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -athletes int
        Number of athletes; each gets a primary and a secondary decision (default 1000)
  -duplicates int
        Decisions re-sent with the same id (default 50)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -settle duration
        How long to wait for decisions to be applied (default 30s)
  -prefix string
        Athlete id prefix (default "load-")
  -failover
        Fail over the busiest coach afterwards and verify the moves
  -verbose
        Log every failed request and mismatch
  -help
        Show this help message

Examples:
  go run ./cmd/load-decisions -athletes 5000 -workers 16
  go run ./cmd/load-decisions -failover -url http://localhost:8080
`)
}
