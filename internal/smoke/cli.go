package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Launch Dashboard Smoke Check
============================

Walks every launch site option of a running dashboard, requests both
charts and the launch listing, and verifies:
  - every site success rate lies in [0, 1]
  - a site's success and failure counts add up to its launches
  - every listed launch and scatter point lies in the requested payload range

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the dashboard (default "http://127.0.0.1:8050")
  -timeout duration
        HTTP request timeout (default 10s)
  -workers int
        Sites checked concurrently (default CPU cores)
  -verbose
        Log every site check
  -help
        Show this help message

Exit status is 1 when a check fails or the dashboard cannot be reached.
`)
}
