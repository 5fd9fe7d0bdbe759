// Package report defines the machine-readable result payload.
//
// The reconciler writes exactly one JSON object to stdout per run, so callers
// and automation can parse the outcome without scraping logs. Logs go to
// stderr and never mix with the payload.
package report
