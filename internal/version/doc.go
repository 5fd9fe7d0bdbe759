// Package version exposes build metadata.
//
// Version, Commit and BuildTime are injected via ldflags and default to
// local-build values. Short and Full render them for CLI output; AppID
// renders the identifier attached to provider API traffic.
package version
