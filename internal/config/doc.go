// Package config resolves the provider connection parameters for a single
// reconciler invocation.
//
// Values merge from three sources, weakest first: an optional YAML settings
// file, environment variable fallback chains (AWS_* with legacy EC2_*
// aliases), and flag overrides. A dotenv file can be preloaded into the
// environment before resolution. The region is the only hard requirement and
// its absence is reported before any remote call is attempted.
package config
