// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a sane console encoder on stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities,
//   - an optional rotating JSON file sink,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Logs never touch stdout: that stream carries the single reconciliation
// result payload. All packages accept a context and extract the logger from
// it, enabling scoped, structured logging throughout the codebase.
package logger
