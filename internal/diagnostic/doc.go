// Package diagnostic provides structured errors, warnings and notes
// reported while planning tag code for a package.
//
// Key capabilities:
//   - Unknown type and field references in the configuration
//   - Fields without an encoding strategy
//   - Conflicting tag keys
//   - Logging of every diagnostic through log/slog
package diagnostic
