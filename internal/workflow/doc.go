// Package workflow implements the project-scoped measurement workflow on top
// of a remote store: generating the location grid, assigning typologies to
// locations under their capacity, capturing measured dimensions and reading
// the aggregate report.
//
// Components share one *Session per project. None of them lock: callers
// must not run two mutating operations on the same session concurrently.
package workflow
