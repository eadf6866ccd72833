// Package log wires charm.land/log/v2 into the CLI and the run ledger.
// Nothing in the core pipeline (segment, optimize, budget, render) imports
// this package: those packages return values and diagnostics, never log
// lines, per spec.md §5's "no I/O" contract. Only cmd/skim and
// internal/ledger — the collaborators spec.md explicitly places outside the
// core — use it.
package log

import (
	"fmt"
	"io"
	"strings"

	charmlog "charm.land/log/v2"
)

// Logger wraps a charm.land/log/v2 logger with the handful of calls the CLI
// and ledger need; it exists so callers depend on this package's narrow
// surface rather than the full charmlog API.
type Logger struct {
	l *charmlog.Logger
}

// New builds a Logger writing to w at the given level ("debug", "info",
// "warn", "error"; anything else falls back to "info").
func New(w io.Writer, level string) *Logger {
	l := charmlog.New(w)
	l.SetLevel(parseLevel(level))
	l.SetReportTimestamp(false)
	return &Logger{l: l}
}

func parseLevel(level string) charmlog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return charmlog.DebugLevel
	case "warn", "warning":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// Debug, Info, Warn and Error log a message with structured key/value
// pairs, mirroring charmlog's own calling convention.
func (lg *Logger) Debug(msg string, kv ...interface{}) { lg.l.Debug(msg, kv...) }
func (lg *Logger) Info(msg string, kv ...interface{})  { lg.l.Info(msg, kv...) }
func (lg *Logger) Warn(msg string, kv ...interface{})  { lg.l.Warn(msg, kv...) }
func (lg *Logger) Error(msg string, kv ...interface{}) { lg.l.Error(msg, kv...) }

// SegmentationFailure logs a recovered Segmentation-Failure diagnostic
// (skim.Diagnostics.SegmentationFailed): the file was returned unchanged.
func (lg *Logger) SegmentationFailure(path string, err error) {
	lg.Warn("segmentation failed, file returned unchanged", "path", path, "error", err)
}

// BudgetUnmet logs a Budget-Unmet diagnostic: the escalation ladder was
// exhausted while still over budget.
func (lg *Logger) BudgetUnmet(path string, tokens, budget int) {
	lg.Warn("budget unmet", "path", path, "tokens", tokens, "target_budget_tokens", budget)
}

// FailedPasses logs the names of any optimizer passes the controller
// skipped after they reported a failed outcome (§7's per-pass outcome
// variant).
func (lg *Logger) FailedPasses(path string, passes []string) {
	if len(passes) == 0 {
		return
	}
	lg.Warn(fmt.Sprintf("%d pass(es) skipped", len(passes)), "path", path, "passes", strings.Join(passes, ","))
}
