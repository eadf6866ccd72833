package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/spf13/cobra"

	"skim.dev/go/internal/ledger"
)

func seedLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skim.db")
	store, err := ledger.Open(path)
	qt.Assert(t, qt.IsNil(err))
	defer store.Close()

	runID, err := store.NewRun("public_api_only=true")
	qt.Assert(t, qt.IsNil(err))
	err = store.RecordFile(runID, "a.go", 400, 120, []string{"comments"}, false, false)
	qt.Assert(t, qt.IsNil(err))
	return path
}

func newStatsTestCommand(t *testing.T, buf *bytes.Buffer) *Command {
	t.Helper()
	cc := &cobra.Command{Use: "stats"}
	cc.Flags().Int(string(flagLimit), 10, "")
	cc.Flags().String(string(flagFormat), "text", "")
	cc.SetOut(buf)
	return &Command{Command: cc, root: cc}
}

func TestRunStatsTextFormat(t *testing.T) {
	path := seedLedger(t)
	var buf bytes.Buffer
	c := newStatsTestCommand(t, &buf)

	err := runStats(c, []string{path})
	qt.Assert(t, qt.IsNil(err))
	out := buf.String()
	qt.Assert(t, qt.StringContains(out, "public_api_only=true"))
	qt.Assert(t, qt.StringContains(out, "a.go"))
	qt.Assert(t, qt.StringContains(out, "1 files, 400 -> 120 tokens"))
}

func TestRunStatsYAMLFormat(t *testing.T) {
	path := seedLedger(t)
	var buf bytes.Buffer
	c := newStatsTestCommand(t, &buf)
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagFormat), "yaml")))

	err := runStats(c, []string{path})
	qt.Assert(t, qt.IsNil(err))
	out := buf.String()
	qt.Assert(t, qt.StringContains(out, "path: a.go"))
}

func TestRunStatsMissingDatabaseErrors(t *testing.T) {
	var buf bytes.Buffer
	c := newStatsTestCommand(t, &buf)
	err := runStats(c, []string{filepath.Join(t.TempDir(), "nope", "skim.db")})
	qt.Assert(t, qt.IsNotNil(err))
}
