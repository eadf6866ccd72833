package ledger

import (
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skim.db")
	s, err := Open(path)
	qt.Assert(t, qt.IsNil(err))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewRunAssignsID(t *testing.T) {
	s := openTestStore(t)
	id, err := s.NewRun("public_api_only=true")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.Equals(id, "")))
}

func TestRecordFileAndRunsRoundtrip(t *testing.T) {
	s := openTestStore(t)
	id, err := s.NewRun("comments=strip_all")
	qt.Assert(t, qt.IsNil(err))

	err = s.RecordFile(id, "a.go", 400, 120, []string{"comments", "imports"}, false, false)
	qt.Assert(t, qt.IsNil(err))
	err = s.RecordFile(id, "b.go", 900, 900, nil, true, false)
	qt.Assert(t, qt.IsNil(err))

	runs, err := s.Runs(0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(runs, 1))
	qt.Assert(t, qt.Equals(runs[0].ID, id))
	qt.Assert(t, qt.HasLen(runs[0].Files, 2))

	byPath := make(map[string]FileResult)
	for _, f := range runs[0].Files {
		byPath[f.Path] = f
	}
	qt.Assert(t, qt.Equals(byPath["a.go"].TokensBefore, 400))
	qt.Assert(t, qt.Equals(byPath["a.go"].TokensAfter, 120))
	qt.Assert(t, qt.Equals(byPath["a.go"].Escalations, "comments,imports"))
	qt.Assert(t, qt.IsFalse(byPath["a.go"].BudgetUnmet))
	qt.Assert(t, qt.IsTrue(byPath["b.go"].BudgetUnmet))
	qt.Assert(t, qt.Equals(byPath["b.go"].Escalations, ""))
}

func TestRunsRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.NewRun("keep_all")
		qt.Assert(t, qt.IsNil(err))
	}
	runs, err := s.Runs(2)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(runs, 2))
}

func TestRunsZeroReturnsAll(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.NewRun("keep_all")
		qt.Assert(t, qt.IsNil(err))
	}
	runs, err := s.Runs(0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(runs, 3))
}
