package budget

import (
	"testing"

	"github.com/go-quicktest/qt"

	"skim.dev/go/lang/golang"
	"skim.dev/go/policy"
	"skim.dev/go/tokencount"
)

func newCache(t *testing.T) *tokencount.Cache {
	t.Helper()
	c, err := tokencount.NewCache(256)
	qt.Assert(t, qt.IsNil(err))
	return c
}

func TestRunNoBudgetAppliesPolicyOnce(t *testing.T) {
	a := golang.New()
	sf, err := a.Segment("input", []byte("package foo\n\nfunc F() {\n\treturn\n}\n"))
	qt.Assert(t, qt.IsNil(err))

	res := Run(sf, policy.Default(), a, newCache(t))
	qt.Assert(t, qt.IsFalse(res.BudgetUnmet))
	qt.Assert(t, qt.HasLen(res.Escalations, 0))
	qt.Assert(t, qt.Equals(res.FinalPolicy, policy.Default()))
}

func TestRunEscalatesUntilWithinBudget(t *testing.T) {
	a := golang.New()
	src := `package foo

// Package-level documentation describing this file's purpose at length.
func F() {
	x := "a fairly long string literal that takes up a good number of tokens"
	_ = x
}
`
	sf, err := a.Segment("input", []byte(src))
	qt.Assert(t, qt.IsNil(err))

	p := policy.Default()
	p.TargetBudgetTokens = 12

	res := Run(sf, p, a, newCache(t))
	qt.Assert(t, qt.IsTrue(len(res.Escalations) > 0))
	fits := tokencount.Estimate(res.Text) <= 12
	qt.Assert(t, qt.IsTrue(fits || res.BudgetUnmet))
}

func TestRunBudgetUnmetWhenLadderExhausted(t *testing.T) {
	a := golang.New()
	sf, err := a.Segment("input", []byte("package foo\n\nfunc F() {\n\treturn\n}\n"))
	qt.Assert(t, qt.IsNil(err))

	p := policy.Default()
	p.TargetBudgetTokens = 1

	res := Run(sf, p, a, newCache(t))
	qt.Assert(t, qt.IsTrue(res.BudgetUnmet))
	qt.Assert(t, qt.Equals(res.FinalPolicy.Body, policy.BodyStrip))
}

func TestRunRestartsFromOriginalEachRung(t *testing.T) {
	a := golang.New()
	src := `package foo

// doc
func F() {
	return
}
`
	sf, err := a.Segment("input", []byte(src))
	qt.Assert(t, qt.IsNil(err))

	p := policy.Default()
	p.TargetBudgetTokens = 5

	res := Run(sf, p, a, newCache(t))
	// Even after several escalation rungs, the module declaration (package
	// foo) must still be present: each rung restarts optimize.Run from the
	// original segmented file, so nothing compounds into double-elision.
	qt.Assert(t, qt.StringContains(res.Text, "package foo"))
}
