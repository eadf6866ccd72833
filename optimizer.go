// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package skim is the root package: Optimize wires the segmenter, the five
// optimizer passes, the budget controller, and the renderer into the single
// pure function described in spec.md §2 and §5 — a function of
// (text, Policy), with no I/O of its own.
package skim

import (
	"skim.dev/go/budget"
	"skim.dev/go/errors"
	"skim.dev/go/langsyntax"
	"skim.dev/go/policy"
	"skim.dev/go/token"
	"skim.dev/go/tokencount"
)

// Diagnostics reports the non-fatal conditions Optimize encountered, per
// §7's error-handling design: none of these stop Optimize from returning a
// best-effort result.
type Diagnostics struct {
	// SegmentationFailed is set when the adapter could not segment the
	// input (e.g. unbalanced braces); Text is then the original,
	// unmodified input.
	SegmentationFailed bool
	SegmentationError  errors.Error

	// FailedPasses names any optimizer pass that failed and was skipped
	// (§7's per-pass outcome variant), in pipeline order.
	FailedPasses []string

	// BudgetUnmet is set when TargetBudgetTokens was requested but the
	// escalation ladder was exhausted while still over budget.
	BudgetUnmet bool

	// Escalations records the ladder steps taken, in order, when
	// TargetBudgetTokens required escalating past the starting Policy.
	Escalations []policy.Step

	// FinalPolicy is the Policy actually applied to produce Text: equal
	// to the input Policy unless escalation changed it.
	FinalPolicy policy.Policy
}

// cacheSize bounds the per-call token-estimate cache (§6): generous enough
// that a single file's escalation run never evicts a substring it will
// re-measure on the next rung, small enough to bound memory for very large
// inputs.
const cacheSize = 4096

// Optimize applies p to text using adapter's language rules, returning the
// optimized text and diagnostics. It never returns an error for conditions
// spec.md §7 defines as recoverable; Diagnostics reports them instead. It
// does return an error for policy.Validate failures, since those are
// caller mistakes the caller must fix before retrying.
func Optimize(text string, p policy.Policy, adapter langsyntax.Adapter) (string, Diagnostics, error) {
	if verr := p.Validate(); verr != nil {
		return "", Diagnostics{}, verr
	}

	file, serr := adapter.Segment("input", []byte(text))
	if serr != nil {
		perr := errors.Newf(errors.SegmentationFailure, token.NoPos, "%v", serr)
		return text, Diagnostics{SegmentationFailed: true, SegmentationError: perr, FinalPolicy: p}, nil
	}

	cache, err := tokencount.NewCache(cacheSize)
	if err != nil {
		return text, Diagnostics{FinalPolicy: p}, err
	}

	res := budget.Run(file, p, adapter, cache)
	return res.Text, Diagnostics{
		FailedPasses: res.FailedPasses,
		BudgetUnmet:  res.BudgetUnmet,
		Escalations:  res.Escalations,
		FinalPolicy:  res.FinalPolicy,
	}, nil
}
