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

// Package policy declares the immutable configuration consumed by the
// optimizer passes and the budget controller (§6), along with the fixed
// escalation ladder the controller steps through when a rendering is over
// budget (§4.7).
package policy

import (
	"fmt"

	"skim.dev/go/errors"
	"skim.dev/go/token"
)

// CommentPolicy is one of the four comment-pass behaviors of §4.3.
type CommentPolicy int

const (
	CommentsKeepAll CommentPolicy = iota
	CommentsKeepDocOnly
	CommentsKeepFirstSentence
	CommentsStripAll
)

func (p CommentPolicy) String() string {
	switch p {
	case CommentsKeepAll:
		return "keep_all"
	case CommentsKeepDocOnly:
		return "keep_doc_only"
	case CommentsKeepFirstSentence:
		return "keep_first_sentence"
	case CommentsStripAll:
		return "strip_all"
	default:
		return "unknown"
	}
}

// ImportPolicy is one of the three import-pass behaviors of §4.4.
type ImportPolicy int

const (
	ImportsKeepAll ImportPolicy = iota
	ImportsStripExternal
	ImportsStripAll
)

func (p ImportPolicy) String() string {
	switch p {
	case ImportsKeepAll:
		return "keep_all"
	case ImportsStripExternal:
		return "strip_external"
	case ImportsStripAll:
		return "strip_all"
	default:
		return "unknown"
	}
}

// BodyPolicy is one of the three function-body behaviors of §4.6.
type BodyPolicy int

const (
	BodyKeep BodyPolicy = iota
	BodyTrimToTokens
	BodyStrip
)

func (p BodyPolicy) String() string {
	switch p {
	case BodyKeep:
		return "keep"
	case BodyTrimToTokens:
		return "trim_to_tokens"
	case BodyStrip:
		return "strip"
	default:
		return "unknown"
	}
}

// Policy is the immutable configuration of §6: which passes run and under
// what thresholds. A Policy value is never mutated; the escalation ladder
// (Escalate) returns a new Policy for each step.
type Policy struct {
	PublicAPIOnly bool

	Comments CommentPolicy

	Imports           ImportPolicy
	ImportsSummarize  bool

	// LiteralMaxTokens is the per-literal budget M of §4.5. A value of 0
	// means "none" (no cap; literals are always preserved verbatim).
	LiteralMaxTokens int

	Body BodyPolicy
	// BodyTrimTokens is T for BodyTrimToTokens.
	BodyTrimTokens int

	// TargetBudgetTokens is B of §4.7. A value of 0 means "None": apply
	// the policy as configured and do not escalate.
	TargetBudgetTokens int
}

// Default is the identity policy (§8 P2): every switch at its most
// permissive setting, so Optimize(text, Default) == text.
func Default() Policy {
	return Policy{
		PublicAPIOnly:      false,
		Comments:           CommentsKeepAll,
		Imports:            ImportsKeepAll,
		ImportsSummarize:   false,
		LiteralMaxTokens:   0,
		Body:               BodyKeep,
		BodyTrimTokens:     0,
		TargetBudgetTokens: 0,
	}
}

// Validate rejects impossible combinations at configuration time (§7
// Policy-Conflict), so the pipeline never discovers the conflict at
// runtime. It must be called before a Policy is used.
func (p Policy) Validate() errors.Error {
	if p.Body == BodyTrimToTokens && p.BodyTrimTokens <= 0 {
		return errors.Newf(errors.PolicyConflict, token.NoPos,
			"function_bodies: trim_to_tokens requires a positive token budget, got %d", p.BodyTrimTokens)
	}
	if p.LiteralMaxTokens < 0 {
		return errors.Newf(errors.PolicyConflict, token.NoPos,
			"literals: max_tokens must be non-negative, got %d", p.LiteralMaxTokens)
	}
	if p.TargetBudgetTokens < 0 {
		return errors.Newf(errors.PolicyConflict, token.NoPos,
			"target_budget_tokens must be non-negative, got %d", p.TargetBudgetTokens)
	}
	if p.Body == BodyTrimToTokens && p.BodyTrimTokens > 0 && p.TargetBudgetTokens > 0 &&
		p.BodyTrimTokens > p.TargetBudgetTokens {
		return errors.Newf(errors.PolicyConflict, token.NoPos,
			"function_bodies.trim_to_tokens(%d) can never fit within target_budget_tokens(%d)",
			p.BodyTrimTokens, p.TargetBudgetTokens)
	}
	return nil
}

// String renders a Policy for diagnostics and ledger entries.
func (p Policy) String() string {
	return fmt.Sprintf(
		"public_api_only=%v comments=%s imports=%s(summarize=%v) literals.max_tokens=%d function_bodies=%s(T=%d) target_budget_tokens=%d",
		p.PublicAPIOnly, p.Comments, p.Imports, p.ImportsSummarize, p.LiteralMaxTokens,
		p.Body, p.BodyTrimTokens, p.TargetBudgetTokens,
	)
}
