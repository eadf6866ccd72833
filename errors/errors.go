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

// Package errors defines the error kinds used across the optimization
// pipeline: Segmentation-Failure, Policy-Conflict, Budget-Unmet and
// Estimator-Nondeterminism.
package errors

import (
	"errors"
	"fmt"

	"skim.dev/go/token"
)

// Kind identifies one of the error kinds a pass or the controller may
// encounter.
type Kind int

const (
	// SegmentationFailure means the segmenter found unbalanced braces
	// before end-of-file; the pipeline aborts and the original text is
	// returned unchanged.
	SegmentationFailure Kind = iota
	// PolicyConflict means an impossible policy combination was rejected
	// at validation time; it is never reached at runtime.
	PolicyConflict
	// BudgetUnmet means the escalation ladder was exhausted while still
	// over budget; non-fatal, the best-effort render is still returned.
	BudgetUnmet
	// EstimatorNondeterminism means a repeat run under the same policy
	// produced a different token count; reported, not recovered.
	EstimatorNondeterminism
)

func (k Kind) String() string {
	switch k {
	case SegmentationFailure:
		return "Segmentation-Failure"
	case PolicyConflict:
		return "Policy-Conflict"
	case BudgetUnmet:
		return "Budget-Unmet"
	case EstimatorNondeterminism:
		return "Estimator-Nondeterminism"
	default:
		return "unknown"
	}
}

// Error is the common error type produced by the pipeline.
type Error interface {
	error
	// Kind reports which of the four error kinds this is.
	Kind() Kind
	// Position returns the primary position of the error, if any.
	Position() token.Position
}

type posError struct {
	kind Kind
	pos  token.Position
	msg  string
}

func (e *posError) Error() string {
	if e.pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.pos, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *posError) Kind() Kind              { return e.kind }
func (e *posError) Position() token.Position { return e.pos }

// New creates an Error of the given kind at the given position.
func New(kind Kind, pos token.Position, msg string) Error {
	return &posError{kind: kind, pos: pos, msg: msg}
}

// Newf is like New but formats msg with args.
func Newf(kind Kind, pos token.Position, format string, args ...interface{}) Error {
	return New(kind, pos, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching the type target points
// to.
func As(err error, target interface{}) bool { return errors.As(err, target) }
