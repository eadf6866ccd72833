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

// Package optimize implements the five optimizer passes of §4.2–§4.6: the
// public-API filter, comment optimizer, import optimizer, literal
// optimizer, and function-body optimizer. Each pass consumes a
// segment.SourceFile and a policy.Policy and produces a new SourceFile;
// passes never mutate their input, and never panic — failure is reported
// through Outcome, per §7's "outcome variant" contract.
package optimize

import (
	"skim.dev/go/langsyntax"
	"skim.dev/go/policy"
	"skim.dev/go/segment"
)

// Outcome is the `{ ok: SourceFile } | { failed: reason, original: SourceFile }`
// variant of §7: a pass that fails leaves the controller free to skip it
// and continue with the unmodified file rather than aborting the pipeline.
type Outcome struct {
	File   *segment.SourceFile
	Failed bool
	Reason string
}

// Ok wraps a successfully produced SourceFile.
func Ok(f *segment.SourceFile) Outcome { return Outcome{File: f} }

// Failed wraps a pass failure; original is returned unchanged so the
// controller can continue with the rest of the pipeline.
func Failed(original *segment.SourceFile, reason string) Outcome {
	return Outcome{File: original, Failed: true, Reason: reason}
}

// Pass is implemented by each of the five optimizer passes.
type Pass interface {
	Name() string
	Run(file *segment.SourceFile, p policy.Policy, adapter langsyntax.Adapter) Outcome
}

// Order is the fixed pass order of §4.7 step 1: cheap structural removals
// before expensive token-aware rewrites.
func Order() []Pass {
	return []Pass{
		PublicAPIFilter{},
		CommentOptimizer{},
		ImportOptimizer{},
		LiteralOptimizer{},
		FunctionBodyOptimizer{},
	}
}

// Run applies every pass in Order to file, in sequence, skipping (not
// aborting on) any pass that fails. It returns the final SourceFile and the
// names of any passes that failed, for diagnostics.
func Run(file *segment.SourceFile, p policy.Policy, adapter langsyntax.Adapter) (*segment.SourceFile, []string) {
	var failed []string
	cur := file
	for _, pass := range Order() {
		out := pass.Run(cur, p, adapter)
		if out.Failed {
			failed = append(failed, pass.Name()+": "+out.Reason)
			continue
		}
		cur = out.File
	}
	return cur, failed
}
