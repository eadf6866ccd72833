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

package policy

// DefaultBodyTrimTokens is the token budget the ladder hands to
// trim_to_tokens the first time it steps BodyPolicy from keep, when the
// caller's starting Policy never configured one explicitly. A caller that
// wants a specific T should set BodyTrimTokens up front; this only fills a
// gap so step (d) of §4.7 is always well-formed.
const DefaultBodyTrimTokens = 64

// Step is one rung of the fixed escalation ladder of §4.7 step 3.
type Step int

const (
	StepComments Step = iota
	StepImports
	StepLiteralHalve
	StepBody
	stepExhausted
)

func (s Step) String() string {
	switch s {
	case StepComments:
		return "lower comment policy"
	case StepImports:
		return "lower import policy"
	case StepLiteralHalve:
		return "halve literal max_tokens"
	case StepBody:
		return "lower function-body policy"
	default:
		return "exhausted"
	}
}

// Escalate returns the Policy produced by advancing one rung of the ladder
// from p, the step that was taken, and whether any rung was still
// available. The ladder order is fixed: comments, then imports, then
// literal cap (halved), then function bodies — matching §4.7 exactly.
// Each rung is tried in turn; a rung that is already at its strongest
// setting is skipped so the caller always makes progress when progress is
// possible.
func Escalate(p Policy) (next Policy, step Step, ok bool) {
	if p.Comments < CommentsStripAll {
		p.Comments++
		return p, StepComments, true
	}
	if p.Imports < ImportsStripAll {
		p.Imports++
		p.ImportsSummarize = true
		return p, StepImports, true
	}
	if p.LiteralMaxTokens == 0 {
		// "none" has no finite value to halve; route around this rung by
		// handing the literal pass a concrete, generous starting cap so
		// subsequent escalations have something to halve.
		p.LiteralMaxTokens = 512
		return p, StepLiteralHalve, true
	}
	if p.LiteralMaxTokens > 1 {
		p.LiteralMaxTokens /= 2
		return p, StepLiteralHalve, true
	}
	if p.Body < BodyStrip {
		switch p.Body {
		case BodyKeep:
			p.Body = BodyTrimToTokens
			if p.BodyTrimTokens <= 0 {
				p.BodyTrimTokens = DefaultBodyTrimTokens
			}
		case BodyTrimToTokens:
			p.Body = BodyStrip
		}
		return p, StepBody, true
	}
	return p, stepExhausted, false
}
