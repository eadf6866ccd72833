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

package optimize

import (
	"strings"

	"skim.dev/go/langsyntax"
	"skim.dev/go/policy"
	"skim.dev/go/segment"
	"skim.dev/go/tokencount"
)

// FunctionBodyOptimizer implements §4.6. It only ever touches function and
// method bodies; struct/enum/trait bodies and the like are untouched by
// this pass (they have no Body to begin with — only HasBody Decls do).
type FunctionBodyOptimizer struct{}

func (FunctionBodyOptimizer) Name() string { return "function-body-optimizer" }

func (FunctionBodyOptimizer) Run(file *segment.SourceFile, p policy.Policy, _ langsyntax.Adapter) Outcome {
	if p.Body == policy.BodyKeep {
		return Ok(file)
	}
	out := &segment.SourceFile{Name: file.Name}
	for _, s := range file.Segments {
		d, ok := s.(*segment.Decl)
		if !ok || !d.HasBody || (d.Kind != segment.KindFunction && d.Kind != segment.KindMethod) {
			out.Segments = append(out.Segments, s)
			continue
		}
		out.Segments = append(out.Segments, optimizeBody(d, p))
	}
	return Ok(out)
}

func optimizeBody(d *segment.Decl, p policy.Policy) *segment.Decl {
	switch p.Body {
	case policy.BodyStrip:
		return stripBody(d)
	case policy.BodyTrimToTokens:
		kept, droppedLines, survivors, ok := trimBodyToTokens(d.Body, d.Literals, d.Kind, p.BodyTrimTokens)
		if !ok {
			return stripBody(d)
		}
		nd := *d
		nd.Body = kept
		nd.Literals = survivors
		nd.BodyMarker = withLines(bodyTruncatedText(d.Kind), droppedLines)
		return &nd
	default:
		return d
	}
}

func stripBody(d *segment.Decl) *segment.Decl {
	nd := *d
	lines := countBodyLines(d.Body)
	nd.Body = ""
	nd.Literals = nil
	nd.BodyMarker = withLines(bodyOmittedText(d.Kind), lines)
	return &nd
}

// trimBodyToTokens keeps the longest whole-line prefix of body whose
// rendered token estimate (line text plus the eventual marker line) stays
// within maxTokens, never stopping at a boundary that falls strictly
// inside a literal span or at a nonzero brace depth — §4.6 requires the
// kept prefix to end at a depth-0-within-the-body statement boundary, so a
// cut after only the first line of a nested "if { ... }" is rejected the
// same as a cut through the middle of a literal. ok is false when not even
// the first line fits, signaling the caller should fall back to stripBody.
func trimBodyToTokens(body string, spans []segment.LiteralSpan, kind segment.DeclKind, maxTokens int) (kept string, droppedLines int, survivors []segment.LiteralSpan, ok bool) {
	if strings.TrimSpace(body) == "" {
		return "", 0, nil, false
	}
	total := countBodyLines(body)
	depths := bodyDepths(body)

	lineEnds := []int{}
	for i := 0; i < len(body); i++ {
		if body[i] == '\n' {
			lineEnds = append(lineEnds, i+1)
		}
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		lineEnds = append(lineEnds, len(body))
	}

	bestEnd := -1
	bestDropped := total
	for _, end := range lineEnds {
		if spanStraddles(spans, end) || depths[end] != 0 {
			continue
		}
		prefix := body[:end]
		keptLines := countBodyLines(prefix)
		droppedHere := total - keptLines
		candidate := prefix + "\n" + withLines(bodyTruncatedText(kind), droppedHere)
		if tokencount.Estimate(candidate) > maxTokens {
			break
		}
		bestEnd = end
		bestDropped = droppedHere
	}
	if bestEnd < 0 {
		return "", 0, nil, false
	}
	return body[:bestEnd], bestDropped, spansWithin(spans, bestEnd), true
}

// bodyDepths returns, for every offset 0..len(body), the brace-nesting
// depth of body's first `offset` bytes — depths[0] is always 0 and
// depths[len(body)] is 0 for a well-formed body. It walks the text the
// same way lang/golang's classify does (string, rune, raw-string, and
// line/block comment regions never perturb the count), but stays local to
// this package since FunctionBodyOptimizer works on a Decl's already-
// extracted body text rather than a whole source file.
func bodyDepths(body string) []int {
	n := len(body)
	depths := make([]int, n+1)
	d := 0
	i := 0
	for i < n {
		switch {
		case body[i] == '/' && i+1 < n && body[i+1] == '/':
			for i < n && body[i] != '\n' {
				i++
				depths[i] = d
			}
		case body[i] == '/' && i+1 < n && body[i+1] == '*':
			i += 2
			depths[i-1], depths[i] = d, d
			for i < n && !(i+1 < n && body[i] == '*' && body[i+1] == '/') {
				i++
				depths[i] = d
			}
			if i+1 < n {
				i += 2
				depths[i-1], depths[i] = d, d
			} else {
				i = n
				depths[i] = d
			}
		case body[i] == '"':
			i++
			depths[i] = d
			for i < n && body[i] != '"' && body[i] != '\n' {
				if body[i] == '\\' && i+1 < n {
					i++
					depths[i] = d
				}
				i++
				depths[i] = d
			}
			if i < n && body[i] == '"' {
				i++
				depths[i] = d
			}
		case body[i] == '\'':
			i++
			depths[i] = d
			for i < n && body[i] != '\'' && body[i] != '\n' {
				if body[i] == '\\' && i+1 < n {
					i++
					depths[i] = d
				}
				i++
				depths[i] = d
			}
			if i < n && body[i] == '\'' {
				i++
				depths[i] = d
			}
		case body[i] == '`':
			i++
			depths[i] = d
			for i < n && body[i] != '`' {
				i++
				depths[i] = d
			}
			if i < n {
				i++
				depths[i] = d
			}
		case body[i] == '{':
			d++
			i++
			depths[i] = d
		case body[i] == '}':
			d--
			if d < 0 {
				d = 0
			}
			i++
			depths[i] = d
		default:
			i++
			depths[i] = d
		}
	}
	return depths
}

// spanStraddles reports whether boundary falls strictly inside any span,
// which would split a literal in two if used as a truncation point.
func spanStraddles(spans []segment.LiteralSpan, boundary int) bool {
	for _, sp := range spans {
		if boundary > sp.ByteStart && boundary < sp.ByteEnd {
			return true
		}
	}
	return false
}

func spansWithin(spans []segment.LiteralSpan, limit int) []segment.LiteralSpan {
	var kept []segment.LiteralSpan
	for _, sp := range spans {
		if sp.ByteEnd <= limit {
			kept = append(kept, sp)
		}
	}
	return kept
}

func countBodyLines(body string) int {
	if body == "" {
		return 0
	}
	n := strings.Count(body, "\n")
	if !strings.HasSuffix(body, "\n") {
		n++
	}
	return n
}
