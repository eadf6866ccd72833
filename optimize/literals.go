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

// LiteralOptimizer implements §4.5: each LiteralSpan recorded on a
// surviving Decl's body is preserved verbatim if it already fits within
// the configured per-literal budget M, otherwise trimmed by its kind-
// specific rule with a trailing token-accounting annotation appended
// in place, on the same line.
type LiteralOptimizer struct{}

func (LiteralOptimizer) Name() string { return "literal-optimizer" }

func (LiteralOptimizer) Run(file *segment.SourceFile, p policy.Policy, _ langsyntax.Adapter) Outcome {
	if p.LiteralMaxTokens <= 0 {
		return Ok(file) // "none": literals always preserved verbatim
	}
	out := &segment.SourceFile{Name: file.Name}
	for _, s := range file.Segments {
		d, ok := s.(*segment.Decl)
		if !ok || !d.HasBody || len(d.Literals) == 0 {
			out.Segments = append(out.Segments, s)
			continue
		}
		out.Segments = append(out.Segments, trimDeclLiterals(d, p.LiteralMaxTokens))
	}
	return Ok(out)
}

func trimDeclLiterals(d *segment.Decl, maxTokens int) *segment.Decl {
	var b strings.Builder
	pos := 0
	newSpans := make([]segment.LiteralSpan, 0, len(d.Literals))
	for _, span := range d.Literals {
		b.WriteString(d.Body[pos:span.ByteStart])
		original := d.Body[span.ByteStart:span.ByteEnd]
		newText, dropped, trimmed := trimLiteralSpan(original, span.Kind, maxTokens)
		start := b.Len()
		b.WriteString(newText)
		if trimmed {
			b.WriteString(" // ")
			b.WriteString(literalMarker(span.Kind, dropped))
		}
		newSpans = append(newSpans, segment.LiteralSpan{
			Kind:          span.Kind,
			ByteStart:     start,
			ByteEnd:       b.Len(),
			TokenEstimate: tokencount.Estimate(newText),
			Depth:         span.Depth,
		})
		pos = span.ByteEnd
	}
	b.WriteString(d.Body[pos:])
	nd := *d
	nd.Body = b.String()
	nd.Literals = newSpans
	return &nd
}

func trimLiteralSpan(original string, kind segment.LiteralKind, maxTokens int) (newText string, dropped int, trimmed bool) {
	est := tokencount.Estimate(original)
	if est <= maxTokens {
		return original, 0, false
	}
	switch kind {
	case segment.LiteralString:
		newText = trimStringLiteral(original, maxTokens)
	case segment.LiteralSequence:
		newText = trimSequenceLiteral(original, maxTokens)
	case segment.LiteralMapping:
		newText = trimMappingLiteral(original, maxTokens)
	default:
		newText = original
	}
	newEst := tokencount.Estimate(newText)
	dropped = est - newEst
	if dropped < 0 {
		dropped = 0
	}
	return newText, dropped, true
}

const literalEllipsis = "…"

// trimStringLiteral truncates content at a rune boundary so the result,
// including delimiters and a trailing ellipsis, fits within maxTokens,
// preserving the original quote/backtick delimiter style on both ends.
func trimStringLiteral(original string, maxTokens int) string {
	if len(original) < 2 {
		return original
	}
	delimOpen := original[:1]
	delimClose := original[len(original)-1:]
	content := []rune(original[1 : len(original)-1])

	lo, hi, best := 0, len(content), 0
	for lo <= hi {
		mid := (lo + hi) / 2
		candidate := delimOpen + string(content[:mid]) + literalEllipsis + delimClose
		if tokencount.Estimate(candidate) <= maxTokens {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return delimOpen + string(content[:best]) + literalEllipsis + delimClose
}

// trimSequenceLiteral keeps a token-budgeted prefix of a {...} composite
// literal's elements, plus a trailing placeholder element.
func trimSequenceLiteral(original string, maxTokens int) string {
	if len(original) < 2 {
		return original
	}
	elems := splitTopLevelElements(original[1 : len(original)-1])
	var kept []string
	for _, e := range elems {
		candidate := "{" + strings.Join(append(append([]string{}, kept...), e, literalEllipsis), ", ") + "}"
		if tokencount.Estimate(candidate) <= maxTokens {
			kept = append(kept, e)
			continue
		}
		break
	}
	return "{" + strings.Join(append(append([]string{}, kept...), literalEllipsis), ", ") + "}"
}

// trimMappingLiteral applies the same prefix rule as trimSequenceLiteral,
// except an empty retained prefix collapses the whole body to "{ … }"
// rather than keeping a bare placeholder entry.
func trimMappingLiteral(original string, maxTokens int) string {
	if len(original) < 2 {
		return original
	}
	entries := splitTopLevelElements(original[1 : len(original)-1])
	var kept []string
	for _, e := range entries {
		candidate := "{" + strings.Join(append(append([]string{}, kept...), e, literalEllipsis), ", ") + "}"
		if tokencount.Estimate(candidate) <= maxTokens {
			kept = append(kept, e)
			continue
		}
		break
	}
	if len(kept) == 0 {
		return "{ " + literalEllipsis + " }"
	}
	return "{" + strings.Join(append(append([]string{}, kept...), literalEllipsis), ", ") + "}"
}

// splitTopLevelElements splits a composite literal's inner text on commas
// at brace/bracket/paren depth 0, skipping over string and raw-string
// contents so a comma inside one never counts as a separator.
func splitTopLevelElements(inner string) []string {
	var elems []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '"':
			i++
			for i < len(inner) && inner[i] != '"' {
				if inner[i] == '\\' {
					i++
				}
				i++
			}
		case '`':
			i++
			for i < len(inner) && inner[i] != '`' {
				i++
			}
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				elems = append(elems, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(inner[start:]); rest != "" {
		elems = append(elems, rest)
	}
	return elems
}
