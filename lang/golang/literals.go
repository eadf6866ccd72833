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

package golang

import "skim.dev/go/segment"

var controlKeywords = map[string]bool{
	"if": true, "for": true, "switch": true, "select": true,
	"else": true, "range": true, "go": true, "defer": true, "return": true,
}

// detectLiterals finds string and composite-literal spans inside a
// function or method body, the way the literal optimizer (§4.5) needs them:
// independent spans it can measure and trim without re-parsing the body.
// This is a lexical heuristic, not a type-aware parse: a '{' counts as a
// composite literal opener unless it immediately follows a control-flow
// keyword, matching how struct/slice/map literals actually read in
// formatted Go source.
func detectLiterals(body string, baseOffset int) []segment.LiteralSpan {
	var out []segment.LiteralSpan
	n := len(body)
	for i := 0; i < n; i++ {
		switch body[i] {
		case '"':
			start := i
			i++
			for i < n && body[i] != '"' {
				if body[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			if i < n {
				i++
			}
			out = append(out, segment.LiteralSpan{
				Kind: segment.LiteralString, ByteStart: baseOffset + start, ByteEnd: baseOffset + i,
			})
			i--
		case '`':
			start := i
			i++
			for i < n && body[i] != '`' {
				i++
			}
			if i < n {
				i++
			}
			out = append(out, segment.LiteralSpan{
				Kind: segment.LiteralString, ByteStart: baseOffset + start, ByteEnd: baseOffset + i,
			})
			i--
		case '{':
			if !isCompositeOpen(body, i) {
				continue
			}
			close := matchBrace(body, i)
			if close < 0 {
				close = n - 1
			}
			kind := segment.LiteralSequence
			if precedingIsMap(body, i) {
				kind = segment.LiteralMapping
			}
			out = append(out, segment.LiteralSpan{
				Kind: kind, ByteStart: baseOffset + i, ByteEnd: baseOffset + close + 1,
			})
			i = close
		}
	}
	return out
}

// matchBrace returns the offset of the '}' matching the '{' at open,
// skipping over any quoted strings so a brace inside a literal's own string
// elements doesn't confuse the count.
func matchBrace(body string, open int) int {
	depth := 0
	i := open
	for i < len(body) {
		switch body[i] {
		case '"':
			i++
			for i < len(body) && body[i] != '"' {
				if body[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case '`':
			i++
			for i < len(body) && body[i] != '`' {
				i++
			}
			i++
		case '{':
			depth++
			i++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
			i++
		default:
			i++
		}
	}
	return -1
}

func isCompositeOpen(body string, i int) bool {
	j := i - 1
	for j >= 0 && isSpaceByte(body[j]) {
		j--
	}
	if j < 0 {
		return false
	}
	if body[j] == ']' || body[j] == ')' {
		return true
	}
	end := j + 1
	for j >= 0 && isIdentByte(body[j]) {
		j--
	}
	word := body[j+1 : end]
	if word == "" || controlKeywords[word] {
		return false
	}
	return true
}

// precedingIsMap reports whether the identifier run immediately before a
// composite literal's opening brace is the value type of a map[K]V{...}
// literal.
func precedingIsMap(body string, i int) bool {
	j := i - 1
	for j >= 0 && isSpaceByte(body[j]) {
		j--
	}
	for j >= 0 && isIdentByte(body[j]) {
		j--
	}
	for j >= 0 && isSpaceByte(body[j]) {
		j--
	}
	if j < 0 || body[j] != ']' {
		return false
	}
	// Walk back to the matching '[' and require "map" just before it, so
	// []T{...} and [N]T{...} are not taken for maps.
	for depth := 0; j >= 0; j-- {
		if body[j] == ']' {
			depth++
		} else if body[j] == '[' {
			if depth--; depth == 0 {
				break
			}
		}
	}
	return j >= 3 && body[j-3:j] == "map"
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
