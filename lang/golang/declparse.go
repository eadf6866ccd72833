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

import (
	"strings"

	"skim.dev/go/segment"
)

// readImportBlock parses either a single "import "path"" run of lines or a
// full "import (\n ... \n)" block, splitting the block into one
// segment.Import per blank-line-delimited sub-group so that a leading
// comment label on a sub-group survives as that group's GroupLabel.
func (s *scanner) readImportBlock(li int) ([]*segment.Import, int) {
	trimmed := strings.TrimSpace(s.lineText(li))
	if trimmed != "import (" {
		start := li
		var items []segment.ImportItem
		for li < len(s.lineStarts) && strings.HasPrefix(strings.TrimSpace(s.lineText(li)), "import ") {
			t := strings.TrimSpace(s.lineText(li))
			items = append(items, s.parseImportItem(strings.TrimPrefix(t, "import ")))
			li++
		}
		end := li - 1
		return []*segment.Import{segment.NewImport("", items, end-start+1)}, end
	}

	li++ // past "import ("
	var groups []*segment.Import
	var items []segment.ImportItem
	label := ""
	lines := 1 // credit the "import (" line to whichever group comes first

	flush := func() {
		if len(items) == 0 {
			label, lines = "", 0
			return
		}
		groups = append(groups, segment.NewImport(label, items, lines))
		items, label, lines = nil, "", 0
	}

	for ; li < len(s.lineStarts); li++ {
		t := strings.TrimSpace(s.lineText(li))
		if t == ")" {
			lines++
			flush()
			return groups, li
		}
		switch {
		case t == "":
			flush()
		case strings.HasPrefix(t, "//"):
			label = strings.TrimSpace(strings.TrimPrefix(t, "//"))
			lines++
		default:
			items = append(items, s.parseImportItem(t))
			lines++
		}
	}
	flush()
	return groups, li - 1
}

func (s *scanner) parseImportItem(t string) segment.ImportItem {
	t = strings.TrimSpace(t)
	path := t
	if i := strings.IndexByte(t, '"'); i >= 0 {
		if j := strings.LastIndexByte(t, '"'); j > i {
			path = t[i+1 : j]
		}
	}
	isLocal := s.adapter.IsLocalImport(path)
	firstComponent := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		firstComponent = path[:i]
	}
	isExternal := !isLocal && strings.ContainsRune(firstComponent, '.')
	return segment.ImportItem{Path: path, IsExternal: isExternal, IsLocal: isLocal}
}

// readValueBlock parses a "const (\n ... \n)" or "var (\n ... \n)" block,
// decomposing it into individual per-spec Decls rather than one combined
// container, so the public-API filter can elide entries one at a time.
func (s *scanner) readValueBlock(li int, kind segment.DeclKind) ([]segment.Segment, int) {
	li++ // past "const (" / "var ("
	var out []segment.Segment
	var pendingDoc []string

	flushDoc := func() {
		if len(pendingDoc) > 0 {
			out = append(out, segment.NewComment(segment.StyleLine, strings.Join(pendingDoc, "\n"), len(pendingDoc)))
			pendingDoc = nil
		}
	}

	for ; li < len(s.lineStarts); li++ {
		t := strings.TrimSpace(s.lineText(li))
		if t == ")" {
			flushDoc()
			return out, li
		}
		switch {
		case t == "":
			flushDoc()
			out = append(out, &segment.Blank{Count: 1})
		case strings.HasPrefix(t, "//"):
			pendingDoc = append(pendingDoc, strings.TrimSpace(strings.TrimPrefix(t, "//")))
		default:
			// A multi-line composite-literal initializer (e.g. "Config = Map{"
			// spanning several lines within the block) is brace-matched the
			// same way a bare top-level var/const is, so its trailing lines
			// aren't each split off into their own spurious entry.
			if openOffset, ok := s.findBraceOnLine(li); ok {
				if closeOffset, ok := s.findMatchingClose(openOffset); ok {
					endLi := s.lineOf(closeOffset)
					lineStart := s.lineStarts[li]
					_, trailing := s.trailingComment(li)
					header := strings.TrimSpace(string(s.src[lineStart:openOffset]))
					name := firstIdent(header)
					body := string(s.src[openOffset+1 : closeOffset])
					d := &segment.Decl{
						Kind: kind, Visibility: visibilityOf(name), Name: name,
						Doc: strings.Join(pendingDoc, "\n"), Signature: header + " {", Trailing: trailing,
						HasBody: true, Body: body,
					}
					d.SetLines(endLi - li + 1)
					d.Literals = detectLiterals(body, 0)
					out = append(out, d)
					pendingDoc = nil
					li = endLi
					continue
				}
			}
			code, trailing := s.trailingComment(li)
			code = strings.TrimSpace(code)
			name := firstIdent(code)
			d := &segment.Decl{
				Kind: kind, Visibility: visibilityOf(name), Name: name,
				Doc: strings.Join(pendingDoc, "\n"), Signature: code, Trailing: trailing,
			}
			d.SetLines(1)
			out = append(out, d)
			pendingDoc = nil
		}
	}
	flushDoc()
	return out, li - 1
}

// readSingleValue parses a bare (non-parenthesized) "const Name = ..." or
// "var Name = ..." declaration. When the initializer opens a top-level
// brace — a composite literal such as "var Config = Map{...}" spanning
// several physical lines — it brace-matches the same way readFunc and
// readTypeDecl do, so the whole initializer is consumed as one Decl
// instead of its trailing lines falling through to the default KindMacro
// case. That also gives a bodied initializer a real Body for §4.5 literal
// trimming, same as a function body gets.
func (s *scanner) readSingleValue(li int, kind segment.DeclKind, doc string) (*segment.Decl, int) {
	rest := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s.lineText(li)), "const "), "var ")
	name := firstIdent(rest)

	if openOffset, ok := s.findBraceOnLine(li); ok {
		if closeOffset, ok := s.findMatchingClose(openOffset); ok {
			endLi := s.lineOf(closeOffset)
			lineStart := s.lineStarts[li]
			_, trailing := s.trailingComment(li)
			sig := strings.TrimSpace(string(s.src[lineStart:openOffset])) + " {"
			body := string(s.src[openOffset+1 : closeOffset])
			d := &segment.Decl{
				Kind: kind, Visibility: visibilityOf(name), Name: name,
				Doc: doc, Signature: sig, HasBody: true, Body: body, Trailing: trailing,
			}
			d.SetLines(endLi - li + 1)
			d.Literals = detectLiterals(body, 0)
			return d, endLi
		}
	}

	code, trailing := s.trailingComment(li)
	code = strings.TrimSpace(code)
	d := &segment.Decl{
		Kind: kind, Visibility: visibilityOf(name), Name: name,
		Doc: doc, Signature: code, Trailing: trailing,
	}
	d.SetLines(1)
	return d, li
}

// readTypeDecl parses a "type Name ..." declaration: a struct or interface
// with a brace body and InnerItems, or a bodyless alias/definition.
func (s *scanner) readTypeDecl(li int, doc string) (*segment.Decl, int) {
	lineStart := s.lineStarts[li]
	code, trailing := s.trailingComment(li)
	trimmedCode := strings.TrimSpace(code)
	rest := strings.TrimPrefix(trimmedCode, "type ")
	name := firstIdent(rest)

	openOffset, hasBrace := s.findBraceOnLine(li)
	if !hasBrace {
		d := &segment.Decl{
			Kind: segment.KindTypeAlias, Visibility: visibilityOf(name), Name: name,
			Doc: doc, Signature: trimmedCode, Trailing: trailing,
		}
		d.SetLines(1)
		return d, li
	}

	closeOffset, ok := s.findMatchingClose(openOffset)
	if !ok {
		d := &segment.Decl{
			Kind: segment.KindTypeAlias, Visibility: visibilityOf(name), Name: name,
			Doc: doc, Signature: trimmedCode, Trailing: trailing,
		}
		d.SetLines(1)
		return d, li
	}
	endLi := s.lineOf(closeOffset)

	kind := segment.KindStruct
	if strings.Contains(rest, "interface") {
		kind = segment.KindTrait
	}

	sig := strings.TrimSpace(string(s.src[lineStart:openOffset])) + " {"
	body := string(s.src[openOffset+1 : closeOffset])
	inner := s.parseMembers(li+1, endLi-1, kind)

	d := &segment.Decl{
		Kind: kind, Visibility: visibilityOf(name), Name: name,
		Doc: doc, Signature: sig, HasBody: true, Body: body, Trailing: trailing,
		InnerItems: inner,
	}
	d.SetLines(endLi - li + 1)
	return d, endLi
}

// parseMembers parses struct fields or interface methods between the
// braces of a type declaration, attaching each member's own preceding doc
// comment run (§I3 applies at any nesting level, not just top level).
func (s *scanner) parseMembers(loLi, hiLi int, parentKind segment.DeclKind) []*segment.Decl {
	var out []*segment.Decl
	var pendingDoc []string
	for li := loLi; li <= hiLi && li < len(s.lineStarts); li++ {
		t := strings.TrimSpace(s.lineText(li))
		switch {
		case t == "":
			pendingDoc = nil
		case strings.HasPrefix(t, "//"):
			pendingDoc = append(pendingDoc, strings.TrimSpace(strings.TrimPrefix(t, "//")))
		default:
			code, trailing := s.trailingComment(li)
			code = strings.TrimSpace(code)
			name := firstIdent(code)
			kind := segment.KindField
			if parentKind == segment.KindTrait {
				kind = segment.KindMethod
			}
			d := &segment.Decl{
				Kind: kind, Visibility: visibilityOf(name), Name: name,
				Doc: strings.Join(pendingDoc, "\n"), Signature: code, Trailing: trailing,
			}
			d.SetLines(1)
			out = append(out, d)
			pendingDoc = nil
		}
	}
	return out
}

// readFunc parses a "func ..." declaration, function or method, locating
// its body (if any) via brace-depth matching rather than a grammar parse.
func (s *scanner) readFunc(li int, doc string) (*segment.Decl, int) {
	lineStart := s.lineStarts[li]
	recv, name, isMethod := parseFuncHeader(s.lineText(li))
	kind := segment.KindFunction
	if isMethod {
		kind = segment.KindMethod
	}
	declName := qualifiedFuncName(recv, name)

	openOffset, hasBrace := s.findTopBrace(lineStart)
	if !hasBrace {
		code, trailing := s.trailingComment(li)
		d := &segment.Decl{
			Kind: kind, Visibility: visibilityOf(name), Name: declName,
			Doc: doc, Signature: strings.TrimSpace(code), Trailing: trailing,
		}
		d.SetLines(1)
		return d, li
	}

	closeOffset, ok := s.findMatchingClose(openOffset)
	if !ok {
		code, trailing := s.trailingComment(li)
		d := &segment.Decl{
			Kind: kind, Visibility: visibilityOf(name), Name: declName,
			Doc: doc, Signature: strings.TrimSpace(code), Trailing: trailing,
		}
		d.SetLines(1)
		return d, li
	}

	endLi := s.lineOf(closeOffset)
	sig := strings.TrimSpace(string(s.src[lineStart:openOffset])) + " {"
	body := string(s.src[openOffset+1 : closeOffset])

	d := &segment.Decl{
		Kind: kind, Visibility: visibilityOf(name), Name: declName,
		Doc: doc, Signature: sig, HasBody: true, Body: body,
	}
	d.SetLines(endLi - li + 1)
	// Spans are relative to Body itself (offset 0), not the source file,
	// since the literal optimizer splices directly into Decl.Body.
	d.Literals = detectLiterals(body, 0)
	return d, endLi
}

func (s *scanner) findBraceOnLine(li int) (int, bool) {
	start := s.lineStarts[li]
	end := len(s.src)
	if li+1 < len(s.lineStarts) {
		end = s.lineStarts[li+1]
	}
	for i := start; i < end; i++ {
		if s.src[i] == '{' && s.classes[i] == classCode && s.depth[i] == 0 {
			return i, true
		}
	}
	return 0, false
}

func parseFuncHeader(line string) (recv, name string, isMethod bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "func "))
	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end >= 0 {
			recv = rest[1:end]
			rest = strings.TrimSpace(rest[end+1:])
			isMethod = true
		}
	}
	if i := strings.IndexByte(rest, '('); i >= 0 {
		name = strings.TrimSpace(rest[:i])
	} else {
		name = firstIdent(rest)
	}
	return recv, name, isMethod
}

// qualifiedFuncName renders a method's declared name as "Type.Method" so it
// reads unambiguously in diagnostics and tests, since this adapter does not
// synthesize a Rust-style impl-block grouping for methods.
func qualifiedFuncName(recv, name string) string {
	if recv == "" {
		return name
	}
	fields := strings.Fields(recv)
	if len(fields) == 0 {
		return name
	}
	typ := strings.TrimPrefix(fields[len(fields)-1], "*")
	return typ + "." + name
}

func firstIdent(s string) string {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !isIdentRune(r)
	})
	if end < 0 {
		return s
	}
	return s[:end]
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func visibilityOf(name string) segment.Visibility {
	if isExported(name) {
		return segment.Public
	}
	return segment.Private
}
