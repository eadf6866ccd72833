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
	"testing"

	"github.com/go-quicktest/qt"

	"skim.dev/go/lang/golang"
	"skim.dev/go/policy"
	"skim.dev/go/segment"
)

func TestLiteralOptimizerNoneLeavesLiteralsAlone(t *testing.T) {
	body := `s := "a very long string literal that would otherwise be trimmed"`
	d := &segment.Decl{Kind: segment.KindFunction, HasBody: true, Body: body, Literals: []segment.LiteralSpan{
		{Kind: segment.LiteralString, ByteStart: strings.Index(body, `"`), ByteEnd: len(body)},
	}}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	out := LiteralOptimizer{}.Run(file, policy.Default(), golang.New())
	qt.Assert(t, qt.Equals(out.File, file))
}

func TestLiteralOptimizerTrimsOversizedString(t *testing.T) {
	body := `"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"`
	d := &segment.Decl{Kind: segment.KindFunction, HasBody: true, Body: body, Literals: []segment.LiteralSpan{
		{Kind: segment.LiteralString, ByteStart: 0, ByteEnd: len(body)},
	}}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	p := policy.Default()
	p.LiteralMaxTokens = 5
	out := LiteralOptimizer{}.Run(file, p, golang.New())
	nd := out.File.Segments[0].(*segment.Decl)
	qt.Assert(t, qt.IsTrue(strings.Contains(nd.Body, "literal string (−")))
	qt.Assert(t, qt.IsTrue(len(nd.Body) < len(body)))
}

func TestLiteralOptimizerLeavesShortLiteralUntouched(t *testing.T) {
	body := `"hi"`
	d := &segment.Decl{Kind: segment.KindFunction, HasBody: true, Body: body, Literals: []segment.LiteralSpan{
		{Kind: segment.LiteralString, ByteStart: 0, ByteEnd: len(body)},
	}}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	p := policy.Default()
	p.LiteralMaxTokens = 50
	out := LiteralOptimizer{}.Run(file, p, golang.New())
	nd := out.File.Segments[0].(*segment.Decl)
	qt.Assert(t, qt.Equals(nd.Body, body))
}

func TestSplitTopLevelElementsSkipsCommasInStrings(t *testing.T) {
	got := splitTopLevelElements(`"a, b", 1, []int{2, 3}`)
	qt.Assert(t, qt.DeepEquals(got, []string{`"a, b"`, "1", "[]int{2, 3}"}))
}

func TestTrimSequenceLiteralKeepsTokenBudgetedPrefix(t *testing.T) {
	got := trimSequenceLiteral("{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}", 6)
	qt.Assert(t, qt.StringContains(got, "…"))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(got, "{1")))
}

func TestTrimMappingLiteralEmptyPrefixCollapses(t *testing.T) {
	got := trimMappingLiteral(`{"key": "a very very very very very long value indeed"}`, 1)
	qt.Assert(t, qt.Equals(got, "{ … }"))
}
