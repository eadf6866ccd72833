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
	"testing"

	"github.com/go-quicktest/qt"

	"skim.dev/go/lang/golang"
	"skim.dev/go/policy"
	"skim.dev/go/segment"
)

func TestCommentOptimizerKeepAllNoOp(t *testing.T) {
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewModuleDoc("hello", 1),
	}}
	out := CommentOptimizer{}.Run(file, policy.Default(), golang.New())
	qt.Assert(t, qt.Equals(out.File, file))
}

func TestCommentOptimizerKeepDocOnlyRemovesStandaloneComment(t *testing.T) {
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewModuleDoc("module doc", 1),
		segment.NewComment(segment.StyleLine, "a standalone remark", 1),
	}}
	p := policy.Default()
	p.Comments = policy.CommentsKeepDocOnly
	out := CommentOptimizer{}.Run(file, p, golang.New())
	qt.Assert(t, qt.HasLen(out.File.Segments, 1))
	md, ok := out.File.Segments[0].(*segment.ModuleDoc)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(md.Text, "module doc"))
}

func TestCommentOptimizerStripAllElidesModuleDoc(t *testing.T) {
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewModuleDoc("module doc", 1),
	}}
	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	md := out.File.Segments[0].(*segment.ModuleDoc)
	qt.Assert(t, qt.Equals(md.Text, "… docstring omitted"))
}

func TestCommentOptimizerStripAllCollapsesStandaloneRun(t *testing.T) {
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewComment(segment.StyleLine, "first", 1),
		segment.NewComment(segment.StyleLine, "second", 1),
	}}
	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	qt.Assert(t, qt.HasLen(out.File.Segments, 1))
	el, ok := out.File.Segments[0].(*segment.Elision)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(el.Text, "… 2 comments omitted (2 lines)"))
}

func TestCommentOptimizerStripAllSingleCommentMarker(t *testing.T) {
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewComment(segment.StyleLine, "lone remark", 1),
	}}
	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	el := out.File.Segments[0].(*segment.Elision)
	qt.Assert(t, qt.Equals(el.Text, "… comment omitted"))
}

func TestCommentOptimizerDeclDocAndTrailing(t *testing.T) {
	d := &segment.Decl{Kind: segment.KindFunction, Name: "F", Doc: "F does a thing.", Trailing: "note"}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}

	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	nd := out.File.Segments[0].(*segment.Decl)
	qt.Assert(t, qt.Equals(nd.Doc, "… docstring omitted"))
	qt.Assert(t, qt.Equals(nd.Trailing, "… comment omitted"))
}

func TestCommentOptimizerKeepFirstSentence(t *testing.T) {
	d := &segment.Decl{Kind: segment.KindFunction, Name: "F", Doc: "F does a thing. It also does another."}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}

	p := policy.Default()
	p.Comments = policy.CommentsKeepFirstSentence
	out := CommentOptimizer{}.Run(file, p, golang.New())
	nd := out.File.Segments[0].(*segment.Decl)
	qt.Assert(t, qt.Equals(nd.Doc, "F does a thing."))
}

func TestCommentOptimizerImportLabelStrip(t *testing.T) {
	im := segment.NewImport("internal helpers", []segment.ImportItem{{Path: "example.com/mod/a"}}, 2)
	file := &segment.SourceFile{Segments: []segment.Segment{im}}

	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	nim := out.File.Segments[0].(*segment.Import)
	qt.Assert(t, qt.Equals(nim.GroupLabel, "… comment omitted"))
}

func TestCommentOptimizerInnerItemElisionUntouched(t *testing.T) {
	container := &segment.Decl{Kind: segment.KindStruct, Name: "S"}
	container.InnerItems = []*segment.Decl{
		{ElisionText: "… field omitted (1 lines)"},
	}
	container.SetLines(2)
	file := &segment.SourceFile{Segments: []segment.Segment{container}}

	p := policy.Default()
	p.Comments = policy.CommentsStripAll
	out := CommentOptimizer{}.Run(file, p, golang.New())
	nd := out.File.Segments[0].(*segment.Decl)
	qt.Assert(t, qt.Equals(nd.InnerItems[0].ElisionText, "… field omitted (1 lines)"))
}
