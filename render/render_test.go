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

package render

import (
	"testing"

	"github.com/go-quicktest/qt"

	"skim.dev/go/lang/golang"
	"skim.dev/go/segment"
)

func TestRenderModuleDocAndDecl(t *testing.T) {
	d := &segment.Decl{Kind: segment.KindFunction, Name: "F", Doc: "F does a thing.", Signature: "func F()", HasBody: true}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{
		segment.NewModuleDoc("Package foo.", 1),
		d,
	}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "// Package foo.\n\n// F does a thing.\nfunc F() {\n}\n"))
}

func TestRenderElidedDecl(t *testing.T) {
	d := &segment.Decl{ElisionText: "… function omitted (2 lines)"}
	d.SetLines(2)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "// … function omitted (2 lines)\n"))
}

func TestRenderFunctionBodyStripped(t *testing.T) {
	d := &segment.Decl{
		Kind: segment.KindFunction, Name: "F", Signature: "func F() {",
		HasBody: true, BodyMarker: "… function body omitted (3 lines)",
	}
	d.SetLines(4)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "func F() { // … function body omitted (3 lines)\n"))
}

func TestRenderImportSingle(t *testing.T) {
	im := segment.NewImport("", []segment.ImportItem{{Path: "fmt"}}, 1)
	file := &segment.SourceFile{Segments: []segment.Segment{im}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "import \"fmt\"\n"))
}

func TestRenderImportBlock(t *testing.T) {
	im := segment.NewImport("", []segment.ImportItem{{Path: "fmt"}, {Path: "os"}}, 2)
	file := &segment.SourceFile{Segments: []segment.Segment{im}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "import (\n\t\"fmt\"\n\t\"os\"\n)\n"))
}

func TestRenderTrailingComment(t *testing.T) {
	d := &segment.Decl{Kind: segment.KindConst, Name: "A", Signature: "const A = 1", Trailing: "note"}
	d.SetLines(1)
	file := &segment.SourceFile{Segments: []segment.Segment{d}}
	got := File(file, golang.New())
	qt.Assert(t, qt.Equals(got, "const A = 1 // note\n"))
}
