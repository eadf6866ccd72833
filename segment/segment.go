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

// Package segment declares the segmented-file data model: the ordered
// sequence of top-level Segments a source file is split into, the Decl
// variant carried by declarations, and the LiteralSpan table attached to
// function bodies. This is the abstract model the rest of the pipeline
// (optimize, budget, render) operates on; it has no dependency on any
// concrete language grammar.
package segment

// Segment is implemented by every top-level unit a SourceFile is split
// into: ModuleDoc, Import, Decl, Comment, and Blank.
type Segment interface {
	// Lines reports the number of source lines this segment spanned in
	// the original file, used for truthful "(L lines)" elision markers.
	Lines() int

	segmentNode()
}

func (*ModuleDoc) segmentNode() {}
func (*Import) segmentNode()    {}
func (*Decl) segmentNode()      {}
func (*Comment) segmentNode()   {}
func (*Blank) segmentNode()     {}
func (*Elision) segmentNode()   {}

// SourceFile is an immutable, ordered sequence of Segments. Passes never
// mutate a SourceFile in place; each produces a new one, so the budget
// controller can cheaply retry from the original.
type SourceFile struct {
	Name     string
	Segments []Segment
}

// ModuleDoc is the file-level documentation block, if any (a contiguous
// run of doc comments preceding any other declaration).
type ModuleDoc struct {
	Text  string
	lines int
}

func NewModuleDoc(text string, lines int) *ModuleDoc { return &ModuleDoc{Text: text, lines: lines} }
func (m *ModuleDoc) Lines() int                       { return m.lines }

// ImportItem is one imported path within an Import segment.
type ImportItem struct {
	Path       string
	IsExternal bool
	IsLocal    bool
}

// Import is a contiguous run of import statements, delimited by a blank
// line or a non-import segment. GroupLabel, if non-empty, is the text of a
// comment immediately preceding the group (§4.4: a label that survives the
// comment policy keeps the group's elision marker positioned beneath it).
type Import struct {
	GroupLabel string
	Items      []ImportItem
	lines      int
}

func NewImport(label string, items []ImportItem, lines int) *Import {
	return &Import{GroupLabel: label, Items: items, lines: lines}
}
func (im *Import) Lines() int { return im.lines }

// Visibility classifies a Decl as exported (public) or not (private).
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// DeclKind enumerates the shapes of top-level declaration a language
// adapter can produce.
type DeclKind int

const (
	KindStruct DeclKind = iota
	KindEnum
	KindTrait
	KindImpl
	KindFunction
	KindMethod
	KindConst
	KindStatic
	KindMacro
	KindTypeAlias
	KindModule
	KindField
)

func (k DeclKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTrait:
		return "trait"
	case KindImpl:
		return "impl"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindConst:
		return "const"
	case KindStatic:
		return "static"
	case KindMacro:
		return "macro"
	case KindTypeAlias:
		return "type-alias"
	case KindModule:
		return "module-decl"
	case KindField:
		return "field"
	default:
		return "decl"
	}
}

// Decl is a single top-level (or, when nested under InnerItems, member)
// declaration: a struct/enum/trait/impl/function/method/const/static/
// macro-invocation/type-alias/module-decl.
type Decl struct {
	Kind       DeclKind
	Visibility Visibility
	Name       string
	Doc        string // contiguous preceding doc-outer comments, §I3
	Attrs      []string
	Signature  string // everything up to the opening brace, or to the terminator
	HasBody    bool
	Body       string // raw body text between { and }, excluding the braces
	Literals   []LiteralSpan
	Trailing   string // trailing same-line comment text, if any
	InnerItems []*Decl

	// BodyMarker, when non-empty, is the function-body elision marker text
	// (§4.6), without the language comment prefix — the renderer supplies
	// that. When Body is also empty, the whole brace block is omitted and
	// the marker follows the signature on the same line ("strip"); when
	// Body still holds a kept prefix, the marker is appended as the body's
	// last line ("trim_to_tokens").
	BodyMarker string

	// ElisionText, when non-empty, marks this Decl itself as a placeholder
	// standing in for one elided declaration or a collapsed run of them
	// (§4.2). It is the one way to represent an elision inside
	// InnerItems, which — unlike SourceFile.Segments — is typed []*Decl
	// rather than []Segment. When set, every other field is ignored by
	// the renderer except Lines.
	ElisionText string

	lines int
}

func (d *Decl) Lines() int { return d.lines }

// SetLines records the declaration's raw source line count (including any
// blank lines within it); §9 Open Questions resolves that blank lines do
// count toward "L lines".
func (d *Decl) SetLines(n int) { d.lines = n }

// CommentStyle distinguishes line, block, and doc comments.
type CommentStyle int

const (
	StyleLine CommentStyle = iota
	StyleBlock
	StyleDocOuter
	StyleDocInner
)

// Comment is a standalone comment segment not consumed as a Decl's Doc.
type Comment struct {
	Style      CommentStyle
	Text       string
	AttachedTo Segment // set when no blank line separates it from what follows, §I4
	lines      int
}

func NewComment(style CommentStyle, text string, lines int) *Comment {
	return &Comment{Style: style, Text: text, lines: lines}
}
func (c *Comment) Lines() int { return c.lines }

// Blank is a run of one or more blank lines, preserved as a single segment
// carrying the count.
type Blank struct {
	Count int
}

func (b *Blank) Lines() int { return b.Count }

// Elision replaces one segment, or a contiguous collapsed run of similar
// segments, with a single-line marker (§4.2, §4.3, §4.4's "N imports
// omitted" etc.). Text is the marker's content after the comment opener
// (§6: "the text after the comment opener is fixed"); the renderer
// supplies the language's comment prefix.
type Elision struct {
	Text  string
	lines int
}

func NewElision(text string, lines int) *Elision { return &Elision{Text: text, lines: lines} }
func (e *Elision) Lines() int                     { return e.lines }

// LiteralSpan is a contiguous range inside a Decl's Body classified as a
// string, sequence, or mapping literal.
type LiteralSpan struct {
	Kind          LiteralKind
	ByteStart     int
	ByteEnd       int
	TokenEstimate int
	Depth         int
}

// LiteralKind enumerates the literal shapes the literal optimizer knows
// how to trim.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralSequence
	LiteralMapping
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralSequence:
		return "array"
	case LiteralMapping:
		return "object"
	default:
		return "literal"
	}
}
