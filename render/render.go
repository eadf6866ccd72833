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

// Package render implements §4.8: serializing an optimized segment.SourceFile
// back to text. It is the one place that re-attaches a language's comment
// prefix to the prefix-less text the rest of the pipeline carries on
// ModuleDoc, Decl.Doc, Decl.Trailing, Import.GroupLabel and Elision.Text.
package render

import (
	"strings"

	"skim.dev/go/langsyntax"
	"skim.dev/go/segment"
)

// File serializes file to text using adapter's comment syntax.
func File(file *segment.SourceFile, adapter langsyntax.Adapter) string {
	cs := adapter.Comments()
	var b strings.Builder
	for i, s := range file.Segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderSegment(&b, s, cs, "")
	}
	return b.String()
}

func renderSegment(b *strings.Builder, s segment.Segment, cs langsyntax.CommentSyntax, indent string) {
	switch v := s.(type) {
	case *segment.ModuleDoc:
		writeCommentBlock(b, v.Text, cs, indent)
	case *segment.Import:
		renderImport(b, v, cs, indent)
	case *segment.Decl:
		renderDecl(b, v, cs, indent)
	case *segment.Comment:
		writeCommentBlock(b, v.Text, cs, indent)
	case *segment.Blank:
		for i := 0; i < v.Count; i++ {
			b.WriteByte('\n')
		}
	case *segment.Elision:
		b.WriteString(indent)
		b.WriteString(cs.Line)
		b.WriteByte(' ')
		b.WriteString(v.Text)
		b.WriteByte('\n')
	}
}

// writeCommentBlock renders text (doc or standalone, newline-joined, no
// prefix) as one line-comment per source line.
func writeCommentBlock(b *strings.Builder, text string, cs langsyntax.CommentSyntax, indent string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(indent)
		b.WriteString(cs.Line)
		if line != "" {
			b.WriteByte(' ')
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}

func renderImport(b *strings.Builder, im *segment.Import, cs langsyntax.CommentSyntax, indent string) {
	if im.GroupLabel != "" {
		writeCommentBlock(b, im.GroupLabel, cs, indent)
	}
	if len(im.Items) == 0 {
		return
	}
	if len(im.Items) == 1 {
		b.WriteString(indent)
		b.WriteString("import ")
		writeImportItem(b, im.Items[0])
		b.WriteByte('\n')
		return
	}
	b.WriteString(indent)
	b.WriteString("import (\n")
	for _, it := range im.Items {
		b.WriteString(indent)
		b.WriteByte('\t')
		writeImportItem(b, it)
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	b.WriteString(")\n")
}

func writeImportItem(b *strings.Builder, it segment.ImportItem) {
	b.WriteByte('"')
	b.WriteString(it.Path)
	b.WriteByte('"')
}

func renderDecl(b *strings.Builder, d *segment.Decl, cs langsyntax.CommentSyntax, indent string) {
	if d.ElisionText != "" {
		b.WriteString(indent)
		b.WriteString(cs.Line)
		b.WriteByte(' ')
		b.WriteString(d.ElisionText)
		b.WriteByte('\n')
		return
	}

	if d.Doc != "" {
		writeCommentBlock(b, d.Doc, cs, indent)
	}
	for _, attr := range d.Attrs {
		b.WriteString(indent)
		b.WriteString(attr)
		b.WriteByte('\n')
	}

	b.WriteString(indent)
	b.WriteString(d.Signature)

	switch {
	case !d.HasBody:
		b.WriteString(writeTrailing(d.Trailing, cs))
		b.WriteByte('\n')

	case d.Body == "" && d.BodyMarker != "":
		// strip: the brace block is omitted entirely; the marker follows
		// the signature on the same line (§4.6).
		b.WriteString(" ")
		b.WriteString(cs.Line)
		b.WriteByte(' ')
		b.WriteString(d.BodyMarker)
		b.WriteString(writeTrailing(d.Trailing, cs))
		b.WriteByte('\n')

	default:
		b.WriteString(" {")
		b.WriteString(writeTrailing(d.Trailing, cs))
		b.WriteByte('\n')
		if len(d.InnerItems) > 0 {
			for _, it := range d.InnerItems {
				renderDecl(b, it, cs, indent+"\t")
			}
		} else if d.Body != "" {
			// Body is a raw slice of the original source between the
			// braces, so it already carries its own indentation; it is
			// written verbatim rather than re-indented.
			body := d.Body
			if !strings.HasSuffix(body, "\n") {
				body += "\n"
			}
			b.WriteString(body)
			if d.BodyMarker != "" {
				b.WriteString(indent)
				b.WriteByte('\t')
				b.WriteString(cs.Line)
				b.WriteByte(' ')
				b.WriteString(d.BodyMarker)
				b.WriteByte('\n')
			}
		}
		b.WriteString(indent)
		b.WriteString("}\n")
	}
}

func writeTrailing(trailing string, cs langsyntax.CommentSyntax) string {
	if trailing == "" {
		return ""
	}
	return " " + cs.Line + " " + trailing
}
