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

// Package langsyntax declares the per-language-adapter boundary: the small
// set of facts the segmenter, classifier and renderer need from a concrete
// language (comment syntax, visibility rule, local-import test) so that the
// rest of the pipeline — segment, optimize, budget, render — never
// special-cases a language by name.
package langsyntax

import "skim.dev/go/segment"

// CommentSyntax describes how a language spells its comments.
type CommentSyntax struct {
	Line       string // e.g. "//"
	BlockOpen  string // e.g. "/*"
	BlockClose string // e.g. "*/"
	// DocPrefix identifies a line comment as documentation (e.g. "// " on
	// the line immediately preceding an exported declaration, in Go).
	DocPrefix func(line string) bool
}

// Adapter is the interface a concrete language implementation supplies.
// The core packages (segment, optimize, budget, render) depend only on
// this interface, never on a language by name.
type Adapter interface {
	// Name reports the adapter's language name, used only for
	// diagnostics.
	Name() string

	// Comments reports the language's comment syntax.
	Comments() CommentSyntax

	// IsLocalImport implements the consumed interface `is_local_import`
	// of spec §6: it inspects an import path's first component against
	// the adapter's configured local prefixes.
	IsLocalImport(path string) bool

	// Segment implements the segmenter and classifier of §4.1: it parses
	// src into the ordered Segment sequence of a SourceFile, or reports a
	// Segmentation-Failure (§7) if it cannot (e.g. unbalanced braces).
	Segment(name string, src []byte) (*segment.SourceFile, error)
}
