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
	"fmt"

	"skim.dev/go/segment"
)

// The marker texts below are bit-exact per §6 (sans the language comment
// prefix, which the renderer supplies). They are the one place the exact
// vocabulary strings live, so every pass that emits an Elision goes
// through these helpers rather than formatting its own.

// declElisionText and collapsedDeclElisionText drop the line-count suffix
// for bodyless decls (consts, fields, anything with no brace body) per §6's
// "singular forms drop the count when L or N is absent-by-design" — a
// bodyless decl has no meaningful L to report.
func declElisionText(kind segment.DeclKind, lines int, hasBody bool) string {
	if !hasBody {
		return fmt.Sprintf("… %s omitted", kind)
	}
	return fmt.Sprintf("… %s omitted (%d lines)", kind, lines)
}

func collapsedDeclElisionText(kind segment.DeclKind, count, lines int, hasBody bool) string {
	if !hasBody {
		return fmt.Sprintf("… %d %ss omitted", count, kind)
	}
	return fmt.Sprintf("… %d %ss omitted (%d lines)", count, kind, lines)
}

func commentElisionText(style segment.CommentStyle) string {
	if style == segment.StyleDocOuter || style == segment.StyleDocInner {
		return "… docstring omitted"
	}
	return "… comment omitted"
}

func collapsedCommentElisionText(count, lines int) string {
	return fmt.Sprintf("… %d comments omitted (%d lines)", count, lines)
}

func importsElisionText(count, lines int) string {
	return fmt.Sprintf("… %d imports omitted (%d lines)", count, lines)
}

func bodyOmittedText(kind segment.DeclKind) string {
	if kind == segment.KindMethod {
		return "… method body omitted"
	}
	return "… function body omitted"
}

func bodyTruncatedText(kind segment.DeclKind) string {
	if kind == segment.KindMethod {
		return "… method body truncated"
	}
	return "… function body truncated"
}

func withLines(text string, lines int) string {
	return fmt.Sprintf("%s (%d lines)", text, lines)
}

func literalMarker(kind segment.LiteralKind, dropped int) string {
	return fmt.Sprintf("literal %s (−%d tokens)", kind, dropped)
}
