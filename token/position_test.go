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

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestPositionIsValid(t *testing.T) {
	qt.Assert(t, qt.IsFalse(NoPos.IsValid()))
	qt.Assert(t, qt.IsTrue(Position{Line: 1}.IsValid()))
}

func TestPositionString(t *testing.T) {
	qt.Assert(t, qt.Equals(NoPos.String(), "-"))
	qt.Assert(t, qt.Equals(Position{Filename: "f.go"}.String(), "f.go"))
	qt.Assert(t, qt.Equals(Position{Line: 2, Column: 3}.String(), "2:3"))
	qt.Assert(t, qt.Equals(Position{Filename: "f.go", Line: 2, Column: 3}.String(), "f.go:2:3"))
}

func TestFilePositionResolvesLineAndColumn(t *testing.T) {
	// "ab\ncde\nfg": line 1 = "ab", line 2 = "cde", line 3 = "fg".
	src := "ab\ncde\nfg"
	f := NewFile("f.go", len(src))
	for i, b := range []byte(src) {
		if b == '\n' {
			f.AddLine(i + 1)
		}
	}

	qt.Assert(t, qt.Equals(f.Name(), "f.go"))
	qt.Assert(t, qt.Equals(f.Size(), len(src)))

	got := f.Position(0)
	qt.Assert(t, qt.Equals(got, Position{Filename: "f.go", Offset: 0, Line: 1, Column: 1}))

	got = f.Position(5) // 'e' in "cde"
	qt.Assert(t, qt.Equals(got, Position{Filename: "f.go", Offset: 5, Line: 2, Column: 3}))

	got = f.Position(7) // 'f' in "fg"
	qt.Assert(t, qt.Equals(got, Position{Filename: "f.go", Offset: 7, Line: 3, Column: 1}))
}

func TestFileAddLineIgnoresNonIncreasingOffsets(t *testing.T) {
	f := NewFile("f.go", 10)
	f.AddLine(3)
	f.AddLine(3) // duplicate, ignored
	f.AddLine(2) // decreasing, ignored
	f.AddLine(5)

	// Only offsets 0, 3, 5 should be recognized as line starts: offset 4
	// still resolves to line 2 (started at 3), not a phantom line.
	got := f.Position(4)
	qt.Assert(t, qt.Equals(got.Line, 2))
	got = f.Position(5)
	qt.Assert(t, qt.Equals(got.Line, 3))
}
