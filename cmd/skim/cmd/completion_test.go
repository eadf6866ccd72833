// Copyright 2019 CUE Authors
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

package cmd

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/spf13/cobra"
)

func newCompletionTestCommand(t *testing.T) (*Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "skim"}
	var buf bytes.Buffer
	root.SetOut(&buf)
	c := &Command{Command: root, root: root}
	return c, &buf
}

func TestRunCompletionBash(t *testing.T) {
	c, buf := newCompletionTestCommand(t)
	err := runCompletion(c, []string{"bash"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(buf.Len() > 0))
	qt.Assert(t, qt.StringContains(buf.String(), "bash"))
}

func TestRunCompletionZsh(t *testing.T) {
	c, buf := newCompletionTestCommand(t)
	err := runCompletion(c, []string{"zsh"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(buf.Len() > 0))
}

func TestRunCompletionFish(t *testing.T) {
	c, buf := newCompletionTestCommand(t)
	err := runCompletion(c, []string{"fish"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(buf.Len() > 0))
}

func TestRunCompletionPowershell(t *testing.T) {
	c, buf := newCompletionTestCommand(t)
	err := runCompletion(c, []string{"powershell"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(buf.Len() > 0))
}

func TestRunCompletionUnknownShellErrors(t *testing.T) {
	c, _ := newCompletionTestCommand(t)
	err := runCompletion(c, []string{"csh"})
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.StringContains(err.Error(), "csh"))
}
