// Copyright 2020 CUE Authors
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
)

func TestHelpTopicsAreRegisteredUnderHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New(nil)
	c.SetOut(&out)
	c.SetErr(&errOut)

	helpCmd, _, err := c.Find([]string{"help"})
	qt.Assert(t, qt.IsNil(err))

	policyCmd, _, err := helpCmd.Find([]string{"policy"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(policyCmd.Name(), "policy"))

	markersCmd, _, err := helpCmd.Find([]string{"markers"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(markersCmd.Name(), "markers"))
}

func TestHelpUnknownTopicPrintsMessageToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New([]string{"help", "not-a-real-topic"})
	c.SetOut(&out)
	c.SetErr(&errOut)

	err := c.Run()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(errOut.String(), "Unknown help topic"))
	qt.Assert(t, qt.StringContains(errOut.String(), "not-a-real-topic"))
}

func TestHelpKnownCommandPrintsItsHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	c := New([]string{"help", "version"})
	c.SetOut(&out)
	c.SetErr(&errOut)

	err := c.Run()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(out.String(), "print skim version"))
}
