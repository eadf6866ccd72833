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

package cmd

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/spf13/cobra"

	"skim.dev/go/policy"
)

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	qt.Assert(t, qt.IsNil(os.MkdirAll(path, 0o755)))
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(content), 0o644)))
}

func TestWalkArgsCollectsGoFilesAndSkipsVendorAndDot(t *testing.T) {
	dir := t.TempDir()
	mustMkdirAll(t, filepath.Join(dir, "pkg"))
	mustMkdirAll(t, filepath.Join(dir, "vendor", "dep"))
	mustMkdirAll(t, filepath.Join(dir, ".git"))
	mustMkdirAll(t, filepath.Join(dir, "_ignored"))

	mustWriteFile(t, filepath.Join(dir, "pkg", "a.go"), "package pkg\n")
	mustWriteFile(t, filepath.Join(dir, "pkg", "readme.md"), "not go\n")
	mustWriteFile(t, filepath.Join(dir, "vendor", "dep", "b.go"), "package dep\n")
	mustWriteFile(t, filepath.Join(dir, ".git", "c.go"), "package git\n")
	mustWriteFile(t, filepath.Join(dir, "_ignored", "d.go"), "package ignored\n")

	got, err := walkArgs([]string{dir})
	qt.Assert(t, qt.IsNil(err))

	sort.Strings(got)
	qt.Assert(t, qt.HasLen(got, 1))
	qt.Assert(t, qt.Equals(got[0], filepath.Join(dir, "pkg", "a.go")))
}

func TestWalkArgsExplicitFileBypassesSkipRules(t *testing.T) {
	dir := t.TempDir()
	mustMkdirAll(t, filepath.Join(dir, "vendor"))
	path := filepath.Join(dir, "vendor", "explicit.go")
	mustWriteFile(t, path, "package vendor\n")

	got, err := walkArgs([]string{path})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []string{path}))
}

func TestWalkArgsMissingPathErrors(t *testing.T) {
	_, err := walkArgs([]string{filepath.Join(t.TempDir(), "missing")})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestModulePrefixFromPathsFindsNearestGoMod(t *testing.T) {
	dir := t.TempDir()
	mustMkdirAll(t, filepath.Join(dir, "sub"))
	mustWriteFile(t, filepath.Join(dir, "go.mod"), "module example.com/widget\n\ngo 1.22\n")
	path := filepath.Join(dir, "sub", "file.go")
	mustWriteFile(t, path, "package sub\n")

	got := modulePrefixFromPaths([]string{path})
	qt.Assert(t, qt.Equals(got, "example.com/widget"))
}

func TestModulePrefixFromPathsNoGoModReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.go")
	mustWriteFile(t, path, "package dir\n")

	got := modulePrefixFromPaths([]string{path})
	qt.Assert(t, qt.Equals(got, ""))
}

func TestModulePrefixFromPathsEmptyInput(t *testing.T) {
	qt.Assert(t, qt.Equals(modulePrefixFromPaths(nil), ""))
}

func newTestCommand(t *testing.T) *Command {
	t.Helper()
	cc := &cobra.Command{Use: "optimize"}
	addPolicyFlags(cc.Flags())
	cc.Flags().Bool(string(flagDiff), false, "")
	cc.Flags().Bool(string(flagCheck), false, "")
	cc.Flags().Bool(string(flagWrite), false, "")
	cc.Flags().String(string(flagLedger), "", "")
	return &Command{Command: cc, root: cc}
}

func TestResolvePolicyDefaultsWhenNoFlagsSet(t *testing.T) {
	c := newTestCommand(t)
	p, err := resolvePolicy(c)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(p, policy.Default()))
}

func TestResolvePolicyAppliesChangedFlagsOnly(t *testing.T) {
	c := newTestCommand(t)
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagPublicAPI), "true")))
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagComments), "strip_all")))
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagBudget), "300")))

	p, err := resolvePolicy(c)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(p.PublicAPIOnly))
	qt.Assert(t, qt.Equals(p.Comments, policy.CommentsStripAll))
	qt.Assert(t, qt.Equals(p.TargetBudgetTokens, 300))
	// Untouched flags keep policy.Default's values.
	qt.Assert(t, qt.Equals(p.Imports, policy.Default().Imports))
	qt.Assert(t, qt.Equals(p.Body, policy.Default().Body))
}

func TestResolvePolicyFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".skim.yaml")
	mustWriteFile(t, cfgPath, "comments: keep_doc_only\ntarget_budget_tokens: 1000\n")

	c := newTestCommand(t)
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagConfig), cfgPath)))
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagComments), "strip_all")))

	p, err := resolvePolicy(c)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(p.Comments, policy.CommentsStripAll))
	// target_budget_tokens came from the config file and was never
	// overridden by a flag, so it survives.
	qt.Assert(t, qt.Equals(p.TargetBudgetTokens, 1000))
}

func TestResolvePolicyRejectsUnknownCommentsFlag(t *testing.T) {
	c := newTestCommand(t)
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagComments), "bogus")))
	_, err := resolvePolicy(c)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestResolvePolicyRejectsUnreachableBodyTrim(t *testing.T) {
	c := newTestCommand(t)
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagBody), "trim_to_tokens")))
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagBodyTrim), "500")))
	qt.Assert(t, qt.IsNil(c.Flags().Set(string(flagBudget), "100")))
	_, err := resolvePolicy(c)
	qt.Assert(t, qt.IsNotNil(err))
}
