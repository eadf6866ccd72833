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
	"fmt"

	"github.com/spf13/pflag"
)

// Common flags.
const (
	flagConfig       flagName = "config"
	flagPublicAPI    flagName = "public-api-only"
	flagComments     flagName = "comments"
	flagImports      flagName = "imports"
	flagSummarize    flagName = "summarize"
	flagLiteralMax   flagName = "literal-max-tokens"
	flagBody         flagName = "function-bodies"
	flagBodyTrim     flagName = "body-trim-tokens"
	flagBudget       flagName = "target-budget-tokens"
	flagDiff         flagName = "diff"
	flagCheck        flagName = "check"
	flagWrite        flagName = "write"
	flagLedger       flagName = "ledger"
	flagFormat       flagName = "format"
	flagLimit        flagName = "limit"
	flagLogLevel     flagName = "log-level"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagLogLevel), "info", "log level (debug|info|warn|error)")
}

func addPolicyFlags(f *pflag.FlagSet) {
	f.String(string(flagConfig), "", "path to a YAML policy config file (see 'skim help policy')")
	f.Bool(string(flagPublicAPI), false, "elide private declarations (§4.2)")
	f.String(string(flagComments), "", "comment policy: keep_all|keep_doc_only|keep_first_sentence|strip_all")
	f.String(string(flagImports), "", "import policy: keep_all|strip_external|strip_all")
	f.Bool(string(flagSummarize), false, "summarize dropped import groups instead of deleting them silently")
	f.Int(string(flagLiteralMax), 0, "per-literal token cap; 0 means unlimited")
	f.String(string(flagBody), "", "function-body policy: keep|trim_to_tokens|strip")
	f.Int(string(flagBodyTrim), 0, "token budget for function_bodies=trim_to_tokens")
	f.Int(string(flagBudget), 0, "target rendered token budget; 0 disables escalation")
}

type flagName string

// ensureAdded panics if a flag is read without first being added to the
// flagSet, the same defensive check cmd/cue/cmd.flagName.ensureAdded makes
// — flagNames are package-global, so it is easy to read one a command
// never registered.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}
