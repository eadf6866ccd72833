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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newHelpCmd is lifted from cmd/cue/cmd.newHelpCmd, minus the CUE-specific
// "cmd" custom-command lookup (_tool.cue has no analog here).
func newHelpCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "help [command]",
		Short:  "show help text for a command or topic",
		Hidden: true,
		Run: func(_ *cobra.Command, args []string) {
			found, rest, err := c.Root().Find(args)
			ok := found != nil && err == nil && len(rest) == 0
			if ok && found.Name() == "help" {
				found, ok = nil, false
			}
			if !ok {
				fmt.Fprintf(c.ErrOrStderr(), "Unknown help topic: %s\n", strings.Join(args, " "))
				cobra.CheckErr(c.Root().Usage())
				return
			}
			cobra.CheckErr(found.Help())
		},
	}
	return cmd
}

var helpTemplate = `
{{- if not .HasParent}}{{/* Special template for the root help. */ -}}
skim renders a shorter, representative version of a source file: it keeps
module-level structure, declaration signatures, visibility and
documentation while eliding or trimming function bodies, long literals,
comments and imports under a configurable token budget.

Usage:
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if .IsAvailableCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

Use "{{.CommandPath}} help [command]" for more information about a command.

Additional help topics:{{range .Commands}}{{if eq .Name "help"}}{{range .Commands}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}
{{else}}{{/* Subcommands use a fairly standard template. */ -}}
{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}
{{- end -}}
`

var helpTopics = []*cobra.Command{
	policyHelp,
	markersHelp,
}

var policyHelp = &cobra.Command{
	Use:   "policy",
	Short: "policy knobs and the escalation ladder",
	Long: `A policy configures which optimizer passes run and how aggressively:

  public_api_only      bool                                           (§4.2)
  comments              keep_all | keep_doc_only | keep_first_sentence | strip_all  (§4.3)
  imports                keep_all | strip_external | strip_all, summarize bool       (§4.4)
  literals.max_tokens   nat | none                                    (§4.5)
  function_bodies        keep | trim_to_tokens(nat) | strip             (§4.6)
  target_budget_tokens  nat | none                                    (§4.7)

Flags on "skim optimize" set these directly; a YAML file passed via
--config sets them ahead of flags (flags still win). See 'skim help
markers' for the text each elision produces.

When target_budget_tokens is set and the rendered result is still over
budget, the controller escalates in a fixed order: lower the comment
policy, then the import policy, then halve the literal cap, then lower
the function-body policy — restarting the whole pipeline from the
original file on every rung, never compounding onto the previous rung's
output.
`,
}

var markersHelp = &cobra.Command{
	Use:   "markers",
	Short: "the elision-marker vocabulary",
	Long: `skim replaces removed or summarized content with one-line markers whose
text (after the language's comment opener and a leading "…") is fixed:

  comment omitted
  N comments omitted (L lines)
  docstring omitted
  N imports omitted (L lines)
  <kind> omitted (L lines)
  N <kind>s omitted (L lines)
  method body omitted (L lines)
  function body omitted (L lines)
  method body truncated (L lines)
  function body truncated (L lines)

Trailing annotations appended to a trimmed literal's own line:

  literal string (−K tokens)
  literal array (−K tokens)
  literal object (−K tokens)

Markers for declarations without a body drop the "(L lines)" count, e.g.
"field omitted" and "3 fields omitted".
`,
}
