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

	"github.com/spf13/cobra"
)

var validCompletionArgs = []string{"bash", "zsh", "fish", "powershell"}

const completionExample = `
Bash:

$ source <(skim completion bash)

# To load completions for each session, execute once:
Linux:
  $ skim completion bash > /etc/bash_completion.d/skim
MacOS:
  $ skim completion bash > /usr/local/etc/bash_completion.d/skim

Zsh:

$ source <(skim completion zsh)

# To load completions for each session, execute once:
$ skim completion zsh > "${fpath[1]}/_skim"

Fish:

$ skim completion fish | source

# To load completions for each session, execute once:
$ skim completion fish > ~/.config/fish/completions/skim.fish
`

func newCompletionCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:       fmt.Sprintf("completion %s", validCompletionArgs),
		Short:     "generate completion script",
		Example:   completionExample,
		ValidArgs: validCompletionArgs,
		Args:      cobra.ExactValidArgs(1),
		RunE:      mkRunE(c, runCompletion),
	}
	return cmd
}

func runCompletion(cmd *Command, args []string) error {
	w := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletion(w)
	case "zsh":
		return cmd.Root().GenZshCompletion(w)
	case "fish":
		return cmd.Root().GenFishCompletion(w, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletion(w)
	default:
		return fmt.Errorf("%s is not a supported shell", args[0])
	}
}
