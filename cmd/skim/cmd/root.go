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

// Package cmd implements the skim command-line tool, shaped after
// cuelang.org/go's cmd/cue/cmd: a Command wrapper around *cobra.Command, a
// typed-flag accessor, a custom help template, and an mkRunE wrapper that
// centralizes setup (here: building the logger) around each subcommand's
// RunE.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"skim.dev/go/internal/log"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cc *cobra.Command, args []string) error {
		c.Command = cc
		if c.log == nil {
			c.log = log.New(c.ErrOrStderr(), flagLogLevel.String(c))
		}
		return f(c, args)
	}
}

// New creates the top-level "skim" command.
func New(args []string) *Command {
	root := &cobra.Command{
		Use:   "skim",
		Short: "skim renders a shorter, representative version of a source file for an AI context window",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{Command: root, root: root}

	addGlobalFlags(root.PersistentFlags())

	root.InitDefaultHelpFlag()
	root.Flag("help").Hidden = true

	helpCmd := newHelpCmd(c)
	root.AddCommand(helpCmd)
	for _, topic := range helpTopics {
		helpCmd.AddCommand(topic)
	}
	root.SetHelpCommand(helpCmd)
	root.SetHelpTemplate(helpTemplate)

	for _, sub := range []*cobra.Command{
		newOptimizeCmd(c),
		newStatsCmd(c),
		newCompletionCmd(c),
		newVersionCmd(c),
	} {
		root.AddCommand(sub)
	}

	root.SetArgs(args)
	return c
}

// Command wraps *cobra.Command the way cmd/cue/cmd.Command does, giving
// every subcommand a typed-flag accessor and a shared logger without
// threading either through RunE's own arguments.
type Command struct {
	*cobra.Command
	root *cobra.Command

	log *log.Logger

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = len(b) > 0
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that marks the command's exit code non-zero on
// any write, mirroring cmd/cue/cmd.Command.Stderr.
func (c *Command) Stderr() io.Writer { return (*errWriter)(c) }

// ErrPrintedError indicates error messages have already been printed
// directly to stderr, so Main shouldn't print err itself.
var ErrPrintedError = fmt.Errorf("terminating because of errors")

func (c *Command) Run() (err error) {
	if err := c.root.Execute(); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

// Main runs the skim tool and returns the code for passing to os.Exit.
func Main() int {
	c := New(os.Args[1:])
	if err := c.Run(); err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
