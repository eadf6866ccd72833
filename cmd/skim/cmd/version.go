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
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print skim version",
		RunE:  mkRunE(c, runVersion),
	}
}

// version can be set at build time via -ldflags to inject a release
// version string, the same hook cmd/cue/cmd/version.go exposes.
var version string

func runVersion(cmd *Command, args []string) error {
	w := cmd.OutOrStdout()

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("unknown error reading build-info")
	}
	fmt.Fprintf(w, "skim version %s\n\n", moduleVersion(bi))
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	for _, s := range bi.Settings {
		if s.Value == "" {
			continue
		}
		fmt.Fprintf(w, "%16s %s\n", s.Key, s.Value)
	}
	return nil
}

func moduleVersion(bi *debug.BuildInfo) string {
	if version != "" {
		return version
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return "(devel)"
}
