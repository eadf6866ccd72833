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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rogpeppe/go-internal/diff"
	"github.com/spf13/cobra"

	skim "skim.dev/go"
	"skim.dev/go/internal/config"
	"skim.dev/go/internal/ledger"
	"skim.dev/go/internal/log"
	"skim.dev/go/lang/golang"
	"skim.dev/go/policy"
	"skim.dev/go/tokencount"
)

// newOptimizeCmd is shaped after cmd/cue/cmd.newFmtCmd: a formatter struct
// closing over shared state, a directory walk that skips dot/underscore
// directories, and --diff/--check flags with the same meaning (--check
// reports files whose optimized form differs, without writing anything;
// --diff prints a unified diff instead of rewriting in place). Unlike
// `cue fmt`, the default action here is to write optimized text to stdout,
// since the "optimized" form is, by design, lossy — overwriting the
// input in place is only done when --write is passed explicitly.
func newOptimizeCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [inputs]",
		Short: "render a shorter, representative version of Go source files",
		Long: `Optimize reads Go source files (or walks directories of them) and writes a
shorter, representative rendering of each to stdout, applying the passes
and budget described in 'skim help policy'. Directories whose names
begin with "." or "_", and any named "vendor", are skipped unless given
as explicit arguments.
`,
		Args: cobra.ArbitraryArgs,
		RunE: mkRunE(c, runOptimize),
	}

	addPolicyFlags(cmd.Flags())
	cmd.Flags().Bool(string(flagDiff), false, "print a unified diff instead of the optimized text")
	cmd.Flags().Bool(string(flagCheck), false, "exit non-zero if any file's optimized form differs from its input")
	cmd.Flags().Bool(string(flagWrite), false, "overwrite each input file with its optimized form")
	cmd.Flags().String(string(flagLedger), "", "path to a SQLite ledger database to record this run in")

	return cmd
}

func runOptimize(cmd *Command, args []string) error {
	p, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}

	o := &optimizer{
		policy: p,
		diff:   flagDiff.Bool(cmd),
		check:  flagCheck.Bool(cmd),
		write:  flagWrite.Bool(cmd),
		stdout: cmd.OutOrStdout(),
		log:    cmd.log,
	}

	if ledgerPath := flagLedger.String(cmd); ledgerPath != "" {
		store, err := ledger.Open(ledgerPath)
		if err != nil {
			return fmt.Errorf("opening ledger: %w", err)
		}
		defer store.Close()
		runID, err := store.NewRun(p.String())
		if err != nil {
			return fmt.Errorf("starting ledger run: %w", err)
		}
		o.ledger = store
		o.runID = runID
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	paths, err := walkArgs(args)
	if err != nil {
		return err
	}

	o.adapter = golang.New(modulePrefixFromPaths(paths))

	if err := o.run(paths); err != nil {
		return err
	}
	if o.check && o.foundDifferent {
		return ErrPrintedError
	}
	return nil
}

// resolvePolicy builds the starting Policy from --config (if given) and
// then applies any flags the caller set explicitly, flags winning over the
// config file per spec.md §6's "CLI flags overriding file values".
func resolvePolicy(cmd *Command) (policy.Policy, error) {
	p := policy.Default()
	if path := flagConfig.String(cmd); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return policy.Policy{}, err
		}
		p = loaded
	}

	f := cmd.Flags()
	if f.Changed(string(flagPublicAPI)) {
		p.PublicAPIOnly = flagPublicAPI.Bool(cmd)
	}
	if f.Changed(string(flagComments)) {
		v, err := config.ParseComments(flagComments.String(cmd))
		if err != nil {
			return policy.Policy{}, err
		}
		p.Comments = v
	}
	if f.Changed(string(flagImports)) {
		v, err := config.ParseImports(flagImports.String(cmd))
		if err != nil {
			return policy.Policy{}, err
		}
		p.Imports = v
	}
	if f.Changed(string(flagSummarize)) {
		p.ImportsSummarize = flagSummarize.Bool(cmd)
	}
	if f.Changed(string(flagLiteralMax)) {
		p.LiteralMaxTokens = flagLiteralMax.Int(cmd)
	}
	if f.Changed(string(flagBody)) {
		v, err := config.ParseBody(flagBody.String(cmd))
		if err != nil {
			return policy.Policy{}, err
		}
		p.Body = v
	}
	if f.Changed(string(flagBodyTrim)) {
		p.BodyTrimTokens = flagBodyTrim.Int(cmd)
	}
	if f.Changed(string(flagBudget)) {
		p.TargetBudgetTokens = flagBudget.Int(cmd)
	}

	if verr := p.Validate(); verr != nil {
		return policy.Policy{}, verr
	}
	return p, nil
}

type optimizer struct {
	policy policy.Policy
	adapter *golang.Adapter
	diff   bool
	check  bool
	write  bool
	stdout io.Writer
	log    *log.Logger

	ledger *ledger.Store
	runID  string

	mu             sync.Mutex
	foundDifferent bool
}

// run fans paths out over a bounded worker pool (spec.md §5 explicitly
// permits "running multiple independent invocations in parallel" since
// each file owns its own SourceFile exclusively). Each file's output is
// written under o.mu, so one file's result never interleaves with
// another's, but files print in completion order, not input order.
func (o *optimizer) run(paths []string) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := o.one(path); err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
				}
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

func (o *optimizer) one(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	optimized, diag, err := skim.Optimize(string(src), o.policy, o.adapter)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if o.log != nil {
		if diag.SegmentationFailed {
			o.log.SegmentationFailure(path, diag.SegmentationError)
		}
		if diag.BudgetUnmet {
			o.log.BudgetUnmet(path, tokencount.Estimate(optimized), o.policy.TargetBudgetTokens)
		}
		o.log.FailedPasses(path, diag.FailedPasses)
	}

	if o.ledger != nil {
		escalations := make([]string, len(diag.Escalations))
		for i, s := range diag.Escalations {
			escalations[i] = s.String()
		}
		if err := o.ledger.RecordFile(o.runID, path, tokencount.Estimate(string(src)), tokencount.Estimate(optimized), escalations, diag.BudgetUnmet, diag.SegmentationFailed); err != nil {
			return fmt.Errorf("%s: recording to ledger: %w", path, err)
		}
	}

	changed := optimized != string(src)

	o.mu.Lock()
	defer o.mu.Unlock()

	if changed {
		o.foundDifferent = true
	}

	switch {
	case o.check:
		if changed {
			fmt.Fprintln(o.stdout, path)
		}
	case o.diff:
		if changed {
			d := diff.Diff(path+".orig", []byte(src), path, []byte(optimized))
			fmt.Fprintln(o.stdout, string(d))
		}
	case o.write:
		if changed {
			return os.WriteFile(path, []byte(optimized), 0o644)
		}
	default:
		fmt.Fprint(o.stdout, optimized)
	}
	return nil
}

func walkArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				isDot := strings.HasPrefix(name, ".") && name != "." && name != ".."
				isSkip := name == "vendor" || strings.HasPrefix(name, "_")
				if path != arg && (isDot || isSkip) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// modulePrefixFromPaths finds the nearest enclosing go.mod's module path so
// the adapter's IsLocalImport can recognize the project's own import paths
// as local rather than external; it returns "" when none is found, in
// which case no import path counts as local.
func modulePrefixFromPaths(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	dir := filepath.Dir(paths[0])
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "module ") {
					return strings.TrimSpace(strings.TrimPrefix(line, "module"))
				}
			}
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
