package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"skim.dev/go/internal/ledger"
)

// newStatsCmd queries the run ledger written by `skim optimize --ledger`.
// It has no analog in cmd/cue/cmd (the teacher has no persistence layer);
// it exists to give gorm/sqlite a concrete, exercised home per
// SPEC_FULL.md's DOMAIN STACK section.
func newStatsCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <ledger-db>",
		Short: "show recent skim optimize runs recorded in a ledger database",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, runStats),
	}
	cmd.Flags().Int(string(flagLimit), 10, "number of most recent runs to show")
	cmd.Flags().String(string(flagFormat), "text", "output format: text|yaml")
	return cmd
}

func runStats(cmd *Command, args []string) error {
	store, err := ledger.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(flagLimit.Int(cmd))
	if err != nil {
		return err
	}

	if flagFormat.String(cmd) == "yaml" {
		out, err := yaml.Marshal(runs)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	w := cmd.OutOrStdout()
	for _, run := range runs {
		fmt.Fprintf(w, "run %s  %s\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  policy: %s\n", run.Policy)
		var before, after int
		for _, fr := range run.Files {
			before += fr.TokensBefore
			after += fr.TokensAfter
			flag := ""
			if fr.BudgetUnmet {
				flag = " (budget unmet)"
			}
			fmt.Fprintf(w, "  %-40s %6d -> %-6d%s\n", fr.Path, fr.TokensBefore, fr.TokensAfter, flag)
		}
		fmt.Fprintf(w, "  %d files, %d -> %d tokens\n\n", len(run.Files), before, after)
	}
	return nil
}
