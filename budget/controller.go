// Package budget implements the budget controller of §4.7: it runs the
// fixed optimizer pass order, measures the rendered result against
// TargetBudgetTokens, and — if over budget — escalates the policy one rung
// at a time via policy.Escalate, always restarting optimize.Run from the
// original segmented file rather than from the previous rung's output, so
// escalation is never order-dependent on what an earlier rung already
// stripped.
package budget

import (
	"skim.dev/go/langsyntax"
	"skim.dev/go/optimize"
	"skim.dev/go/policy"
	"skim.dev/go/render"
	"skim.dev/go/segment"
	"skim.dev/go/tokencount"
)

// maxRungs bounds the escalation loop. policy.Escalate's own ladder is
// finite (comments: 3 steps, imports: 2, literals: a handful of halvings,
// body: 2), so this is a defensive backstop against an unforeseen cycle
// rather than a limit ever expected to bind.
const maxRungs = 64

// Result is the outcome of running the full pipeline under a starting
// policy, with escalation applied as needed.
type Result struct {
	Text         string
	FinalPolicy  policy.Policy
	FailedPasses []string
	Escalations  []policy.Step
	BudgetUnmet  bool
}

// Run segments file through the optimizer pipeline under p. If
// p.TargetBudgetTokens is 0, the policy is applied exactly once with no
// escalation (§4.7's "None" case). Otherwise, the controller escalates
// until the rendered text's estimated token count is within budget or the
// ladder is exhausted, at which point Result.BudgetUnmet is set and the
// best-effort (most-escalated) rendering is still returned.
func Run(file *segment.SourceFile, p policy.Policy, adapter langsyntax.Adapter, cache *tokencount.Cache) Result {
	cur := p
	out, failed := optimize.Run(file, cur, adapter)
	text := renderCached(out, adapter, cache)

	if cur.TargetBudgetTokens == 0 {
		return Result{Text: text, FinalPolicy: cur, FailedPasses: failed}
	}

	var steps []policy.Step
	for cache.Estimate(text) > cur.TargetBudgetTokens {
		next, step, ok := policy.Escalate(cur)
		if !ok {
			return Result{
				Text: text, FinalPolicy: cur, FailedPasses: failed,
				Escalations: steps, BudgetUnmet: true,
			}
		}
		steps = append(steps, step)
		cur = next
		out, failed = optimize.Run(file, cur, adapter)
		text = renderCached(out, adapter, cache)
		if len(steps) >= maxRungs {
			return Result{
				Text: text, FinalPolicy: cur, FailedPasses: failed,
				Escalations: steps, BudgetUnmet: true,
			}
		}
	}
	return Result{Text: text, FinalPolicy: cur, FailedPasses: failed, Escalations: steps}
}

func renderCached(file *segment.SourceFile, adapter langsyntax.Adapter, cache *tokencount.Cache) string {
	text := render.File(file, adapter)
	cache.Estimate(text) // prime the cache so the loop's check is free
	return text
}
