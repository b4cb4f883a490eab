package repl

import (
	"sort"

	"easycode/internal/runner"
	"easycode/internal/token"
)

// names lists the keywords and every name bound in the global environment.
func names(r *runner.Runner) []string {
	all := append(token.Keywords(), r.Evaluator.Globals.Names()...)
	sort.Strings(all)

	out := all[:0]
	for i, n := range all {
		if i == 0 || n != all[i-1] {
			out = append(out, n)
		}
	}
	return out
}
