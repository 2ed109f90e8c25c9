package strategy

import "context"

// Hybrid seeds the evolutionary search entirely from greedy constructions
// with varied tie-break seeds, then periodically reprocesses the best
// candidate through greedy repair. It usually converges faster and strands
// fewer sessions than pure genetic search under the same generation budget.
type Hybrid struct {
	Params            GeneticParams
	ImprovementRounds int
}

// Name implements Strategy.
func (*Hybrid) Name() string { return "hybrid" }

// Run implements Strategy.
func (h *Hybrid) Run(ctx context.Context, env Env) (Outcome, error) {
	params := h.Params
	params.GreedySeedFraction = 1
	return evolve(ctx, env, params, h.ImprovementRounds)
}
