package strategy

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

const improvementEpsilon = 1e-9

// GeneticParams tunes the evolutionary search. The engine fills defaults and
// validates ranges before a run.
type GeneticParams struct {
	PopulationSize       int
	MaxGenerations       int
	CrossoverRate        float64
	MutationRate         float64
	EliteSize            int
	TournamentSize       int
	ConvergenceThreshold int
	GreedySeedFraction   float64
}

// Genetic evolves a population of complete candidates via tournament
// selection, group-level crossover, mutation and elitism.
type Genetic struct {
	Params GeneticParams
}

// Name implements Strategy.
func (*Genetic) Name() string { return "genetic" }

// Run implements Strategy.
func (g *Genetic) Run(ctx context.Context, env Env) (Outcome, error) {
	return evolve(ctx, env, g.Params, 0)
}

// evolve is the shared evolutionary loop behind the genetic and hybrid
// strategies. improvementRounds > 0 enables the hybrid's periodic greedy
// repair of the best candidate.
func evolve(ctx context.Context, env Env, p GeneticParams, improvementRounds int) (Outcome, error) {
	popSize := p.PopulationSize

	greedySeeds := int(p.GreedySeedFraction * float64(popSize))
	if greedySeeds < 1 {
		greedySeeds = 1
	}
	if greedySeeds > popSize {
		greedySeeds = popSize
	}

	pop := make([]Candidate, popSize)
	fitness := make([]float64, popSize)
	for i := 0; i < popSize; i++ {
		pop[i] = construct(env.Store, env.Detector, env.Rng, i >= greedySeeds)
		if err := pop[i].validate(env.Store); err != nil {
			return Outcome{}, err
		}
		fitness[i], _ = Evaluate(env.Store, env.Detector, pop[i])
	}

	bestIdx := 0
	for i := 1; i < popSize; i++ {
		if fitness[i] > fitness[bestIdx] {
			bestIdx = i
		}
	}
	best := pop[bestIdx].Clone()
	bestFitness := fitness[bestIdx]
	history := []float64{bestFitness}

	idxs := make([]int, popSize)
	generations := 0
	stale := 0
	exhausted := false

	for gen := 0; gen < p.MaxGenerations; gen++ {
		if env.expired(ctx) {
			exhausted = true
			break
		}

		for i := range idxs {
			idxs[i] = i
		}
		sortByFitness(idxs, fitness)

		next := make([]Candidate, 0, popSize)
		nextFitness := make([]float64, 0, popSize)

		// Elitism: the best candidates survive unchanged.
		for e := 0; e < p.EliteSize && e < popSize; e++ {
			src := idxs[e]
			next = append(next, pop[src].Clone())
			nextFitness = append(nextFitness, fitness[src])
		}

		for len(next) < popSize {
			p1 := tournamentSelect(fitness, p.TournamentSize, env.Rng)
			p2 := tournamentSelect(fitness, p.TournamentSize, env.Rng)
			if popSize > 1 {
				for p2 == p1 {
					p2 = tournamentSelect(fitness, p.TournamentSize, env.Rng)
				}
			}

			var c1, c2 Candidate
			if env.Rng.Float64() < p.CrossoverRate {
				c1, c2 = crossover(pop[p1], pop[p2], env.Rng)
				repairConflicts(&c1, env.Store, env.Detector)
				repairConflicts(&c2, env.Store, env.Detector)
			} else {
				c1 = pop[p1].Clone()
				c2 = pop[p2].Clone()
			}

			if env.Rng.Float64() < p.MutationRate {
				mutate(&c1, env.Store, env.Detector, env.Rng)
			}
			if env.Rng.Float64() < p.MutationRate {
				mutate(&c2, env.Store, env.Detector, env.Rng)
			}

			if err := c1.validate(env.Store); err != nil {
				return Outcome{}, err
			}
			f1, _ := Evaluate(env.Store, env.Detector, c1)
			next = append(next, c1)
			nextFitness = append(nextFitness, f1)

			if len(next) < popSize {
				if err := c2.validate(env.Store); err != nil {
					return Outcome{}, err
				}
				f2, _ := Evaluate(env.Store, env.Detector, c2)
				next = append(next, c2)
				nextFitness = append(nextFitness, f2)
			}
		}

		pop = next
		fitness = nextFitness
		generations = gen + 1

		improved := false
		for i := 0; i < popSize; i++ {
			if fitness[i] > bestFitness+improvementEpsilon {
				bestFitness = fitness[i]
				best = pop[i].Clone()
				improved = true
			}
		}
		if improved {
			stale = 0
		} else {
			stale++
		}

		if improvementRounds > 0 && generations%improvementRounds == 0 {
			if adopted := greedyImprove(env, &best, &bestFitness, pop, fitness); adopted {
				stale = 0
			}
		}

		history = append(history, bestFitness)

		if p.ConvergenceThreshold > 0 && stale >= p.ConvergenceThreshold {
			break
		}
	}

	if env.Logger != nil {
		env.Logger.Debug("evolution finished",
			zap.Int("generations", generations),
			zap.Float64("best_fitness", bestFitness),
			zap.Int("unassigned", best.Unassigned()),
			zap.Bool("budget_exhausted", exhausted),
		)
	}

	return Outcome{
		Candidate:       best,
		Generations:     generations,
		BestHistory:     history,
		BudgetExhausted: exhausted,
	}, nil
}

// greedyImprove reprocesses the best candidate through greedy repair and
// injects the repaired individual into the population in place of the
// current worst. The best-seen candidate only advances when fitness truly
// improves, preserving the elitism invariant.
func greedyImprove(env Env, best *Candidate, bestFitness *float64, pop []Candidate, fitness []float64) bool {
	repaired := best.Clone()
	if repair(&repaired, env.Store, env.Detector, env.Rng) == 0 {
		return false
	}

	f, _ := Evaluate(env.Store, env.Detector, repaired)

	worst := 0
	for i := 1; i < len(fitness); i++ {
		if fitness[i] < fitness[worst] {
			worst = i
		}
	}
	pop[worst] = repaired.Clone()
	fitness[worst] = f

	if f > *bestFitness+improvementEpsilon {
		*best = repaired
		*bestFitness = f
		return true
	}
	return false
}

// sortByFitness orders indexes by descending fitness, breaking ties by
// original position for determinism.
func sortByFitness(idxs []int, fitness []float64) {
	sort.Slice(idxs, func(i, j int) bool {
		a, b := idxs[i], idxs[j]
		if fitness[a] != fitness[b] {
			return fitness[a] > fitness[b]
		}
		return a < b
	})
}
