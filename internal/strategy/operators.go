package strategy

import (
	"math/rand"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// tournamentSelect returns the index of the fittest candidate among k random
// picks.
func tournamentSelect(fitness []float64, k int, rng *rand.Rand) int {
	best := rng.Intn(len(fitness))
	for i := 1; i < k; i++ {
		cand := rng.Intn(len(fitness))
		if fitness[cand] > fitness[best] {
			best = cand
		}
	}
	return best
}

// crossover recombines two parents at session-group granularity, choosing
// between single-point and uniform crossover. Groups are swapped whole so no
// requirement is ever split mid-group. Children still need a repair pass.
func crossover(p1, p2 Candidate, rng *rand.Rand) (Candidate, Candidate) {
	n := len(p1.Groups)
	if n < 2 {
		return p1.Clone(), p2.Clone()
	}

	c1 := p1.Clone()
	c2 := p2.Clone()

	if rng.Intn(2) == 0 {
		// Single point.
		point := 1 + rng.Intn(n-1)
		for i := point; i < n; i++ {
			c1.Groups[i], c2.Groups[i] = c2.Groups[i], c1.Groups[i]
		}
	} else {
		// Uniform.
		for i := 0; i < n; i++ {
			if rng.Intn(2) == 1 {
				c1.Groups[i], c2.Groups[i] = c2.Groups[i], c1.Groups[i]
			}
		}
	}
	return c1, c2
}

// repairConflicts walks the candidate in group order, keeps every session
// that remains legal next to the ones accepted before it, reassigns newly
// conflicting sessions to an unused legal slot, and marks sessions it cannot
// save as unassigned.
func repairConflicts(cand *Candidate, store *constraint.Store, detector *conflict.Detector) {
	b := newBuilder(store, detector, nil)

	for i := range cand.Groups {
		old := cand.Groups[i]
		req, ok := store.Requirement(old.RequirementID)
		if !ok {
			continue
		}
		group := &SessionGroup{RequirementID: old.RequirementID, Missing: old.Missing}
		b.groups[old.RequirementID] = group

		for _, s := range old.Sessions {
			opt := constraint.SlotOption{
				TeacherID:   s.TeacherID,
				ClassroomID: s.ClassroomID,
				Day:         s.Day,
				Slot:        s.Slot,
				Score:       s.Score,
			}
			if b.fits(req, group, opt) {
				group.Sessions = append(group.Sessions, s)
				b.placed = append(b.placed, s)
				continue
			}
			if !b.placeSession(req, group, false) {
				group.Missing++
			}
		}
		cand.Groups[i] = *group
	}
}

// mutate replaces one randomly chosen session with another legal slot for
// the same requirement, keeping the candidate conflict-free. Candidates
// without any placed session are left unchanged.
func mutate(cand *Candidate, store *constraint.Store, detector *conflict.Detector, rng *rand.Rand) {
	eligible := make([]int, 0, len(cand.Groups))
	for i, g := range cand.Groups {
		if len(g.Sessions) > 0 {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return
	}

	gi := eligible[rng.Intn(len(eligible))]
	group := &cand.Groups[gi]
	si := rng.Intn(len(group.Sessions))
	req, ok := store.Requirement(group.RequirementID)
	if !ok {
		return
	}

	// Evaluate replacements against every other session in the candidate.
	others := make([]models.Assignment, 0, len(cand.Groups))
	for i, g := range cand.Groups {
		for j, s := range g.Sessions {
			if i == gi && j == si {
				continue
			}
			others = append(others, s)
		}
	}
	rest := SessionGroup{RequirementID: group.RequirementID}
	for j, s := range group.Sessions {
		if j != si {
			rest.Sessions = append(rest.Sessions, s)
		}
	}

	b := newBuilder(store, detector, nil)
	b.placed = others

	options := append([]constraint.SlotOption(nil), store.CandidateSlots(req.ID)...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	current := group.Sessions[si]
	for _, opt := range options {
		if opt.Day == current.Day && opt.Slot == current.Slot &&
			opt.TeacherID == current.TeacherID && opt.ClassroomID == current.ClassroomID {
			continue
		}
		if !b.fits(req, &rest, opt) {
			continue
		}
		group.Sessions[si] = models.Assignment{
			RequirementID: req.ID,
			TeacherID:     opt.TeacherID,
			ClassroomID:   opt.ClassroomID,
			Day:           opt.Day,
			Slot:          opt.Slot,
			Score:         opt.Score,
		}
		return
	}
}
