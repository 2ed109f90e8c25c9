package strategy

import (
	"context"
	"math/rand"
	"sort"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Greedy builds one complete candidate by priority order, taking the best
// legal slot per session. Deterministic for a fixed input order and tie-break
// seed; also the seeding and repair subroutine of the hybrid strategy.
type Greedy struct{}

// Name implements Strategy.
func (Greedy) Name() string { return "greedy" }

// Run constructs a single candidate, checking the run budget once per
// requirement. Sessions of requirements skipped after budget exhaustion are
// left unassigned.
func (Greedy) Run(ctx context.Context, env Env) (Outcome, error) {
	b := newBuilder(env.Store, env.Detector, env.Rng)

	exhausted := false
	for _, req := range b.order() {
		if !exhausted && env.expired(ctx) {
			exhausted = true
		}
		b.placeRequirement(req, !exhausted, false)
	}

	cand := b.finish()
	if err := cand.validate(env.Store); err != nil {
		return Outcome{}, err
	}
	return Outcome{Candidate: cand, BudgetExhausted: exhausted}, nil
}

// builder tracks placements during a greedy construction or repair pass.
type builder struct {
	store    *constraint.Store
	detector *conflict.Detector
	rng      *rand.Rand
	placed   []models.Assignment
	groups   map[string]*SessionGroup
}

func newBuilder(store *constraint.Store, detector *conflict.Detector, rng *rand.Rand) *builder {
	return &builder{
		store:    store,
		detector: detector,
		rng:      rng,
		groups:   make(map[string]*SessionGroup, len(store.Requirements())),
	}
}

// order sorts requirements by priority descending, ties broken by ascending
// candidate-slot count so the hardest requirements go first, then by id for
// stability.
func (b *builder) order() []models.TeachingRequirement {
	reqs := append([]models.TeachingRequirement(nil), b.store.Requirements()...)
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].Priority != reqs[j].Priority {
			return reqs[i].Priority > reqs[j].Priority
		}
		ci := len(b.store.CandidateSlots(reqs[i].ID))
		cj := len(b.store.CandidateSlots(reqs[j].ID))
		if ci != cj {
			return ci < cj
		}
		return reqs[i].ID < reqs[j].ID
	})
	return reqs
}

// placeRequirement places every session of the requirement. With attempt
// false the sessions are recorded as missing without a search. With random
// true the candidate options are scanned in shuffled order instead of score
// order.
func (b *builder) placeRequirement(req models.TeachingRequirement, attempt bool, random bool) {
	group := &SessionGroup{RequirementID: req.ID}
	b.groups[req.ID] = group

	for session := 0; session < req.SessionsPerWeek; session++ {
		if !attempt {
			group.Missing++
			continue
		}
		if !b.placeSession(req, group, random) {
			group.Missing++
		}
	}
}

// placeSession picks the first legal non-conflicting option for one session.
func (b *builder) placeSession(req models.TeachingRequirement, group *SessionGroup, random bool) bool {
	options := b.store.CandidateSlots(req.ID)
	if len(options) == 0 {
		return false
	}

	scan := options
	if random && b.rng != nil {
		scan = append([]constraint.SlotOption(nil), options...)
		b.rng.Shuffle(len(scan), func(i, j int) {
			scan[i], scan[j] = scan[j], scan[i]
		})
	} else if b.rng != nil {
		scan = shuffleTies(options, b.rng)
	}

	for _, opt := range scan {
		if !b.fits(req, group, opt) {
			continue
		}
		a := models.Assignment{
			RequirementID: req.ID,
			TeacherID:     opt.TeacherID,
			ClassroomID:   opt.ClassroomID,
			Day:           opt.Day,
			Slot:          opt.Slot,
			Score:         opt.Score,
		}
		group.Sessions = append(group.Sessions, a)
		b.placed = append(b.placed, a)
		return true
	}
	return false
}

// fits applies the incremental legality checks for one option: no teacher or
// classroom double booking, one session of a requirement per cell, and the
// avoid-consecutive rule.
func (b *builder) fits(req models.TeachingRequirement, group *SessionGroup, opt constraint.SlotOption) bool {
	probe := models.Assignment{
		RequirementID: req.ID,
		TeacherID:     opt.TeacherID,
		ClassroomID:   opt.ClassroomID,
		Day:           opt.Day,
		Slot:          opt.Slot,
	}
	if b.detector.WouldConflict(probe, b.placed) {
		return false
	}
	for _, s := range group.Sessions {
		if s.Day != opt.Day {
			continue
		}
		if s.Slot == opt.Slot {
			return false
		}
		if req.AvoidConsecutive && (s.Slot == opt.Slot-1 || s.Slot == opt.Slot+1) {
			return false
		}
	}
	return true
}

// finish assembles the candidate in store requirement order.
func (b *builder) finish() Candidate {
	reqs := b.store.Requirements()
	groups := make([]SessionGroup, 0, len(reqs))
	for _, req := range reqs {
		if g, ok := b.groups[req.ID]; ok {
			groups = append(groups, *g)
			continue
		}
		groups = append(groups, SessionGroup{RequirementID: req.ID, Missing: req.SessionsPerWeek})
	}
	return Candidate{Groups: groups}
}

// shuffleTies reorders options randomly inside runs of equal score, keeping
// the descending-score order intact. Used for randomized greedy tie-breaking.
func shuffleTies(options []constraint.SlotOption, rng *rand.Rand) []constraint.SlotOption {
	out := append([]constraint.SlotOption(nil), options...)
	start := 0
	for i := 1; i <= len(out); i++ {
		if i < len(out) && out[i].Score == out[start].Score {
			continue
		}
		run := out[start:i]
		rng.Shuffle(len(run), func(a, b int) {
			run[a], run[b] = run[b], run[a]
		})
		start = i
	}
	return out
}

// construct builds one candidate outside the Strategy interface, used for
// population seeding. With random true options are scanned in fully shuffled
// order; otherwise score order with randomized tie-breaking when rng is set.
func construct(store *constraint.Store, detector *conflict.Detector, rng *rand.Rand, random bool) Candidate {
	b := newBuilder(store, detector, rng)
	for _, req := range b.order() {
		b.placeRequirement(req, true, random)
	}
	return b.finish()
}

// repair re-attempts legal placement of every missing session of the
// candidate, leaving existing placements untouched. Returns the number of
// sessions recovered.
func repair(cand *Candidate, store *constraint.Store, detector *conflict.Detector, rng *rand.Rand) int {
	b := newBuilder(store, detector, rng)
	b.placed = cand.Assignments()

	recovered := 0
	for i := range cand.Groups {
		group := &cand.Groups[i]
		if group.Missing == 0 {
			continue
		}
		req, ok := store.Requirement(group.RequirementID)
		if !ok {
			continue
		}
		for group.Missing > 0 {
			if !b.placeSession(req, group, false) {
				break
			}
			group.Missing--
			recovered++
		}
	}
	return recovered
}
