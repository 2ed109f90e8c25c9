package strategy

import (
	"fmt"

	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// SessionGroup holds the placed sessions of one requirement. Missing counts
// the sessions no legal slot could host.
type SessionGroup struct {
	RequirementID string
	Sessions      []models.Assignment
	Missing       int
}

// Candidate is one complete proposed schedule: one session group per
// requirement, in requirement order. Candidates are owned exclusively by the
// strategy evolving them and are cloned, never aliased, across generations.
type Candidate struct {
	Groups []SessionGroup
}

// Clone performs a deep copy.
func (c Candidate) Clone() Candidate {
	groups := make([]SessionGroup, len(c.Groups))
	for i, g := range c.Groups {
		sessions := make([]models.Assignment, len(g.Sessions))
		copy(sessions, g.Sessions)
		groups[i] = SessionGroup{
			RequirementID: g.RequirementID,
			Sessions:      sessions,
			Missing:       g.Missing,
		}
	}
	return Candidate{Groups: groups}
}

// Assignments flattens the candidate into group order.
func (c Candidate) Assignments() []models.Assignment {
	var out []models.Assignment
	for _, g := range c.Groups {
		out = append(out, g.Sessions...)
	}
	return out
}

// Unassigned returns the number of sessions without a placement.
func (c Candidate) Unassigned() int {
	total := 0
	for _, g := range c.Groups {
		total += g.Missing
	}
	return total
}

// validate asserts the structural invariants a well-formed candidate must
// hold: one group per requirement in store order, each accounting for the
// full weekly session count. A violation is a strategy bug, never an input
// problem.
func (c Candidate) validate(store *constraint.Store) error {
	reqs := store.Requirements()
	if len(c.Groups) != len(reqs) {
		return fmt.Errorf("candidate has %d groups, want %d", len(c.Groups), len(reqs))
	}
	for i, g := range c.Groups {
		req := reqs[i]
		if g.RequirementID != req.ID {
			return fmt.Errorf("group %d holds requirement %s, want %s", i, g.RequirementID, req.ID)
		}
		if len(g.Sessions)+g.Missing != req.SessionsPerWeek {
			return fmt.Errorf("requirement %s accounts for %d sessions, want %d", req.ID, len(g.Sessions)+g.Missing, req.SessionsPerWeek)
		}
		for _, a := range g.Sessions {
			if a.RequirementID != req.ID {
				return fmt.Errorf("group %d contains assignment for %s", i, a.RequirementID)
			}
		}
	}
	return nil
}
