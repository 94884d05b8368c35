package ledger

import "github.com/aatrey56/ff-draft-assistant/internal/model"

type Phase string

const (
	PhaseEarly  Phase = "early"
	PhaseMiddle Phase = "middle"
	PhaseLate   Phase = "late"
)

// Phase boundaries are fixed for every league size.
const (
	earlyLastRound  = 3
	middleLastRound = 8
)

// DefaultLookahead is how many future user picks ComputeUpcomingPicks returns.
const DefaultLookahead = 3

// ComputeRound returns the 1-based round of an overall pick, or 0 for invalid input.
func ComputeRound(currentPick, teamCount int) int {
	if currentPick <= 0 || teamCount <= 0 {
		return 0
	}
	return (currentPick-1)/teamCount + 1
}

// ComputeTurn returns the 1-based draft slot that owns an overall pick in a
// snake draft: odd rounds run 1..N, even rounds run N..1.
func ComputeTurn(currentPick, teamCount int) int {
	round := ComputeRound(currentPick, teamCount)
	if round == 0 {
		return 0
	}
	slot := (currentPick-1)%teamCount + 1
	if round%2 == 1 {
		return slot
	}
	return teamCount - slot + 1
}

// pickForSlot is the overall pick number at which slot selects in round.
func pickForSlot(round, slot, teamCount int) int {
	base := (round - 1) * teamCount
	if round%2 == 1 {
		return base + slot
	}
	return base + teamCount - slot + 1
}

func ComputeDraftPhase(currentPick, teamCount int) Phase {
	round := ComputeRound(currentPick, teamCount)
	switch {
	case round <= earlyLastRound:
		return PhaseEarly
	case round <= middleLastRound:
		return PhaseMiddle
	default:
		return PhaseLate
	}
}

// ComputeUpcomingPicks walks forward round by round and returns the next
// lookahead overall picks (>= currentPick) owned by userSlot. A positive
// totalRounds stops the walk at the end of the draft.
func ComputeUpcomingPicks(currentPick, userSlot, teamCount, lookahead, totalRounds int) []int {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	if currentPick <= 0 || teamCount <= 0 || userSlot < 1 || userSlot > teamCount {
		return []int{}
	}
	out := make([]int, 0, lookahead)
	for round := ComputeRound(currentPick, teamCount); len(out) < lookahead; round++ {
		if totalRounds > 0 && round > totalRounds {
			break
		}
		pick := pickForSlot(round, userSlot, teamCount)
		if pick >= currentPick {
			out = append(out, pick)
		}
	}
	return out
}

// EffectiveCurrentPick derives the pick on the clock from the history and
// ignores the reported value unless the history carries no information.
func EffectiveCurrentPick(picks []model.DraftedPick, reported int) int {
	if len(picks) == 0 {
		if reported > 0 {
			return reported
		}
		return 1
	}
	maxPick := 0
	for _, p := range picks {
		if p.PickNumber > maxPick {
			maxPick = p.PickNumber
		}
	}
	if maxPick == 0 {
		return len(picks) + 1
	}
	return maxPick + 1
}

// UserSlot resolves the user's draft slot: an explicit hint wins, then the
// user's earliest pick, then the pick on the clock if it is still round one.
// It returns 0 when the slot cannot be known yet.
func UserSlot(picks []model.DraftedPick, userTeam string, teamCount, currentPick, hint int) int {
	if hint >= 1 && hint <= teamCount {
		return hint
	}
	first := 0
	for i, p := range picks {
		if !model.SameTeam(p.DraftedByTeam, userTeam) {
			continue
		}
		n := p.PickNumber
		if n == 0 {
			n = i + 1
		}
		if first == 0 || n < first {
			first = n
		}
	}
	if first > 0 {
		return ComputeTurn(first, teamCount)
	}
	if ComputeRound(currentPick, teamCount) == 1 {
		return ComputeTurn(currentPick, teamCount)
	}
	return 0
}
