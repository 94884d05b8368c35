package ledger

import "github.com/aatrey56/ff-draft-assistant/internal/model"

// flexEligible positions can fill the FLEX slot.
var flexEligible = []model.Position{model.RB, model.WR}

func isFlexEligible(pos model.Position) bool {
	for _, p := range flexEligible {
		if p == pos {
			return true
		}
	}
	return false
}

// ComputeRosterNeeds returns how many more players userTeam needs per
// position. RB and WR also carry an even integer share of the FLEX slots; the
// FLEX key reports flex spots not yet consumed by surplus RB/WR picks and the
// BENCH key what is left after starters overflow. Counts never go negative.
func ComputeRosterNeeds(picks []model.DraftedPick, userTeam string, rosterSpots map[string]int) map[string]int {
	counts := make(map[model.Position]int)
	for _, p := range picks {
		if !model.SameTeam(p.DraftedByTeam, userTeam) {
			continue
		}
		if pos, ok := model.ParsePosition(string(p.Position)); ok {
			counts[pos]++
		}
	}

	flex := max(0, rosterSpots[model.SlotFlex])
	share := flex / len(flexEligible)

	needs := make(map[string]int, len(model.Positions)+2)
	flexSurplus := 0
	overflow := 0
	for _, pos := range model.Positions {
		slots := max(0, rosterSpots[string(pos)])
		have := counts[pos]
		extra := max(0, have-slots)
		overflow += extra
		if isFlexEligible(pos) {
			flexSurplus += extra
			needs[string(pos)] = max(0, slots+share-have)
			continue
		}
		needs[string(pos)] = max(0, slots-have)
	}

	flexUsed := min(flex, flexSurplus)
	if _, ok := rosterSpots[model.SlotFlex]; ok {
		needs[model.SlotFlex] = flex - flexUsed
	}
	if bench, ok := rosterSpots[model.SlotBench]; ok {
		needs[model.SlotBench] = max(0, max(0, bench)-(overflow-flexUsed))
	}
	return needs
}
