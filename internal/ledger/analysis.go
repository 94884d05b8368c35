package ledger

import "github.com/aatrey56/ff-draft-assistant/internal/model"

// Analysis is everything derivable from a pick history for one team.
type Analysis struct {
	CurrentPick        int            `json:"currentPick"`
	Round              int            `json:"round"`
	PickInRound        int            `json:"pickInRound"`
	Phase              Phase          `json:"phase"`
	SlotOnClock        int            `json:"slotOnClock"`
	UserTeam           string         `json:"userTeam"`
	UserSlot           int            `json:"userSlot,omitempty"`
	IsUserTurn         bool           `json:"isUserTurn"`
	PicksUntilUserTurn *int           `json:"picksUntilUserTurn,omitempty"`
	UpcomingPicks      []int          `json:"upcomingPicks"`
	RosterNeeds        map[string]int `json:"rosterNeeds"`
	UserRoster         []string       `json:"userRoster"`
	PositionTotals     map[string]int `json:"positionTotals"`
	TeamPositions      []Squad        `json:"teamPositions"`
	TotalPicksMade     int            `json:"totalPicksMade"`
}

// Analyze combines the turn, needs and tally computations for state.
func Analyze(state model.DraftState) *Analysis {
	settings := state.LeagueSettings.WithDefaults()
	teams := settings.TeamCount
	led := BuildDraftLedger(state.DraftedPlayers, teams)
	current := EffectiveCurrentPick(state.DraftedPlayers, state.CurrentPick)

	out := &Analysis{
		CurrentPick:    current,
		Round:          ComputeRound(current, teams),
		PickInRound:    (current-1)%teams + 1,
		Phase:          ComputeDraftPhase(current, teams),
		SlotOnClock:    ComputeTurn(current, teams),
		UserTeam:       state.UserTeam,
		RosterNeeds:    ComputeRosterNeeds(led.Picks, state.UserTeam, settings.RosterSpots),
		UserRoster:     []string{},
		PositionTotals: led.PositionTotals,
		TeamPositions:  led.Squads,
		TotalPicksMade: len(led.Picks),
		UpcomingPicks:  []int{},
	}
	for _, p := range led.Picks {
		if model.SameTeam(p.DraftedByTeam, state.UserTeam) {
			out.UserRoster = append(out.UserRoster, p.PlayerName)
		}
	}

	slot := UserSlot(led.Picks, state.UserTeam, teams, current, state.DraftSlot)
	if slot > 0 {
		out.UserSlot = slot
		out.IsUserTurn = slot == out.SlotOnClock
		out.UpcomingPicks = ComputeUpcomingPicks(current, slot, teams, DefaultLookahead, settings.TotalRounds)
		if len(out.UpcomingPicks) > 0 {
			wait := out.UpcomingPicks[0] - current
			out.PicksUntilUserTurn = &wait
		}
	}
	return out
}
