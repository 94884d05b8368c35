package ledger

import (
	"sort"
	"strings"

	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

type Squad struct {
	Team      string         `json:"team"`
	Players   []string       `json:"players"`
	Positions map[string]int `json:"positions"`
}

// DraftLedger is the league-wide view of a pick history.
type DraftLedger struct {
	Picks          []model.DraftedPick `json:"picks"`
	Squads         []Squad             `json:"squads"`
	PositionTotals map[string]int      `json:"positionTotals"`
}

// BuildDraftLedger orders picks by pick number (history order breaks ties and
// numbers missing picks), fills derived rounds and tallies positions league
// wide and per team. The input slice is not modified.
func BuildDraftLedger(picks []model.DraftedPick, teamCount int) *DraftLedger {
	ordered := make([]model.DraftedPick, len(picks))
	copy(ordered, picks)
	for i := range ordered {
		if ordered[i].PickNumber == 0 {
			ordered[i].PickNumber = i + 1
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PickNumber < ordered[j].PickNumber
	})

	totals := make(map[string]int, len(model.Positions))
	for _, pos := range model.Positions {
		totals[string(pos)] = 0
	}
	squadBy := make(map[string]*Squad)
	order := make([]string, 0)

	for i := range ordered {
		p := &ordered[i]
		if p.Round == 0 {
			p.Round = ComputeRound(p.PickNumber, teamCount)
		}
		pos := strings.ToUpper(string(p.Position))
		if parsed, ok := model.ParsePosition(pos); ok {
			pos = string(parsed)
		}
		totals[pos]++

		key := strings.ToLower(strings.TrimSpace(p.DraftedByTeam))
		sq, ok := squadBy[key]
		if !ok {
			sq = &Squad{Team: strings.TrimSpace(p.DraftedByTeam), Positions: make(map[string]int)}
			squadBy[key] = sq
			order = append(order, key)
		}
		sq.Players = append(sq.Players, p.PlayerName)
		sq.Positions[pos]++
	}

	squads := make([]Squad, 0, len(order))
	for _, key := range order {
		squads = append(squads, *squadBy[key])
	}
	sort.SliceStable(squads, func(i, j int) bool {
		return strings.ToLower(squads[i].Team) < strings.ToLower(squads[j].Team)
	})

	return &DraftLedger{
		Picks:          ordered,
		Squads:         squads,
		PositionTotals: totals,
	}
}

// DraftedNames returns the lower-cased names of every drafted player.
func (l *DraftLedger) DraftedNames() map[string]bool {
	out := make(map[string]bool, len(l.Picks))
	for _, p := range l.Picks {
		out[model.NormalizeName(p.PlayerName)] = true
	}
	return out
}

// Recent returns up to n of the latest picks, newest last.
func (l *DraftLedger) Recent(n int) []model.DraftedPick {
	if n <= 0 || n >= len(l.Picks) {
		return l.Picks
	}
	return l.Picks[len(l.Picks)-n:]
}
