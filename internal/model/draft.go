package model

import (
	"strings"
	"time"
)

type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DEF Position = "DEF"
)

// Positions lists the draftable positions in display order.
var Positions = []Position{QB, RB, WR, TE, K, DEF}

// ParsePosition normalizes common spellings ("dst", "d/st", "pk") to a Position.
func ParsePosition(s string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return QB, true
	case "RB":
		return RB, true
	case "WR":
		return WR, true
	case "TE":
		return TE, true
	case "K", "PK":
		return K, true
	case "DEF", "DST", "D/ST":
		return DEF, true
	default:
		return "", false
	}
}

type ScoringFormat string

const (
	Standard ScoringFormat = "standard"
	HalfPPR  ScoringFormat = "half_ppr"
	PPR      ScoringFormat = "ppr"
)

func ParseScoringFormat(s string) (ScoringFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "std":
		return Standard, true
	case "half_ppr", "half", "half-ppr", "0.5ppr":
		return HalfPPR, true
	case "ppr", "full_ppr":
		return PPR, true
	default:
		return "", false
	}
}

// Roster slot names used as keys of LeagueSettings.RosterSpots.
const (
	SlotFlex  = "FLEX"
	SlotBench = "BENCH"
)

type DraftedPick struct {
	PickNumber    int      `json:"pickNumber"`
	Round         int      `json:"round,omitempty"`
	PlayerName    string   `json:"playerName"`
	PlayerTeam    string   `json:"playerTeam,omitempty"`
	Position      Position `json:"position"`
	DraftedByTeam string   `json:"draftedByTeam"`
}

type LeagueSettings struct {
	TeamCount     int            `json:"teamCount"`
	ScoringFormat ScoringFormat  `json:"scoringFormat"`
	TotalRounds   int            `json:"totalRounds"`
	RosterSpots   map[string]int `json:"rosterSpots"`
}

// DefaultLeagueSettings is a 12-team PPR league with a common 15-man roster.
func DefaultLeagueSettings() LeagueSettings {
	return LeagueSettings{
		TeamCount:     12,
		ScoringFormat: PPR,
		TotalRounds:   15,
		RosterSpots: map[string]int{
			"QB":      1,
			"RB":      2,
			"WR":      2,
			"TE":      1,
			SlotFlex:  1,
			"K":       1,
			"DEF":     1,
			SlotBench: 6,
		},
	}
}

// WithDefaults fills zero-valued fields from DefaultLeagueSettings and
// rewrites scoring format aliases ("half", "std") to their canonical value.
func (s LeagueSettings) WithDefaults() LeagueSettings {
	d := DefaultLeagueSettings()
	if s.TeamCount == 0 {
		s.TeamCount = d.TeamCount
	}
	if s.ScoringFormat == "" {
		s.ScoringFormat = d.ScoringFormat
	} else if f, ok := ParseScoringFormat(string(s.ScoringFormat)); ok {
		s.ScoringFormat = f
	}
	if len(s.RosterSpots) == 0 {
		s.RosterSpots = d.RosterSpots
	}
	if s.TotalRounds == 0 {
		total := 0
		for _, n := range s.RosterSpots {
			total += n
		}
		s.TotalRounds = total
	}
	return s
}

type DraftState struct {
	DraftedPlayers []DraftedPick  `json:"draftedPlayers"`
	CurrentPick    int            `json:"currentPick"`
	UserTeam       string         `json:"userTeam"`
	LeagueSettings LeagueSettings `json:"leagueSettings"`
	// DraftSlot is the user's 1-based position in round one, when the caller knows it.
	DraftSlot int `json:"draftSlot,omitempty"`
}

// ToolCall records one tool invocation made while producing a recommendation.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Recommendation struct {
	RequestID   string     `json:"requestId"`
	Text        string     `json:"text"`
	ToolsUsed   []string   `json:"toolsUsed"`
	ToolCalls   []ToolCall `json:"toolCalls,omitempty"`
	Warnings    []string   `json:"warnings,omitempty"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

// SameTeam compares team identifiers the way users type them.
func SameTeam(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizeName folds case and whitespace so drafted names match catalog names.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
