package tools

import "github.com/aatrey56/ff-draft-assistant/internal/model"

type AvailablePlayersArgs struct {
	Position string   `json:"position,omitempty" jsonschema:"Position filter: QB|RB|WR|TE|K|DEF"`
	Team     string   `json:"team,omitempty" jsonschema:"NFL team code filter, e.g. KC"`
	MinADP   *float64 `json:"minADP,omitempty" jsonschema:"Lowest ADP to include"`
	MaxADP   *float64 `json:"maxADP,omitempty" jsonschema:"Highest ADP to include"`
	Limit    int      `json:"limit,omitempty" jsonschema:"Maximum players returned (default 50)"`
}

type PlayerDetailsArgs struct {
	PlayerName string `json:"playerName" jsonschema:"Full or partial player name (required)"`
}

type LeagueSettingsArgs struct {
	TeamCount     int            `json:"teamCount,omitempty" jsonschema:"Number of teams (default 12)"`
	ScoringFormat string         `json:"scoringFormat,omitempty" jsonschema:"standard|half_ppr|ppr (default ppr)"`
	TotalRounds   int            `json:"totalRounds,omitempty" jsonschema:"Rounds in the draft (default: sum of roster spots)"`
	RosterSpots   map[string]int `json:"rosterSpots,omitempty" jsonschema:"Slots per position: QB RB WR TE FLEX K DEF BENCH"`
}

type DraftStateArgs struct {
	DraftedPlayers []model.DraftedPick `json:"draftedPlayers,omitempty" jsonschema:"Picks made so far (default: the current draft)"`
	CurrentPick    int                 `json:"currentPick,omitempty" jsonschema:"Overall pick number on the clock"`
	UserTeam       string              `json:"userTeam,omitempty" jsonschema:"Team to analyze"`
	LeagueSettings *LeagueSettingsArgs `json:"leagueSettings,omitempty" jsonschema:"League configuration"`
	DraftSlot      int                 `json:"draftSlot,omitempty" jsonschema:"User's 1-based first-round slot, if known"`
}

type PositionalAnalysisArgs struct {
	Position string `json:"position" jsonschema:"Position to analyze: QB|RB|WR|TE|K|DEF (required)"`
	Format   string `json:"format,omitempty" jsonschema:"standard|half_ppr|ppr (default: league format)"`
}

type ADPRange struct {
	Min *float64 `json:"min,omitempty" jsonschema:"Lowest ADP"`
	Max *float64 `json:"max,omitempty" jsonschema:"Highest ADP"`
}

type SleepersArgs struct {
	Position string    `json:"position,omitempty" jsonschema:"Position filter: QB|RB|WR|TE|K|DEF"`
	ADPRange *ADPRange `json:"adpRange,omitempty" jsonschema:"Only players whose ADP falls in this range"`
	Limit    int       `json:"limit,omitempty" jsonschema:"Maximum sleepers returned (default 10)"`
}
