package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError rejects a malformed DraftState before any I/O happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the fields a recommendation cannot be computed without.
func (s DraftState) Validate() error {
	if s.CurrentPick <= 0 {
		return invalid("currentPick", "must be a positive integer, got %d", s.CurrentPick)
	}
	if strings.TrimSpace(s.UserTeam) == "" {
		return invalid("userTeam", "must be a non-empty string")
	}
	if s.LeagueSettings.TeamCount != 0 && s.LeagueSettings.TeamCount < 2 {
		return invalid("leagueSettings.teamCount", "must be at least 2, got %d", s.LeagueSettings.TeamCount)
	}
	if f := s.LeagueSettings.ScoringFormat; f != "" {
		if _, ok := ParseScoringFormat(string(f)); !ok {
			return invalid("leagueSettings.scoringFormat", "unknown format %q", f)
		}
	}
	settings := s.LeagueSettings.WithDefaults()
	lastPick := settings.TeamCount * settings.TotalRounds
	for i, p := range s.DraftedPlayers {
		if p.PickNumber < 0 {
			return invalid(fmt.Sprintf("draftedPlayers[%d].pickNumber", i), "must not be negative")
		}
		if p.PickNumber > lastPick {
			return invalid(fmt.Sprintf("draftedPlayers[%d].pickNumber", i),
				"%d is past the last pick of the draft (%d)", p.PickNumber, lastPick)
		}
		if strings.TrimSpace(p.DraftedByTeam) == "" {
			return invalid(fmt.Sprintf("draftedPlayers[%d].draftedByTeam", i), "must be a non-empty string")
		}
	}
	return nil
}

// ParseDraftState decodes a JSON DraftState and enforces the shape checks
// that the typed struct cannot express (draftedPlayers must be an array).
func ParseDraftState(data []byte) (DraftState, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DraftState{}, invalid("draftState", "not a JSON object: %v", err)
	}
	dp, ok := raw["draftedPlayers"]
	if !ok {
		return DraftState{}, invalid("draftedPlayers", "is required")
	}
	if t := bytes.TrimSpace(dp); len(t) == 0 || t[0] != '[' {
		return DraftState{}, invalid("draftedPlayers", "must be an array")
	}
	if cp, ok := raw["currentPick"]; ok {
		var n float64
		if err := json.Unmarshal(cp, &n); err != nil || n != float64(int(n)) {
			return DraftState{}, invalid("currentPick", "must be a positive integer")
		}
	}
	if ut, ok := raw["userTeam"]; ok {
		var s string
		if err := json.Unmarshal(ut, &s); err != nil {
			return DraftState{}, invalid("userTeam", "must be a non-empty string")
		}
	}

	var st DraftState
	if err := json.Unmarshal(data, &st); err != nil {
		return DraftState{}, invalid("draftState", "%v", err)
	}
	if err := st.Validate(); err != nil {
		return DraftState{}, err
	}
	if f, ok := ParseScoringFormat(string(st.LeagueSettings.ScoringFormat)); ok {
		st.LeagueSettings.ScoringFormat = f
	}
	return st, nil
}
