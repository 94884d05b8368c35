// Package summary builds the compact draft context document that opens every
// recommendation conversation.
package summary

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
	"github.com/aatrey56/ff-draft-assistant/internal/reconcile"
)

const (
	DefaultRecentPicks  = 12
	DefaultTopAvailable = 25
)

type Options struct {
	RecentPicks  int
	TopAvailable int
}

type AvailablePlayer struct {
	Name            string         `json:"name"`
	Position        model.Position `json:"position"`
	Team            string         `json:"team,omitempty"`
	ADP             *float64       `json:"adp,omitempty"`
	ProjectedPoints *float64       `json:"projected_points,omitempty"`
	InjuryStatus    string         `json:"injury_status,omitempty"`
}

type DraftContext struct {
	GeneratedAtUTC string              `json:"generated_at_utc"`
	UserTeam       string              `json:"user_team"`
	ScoringFormat  model.ScoringFormat `json:"scoring_format"`
	TeamCount      int                 `json:"team_count"`
	TotalRounds    int                 `json:"total_rounds"`
	CurrentPick    int                 `json:"current_pick"`
	Round          int                 `json:"round"`
	Phase          ledger.Phase        `json:"phase"`
	IsUserTurn     bool                `json:"is_user_turn"`
	UpcomingPicks  []int               `json:"upcoming_picks"`
	RosterNeeds    map[string]int      `json:"roster_needs"`
	UserRoster     []string            `json:"user_roster"`
	PositionTotals map[string]int      `json:"position_totals"`
	RecentPicks    []model.DraftedPick `json:"recent_picks"`
	TopAvailable   []AvailablePlayer   `json:"top_available"`
	Warnings       []string            `json:"warnings,omitempty"`
}

// BuildDraftContext summarizes state against the catalog. Players already
// drafted are left out of TopAvailable.
func BuildDraftContext(state model.DraftState, cat catalog.Catalog, opts Options, now time.Time) *DraftContext {
	if opts.RecentPicks <= 0 {
		opts.RecentPicks = DefaultRecentPicks
	}
	if opts.TopAvailable <= 0 {
		opts.TopAvailable = DefaultTopAvailable
	}
	settings := state.LeagueSettings.WithDefaults()
	led := ledger.BuildDraftLedger(state.DraftedPlayers, settings.TeamCount)
	an := ledger.Analyze(state)

	out := &DraftContext{
		GeneratedAtUTC: now.UTC().Format(time.RFC3339),
		UserTeam:       state.UserTeam,
		ScoringFormat:  settings.ScoringFormat,
		TeamCount:      settings.TeamCount,
		TotalRounds:    settings.TotalRounds,
		CurrentPick:    an.CurrentPick,
		Round:          an.Round,
		Phase:          an.Phase,
		IsUserTurn:     an.IsUserTurn,
		UpcomingPicks:  an.UpcomingPicks,
		RosterNeeds:    an.RosterNeeds,
		UserRoster:     an.UserRoster,
		PositionTotals: an.PositionTotals,
		RecentPicks:    led.Recent(opts.RecentPicks),
		TopAvailable:   make([]AvailablePlayer, 0, opts.TopAvailable),
		Warnings:       reconcile.BuildReport(state).Messages(),
	}
	if cat != nil {
		for _, p := range cat.QueryPlayers(catalog.Filter{ExcludeNames: led.DraftedNames(), Limit: opts.TopAvailable}) {
			ap := AvailablePlayer{
				Name:         p.FullName,
				Position:     p.Position,
				Team:         p.Team,
				ADP:          p.ADP,
				InjuryStatus: p.InjuryStatus,
			}
			if v, ok := points.Projected(p, settings.ScoringFormat); ok {
				ap.ProjectedPoints = &v
			}
			out.TopAvailable = append(out.TopAvailable, ap)
		}
	}
	return out
}

// Prompt renders the context as the opening user message.
func (c *DraftContext) Prompt() (string, error) {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode draft context: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("Current draft context:\n")
	sb.Write(b)
	sb.WriteString("\n\n")
	if c.IsUserTurn {
		sb.WriteString("I am on the clock. Who should I pick, and why?")
	} else {
		sb.WriteString("I am not on the clock yet. Who should I target with my next pick, and why?")
	}
	return sb.String(), nil
}
