package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
	"github.com/aatrey56/ff-draft-assistant/internal/reconcile"
)

// Tool names.
const (
	GetAvailablePlayers   = "getAvailablePlayers"
	GetPlayerDetails      = "getPlayerDetails"
	AnalyzeDraftState     = "analyzeDraftState"
	GetPositionalAnalysis = "getPositionalAnalysis"
	FindSleepers          = "findSleepers"
)

const defaultAvailableLimit = 50

func registerAll(e *Executor) error {
	return errors.Join(
		register(e, GetAvailablePlayers,
			"Undrafted players in ADP order, optionally filtered by position, team and ADP range",
			availablePlayers),
		register(e, GetPlayerDetails,
			"Full catalog record for a player found by (partial) name",
			playerDetails),
		register(e, AnalyzeDraftState,
			"Turn, phase, roster needs, upcoming picks and league-wide position counts for a draft",
			analyzeDraftState),
		register(e, GetPositionalAnalysis,
			"ADP tiers with projection drop-offs and a scarcity score for one position",
			positionalAnalysis),
		register(e, FindSleepers,
			"Undervalued players ranked by sleeper score",
			findSleepers),
	)
}

// PlayerView is the compact player shape returned by list tools.
type PlayerView struct {
	Name            string         `json:"name"`
	Position        model.Position `json:"position"`
	Team            string         `json:"team,omitempty"`
	Age             *int           `json:"age,omitempty"`
	ADP             *float64       `json:"adp,omitempty"`
	ProjectedPoints *float64       `json:"projectedPoints,omitempty"`
	InjuryStatus    string         `json:"injuryStatus,omitempty"`
}

func viewOf(p model.Player, format model.ScoringFormat) PlayerView {
	v := PlayerView{
		Name:         p.FullName,
		Position:     p.Position,
		Team:         p.Team,
		Age:          p.Age,
		ADP:          p.ADP,
		InjuryStatus: p.InjuryStatus,
	}
	if proj, ok := points.Projected(p, format); ok {
		v.ProjectedPoints = &proj
	}
	return v
}

func parseOptionalPosition(s string) (model.Position, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	pos, ok := model.ParsePosition(s)
	if !ok {
		return "", fmt.Errorf("unknown position %q", s)
	}
	return pos, nil
}

func (e *Executor) resolveFormat(s string) (model.ScoringFormat, error) {
	if strings.TrimSpace(s) == "" {
		return e.scope.format, nil
	}
	f, ok := model.ParseScoringFormat(s)
	if !ok {
		return "", fmt.Errorf("unknown scoring format %q", s)
	}
	return f, nil
}

func checkRange(minADP, maxADP *float64) error {
	if minADP != nil && maxADP != nil && *minADP > *maxADP {
		return fmt.Errorf("min ADP %.1f is greater than max ADP %.1f", *minADP, *maxADP)
	}
	return nil
}

// pool is every undrafted player at pos (all positions when empty).
func (e *Executor) pool(pos model.Position) []model.Player {
	return e.catalog.QueryPlayers(catalog.Filter{Position: pos, ExcludeNames: e.scope.drafted})
}

type availablePlayersResult struct {
	Count   int          `json:"count"`
	Players []PlayerView `json:"players"`
}

func availablePlayers(_ context.Context, e *Executor, args AvailablePlayersArgs) (any, error) {
	pos, err := parseOptionalPosition(args.Position)
	if err != nil {
		return nil, err
	}
	if err := checkRange(args.MinADP, args.MaxADP); err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = defaultAvailableLimit
	}
	players := e.catalog.QueryPlayers(catalog.Filter{
		Position:     pos,
		Team:         strings.TrimSpace(args.Team),
		MinADP:       args.MinADP,
		MaxADP:       args.MaxADP,
		ExcludeNames: e.scope.drafted,
		Limit:        limit,
	})
	out := availablePlayersResult{Players: make([]PlayerView, 0, len(players))}
	for _, p := range players {
		out.Players = append(out.Players, viewOf(p, e.scope.format))
	}
	out.Count = len(out.Players)
	return out, nil
}

type playerDetailsResult struct {
	model.Player
	Format           model.ScoringFormat `json:"format"`
	FormatProjection *float64            `json:"formatProjection,omitempty"`
	SleeperScore     int                 `json:"sleeperScore"`
	Drafted          bool                `json:"drafted"`
}

func playerDetails(_ context.Context, e *Executor, args PlayerDetailsArgs) (any, error) {
	name := strings.TrimSpace(args.PlayerName)
	if name == "" {
		return nil, fmt.Errorf("playerName is required")
	}
	p, ok := e.catalog.GetPlayerByFuzzyName(name)
	if !ok {
		return nil, fmt.Errorf("player not found: %s", name)
	}
	out := playerDetailsResult{
		Player:       p,
		Format:       e.scope.format,
		SleeperScore: e.policy.SleeperScore(p, e.scope.format),
		Drafted:      e.scope.drafted[model.NormalizeName(p.FullName)],
	}
	if v, ok := points.Projected(p, e.scope.format); ok {
		out.FormatProjection = &v
	}
	return out, nil
}

type draftAnalysisResult struct {
	*ledger.Analysis
	Warnings []string `json:"warnings"`
}

func analyzeDraftState(_ context.Context, e *Executor, args DraftStateArgs) (any, error) {
	var state model.DraftState
	if e.scope.state != nil {
		state = *e.scope.state
	}
	if args.DraftedPlayers != nil {
		state.DraftedPlayers = args.DraftedPlayers
	}
	if args.CurrentPick != 0 {
		state.CurrentPick = args.CurrentPick
	}
	if strings.TrimSpace(args.UserTeam) != "" {
		state.UserTeam = args.UserTeam
	}
	if args.DraftSlot != 0 {
		state.DraftSlot = args.DraftSlot
	}
	if ls := args.LeagueSettings; ls != nil {
		state.LeagueSettings = model.LeagueSettings{
			TeamCount:     ls.TeamCount,
			ScoringFormat: model.ScoringFormat(strings.TrimSpace(ls.ScoringFormat)),
			TotalRounds:   ls.TotalRounds,
			RosterSpots:   ls.RosterSpots,
		}
		if f, ok := model.ParseScoringFormat(ls.ScoringFormat); ok {
			state.LeagueSettings.ScoringFormat = f
		}
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return draftAnalysisResult{
		Analysis: ledger.Analyze(state),
		Warnings: reconcile.BuildReport(state).Messages(),
	}, nil
}

func positionalAnalysis(_ context.Context, e *Executor, args PositionalAnalysisArgs) (any, error) {
	pos, ok := model.ParsePosition(args.Position)
	if !ok {
		return nil, fmt.Errorf("unknown position %q", args.Position)
	}
	format, err := e.resolveFormat(args.Format)
	if err != nil {
		return nil, err
	}
	return e.analyzer(format).Positional(e.pool(pos), pos), nil
}

type sleepersResult struct {
	Count    int                 `json:"count"`
	Sleepers []analytics.Sleeper `json:"sleepers"`
}

func findSleepers(_ context.Context, e *Executor, args SleepersArgs) (any, error) {
	pos, err := parseOptionalPosition(args.Position)
	if err != nil {
		return nil, err
	}
	q := analytics.SleeperQuery{Position: pos, Limit: args.Limit}
	if r := args.ADPRange; r != nil {
		if err := checkRange(r.Min, r.Max); err != nil {
			return nil, err
		}
		q.MinADP, q.MaxADP = r.Min, r.Max
	}
	sleepers := e.analyzer("").FindSleepers(e.pool(pos), q)
	return sleepersResult{Count: len(sleepers), Sleepers: sleepers}, nil
}
