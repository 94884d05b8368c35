package analytics

import (
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
)

// Scarcity compares the mean projection of ADP ranks 1..W with ranks W+1..2W
// (W = 12 by default). Only players with an ADP are ranked; fewer than 2W of
// them yields 0. A larger value means a steeper cliff after the top group.
func (a *Analyzer) Scarcity(players []model.Player) float64 {
	w := a.Policy.ScarcityWindow()
	ranked := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.ADP != nil {
			ranked = append(ranked, p)
		}
	}
	if w <= 0 || len(ranked) < 2*w {
		return 0
	}
	catalog.SortByADP(ranked)
	return a.meanOf(ranked[:w]) - a.meanOf(ranked[w:2*w])
}

func (a *Analyzer) meanOf(ps []model.Player) float64 {
	sum := 0.0
	for _, p := range ps {
		sum += points.ProjectedOrZero(p, a.Format)
	}
	return sum / float64(len(ps))
}

// PositionalAnalysis is the tiering and scarcity view of one position.
type PositionalAnalysis struct {
	Position      model.Position      `json:"position"`
	Format        model.ScoringFormat `json:"format"`
	PlayerCount   int                 `json:"playerCount"`
	ScarcityScore float64             `json:"scarcityScore"`
	Tiers         []Tier              `json:"tiers"`
}

// Positional filters players to position and runs Tiers and Scarcity.
func (a *Analyzer) Positional(players []model.Player, position model.Position) PositionalAnalysis {
	ps := make([]model.Player, 0)
	for _, p := range players {
		if p.Position == position {
			ps = append(ps, p)
		}
	}
	return PositionalAnalysis{
		Position:      position,
		Format:        a.Format,
		PlayerCount:   len(ps),
		ScarcityScore: a.Scarcity(ps),
		Tiers:         a.Tiers(ps, DefaultMaxTierPlayers),
	}
}
