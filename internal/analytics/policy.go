// Package analytics turns a flat player pool into tiers, positional scarcity
// and sleeper scores. The heuristics are deliberately simple and reproducible;
// their constants live behind Policy so they can be tuned in one place.
package analytics

import (
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
)

// Policy holds the scoring constants and heuristics.
type Policy interface {
	// TierGap is the ADP gap between neighbours that starts a new tier.
	TierGap() float64
	// ScarcityWindow is the size of the top group compared with the next group.
	ScarcityWindow() int
	SleeperScore(p model.Player, format model.ScoringFormat) int
	IsSleeperCandidate(p model.Player) bool
	// SleeperReasons explains which SleeperScore terms fired.
	SleeperReasons(p model.Player, format model.ScoringFormat) []string
}

const (
	defaultTierGap        = 15.0
	defaultScarcityWindow = 12
)

// highOffenseTeams is the fixed allow-list used by the sleeper heuristic.
var highOffenseTeams = map[string]bool{
	"BAL": true,
	"BUF": true,
	"DAL": true,
	"DET": true,
	"KC":  true,
	"MIA": true,
	"PHI": true,
	"SF":  true,
}

// DefaultPolicy carries the reference weights. Changing any of them breaks
// comparability with previously published scores.
type DefaultPolicy struct{}

func (DefaultPolicy) TierGap() float64    { return defaultTierGap }
func (DefaultPolicy) ScarcityWindow() int { return defaultScarcityWindow }

type sleeperTerm struct {
	points int
	reason string
	hit    func(p model.Player, format model.ScoringFormat) bool
}

var sleeperTerms = []sleeperTerm{
	{2, "age under 25", func(p model.Player, _ model.ScoringFormat) bool {
		return p.Age != nil && *p.Age < 25
	}},
	{1, "age under 23", func(p model.Player, _ model.ScoringFormat) bool {
		return p.Age != nil && *p.Age < 23
	}},
	{1, "healthy", func(p model.Player, _ model.ScoringFormat) bool {
		return p.IsHealthy()
	}},
	{2, "top-2 on depth chart", func(p model.Player, _ model.ScoringFormat) bool {
		return p.DepthChartOrder != nil && *p.DepthChartOrder <= 2
	}},
	{1, "high-powered offense", func(p model.Player, _ model.ScoringFormat) bool {
		return highOffenseTeams[p.Team]
	}},
	{2, "projection outpaces ADP", func(p model.Player, format model.ScoringFormat) bool {
		proj, ok := points.Projected(p, format)
		return ok && p.ADP != nil && proj > *p.ADP*0.1
	}},
}

func (DefaultPolicy) SleeperScore(p model.Player, format model.ScoringFormat) int {
	score := 0
	for _, t := range sleeperTerms {
		if t.hit(p, format) {
			score += t.points
		}
	}
	return score
}

func (DefaultPolicy) SleeperReasons(p model.Player, format model.ScoringFormat) []string {
	out := make([]string, 0, len(sleeperTerms))
	for _, t := range sleeperTerms {
		if t.hit(p, format) {
			out = append(out, t.reason)
		}
	}
	return out
}

func (DefaultPolicy) IsSleeperCandidate(p model.Player) bool {
	return (p.Age != nil && *p.Age < 26) ||
		p.IsHealthy() ||
		(p.DepthChartOrder != nil && *p.DepthChartOrder <= 2) ||
		highOffenseTeams[p.Team]
}
