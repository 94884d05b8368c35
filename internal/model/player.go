package model

import "strings"

// Player is one record of the catalog snapshot. Optional numeric fields are
// pointers so "unknown" stays distinguishable from zero.
type Player struct {
	ID                  string                    `json:"id"`
	FullName            string                    `json:"fullName"`
	Position            Position                  `json:"position"`
	Team                string                    `json:"team,omitempty"`
	Age                 *int                      `json:"age,omitempty"`
	YearsExperience     *int                      `json:"yearsExperience,omitempty"`
	ADP                 *float64                  `json:"adp,omitempty"`
	ProjectedPoints     *float64                  `json:"projectedPoints,omitempty"`
	ProjectedReceptions *float64                  `json:"projectedReceptions,omitempty"`
	Projections         map[ScoringFormat]float64 `json:"projections,omitempty"`
	InjuryStatus        string                    `json:"injuryStatus,omitempty"`
	TrendingAddRank     *int                      `json:"trendingAddRank,omitempty"`
	TrendingDropRank    *int                      `json:"trendingDropRank,omitempty"`
	DepthChartOrder     *int                      `json:"depthChartOrder,omitempty"`
}

// IsFreeAgent reports whether the player has no NFL team.
func (p Player) IsFreeAgent() bool {
	return strings.TrimSpace(p.Team) == ""
}

// IsHealthy treats an empty status as healthy; providers leave it blank for active players.
func (p Player) IsHealthy() bool {
	switch strings.ToLower(strings.TrimSpace(p.InjuryStatus)) {
	case "", "healthy", "active", "none":
		return true
	default:
		return false
	}
}

// ADPOr returns the ADP or def when unknown.
func (p Player) ADPOr(def float64) float64 {
	if p.ADP == nil {
		return def
	}
	return *p.ADP
}
