package analytics

import (
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
)

// DefaultMaxTierPlayers caps how many players Tiers considers.
const DefaultMaxTierPlayers = 50

type TierPlayer struct {
	Name            string   `json:"name"`
	ADP             *float64 `json:"adp"`
	ProjectedPoints *float64 `json:"projectedPoints"`
}

type Tier struct {
	TierNumber    int          `json:"tierNumber"`
	Players       []TierPlayer `json:"players"`
	AverageADP    *float64     `json:"averageADP"`
	DropoffToNext *float64     `json:"dropoffToNext"`
}

// Analyzer applies a Policy to player pools under one scoring format.
type Analyzer struct {
	Policy Policy
	Format model.ScoringFormat
}

func NewAnalyzer(policy Policy, format model.ScoringFormat) *Analyzer {
	if policy == nil {
		policy = DefaultPolicy{}
	}
	if format == "" {
		format = model.PPR
	}
	return &Analyzer{Policy: policy, Format: format}
}

// Tiers clusters up to maxPlayers players in ADP order. A tier breaks when the
// ADP gap to the previous player exceeds the policy gap, or when ADP runs out.
func (a *Analyzer) Tiers(players []model.Player, maxPlayers int) []Tier {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxTierPlayers
	}
	ps := make([]model.Player, len(players))
	copy(ps, players)
	catalog.SortByADP(ps)
	if len(ps) > maxPlayers {
		ps = ps[:maxPlayers]
	}

	tiers := make([]Tier, 0)
	groups := make([][]model.Player, 0)
	for i, p := range ps {
		if i == 0 || a.startsTier(ps[i-1], p) {
			groups = append(groups, []model.Player{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}

	for i, g := range groups {
		t := Tier{TierNumber: i + 1, Players: make([]TierPlayer, 0, len(g))}
		adpSum, adpN := 0.0, 0
		for _, p := range g {
			tp := TierPlayer{Name: p.FullName, ADP: p.ADP}
			if v, ok := points.Projected(p, a.Format); ok {
				tp.ProjectedPoints = &v
			}
			t.Players = append(t.Players, tp)
			if p.ADP != nil {
				adpSum += *p.ADP
				adpN++
			}
		}
		if adpN > 0 {
			avg := adpSum / float64(adpN)
			t.AverageADP = &avg
		}
		if i+1 < len(groups) {
			t.DropoffToNext = a.dropoff(g, groups[i+1])
		}
		tiers = append(tiers, t)
	}
	return tiers
}

func (a *Analyzer) startsTier(prev, cur model.Player) bool {
	switch {
	case prev.ADP == nil && cur.ADP == nil:
		return false
	case prev.ADP == nil || cur.ADP == nil:
		return true
	default:
		return *cur.ADP-*prev.ADP > a.Policy.TierGap()
	}
}

// dropoff is mean projection of this tier minus the next; missing projections
// count as zero, and nil means neither tier has any projection at all.
func (a *Analyzer) dropoff(cur, next []model.Player) *float64 {
	curMean, curAny := a.meanProjection(cur)
	nextMean, nextAny := a.meanProjection(next)
	if !curAny && !nextAny {
		return nil
	}
	d := curMean - nextMean
	return &d
}

func (a *Analyzer) meanProjection(ps []model.Player) (float64, bool) {
	if len(ps) == 0 {
		return 0, false
	}
	sum := 0.0
	found := false
	for _, p := range ps {
		v, ok := points.Projected(p, a.Format)
		if ok {
			found = true
		}
		sum += v
	}
	return sum / float64(len(ps)), found
}
