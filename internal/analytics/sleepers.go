package analytics

import (
	"math"
	"sort"

	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/points"
)

const DefaultSleeperLimit = 10

type SleeperQuery struct {
	Position model.Position
	MinADP   *float64
	MaxADP   *float64
	Limit    int
}

type Sleeper struct {
	Name            string         `json:"name"`
	Position        model.Position `json:"position"`
	Team            string         `json:"team,omitempty"`
	Age             *int           `json:"age,omitempty"`
	ADP             *float64       `json:"adp,omitempty"`
	ProjectedPoints *float64       `json:"projectedPoints,omitempty"`
	InjuryStatus    string         `json:"injuryStatus,omitempty"`
	Score           int            `json:"sleeperScore"`
	Reasons         []string       `json:"reasons"`
}

func (a *Analyzer) SleeperScore(p model.Player) int {
	return a.Policy.SleeperScore(p, a.Format)
}

// FindSleepers keeps sleeper candidates matching q, orders them by score
// (ADP breaks ties) and truncates to q.Limit.
func (a *Analyzer) FindSleepers(players []model.Player, q SleeperQuery) []Sleeper {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSleeperLimit
	}
	out := make([]Sleeper, 0)
	for _, p := range players {
		if q.Position != "" && p.Position != q.Position {
			continue
		}
		if q.MinADP != nil && (p.ADP == nil || *p.ADP < *q.MinADP) {
			continue
		}
		if q.MaxADP != nil && (p.ADP == nil || *p.ADP > *q.MaxADP) {
			continue
		}
		if !a.Policy.IsSleeperCandidate(p) {
			continue
		}
		s := Sleeper{
			Name:         p.FullName,
			Position:     p.Position,
			Team:         p.Team,
			Age:          p.Age,
			ADP:          p.ADP,
			InjuryStatus: p.InjuryStatus,
			Score:        a.Policy.SleeperScore(p, a.Format),
			Reasons:      a.Policy.SleeperReasons(p, a.Format),
		}
		if v, ok := points.Projected(p, a.Format); ok {
			s.ProjectedPoints = &v
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return adpOrInf(out[i].ADP) < adpOrInf(out[j].ADP)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func adpOrInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
