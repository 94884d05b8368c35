package points

import "github.com/aatrey56/ff-draft-assistant/internal/model"

// Reception value removed per catch when converting a PPR projection.
var receptionValue = map[model.ScoringFormat]float64{
	model.PPR:      0,
	model.HalfPPR:  0.5,
	model.Standard: 1,
}

// Projected returns the season projection for format. An explicit per-format
// projection wins; otherwise ProjectedPoints (PPR basis) is converted using
// projected receptions when they are known. ok is false without any projection.
func Projected(p model.Player, format model.ScoringFormat) (float64, bool) {
	if v, ok := p.Projections[format]; ok {
		return v, true
	}
	if p.ProjectedPoints == nil {
		return 0, false
	}
	pts := *p.ProjectedPoints
	if p.ProjectedReceptions != nil {
		pts -= receptionValue[format] * *p.ProjectedReceptions
	}
	return pts, true
}

// ProjectedOrZero treats a missing projection as zero, which is how tier and
// scarcity averages count it.
func ProjectedOrZero(p model.Player, format model.ScoringFormat) float64 {
	v, _ := Projected(p, format)
	return v
}
