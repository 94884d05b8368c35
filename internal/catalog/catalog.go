// Package catalog is the read-only player pool the engine queries. A Snapshot
// is immutable after construction and safe for concurrent use.
package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

// Catalog is the accessor the engine depends on.
type Catalog interface {
	GetPlayerByFuzzyName(query string) (model.Player, bool)
	QueryPlayers(f Filter) []model.Player
}

// Filter narrows QueryPlayers. Zero values mean "no constraint".
type Filter struct {
	Position     model.Position
	Team         string
	MinADP       *float64
	MaxADP       *float64
	ExcludeNames map[string]bool // keys from model.NormalizeName
	Limit        int
}

type Snapshot struct {
	players []model.Player
	byID    map[string]int
	names   []string
	// keys holds model.NormalizeName of each name, index-aligned with players.
	keys []string
}

// NewSnapshot copies players and orders them by ascending ADP, unknown ADP
// last, name as tie breaker.
func NewSnapshot(players []model.Player) *Snapshot {
	ps := make([]model.Player, len(players))
	copy(ps, players)
	SortByADP(ps)

	s := &Snapshot{
		players: ps,
		byID:    make(map[string]int, len(ps)),
		names:   make([]string, len(ps)),
		keys:    make([]string, len(ps)),
	}
	for i, p := range ps {
		s.byID[p.ID] = i
		s.names[i] = p.FullName
		s.keys[i] = model.NormalizeName(p.FullName)
	}
	return s
}

// SortByADP sorts in place: ascending ADP, missing ADP last, stable otherwise.
func SortByADP(ps []model.Player) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].ADPOr(math.Inf(1)) < ps[j].ADPOr(math.Inf(1))
	})
}

func (s *Snapshot) Len() int {
	return len(s.players)
}

// Players returns a copy of the whole pool in ADP order.
func (s *Snapshot) Players() []model.Player {
	out := make([]model.Player, len(s.players))
	copy(out, s.players)
	return out
}

func (s *Snapshot) GetPlayerByID(id string) (model.Player, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Player{}, false
	}
	return s.players[i], true
}

// GetPlayerByFuzzyName returns the earliest-ADP player whose name contains
// query, ignoring case and runs of whitespace. Without a substring hit it falls back to the best
// subsequence match, so "cmccaffrey" still finds "Christian McCaffrey".
func (s *Snapshot) GetPlayerByFuzzyName(query string) (model.Player, bool) {
	q := model.NormalizeName(query)
	if q == "" {
		return model.Player{}, false
	}
	for i, key := range s.keys {
		if strings.Contains(key, q) {
			return s.players[i], true
		}
	}
	matches := fuzzy.Find(strings.ReplaceAll(q, " ", ""), s.names)
	if len(matches) == 0 {
		return model.Player{}, false
	}
	return s.players[matches[0].Index], true
}

func (s *Snapshot) QueryPlayers(f Filter) []model.Player {
	out := make([]model.Player, 0)
	for _, p := range s.players {
		if f.Position != "" && p.Position != f.Position {
			continue
		}
		if f.Team != "" && !strings.EqualFold(p.Team, f.Team) {
			continue
		}
		if f.MinADP != nil && (p.ADP == nil || *p.ADP < *f.MinADP) {
			continue
		}
		if f.MaxADP != nil && (p.ADP == nil || *p.ADP > *f.MaxADP) {
			continue
		}
		if len(f.ExcludeNames) > 0 && f.ExcludeNames[model.NormalizeName(p.FullName)] {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}
