package reconcile

import (
	"fmt"
	"sort"

	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

type IssueKind string

const (
	CurrentPickMismatch IssueKind = "current_pick_mismatch"
	DuplicatePickNumber IssueKind = "duplicate_pick_number"
	MissingPickNumber   IssueKind = "missing_pick_number"
	DuplicatePlayer     IssueKind = "duplicate_player"
	RoundMismatch       IssueKind = "round_mismatch"
	UnknownPosition     IssueKind = "unknown_position"
)

type Issue struct {
	Kind       IssueKind `json:"kind"`
	PickNumber int       `json:"pick_number,omitempty"`
	// Through closes a range of missing picks that starts at PickNumber.
	Through int    `json:"through,omitempty"`
	Detail  string `json:"detail"`
}

type Report struct {
	ReportedCurrentPick int     `json:"reported_current_pick"`
	DerivedCurrentPick  int     `json:"derived_current_pick"`
	Issues              []Issue `json:"issues"`
}

// OK reports whether the history is internally consistent.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Messages flattens the issues for logs and recommendation warnings.
func (r *Report) Messages() []string {
	out := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		out = append(out, is.Detail)
	}
	return out
}

// BuildReport compares the reported current pick with the one derived from
// the history and flags gaps, duplicates and inconsistent rounds. It never
// rejects a state; the derived values win downstream.
func BuildReport(state model.DraftState) *Report {
	teams := state.LeagueSettings.WithDefaults().TeamCount
	derived := ledger.EffectiveCurrentPick(state.DraftedPlayers, state.CurrentPick)
	report := &Report{
		ReportedCurrentPick: state.CurrentPick,
		DerivedCurrentPick:  derived,
		Issues:              make([]Issue, 0),
	}
	if state.CurrentPick != derived {
		report.Issues = append(report.Issues, Issue{
			Kind:   CurrentPickMismatch,
			Detail: fmt.Sprintf("reported current pick %d but history implies %d", state.CurrentPick, derived),
		})
	}

	seenPick := make(map[int]bool)
	seenPlayer := make(map[string]int)
	numbers := make([]int, 0, len(state.DraftedPlayers))
	for _, p := range state.DraftedPlayers {
		if p.PickNumber > 0 {
			if seenPick[p.PickNumber] {
				report.Issues = append(report.Issues, Issue{
					Kind:       DuplicatePickNumber,
					PickNumber: p.PickNumber,
					Detail:     fmt.Sprintf("pick %d recorded more than once", p.PickNumber),
				})
			}
			seenPick[p.PickNumber] = true
			numbers = append(numbers, p.PickNumber)

			if want := ledger.ComputeRound(p.PickNumber, teams); p.Round != 0 && p.Round != want {
				report.Issues = append(report.Issues, Issue{
					Kind:       RoundMismatch,
					PickNumber: p.PickNumber,
					Detail:     fmt.Sprintf("pick %d recorded in round %d, snake order puts it in round %d", p.PickNumber, p.Round, want),
				})
			}
		}
		if _, ok := model.ParsePosition(string(p.Position)); !ok {
			report.Issues = append(report.Issues, Issue{
				Kind:       UnknownPosition,
				PickNumber: p.PickNumber,
				Detail:     fmt.Sprintf("%s has unknown position %q", p.PlayerName, p.Position),
			})
		}
		key := model.NormalizeName(p.PlayerName)
		if key == "" {
			continue
		}
		if first, ok := seenPlayer[key]; ok {
			report.Issues = append(report.Issues, Issue{
				Kind:       DuplicatePlayer,
				PickNumber: p.PickNumber,
				Detail:     fmt.Sprintf("%s drafted twice (picks %d and %d)", p.PlayerName, first, p.PickNumber),
			})
			continue
		}
		seenPlayer[key] = p.PickNumber
	}

	sort.Ints(numbers)
	expect := 1
	for _, n := range numbers {
		if n > expect {
			report.Issues = append(report.Issues, missingRange(expect, n-1))
		}
		if n >= expect {
			expect = n + 1
		}
	}
	return report
}

// missingRange reports one issue per gap, however wide.
func missingRange(from, through int) Issue {
	is := Issue{Kind: MissingPickNumber, PickNumber: from, Through: through}
	if from == through {
		is.Detail = fmt.Sprintf("no pick recorded for pick %d", from)
	} else {
		is.Detail = fmt.Sprintf("no picks recorded for picks %d-%d", from, through)
	}
	return is
}
