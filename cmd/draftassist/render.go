package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	onClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

func renderRecommendation(rec *model.Recommendation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recommendation"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(rec.Text))
	b.WriteString("\n")
	if len(rec.ToolsUsed) > 0 {
		b.WriteString(dimStyle.Render("tools used: " + strings.Join(rec.ToolsUsed, ", ")))
		b.WriteString("\n")
	}
	for _, tc := range rec.ToolCalls {
		if tc.Error != "" {
			b.WriteString(warnStyle.Render(fmt.Sprintf("%s failed: %s", tc.Name, tc.Error)))
			b.WriteString("\n")
		}
	}
	b.WriteString(renderWarnings(rec.Warnings))
	b.WriteString(dimStyle.Render(fmt.Sprintf("request %s at %s", rec.RequestID, rec.GeneratedAt.Format("15:04:05"))))
	b.WriteString("\n")
	return b.String()
}

func renderAnalysis(a *ledger.Analysis) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: pick %d (round %d, %s)", a.UserTeam, a.CurrentPick, a.Round, a.Phase)))
	b.WriteString("\n")
	switch {
	case a.IsUserTurn:
		b.WriteString(onClockStyle.Render("You are on the clock."))
	case a.PicksUntilUserTurn != nil:
		b.WriteString(fmt.Sprintf("%d picks until your turn.", *a.PicksUntilUserTurn))
	default:
		b.WriteString(dimStyle.Render("Draft slot unknown."))
	}
	b.WriteString("\n")
	if len(a.UpcomingPicks) > 0 {
		picks := make([]string, 0, len(a.UpcomingPicks))
		for _, p := range a.UpcomingPicks {
			picks = append(picks, fmt.Sprint(p))
		}
		b.WriteString("Upcoming picks: " + strings.Join(picks, ", ") + "\n")
	}

	b.WriteString(headerStyle.Render("Needs"))
	b.WriteString("\n")
	keys := make([]string, 0, len(a.RosterNeeds))
	for k := range a.RosterNeeds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	needs := make([]string, 0, len(keys))
	for _, k := range keys {
		needs = append(needs, fmt.Sprintf("%s %d", k, a.RosterNeeds[k]))
	}
	b.WriteString("  " + strings.Join(needs, "  ") + "\n")
	if len(a.UserRoster) > 0 {
		b.WriteString(dimStyle.Render("  roster: " + strings.Join(a.UserRoster, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

func renderPositional(pa analytics.PositionalAnalysis, maxTiers int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  (%d available, scarcity %.1f)", pa.Position, pa.PlayerCount, pa.ScarcityScore)))
	b.WriteString("\n")
	for i, t := range pa.Tiers {
		if i == maxTiers {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more tiers", len(pa.Tiers)-maxTiers)))
			b.WriteString("\n")
			break
		}
		names := make([]string, 0, len(t.Players))
		for _, p := range t.Players {
			names = append(names, p.Name)
		}
		meta := make([]string, 0, 2)
		if t.AverageADP != nil {
			meta = append(meta, fmt.Sprintf("avg ADP %.1f", *t.AverageADP))
		}
		if t.DropoffToNext != nil {
			meta = append(meta, fmt.Sprintf("drop-off %.1f", *t.DropoffToNext))
		}
		b.WriteString(fmt.Sprintf("  Tier %d %s: %s\n", t.TierNumber, dimStyle.Render("("+strings.Join(meta, ", ")+")"), strings.Join(names, ", ")))
	}
	return b.String()
}

func renderSleepers(sleepers []analytics.Sleeper) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Sleepers"))
	b.WriteString("\n")
	for _, s := range sleepers {
		adp := "-"
		if s.ADP != nil {
			adp = fmt.Sprintf("%.1f", *s.ADP)
		}
		b.WriteString(fmt.Sprintf("  %-24s %-3s %-4s ADP %-6s score %d %s\n",
			s.Name, s.Position, s.Team, adp, s.Score, dimStyle.Render(strings.Join(s.Reasons, "; "))))
	}
	return b.String()
}

func renderWarnings(warnings []string) string {
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(warnStyle.Render("warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}
