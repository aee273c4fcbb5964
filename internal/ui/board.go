package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-transits/internal/tracker"
)

// Styles for the transit board
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	observableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	daylightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	belowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	moonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("111"))
)

func (m Model) renderBoard() string {
	if m.lastErr != nil {
		return "\n  Query failed; press r to retry.\n"
	}
	if m.result.Next.Center.IsZero() {
		return "\n  Querying Simbad and the Exoplanet Archive...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderTargetPanel())
	b.WriteString("\n")
	b.WriteString(m.renderNextTransit())
	b.WriteString("\n")
	b.WriteString(m.renderUpcomingTable())
	return b.String()
}

func (m Model) renderTargetPanel() string {
	res := m.result
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("Target") + "\n")
	b.WriteString(panelRow("Planet", res.Match.PlanetName))
	b.WriteString(panelRow("Host", fmt.Sprintf("%s  (%.4f°, %.4f°)", res.Target.Name, res.Target.RADeg, res.Target.DecDeg)))
	b.WriteString(panelRow("Period", fmt.Sprintf("%.6f d", res.Ephemeris.PeriodDays)))
	b.WriteString(panelRow("Epoch", fmt.Sprintf("BJD %.5f", res.Ephemeris.MidTransitBJD)))
	if res.Ephemeris.DurationHours > 0 {
		b.WriteString(panelRow("Duration", fmt.Sprintf("%.2f h", res.Ephemeris.DurationHours)))
	}
	if m.query.Site != nil {
		b.WriteString(panelRow("Site", m.query.Site.Name))
	}
	return b.String()
}

func panelRow(label, value string) string {
	return fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label)), valueStyle.Render(value))
}

func (m Model) renderNextTransit() string {
	next := m.result.Next
	var b strings.Builder

	title := "Next Transit"
	if m.result.Filtered {
		title = "Next Observable Transit"
	}
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	b.WriteString(panelRow("Center", next.Center.UTC().Format("2006-01-02 15:04:05")+" UTC"))
	b.WriteString(panelRow("BJD", fmt.Sprintf("%.5f", next.CenterBJD)))

	until := time.Until(next.Center)
	if until > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-9s", "In")),
			countdownStyle.Render(formatCountdown(until))))
	}
	return b.String()
}

// formatCountdown renders a duration as "12d 03h 44m 10s", dropping leading
// zero units.
func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %02dm %02ds", hours, mins, secs)
	default:
		return fmt.Sprintf("%dm %02ds", mins, secs)
	}
}

func (m Model) renderUpcomingTable() string {
	if len(m.upcoming) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Upcoming") + "\n")

	withSite := m.upcoming[0].HasReport
	header := fmt.Sprintf("%-7s %-21s", "Cycle", "Center (UTC)")
	if withSite {
		header += fmt.Sprintf(" %-7s %-8s %s", "Alt", "Sun", "Status")
	}
	b.WriteString("  " + headerStyle.Render(header) + "\n")

	for _, u := range m.upcoming {
		row := fmt.Sprintf("%-7d %-21s",
			u.Candidate.Cycle,
			u.Candidate.Center.UTC().Format("2006-01-02 15:04"))

		if !withSite {
			b.WriteString("  " + valueStyle.Render(row) + "\n")
			continue
		}

		r := u.Report
		row += fmt.Sprintf(" %6.1f° %7.1f° ", r.AltitudeDeg, r.SunAltitudeDeg)
		b.WriteString("  " + valueStyle.Render(row) + statusCell(u) + "\n")
	}
	return b.String()
}

// statusCell classifies a candidate by its first failing constraint.
func statusCell(u tracker.Upcoming) string {
	r := u.Report
	switch {
	case r.Observable():
		return observableStyle.Render("observable")
	case !r.AboveHorizon:
		return belowStyle.Render("below horizon")
	case !r.DarkEnough:
		return daylightStyle.Render("daylight")
	default:
		return moonStyle.Render("moon too close")
	}
}
