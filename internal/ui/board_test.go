package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/tracker"
	"github.com/litescript/ls-transits/internal/transit"
	"github.com/litescript/ls-transits/internal/visibility"
)

func testModel() Model {
	m := New(nil, Query{Name: "Kepler-51 b", Count: 3})
	m.ready = true
	m.loading = false
	m.width = 100
	m.height = 40
	m.result = tracker.Result{
		Target:    transit.Target{Name: "Kepler-51", RADeg: 296.478, DecDeg: 49.94},
		Match:     transit.Match{PlanetName: "Kepler-51 b", HostName: "Kepler-51", Letter: "b"},
		Ephemeris: transit.Ephemeris{PeriodDays: 45.155, MidTransitBJD: 2455712.11, DurationHours: 5.7},
		Next: transit.Candidate{
			Cycle:     103,
			CenterBJD: 2460363.075,
			Center:    time.Now().Add(72 * time.Hour),
		},
	}
	return m
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Second, "1m 30s"},
		{3*time.Hour + 5*time.Minute, "3h 05m 00s"},
		{49*time.Hour + 30*time.Second, "2d 01h 00m 30s"},
		{10 * time.Second, "0m 10s"},
	}

	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestView_ShowsTargetAndCountdown(t *testing.T) {
	m := testModel()
	view := m.View()

	for _, want := range []string{"Kepler-51 b", "45.155", "Next Transit", "2455712.11"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_FilteredTitle(t *testing.T) {
	m := testModel()
	m.result.Filtered = true

	if !strings.Contains(m.View(), "Next Observable Transit") {
		t.Error("filtered result should use the observable title")
	}
}

func TestView_NotReady(t *testing.T) {
	m := New(nil, Query{Name: "X"})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q before first WindowSizeMsg", got)
	}
}

func TestRenderUpcomingTable_StatusTiers(t *testing.T) {
	m := testModel()
	site := astro.Observer{LatDeg: 60, Name: "north"}
	m.query.Site = &site
	now := time.Now()

	m.upcoming = []tracker.Upcoming{
		{
			Candidate: transit.Candidate{Cycle: 1, Center: now},
			Report:    visibility.Report{AboveHorizon: true, DarkEnough: true, MoonClear: true, AltitudeDeg: 40},
			HasReport: true,
		},
		{
			Candidate: transit.Candidate{Cycle: 2, Center: now},
			Report:    visibility.Report{AboveHorizon: false, AltitudeDeg: -5},
			HasReport: true,
		},
		{
			Candidate: transit.Candidate{Cycle: 3, Center: now},
			Report:    visibility.Report{AboveHorizon: true, DarkEnough: false, AltitudeDeg: 40, SunAltitudeDeg: 10},
			HasReport: true,
		},
		{
			Candidate: transit.Candidate{Cycle: 4, Center: now},
			Report:    visibility.Report{AboveHorizon: true, DarkEnough: true, MoonClear: false, AltitudeDeg: 40, MoonSepDeg: 5},
			HasReport: true,
		},
	}

	table := m.renderUpcomingTable()
	for _, want := range []string{"observable", "below horizon", "daylight", "moon too close"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing status %q", want)
		}
	}
}

func TestRenderUpcomingTable_NoSiteOmitsStatus(t *testing.T) {
	m := testModel()
	m.upcoming = []tracker.Upcoming{
		{Candidate: transit.Candidate{Cycle: 1, Center: time.Now()}},
		{Candidate: transit.Candidate{Cycle: 2, Center: time.Now()}},
	}

	table := m.renderUpcomingTable()
	if strings.Contains(table, "Status") {
		t.Error("table should omit the status column without a site")
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := testModel()

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		if _, cmd := m.Update(key); cmd == nil {
			t.Errorf("key %q should quit", key.String())
		}
	}
}

func TestUpdate_ErrorShownInFooter(t *testing.T) {
	m := testModel()

	next, _ := m.Update(ErrMsg{Err: errFake})
	view := next.View()
	if !strings.Contains(view, "ERROR") || !strings.Contains(view, "fake failure") {
		t.Error("footer should surface the error")
	}
}

type fakeErr struct{}

func (fakeErr) Error() string { return "fake failure" }

var errFake = fakeErr{}
