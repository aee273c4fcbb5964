// Command ls-transits predicts upcoming exoplanet transits, optionally
// filtered to those observable from a ground site.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/exoarchive"
	"github.com/litescript/ls-transits/internal/logging"
	"github.com/litescript/ls-transits/internal/simbad"
	"github.com/litescript/ls-transits/internal/sites"
	"github.com/litescript/ls-transits/internal/tracker"
	"github.com/litescript/ls-transits/internal/transit"
	"github.com/litescript/ls-transits/internal/ui"
	"github.com/litescript/ls-transits/internal/version"
	"github.com/litescript/ls-transits/internal/visibility"
)

var (
	planetName string
	letter     string

	siteKey   string
	sitesFile string
	latDeg    float64
	lonDeg    float64
	elevM     float64

	nightName   string
	minAltDeg   float64
	moonSepDeg  float64
	maxCycles   int
	periodDays  float64
	epochBJD    float64
	atTime      string
	count       int
	jsonMode    bool
	tuiMode     bool
	listSites   bool
	showVersion bool
)

func main() {
	flag.StringVar(&planetName, "planet", "", "Planet or host star name (e.g. \"Kepler-51 b\")")
	flag.StringVar(&letter, "letter", "", "Planet letter, overriding one parsed from the name")
	flag.StringVar(&siteKey, "site", "", "Observing site key (see -list-sites)")
	flag.StringVar(&sitesFile, "sites-file", "", "TOML file with additional sites")
	flag.Float64Var(&latDeg, "lat", 0, "Site latitude in degrees (with -lon)")
	flag.Float64Var(&lonDeg, "lon", 0, "Site longitude in degrees, east positive (with -lat)")
	flag.Float64Var(&elevM, "elev", 0, "Site elevation in meters")
	flag.StringVar(&nightName, "night", "nautical", "Darkness definition (sunset, civil, nautical, astronomical)")
	flag.Float64Var(&minAltDeg, "min-alt", 15, "Minimum target altitude in degrees")
	flag.Float64Var(&moonSepDeg, "moon-sep", 30, "Minimum lunar separation in degrees (0 disables)")
	flag.IntVar(&maxCycles, "max-cycles", 200, "Transit candidates to try before giving up")
	flag.Float64Var(&periodDays, "period", 0, "Orbital period in days (with -t0, skips the catalog)")
	flag.Float64Var(&epochBJD, "t0", 0, "Mid-transit epoch in BJD_TDB (with -period)")
	flag.StringVar(&atTime, "at", "", "Reference time, RFC 3339 (default now)")
	flag.IntVar(&count, "count", 5, "Upcoming transits to list")
	flag.BoolVar(&jsonMode, "json", false, "Print the result as JSON")
	flag.BoolVar(&tuiMode, "tui", false, "Run the interactive transit board")
	flag.BoolVar(&listSites, "list-sites", false, "List known site keys and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if showVersion {
		fmt.Printf("ls-transits v%s\n", version.Version)
		return
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	registry := sites.NewRegistry()
	if sitesFile != "" {
		if err := registry.LoadFile(sitesFile); err != nil {
			fatal(err)
		}
	}
	if listSites {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
		return
	}

	if planetName == "" && flag.NArg() > 0 {
		planetName = strings.Join(flag.Args(), " ")
	}
	if planetName == "" && periodDays == 0 {
		fmt.Fprintln(os.Stderr, "Usage: ls-transits -planet \"Kepler-51 b\" [-site mauna-kea] [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	site, err := resolveSite(registry)
	if err != nil {
		fatal(err)
	}

	ref, err := parseRef()
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	tr := tracker.New(simbad.NewClient(), exoarchive.NewClient())
	tr.Log = logger
	if tr.Constraints, err = buildConstraints(); err != nil {
		fatal(err)
	}

	if tuiMode {
		runTUI(tr, site)
		return
	}

	res, err := runQuery(ctx, tr, site, ref)
	if err != nil {
		fatal(err)
	}

	up := tr.UpcomingTransits(res.Ephemeris, res.Target, site, ref, count)

	if jsonMode {
		writeJSON(os.Stdout, res, up)
		return
	}
	writeReport(res, up, site)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// resolveSite builds the observer from -site or -lat/-lon. Nil means no
// visibility filtering.
func resolveSite(registry *sites.Registry) (*astro.Observer, error) {
	if siteKey != "" {
		obs, ok := registry.Lookup(siteKey)
		if !ok {
			return nil, fmt.Errorf("unknown site %q (see -list-sites)", siteKey)
		}
		return &obs, nil
	}
	if latDeg != 0 || lonDeg != 0 {
		if latDeg < -90 || latDeg > 90 {
			return nil, fmt.Errorf("latitude %v out of range", latDeg)
		}
		obs := astro.Observer{LatDeg: latDeg, LonDeg: lonDeg, ElevM: elevM}
		return &obs, nil
	}
	return nil, nil
}

func parseRef() (time.Time, error) {
	if atTime == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, atTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse -at: %w", err)
	}
	return t, nil
}

func buildConstraints() (visibility.Constraints, error) {
	night, err := visibility.ParseNight(nightName)
	if err != nil {
		return visibility.Constraints{}, err
	}
	return visibility.Constraints{
		MinAltitudeDeg: minAltDeg,
		Night:          night,
		MinMoonSepDeg:  moonSepDeg,
		MaxCycles:      maxCycles,
	}, nil
}

func runQuery(ctx context.Context, tr *tracker.Tracker, site *astro.Observer, ref time.Time) (tracker.Result, error) {
	if periodDays > 0 || epochBJD > 0 {
		eph := transit.Ephemeris{PeriodDays: periodDays, MidTransitBJD: epochBJD}
		return tr.NextTransitWithEphemeris(ctx, planetName, eph, site, ref)
	}
	return tr.NextTransit(ctx, planetName, letter, site, ref)
}

func runTUI(tr *tracker.Tracker, site *astro.Observer) {
	model := ui.New(tr, ui.Query{
		Name:   planetName,
		Letter: letter,
		Site:   site,
		Count:  count,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// exportEntry is one upcoming transit in the JSON output.
type exportEntry struct {
	Cycle      int64     `json:"cycle"`
	CenterBJD  float64   `json:"center_bjd"`
	Center     time.Time `json:"center"`
	Observable *bool     `json:"observable,omitempty"`
}

// export is the JSON output document.
type export struct {
	Planet     string        `json:"planet"`
	Host       string        `json:"host"`
	RADeg      float64       `json:"ra_deg"`
	DecDeg     float64       `json:"dec_deg"`
	PeriodDays float64       `json:"period_days"`
	EpochBJD   float64       `json:"epoch_bjd"`
	Filtered   bool          `json:"filtered"`
	Next       exportEntry   `json:"next"`
	Upcoming   []exportEntry `json:"upcoming"`
}

func writeJSON(w *os.File, res tracker.Result, up []tracker.Upcoming) {
	doc := export{
		Planet:     res.Match.PlanetName,
		Host:       res.Target.Name,
		RADeg:      res.Target.RADeg,
		DecDeg:     res.Target.DecDeg,
		PeriodDays: res.Ephemeris.PeriodDays,
		EpochBJD:   res.Ephemeris.MidTransitBJD,
		Filtered:   res.Filtered,
		Next: exportEntry{
			Cycle:     res.Next.Cycle,
			CenterBJD: res.Next.CenterBJD,
			Center:    res.Next.Center.UTC(),
		},
	}
	if doc.Planet == "" {
		doc.Planet = planetName
	}
	for _, u := range up {
		e := exportEntry{
			Cycle:     u.Candidate.Cycle,
			CenterBJD: u.Candidate.CenterBJD,
			Center:    u.Candidate.Center.UTC(),
		}
		if u.HasReport {
			obs := u.Report.Observable()
			e.Observable = &obs
		}
		doc.Upcoming = append(doc.Upcoming, e)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fatal(err)
	}
}

func writeReport(res tracker.Result, up []tracker.Upcoming, site *astro.Observer) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	label := func(s string) string { return fmt.Sprintf("%-10s", s) }
	accent := func(s string) string { return s }
	good := func(s string) string { return s }
	dim := func(s string) string { return s }
	if isTTY {
		accentStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
		goodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		accent = func(s string) string { return accentStyle.Render(s) }
		good = func(s string) string { return goodStyle.Render(s) }
		dim = func(s string) string { return dimStyle.Render(s) }
	}

	name := res.Match.PlanetName
	if name == "" {
		name = planetName
	}
	fmt.Println(accent(name))
	if res.Target.Name != "" {
		fmt.Printf("%s %s (%.4f°, %.4f°)\n", label("Host"), res.Target.Name, res.Target.RADeg, res.Target.DecDeg)
	}
	fmt.Printf("%s %.6f d\n", label("Period"), res.Ephemeris.PeriodDays)
	fmt.Printf("%s BJD %.5f\n", label("Epoch"), res.Ephemeris.MidTransitBJD)
	if site != nil && site.Name != "" {
		fmt.Printf("%s %s\n", label("Site"), site.Name)
	}

	heading := "Next transit"
	if res.Filtered {
		heading = "Next observable transit"
	}
	fmt.Printf("\n%s: %s (BJD %.5f, cycle %d)\n",
		heading,
		res.Next.Center.UTC().Format("2006-01-02 15:04:05 UTC"),
		res.Next.CenterBJD,
		res.Next.Cycle)

	if len(up) == 0 {
		return
	}
	fmt.Println("\nUpcoming:")
	for _, u := range up {
		line := fmt.Sprintf("  %s  cycle %d",
			u.Candidate.Center.UTC().Format("2006-01-02 15:04"),
			u.Candidate.Cycle)
		if !u.HasReport {
			fmt.Println(line)
			continue
		}
		r := u.Report
		status := dim(statusWord(r))
		if r.Observable() {
			status = good("observable")
		}
		fmt.Printf("%s  alt %5.1f°  sun %6.1f°  %s\n", line, r.AltitudeDeg, r.SunAltitudeDeg, status)
	}
}

func statusWord(r visibility.Report) string {
	switch {
	case r.Observable():
		return "observable"
	case !r.AboveHorizon:
		return "below horizon"
	case !r.DarkEnough:
		return "daylight"
	default:
		return "moon too close"
	}
}
