package exoarchive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleCSV = `pl_name,pl_letter,default_flag,tran_flag,pl_orbper,pl_tranmid,pl_trandurh,ra,dec
Kepler-51 b,b,1,1,45.1540000,2455712.1100000,5.70,296.4780374,49.9397486
Kepler-51 b,b,0,1,45.1553900,,,296.4780374,49.9397486
Kepler-51 c,c,1,1,85.3128700,2455712.6900000,,296.4780374,49.9397486
Kepler-51 d,d,1,1,130.1845000,2455768.0200000,6.23,296.4780374,49.9397486
`

func TestParseCatalogCSV(t *testing.T) {
	rows, err := parseCatalogCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parseCatalogCSV() error = %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}

	b := rows[0]
	if b.PlanetName != "Kepler-51 b" || b.Letter != "b" {
		t.Errorf("row 0 identity = %q/%q", b.PlanetName, b.Letter)
	}
	if !b.Default || !b.Transits {
		t.Errorf("row 0 flags = default %v, transits %v", b.Default, b.Transits)
	}
	if b.PeriodDays != 45.154 || b.MidTransitBJD != 2455712.11 {
		t.Errorf("row 0 ephemeris = %v / %v", b.PeriodDays, b.MidTransitBJD)
	}
	if b.DurationHours != 5.70 {
		t.Errorf("row 0 duration = %v", b.DurationHours)
	}

	// Blank numeric fields come back as zero, meaning missing.
	alt := rows[1]
	if alt.Default {
		t.Error("row 1 should not be the default parameter set")
	}
	if alt.MidTransitBJD != 0 || alt.DurationHours != 0 {
		t.Errorf("row 1 blanks = %v / %v, want zeros", alt.MidTransitBJD, alt.DurationHours)
	}
}

func TestParseCatalogCSV_Empty(t *testing.T) {
	rows, err := parseCatalogCSV(strings.NewReader("pl_name,pl_letter,default_flag,tran_flag,pl_orbper,pl_tranmid,pl_trandurh,ra,dec\n"))
	if err != nil {
		t.Fatalf("parseCatalogCSV() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestParseCatalogCSV_MissingColumn(t *testing.T) {
	_, err := parseCatalogCSV(strings.NewReader("pl_name,ra,dec\nKepler-51 b,296.478,49.94\n"))
	if err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestConeSearch_AgainstStubServer(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c := NewClient()
	c.BaseURL = srv.URL

	rows, err := c.ConeSearch(context.Background(), 296.478, 49.94, 30.0/3600.0)
	if err != nil {
		t.Fatalf("ConeSearch() error = %v", err)
	}

	if len(rows) != 4 {
		t.Errorf("len(rows) = %d, want 4", len(rows))
	}
	if !strings.Contains(gotQuery, "CIRCLE('icrs', 296.478000, 49.940000, 0.008333)") {
		t.Errorf("query %q does not carry the cone", gotQuery)
	}
}

func TestConeSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "query failed", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient()
	c.BaseURL = srv.URL

	if _, err := c.ConeSearch(context.Background(), 296.478, 49.94, 0.01); err == nil {
		t.Error("expected error for 400 response")
	}
}

func TestConeSearch_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	c := NewClient()
	rows, err := c.ConeSearch(context.Background(), 296.4780374, 49.9397486, 30.0/3600.0)
	if err != nil {
		t.Fatalf("ConeSearch failed: %v", err)
	}

	if len(rows) == 0 {
		t.Fatal("expected rows for the Kepler-51 system")
	}

	t.Logf("Got %d rows", len(rows))
	found := false
	for _, r := range rows {
		if r.PlanetName == "Kepler-51 b" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Kepler-51 b not in cone results")
	}
}
