// Package exoarchive queries the NASA Exoplanet Archive TAP service for
// planet records near a sky position.
package exoarchive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-transits/internal/transit"
)

const (
	// TAPURL is the Exoplanet Archive TAP synchronous query endpoint.
	TAPURL = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

	// RequestTimeout is the HTTP request timeout. The ps table is large and
	// the service is slow; allow more headroom than a typical API call.
	RequestTimeout = 60 * time.Second
)

// Client queries the Exoplanet Archive ps table. It implements
// transit.Catalog.
type Client struct {
	// BaseURL overrides the TAP endpoint; empty means TAPURL.
	BaseURL string

	client *http.Client
}

// NewClient creates an Exoplanet Archive TAP client.
func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: RequestTimeout},
	}
}

// ConeSearch returns all ps-table rows whose position lies within radiusDeg
// of (raDeg, decDeg). Every published parameter set is returned, not just the
// default one, so the crossmatch can fall back across rows.
func (c *Client) ConeSearch(ctx context.Context, raDeg, decDeg, radiusDeg float64) ([]transit.CatalogRow, error) {
	adql := fmt.Sprintf(
		"SELECT pl_name, pl_letter, default_flag, tran_flag, pl_orbper, pl_tranmid, pl_trandurh, ra, dec "+
			"FROM ps "+
			"WHERE CONTAINS(POINT('icrs', ra, dec), CIRCLE('icrs', %.6f, %.6f, %.6f)) = 1",
		raDeg, decDeg, radiusDeg)

	params := url.Values{}
	params.Set("request", "doQuery")
	params.Set("lang", "adql")
	params.Set("format", "csv")
	params.Set("query", adql)

	base := c.BaseURL
	if base == "" {
		base = TAPURL
	}
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build exoplanet archive request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exoplanet archive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("exoplanet archive returned status %d: %s", resp.StatusCode, string(body))
	}

	rows, err := parseCatalogCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse exoplanet archive response: %w", err)
	}
	return rows, nil
}

// parseCatalogCSV parses a ps-table CSV response into catalog rows. Numeric
// fields the archive leaves blank parse to zero, which the crossmatch treats
// as missing.
func parseCatalogCSV(r io.Reader) ([]transit.CatalogRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"pl_name", "pl_letter", "default_flag", "tran_flag", "pl_orbper", "pl_tranmid", "ra", "dec"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []transit.CatalogRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := transit.CatalogRow{
			PlanetName:    strings.TrimSpace(record[idx["pl_name"]]),
			Letter:        strings.TrimSpace(record[idx["pl_letter"]]),
			Default:       record[idx["default_flag"]] == "1",
			Transits:      record[idx["tran_flag"]] == "1",
			PeriodDays:    floatField(record, idx, "pl_orbper"),
			MidTransitBJD: floatField(record, idx, "pl_tranmid"),
			DurationHours: floatField(record, idx, "pl_trandurh"),
			RADeg:         floatField(record, idx, "ra"),
			DecDeg:        floatField(record, idx, "dec"),
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// floatField parses an optional numeric column; blanks and junk become zero.
func floatField(record []string, idx map[string]int, col string) float64 {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
	if err != nil {
		return 0
	}
	return v
}
