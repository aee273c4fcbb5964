// Package simbad resolves object names to sky positions using the CDS Simbad
// TAP service.
package simbad

import (
	"context"
	"encoding/csv"
	"errors"
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
	// TAPURL is the Simbad TAP synchronous query endpoint.
	TAPURL = "https://simbad.cds.unistra.fr/simbad/sim-tap/sync"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// Client queries Simbad for object coordinates. It implements
// transit.Resolver.
type Client struct {
	// BaseURL overrides the TAP endpoint; empty means TAPURL.
	BaseURL string

	client *http.Client
}

// NewClient creates a Simbad TAP client.
func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: RequestTimeout},
	}
}

// Resolve looks up a host star name and returns its ICRS position.
// The name is normalized (whitespace collapsed) before querying. A name
// unknown to Simbad yields transit.ErrNotFound.
func (c *Client) Resolve(ctx context.Context, name string) (transit.Target, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return transit.Target{}, fmt.Errorf("empty object name: %w", transit.ErrNotFound)
	}

	// ADQL identifier lookup against the basic table. Single quotes in the
	// name are doubled per ADQL string literal rules.
	adql := fmt.Sprintf(
		"SELECT basic.main_id, basic.ra, basic.dec "+
			"FROM basic JOIN ident ON basic.oid = ident.oidref "+
			"WHERE ident.id = '%s'",
		strings.ReplaceAll(name, "'", "''"))

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
		return transit.Target{}, fmt.Errorf("build simbad request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return transit.Target{}, fmt.Errorf("simbad request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return transit.Target{}, fmt.Errorf("simbad returned status %d: %s", resp.StatusCode, string(body))
	}

	target, err := parseResolveCSV(resp.Body)
	if err != nil {
		if errors.Is(err, transit.ErrNotFound) {
			return transit.Target{}, fmt.Errorf("%q is not known to Simbad: %w", name, transit.ErrNotFound)
		}
		return transit.Target{}, fmt.Errorf("parse simbad response for %q: %w", name, err)
	}
	return target, nil
}

// parseResolveCSV parses a TAP CSV response with columns main_id, ra, dec.
func parseResolveCSV(r io.Reader) (transit.Target, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return transit.Target{}, transit.ErrNotFound
	}
	if err != nil {
		return transit.Target{}, err
	}

	idx := columnIndex(header)
	for _, col := range []string{"main_id", "ra", "dec"} {
		if _, ok := idx[col]; !ok {
			return transit.Target{}, fmt.Errorf("missing column %q", col)
		}
	}

	record, err := cr.Read()
	if err == io.EOF {
		return transit.Target{}, transit.ErrNotFound
	}
	if err != nil {
		return transit.Target{}, err
	}

	ra, err := strconv.ParseFloat(record[idx["ra"]], 64)
	if err != nil {
		return transit.Target{}, fmt.Errorf("bad ra %q", record[idx["ra"]])
	}
	dec, err := strconv.ParseFloat(record[idx["dec"]], 64)
	if err != nil {
		return transit.Target{}, fmt.Errorf("bad dec %q", record[idx["dec"]])
	}

	return transit.Target{
		Name:   strings.TrimSpace(record[idx["main_id"]]),
		RADeg:  ra,
		DecDeg: dec,
	}, nil
}

// columnIndex maps lowercased column names to their positions.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}
