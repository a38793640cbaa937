// internal/infrastructure/sheets/client.go
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/prnse-cda/cda-store/internal/config"
	"github.com/prnse-cda/cda-store/internal/domain/catalog"
)

// Client fetches published-spreadsheet CSV exports. One fetchable tab is one
// resource id (the sheet gid). Requests are paced with a rate limiter; the
// publish endpoint throttles bursts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logrus.Logger
}

// NewClient creates a sheets client from config
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Sheets.FetchTimeout},
		baseURL:    cfg.Sheets.PublishedBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Sheets.FetchRatePerSec), cfg.Sheets.FetchBurst),
		log:        log,
	}
}

// Fetch downloads one tab as CSV and returns its rows keyed by normalized
// header names. Rows shorter than the header simply lack those keys.
func (c *Client) Fetch(ctx context.Context, resourceID string) ([]catalog.Row, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL, err := c.resourceURL(resourceID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.log.WithField("resource_id", resourceID).Debug("fetching sheet resource")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch resource %s: %w", resourceID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch resource %s: unexpected status %d", resourceID, resp.StatusCode)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse resource %s: %w", resourceID, err)
	}
	return rows, nil
}

func (c *Client) resourceURL(resourceID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid published URL: %w", err)
	}
	q := u.Query()
	q.Set("gid", resourceID)
	q.Set("single", "true")
	q.Set("output", "csv")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseCSV reads a header-first CSV stream into row maps. Header names are
// normalized so downstream alias resolution is insensitive to casing and
// padding. Records may have ragged lengths; empty lines are skipped.
func parseCSV(r io.Reader) ([]catalog.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = catalog.NormalizeKey(h)
	}

	var rows []catalog.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(catalog.Row, len(keys))
		empty := true
		for i, value := range record {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			row[keys[i]] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
