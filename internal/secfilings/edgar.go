// Package secfilings queries the SEC EDGAR full-text search for recent filings.
package secfilings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "stock-checkin/internal/errors"
	"stock-checkin/internal/models"
)

const (
	searchURL = "https://efts.sec.gov/LATEST/search-index"
	formTypes = "8-K,10-Q,10-K,4,SC 13D,SC 13G"

	// EDGAR requires an identifying User-Agent with a contact address.
	edgarUserAgent = "stock-checkin admin@example.com"

	// Filings newer than this many days are in scope for a check-in.
	lookbackDays = 7
)

// Client queries EDGAR full-text search.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates an EDGAR search client. A nil HTTP client falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: searchURL, userAgent: edgarUserAgent, logger: logger}
}

// Search returns the recent filings mentioning a ticker within the lookback
// window ending at endDate, deduplicated by accession number.
func (c *Client) Search(ctx context.Context, ticker string, endDate time.Time) ([]models.Filing, error) {
	start := endDate.AddDate(0, 0, -lookbackDays).Format(models.DateLayout)
	end := endDate.Format(models.DateLayout)

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%q", ticker))
	query.Set("forms", formTypes)
	query.Set("dateRange", "custom")
	query.Set("startdt", start)
	query.Set("enddt", end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewFetchError("edgar", ticker, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("edgar", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFetchError("edgar", ticker,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewScrapeError("edgar", ticker, "invalid JSON response", err)
	}

	filings := extractFilings(payload)
	c.logger.Debug().Str("ticker", ticker).Int("filings", len(filings)).Msg("EDGAR search completed")
	return filings, nil
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type searchHit struct {
	Source hitSource `json:"_source"`
}

type hitSource struct {
	Adsh         string      `json:"adsh"`
	Form         string      `json:"form"`
	FileType     string      `json:"file_type"`
	RootForms    []string    `json:"root_forms"`
	FileDate     string      `json:"file_date"`
	DateFiled    string      `json:"date_filed"`
	DisplayNames stringList  `json:"display_names"`
	EntityName   stringList  `json:"entity_name"`
	Ciks         []string    `json:"ciks"`
	Items        []string    `json:"items"`
}

// stringList absorbs fields EDGAR returns as either a string or a list.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// extractFilings normalizes search hits, deduplicating by accession number
// and falling back across EDGAR's alternate field names.
func extractFilings(payload searchResponse) []models.Filing {
	filings := []models.Filing{}
	seen := make(map[string]bool)

	for _, hit := range payload.Hits.Hits {
		src := hit.Source
		if seen[src.Adsh] {
			continue
		}
		seen[src.Adsh] = true

		formType := src.Form
		if formType == "" {
			formType = src.FileType
		}
		if formType == "" && len(src.RootForms) > 0 {
			formType = src.RootForms[0]
		}

		filedDate := src.FileDate
		if filedDate == "" {
			filedDate = src.DateFiled
		}

		title := strings.Join(src.DisplayNames, "; ")
		if title == "" {
			title = strings.Join(src.EntityName, "; ")
		}

		archiveURL := ""
		if src.Adsh != "" && len(src.Ciks) > 0 && src.Ciks[0] != "" {
			archiveURL = fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/", src.Ciks[0], src.Adsh)
		}

		items := src.Items
		if items == nil {
			items = []string{}
		}

		filings = append(filings, models.Filing{
			FilingType: strings.TrimSpace(formType),
			FiledDate:  strings.TrimSpace(filedDate),
			Title:      strings.TrimSpace(title),
			URL:        archiveURL,
			Items:      items,
		})
	}

	return filings
}
