package insider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	apperrors "stock-checkin/internal/errors"
	"stock-checkin/internal/models"
)

const (
	screenerURL = "https://www.openinsider.com/screener?s=%s&o=&pl=&ph=&st=0&lt=0&lk=&ld=&td=7&tdr=&fdlyl=&fdlyh=&dtefrom=&dteto=&xp=1&vtefrom=&vteto=&hession=true"
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// The screener lists newest first; only the most recent rows matter for
	// the 7-day cluster window.
	maxRows = 20

	minCells = 13
)

// Scraper fetches insider transactions from the OpenInsider screener.
type Scraper struct {
	client *http.Client
	logger zerolog.Logger
}

// NewScraper creates a Scraper using the given HTTP client. A nil client
// falls back to http.DefaultClient.
func NewScraper(client *http.Client, logger zerolog.Logger) *Scraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &Scraper{client: client, logger: logger}
}

// Fetch retrieves the recent insider transactions for a ticker. An empty
// result with a nil error means the screener listed no transactions.
func (s *Scraper) Fetch(ctx context.Context, ticker string) ([]models.InsiderTransaction, error) {
	return s.fetchURL(ctx, ticker, fmt.Sprintf(screenerURL, ticker))
}

func (s *Scraper) fetchURL(ctx context.Context, ticker, url string) ([]models.InsiderTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("openinsider", ticker, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("openinsider", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFetchError("openinsider", ticker,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	transactions, err := ParseScreener(resp.Body)
	if err != nil {
		return nil, apperrors.NewScrapeError("openinsider", ticker, "parsing screener table", err)
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Int("transactions", len(transactions)).
		Msg("Insider screener fetched")

	return transactions, nil
}

// ParseScreener extracts transactions from an OpenInsider screener page.
// A page without the screener table yields no transactions and no error.
func ParseScreener(body io.Reader) ([]models.InsiderTransaction, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table.tinytable").First()
	if table.Length() == 0 {
		return nil, nil
	}

	var transactions []models.InsiderTransaction
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || len(transactions) >= maxRows {
			return
		}
		cells := row.Find("td")
		if cells.Length() < minCells {
			return
		}

		txn := models.InsiderTransaction{
			FilingDate:  cellText(cells, 1),
			TradeDate:   cellText(cells, 2),
			InsiderName: cellText(cells, 4),
			Title:       cellText(cells, 5),
			TradeType:   cellText(cells, 6),
			Price:       parseMoney(cellText(cells, 8)),
			Shares:      parseShares(cellText(cells, 9)),
			Value:       parseMoney(cellText(cells, 12)),
		}

		if href, ok := cells.Eq(1).Find("a").First().Attr("href"); ok && strings.HasPrefix(href, "/") {
			txn.FilingURL = "https://www.sec.gov" + href
		}

		transactions = append(transactions, txn)
	})

	return transactions, nil
}

func cellText(cells *goquery.Selection, index int) string {
	return strings.TrimSpace(cells.Eq(index).Text())
}

var moneyStrip = regexp.MustCompile(`[,$]`)
var sharesStrip = regexp.MustCompile(`[,+]`)

// parseMoney parses dollar amounts like "$1,234,567" or "-$500".
func parseMoney(text string) *float64 {
	cleaned := moneyStrip.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseShares parses share counts like "+1,234" or "-500".
func parseShares(text string) *int64 {
	cleaned := sharesStrip.ReplaceAllString(strings.TrimSpace(text), "")
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
