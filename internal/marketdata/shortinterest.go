package marketdata

import (
	"math"
	"time"

	"stock-checkin/internal/models"
)

// ExtractShortInterest pulls the short-interest fields out of a quote.
// A nil quote yields an unavailable record rather than an error.
func ExtractShortInterest(quote *Quote) models.ShortInterest {
	si := models.ShortInterest{Source: "yahoo"}
	if quote == nil {
		return si
	}

	si.SharesShort = quote.SharesShort
	si.SharesShortPriorMonth = quote.SharesShortPriorMonth
	si.Available = quote.SharesShort != nil

	if quote.ShortRatio != nil {
		si.ShortRatio = round2(*quote.ShortRatio)
	}
	if quote.ShortPercentOfFloat != nil {
		si.ShortPctOfFloat = round2(*quote.ShortPercentOfFloat * 100)
	}
	if quote.DateShortInterest != nil {
		si.ReportDate = time.Unix(*quote.DateShortInterest, 0).UTC().Format(models.DateLayout)
	}

	if quote.SharesShort != nil && quote.SharesShortPriorMonth != nil && *quote.SharesShortPriorMonth > 0 {
		change := (float64(*quote.SharesShort) - float64(*quote.SharesShortPriorMonth)) /
			float64(*quote.SharesShortPriorMonth) * 100
		si.ChangePct = round2(change)
	}

	return si
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
