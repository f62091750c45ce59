// Package insider fetches insider trading activity and flags cluster selling.
package insider

import (
	"sort"
	"strings"
	"time"

	"stock-checkin/internal/models"
)

const clusterWindowDays = 7
const clusterMinSellers = 3

// IsSale classifies a screener trade-type string as a sale. The matching is
// heuristic substring matching against the screener's labels; keeping it in
// one place lets the rule be strengthened without touching the window scan.
func IsSale(tradeType string) bool {
	return strings.Contains(tradeType, "Sale") || strings.Contains(tradeType, "S -")
}

type sale struct {
	date time.Time
	name string
}

// DetectClusterSelling reports whether three or more distinct insiders sold
// within any rolling 7-day window. Transactions that are not sales, or whose
// trade date does not parse, are ignored.
func DetectClusterSelling(transactions []models.InsiderTransaction) bool {
	var sells []sale
	for _, t := range transactions {
		if !IsSale(t.TradeType) {
			continue
		}
		d := models.ParseDate(t.TradeDate)
		if d == nil {
			continue
		}
		sells = append(sells, sale{date: *d, name: t.InsiderName})
	}

	if len(sells) < clusterMinSellers {
		return false
	}

	sort.Slice(sells, func(i, j int) bool { return sells[i].date.Before(sells[j].date) })

	for i := range sells {
		windowEnd := sells[i].date.AddDate(0, 0, clusterWindowDays)
		sellers := make(map[string]bool)
		for j := i; j < len(sells); j++ {
			if sells[j].date.After(windowEnd) {
				break
			}
			sellers[sells[j].name] = true
		}
		if len(sellers) >= clusterMinSellers {
			return true
		}
	}

	return false
}
