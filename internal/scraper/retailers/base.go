// Package retailers provides retailer-specific price extraction strategies.
package retailers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

// Strategy extracts a price from one retailer's product page markup.
// Strategies never fail hard: markup that yields no price returns ok=false.
type Strategy interface {
	Retailer() model.Retailer
	ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool)
}

var nonPrice = regexp.MustCompile(`[^\d.]`)

// ParsePrice normalizes raw price text and parses it as a decimal amount.
// Grouping commas are removed before stripping everything but digits and
// the decimal point; empty or non-numeric input returns ok=false.
func ParsePrice(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Zero, false
	}

	cleaned := nonPrice.ReplaceAllString(strings.ReplaceAll(text, ",", ""), "")
	if cleaned == "" {
		return decimal.Zero, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return decimal.Zero, false
	}

	return decimal.NewFromFloat(v), true
}

// firstMatch tries selectors in order and returns the first selection text
// that parses as a price.
func firstMatch(doc *goquery.Document, selectors []string) (decimal.Decimal, bool) {
	for _, sel := range selectors {
		elem := doc.Find(sel).First()
		if elem.Length() == 0 {
			continue
		}
		if price, ok := ParsePrice(strings.TrimSpace(elem.Text())); ok {
			return price, true
		}
	}
	return decimal.Zero, false
}
