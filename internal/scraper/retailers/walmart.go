package retailers

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

// WalmartStrategy extracts prices from Walmart product pages.
type WalmartStrategy struct{}

func NewWalmartStrategy() *WalmartStrategy { return &WalmartStrategy{} }

func (s *WalmartStrategy) Retailer() model.Retailer { return model.RetailerWalmart }

func (s *WalmartStrategy) ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	// Structured-data price attribute first
	if elem := doc.Find(`[itemprop="price"]`).First(); elem.Length() > 0 {
		if content, exists := elem.Attr("content"); exists {
			if price, ok := ParsePrice(content); ok {
				return price, true
			}
		}
	}

	// Legacy layout splits dollars and cents into separate elements
	if elem := doc.Find(".price-characteristic").First(); elem.Length() > 0 {
		dollars, exists := elem.Attr("content")
		if !exists {
			dollars = "0"
		}
		cents := "00"
		if centsElem := doc.Find(".price-mantissa").First(); centsElem.Length() > 0 {
			cents = strings.TrimSpace(centsElem.Text())
		}
		if price, ok := ParsePrice(fmt.Sprintf("%s.%s", dollars, cents)); ok {
			return price, true
		}
	}

	return decimal.Zero, false
}
