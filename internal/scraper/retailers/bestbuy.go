package retailers

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

var bestBuySelectors = []string{
	".priceView-customer-price > span",
}

// BestBuyStrategy extracts prices from Best Buy product pages.
type BestBuyStrategy struct{}

func NewBestBuyStrategy() *BestBuyStrategy { return &BestBuyStrategy{} }

func (s *BestBuyStrategy) Retailer() model.Retailer { return model.RetailerBestBuy }

func (s *BestBuyStrategy) ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	return firstMatch(doc, bestBuySelectors)
}
