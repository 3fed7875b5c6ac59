package retailers

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

var targetSelectors = []string{
	`[data-test="product-price"]`,
}

// TargetStrategy extracts prices from Target product pages.
type TargetStrategy struct{}

func NewTargetStrategy() *TargetStrategy { return &TargetStrategy{} }

func (s *TargetStrategy) Retailer() model.Retailer { return model.RetailerTarget }

func (s *TargetStrategy) ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	return firstMatch(doc, targetSelectors)
}
