package retailers

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

// Amazon price selectors in fallback order. Amazon rotates between several
// price block layouts; a-offscreen is the accessibility copy present on most
// of them.
var amazonSelectors = []string{
	"span.a-offscreen",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#priceblock_saleprice",
	".a-price .a-offscreen",
}

// AmazonStrategy extracts prices from Amazon product pages.
type AmazonStrategy struct{}

func NewAmazonStrategy() *AmazonStrategy { return &AmazonStrategy{} }

func (s *AmazonStrategy) Retailer() model.Retailer { return model.RetailerAmazon }

func (s *AmazonStrategy) ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	return firstMatch(doc, amazonSelectors)
}
