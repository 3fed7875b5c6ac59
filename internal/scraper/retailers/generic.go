package retailers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
)

// pricePatterns are tried in precedence order: symbol-prefixed, currency-
// suffixed, labeled, then a bare-number fallback.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d+(?:,\d+)*\.?\d*)`),          // $XX.XX or $XX
	regexp.MustCompile(`(\d+(?:,\d+)*\.?\d*)\s*USD`),         // XX.XX USD
	regexp.MustCompile(`Price:\s*\$(\d+(?:,\d+)*\.?\d*)`),    // Price: $XX.XX
	regexp.MustCompile(`(\d+(?:,\d+)*\.?\d*)`),               // bare number fallback
}

// priceContainerSelector matches elements whose markup suggests they hold a
// price.
const priceContainerSelector = `[class*="price"], [id*="price"], [class*="Price"], [id*="Price"]`

// GenericStrategy is the fallback for retailers without a dedicated
// strategy. It scans price-suggesting containers in document order, then
// the whole page text, applying the ordered regex patterns.
type GenericStrategy struct {
	retailer model.Retailer
}

// NewGenericStrategy creates a generic strategy reporting itself under the
// given retailer name.
func NewGenericStrategy(retailer model.Retailer) *GenericStrategy {
	return &GenericStrategy{retailer: retailer}
}

func (s *GenericStrategy) Retailer() model.Retailer { return s.retailer }

func (s *GenericStrategy) ExtractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	var price decimal.Decimal
	found := false

	doc.Find(priceContainerSelector).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		if p, ok := matchPatterns(strings.TrimSpace(container.Text())); ok {
			price, found = p, true
			return false
		}
		return true
	})
	if found {
		return price, true
	}

	return matchPatterns(doc.Text())
}

func matchPatterns(text string) (decimal.Decimal, bool) {
	for _, pattern := range pricePatterns {
		m := pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if price, ok := ParsePrice(m[1]); ok {
			return price, true
		}
	}
	return decimal.Zero, false
}
