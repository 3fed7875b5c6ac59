package scraper

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/scraper/retailers"
)

// Extractor dispatches page content to the retailer-specific extraction
// strategy, falling back to the generic strategy for retailers outside the
// known set. Extraction never errors: unparseable markup means "unknown".
type Extractor struct {
	strategies map[model.Retailer]retailers.Strategy
}

// NewExtractor builds the strategy table covering every known retailer.
func NewExtractor() *Extractor {
	table := make(map[model.Retailer]retailers.Strategy, len(model.KnownRetailers))
	for _, s := range []retailers.Strategy{
		retailers.NewAmazonStrategy(),
		retailers.NewWalmartStrategy(),
		retailers.NewTargetStrategy(),
		retailers.NewBestBuyStrategy(),
	} {
		table[s.Retailer()] = s
	}
	return &Extractor{strategies: table}
}

// Extract parses pageContent and returns the extracted price, or ok=false
// when no strategy finds one.
func (e *Extractor) Extract(retailer model.Retailer, pageContent []byte) (decimal.Decimal, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageContent))
	if err != nil {
		return decimal.Zero, false
	}

	if strategy, ok := e.strategies[retailer]; ok {
		return strategy.ExtractPrice(doc)
	}
	return retailers.NewGenericStrategy(retailer).ExtractPrice(doc)
}
