// Command pricecheck fetches one or more retailer product pages and prints
// the extracted prices. Useful for validating selectors against live pages.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/biftracker/backend/internal/model"
	"github.com/biftracker/backend/internal/scraper"
)

func main() {
	retailer := flag.String("retailer", "", "Retailer name (Amazon, Walmart, Target, Best Buy); empty uses generic extraction")
	timeout := flag.Duration("timeout", scraper.DefaultFetchTimeout, "Fetch timeout per URL")
	output := flag.String("output", "", "Output file for JSON results (default: stdout summary only)")
	flag.Parse()

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: pricecheck [-retailer NAME] [-output FILE] URL [URL...]")
		os.Exit(2)
	}

	fetcher := scraper.NewFetcher(*timeout)
	extractor := scraper.NewExtractor()

	type CheckOutput struct {
		URL       string `json:"url"`
		Retailer  string `json:"retailer"`
		Price     string `json:"price,omitempty"`
		Error     string `json:"error,omitempty"`
		CheckedAt string `json:"checked_at"`
	}

	var results []CheckOutput
	failed := 0

	for _, u := range urls {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		body, err := fetcher.Fetch(ctx, u)
		cancel()

		out := CheckOutput{
			URL:       u,
			Retailer:  *retailer,
			CheckedAt: time.Now().Format(time.RFC3339),
		}

		if err != nil {
			out.Error = err.Error()
			failed++
			fmt.Printf("FAIL %s: %v\n", u, err)
			results = append(results, out)
			continue
		}

		price, ok := extractor.Extract(model.Retailer(*retailer), body)
		if !ok {
			out.Error = "no price found"
			failed++
			fmt.Printf("FAIL %s: no price found\n", u)
		} else {
			out.Price = price.String()
			fmt.Printf("OK   %s: $%s\n", u, price.StringFixed(2))
		}
		results = append(results, out)
	}

	fmt.Printf("\n%d/%d pages yielded a price\n", len(urls)-failed, len(urls))

	if *output != "" {
		data, _ := json.MarshalIndent(results, "", "  ")
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote results to %s\n", *output)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
