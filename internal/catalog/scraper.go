package catalog

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultSearchURL = "https://www.tesco.com/groceries/en-GB/search?query="
	scrapeAttempts   = 2
)

// fallbackScrapedPrice is used when a product page yields nothing usable.
const fallbackScrapedPrice = 2.00

// Scraper builds a price catalog by querying the retailer's search page, one
// ingredient at a time.
type Scraper struct {
	httpClient *http.Client
	searchURL  string
	retryWait  time.Duration
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithSearchURL overrides the retailer search URL prefix.
func WithSearchURL(u string) ScraperOption {
	return func(s *Scraper) { s.searchURL = u }
}

// WithRetryWait overrides the pause between attempts.
func WithRetryWait(d time.Duration) ScraperOption {
	return func(s *Scraper) { s.retryWait = d }
}

// NewScraper creates a Scraper with a bounded HTTP client.
func NewScraper(opts ...ScraperOption) *Scraper {
	s := &Scraper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  defaultSearchURL,
		retryWait:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches a price entry for every ingredient. A failed lookup never
// aborts the run: the ingredient gets a fallback entry so downstream costing
// still works.
func (s *Scraper) Scrape(ctx context.Context, ingredients []string) []Entry {
	entries := make([]Entry, 0, len(ingredients))
	for _, ingredient := range ingredients {
		log.Printf("Scraping prices for %q...", ingredient)

		entry, err := s.scrapeOne(ctx, ingredient)
		if err != nil {
			log.Printf("Warning: scrape failed for %q: %v. Using fallback entry.", ingredient, err)
			entry = Entry{
				Key:     ingredient,
				Product: "Unavailable",
				Price:   fallbackScrapedPrice,
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *Scraper) scrapeOne(ctx context.Context, ingredient string) (Entry, error) {
	searchURL := s.searchURL + url.QueryEscape(ingredient)

	var lastErr error
	for attempt := 0; attempt < scrapeAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Entry{}, ctx.Err()
			case <-time.After(s.retryWait):
			}
		}

		entry, err := s.fetchProduct(ctx, searchURL, ingredient)
		if err == nil {
			return entry, nil
		}
		lastErr = err
	}
	return Entry{}, lastErr
}

func (s *Scraper) fetchProduct(ctx context.Context, searchURL, ingredient string) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse search page: %w", err)
	}

	card := doc.Find("div.product-list--list-item").First()
	if card.Length() == 0 {
		return Entry{}, fmt.Errorf("no product card found")
	}

	anchor := card.Find("a").First()
	priceText := strings.TrimSpace(card.Find("span.value").First().Text())
	if anchor.Length() == 0 || priceText == "" {
		return Entry{}, fmt.Errorf("product card missing name or price")
	}

	price, err := strconv.ParseFloat(strings.TrimPrefix(priceText, "£"), 64)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse price %q: %w", priceText, err)
	}

	entry := Entry{
		Key:     ingredient,
		Product: strings.TrimSpace(anchor.Text()),
		Price:   price,
		Unit:    strings.TrimSpace(card.Find("span.weight").First().Text()),
	}
	if href, ok := anchor.Attr("href"); ok {
		if strings.HasPrefix(href, "/") {
			href = "https://www.tesco.com" + href
		}
		entry.URL = href
	}
	return entry, nil
}
