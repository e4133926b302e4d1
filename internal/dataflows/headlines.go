package dataflows

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// HeadlineScraper pulls real headlines from Google News to mix into the
// market's neutral news template pool.
type HeadlineScraper struct {
	client *resty.Client
}

func NewHeadlineScraper() *HeadlineScraper {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; MarketMindGo/1.0)")

	return &HeadlineScraper{client: client}
}

// FetchHeadlines searches Google News and returns up to limit headline
// strings.
func (hs *HeadlineScraper) FetchHeadlines(query string, limit int) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en&gl=US&ceid=US:en",
		url.QueryEscape(query))

	resp, err := hs.client.R().Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching headlines", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse headline HTML: %w", err)
	}

	headlines := parseHeadlines(doc)
	if len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines, nil
}

func parseHeadlines(doc *goquery.Document) []string {
	var headlines []string
	seen := map[string]struct{}{}

	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}
		if _, ok := seen[title]; ok {
			return
		}
		seen[title] = struct{}{}
		headlines = append(headlines, title)
	})

	return headlines
}
