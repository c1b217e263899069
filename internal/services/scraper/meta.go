// Package scraper pulls the current hero meta table from tracklock.gg,
// which has no public API.
package scraper

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sxndmxn/deadlock-build-creator/internal/storage"
)

const metaCacheTTL = time.Hour

// Client is the scraper client.
type Client struct {
	metaURL    string
	httpClient *http.Client
	redis      *storage.RedisClient
}

// NewClient creates a new scraper client.
func NewClient(metaURL string, redis *storage.RedisClient) *Client {
	return &Client{
		metaURL:    metaURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		redis:      redis,
	}
}

// GetHeroMeta returns the hero meta table, best win rate first.
func (c *Client) GetHeroMeta() ([]*HeroMeta, error) {
	cacheKey := "meta:heroes:v1"

	if c.redis != nil {
		if val, err := c.redis.Get(cacheKey); err == nil && val != "" {
			var meta []*HeroMeta
			if err := json.Unmarshal([]byte(val), &meta); err == nil {
				log.Printf("Hero meta cache hit")
				return meta, nil
			}
		}
	}

	log.Printf("Scraping hero meta from %s", c.metaURL)
	meta, err := c.scrapeHeroMeta()
	if err != nil {
		return nil, err
	}

	if c.redis != nil && len(meta) > 0 {
		data, _ := json.Marshal(meta)
		if err := c.redis.SetTTL(cacheKey, string(data), metaCacheTTL); err != nil {
			log.Printf("Failed to cache hero meta: %v", err)
		}
	}

	return meta, nil
}

func (c *Client) scrapeHeroMeta() ([]*HeroMeta, error) {
	req, err := http.NewRequest("GET", c.metaURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []*HeroMeta

	// Hero table rows: first cell hero name, then win rate and pick rate.
	doc.Find("table tbody tr").Each(func(i int, row *goquery.Selection) {
		if len(results) >= 40 {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" {
			return
		}

		winRate := strings.TrimSpace(cells.Eq(1).Text())
		pickRate := strings.TrimSpace(cells.Eq(2).Text())
		if winRate != "" && !strings.HasSuffix(winRate, "%") {
			winRate = winRate + "%"
		}
		if pickRate != "" && !strings.HasSuffix(pickRate, "%") {
			pickRate = pickRate + "%"
		}

		results = append(results, &HeroMeta{
			HeroName: name,
			WinRate:  winRate,
			PickRate: pickRate,
		})
	})

	if len(results) == 0 {
		return nil, fmt.Errorf("no hero rows found on meta page")
	}

	return results, nil
}
