// Package assets provides the client for the Deadlock assets API: hero,
// item, and rank metadata.
package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sxndmxn/deadlock-build-creator/internal/config"
	"github.com/sxndmxn/deadlock-build-creator/internal/data"
	"github.com/sxndmxn/deadlock-build-creator/internal/storage"
)

const cacheTTL = time.Hour

// Client is a client for the Deadlock assets API. Responses are memoized in
// memory for an hour (the provider's own cache lifetime) and mirrored into
// Redis so restarts stay warm.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	redisClient  *storage.RedisClient
	fallbackPath string

	mu       sync.RWMutex
	heroes   []Hero
	heroesAt time.Time
	items    []Item
	itemsAt  time.Time
	ranks    []Rank
	ranksAt  time.Time
}

// NewClient creates a new assets API client.
func NewClient(cfg *config.Config, redisClient *storage.RedisClient) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: cfg.AssetsBaseURL,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		redisClient:  redisClient,
		fallbackPath: cfg.ItemDataPath(),
	}
}

// doRequest makes an HTTP GET request to the assets API.
func (c *Client) doRequest(reqURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("assets API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// fetch retrieves and decodes a cached assets endpoint. The Redis copy is
// consulted before the network; a fresh network response refreshes it.
func (c *Client) fetch(path, cacheKey string, out interface{}) error {
	if c.redisClient != nil {
		if cached, err := c.redisClient.Get(cacheKey); err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		}
	}

	body, err := c.doRequest(c.baseURL + path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if c.redisClient != nil {
		if err := c.redisClient.SetTTL(cacheKey, string(body), cacheTTL); err != nil {
			log.Printf("Failed to cache %s: %v", cacheKey, err)
		}
	}
	return nil
}

// Heroes returns all heroes, memoized.
func (c *Client) Heroes() ([]Hero, error) {
	c.mu.RLock()
	if c.heroes != nil && time.Since(c.heroesAt) < cacheTTL {
		heroes := c.heroes
		c.mu.RUnlock()
		return heroes, nil
	}
	c.mu.RUnlock()

	var heroes []Hero
	if err := c.fetch("/v2/heroes", "assets:heroes", &heroes); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.heroes = heroes
	c.heroesAt = time.Now()
	c.mu.Unlock()
	return heroes, nil
}

// Items returns all item definitions, memoized. When the API is unreachable
// it falls back to the local items.json dump so builds still work offline.
func (c *Client) Items() ([]Item, error) {
	c.mu.RLock()
	if c.items != nil && time.Since(c.itemsAt) < cacheTTL {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	var items []Item
	if err := c.fetch("/v2/items", "assets:items", &items); err != nil {
		log.Printf("Items fetch failed, trying local dump: %v", err)
		dump, dumpErr := data.LoadItems(c.fallbackPath)
		if dumpErr != nil {
			return nil, err
		}
		for _, d := range dump {
			items = append(items, Item{
				ID:             d.ID,
				Name:           d.Name,
				Type:           d.Type,
				Tier:           d.Tier,
				Slot:           d.Slot,
				Cost:           d.Cost,
				ComponentItems: d.ComponentItems,
				Image:          d.Image,
			})
		}
	}

	c.mu.Lock()
	c.items = items
	c.itemsAt = time.Now()
	c.mu.Unlock()
	return items, nil
}

// Ranks returns the ranked ladder, memoized.
func (c *Client) Ranks() ([]Rank, error) {
	c.mu.RLock()
	if c.ranks != nil && time.Since(c.ranksAt) < cacheTTL {
		ranks := c.ranks
		c.mu.RUnlock()
		return ranks, nil
	}
	c.mu.RUnlock()

	var ranks []Rank
	if err := c.fetch("/v2/ranks", "assets:ranks", &ranks); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.ranks = ranks
	c.ranksAt = time.Now()
	c.mu.Unlock()
	return ranks, nil
}

// HeroByName finds a playable hero by name, case-insensitive.
func (c *Client) HeroByName(name string) (*Hero, error) {
	heroes, err := c.Heroes()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range heroes {
		if heroes[i].Playable && strings.ToLower(heroes[i].Name) == want {
			return &heroes[i], nil
		}
	}
	return nil, fmt.Errorf("hero %q not found", name)
}

// HeroByID finds a hero by ID.
func (c *Client) HeroByID(id int) (*Hero, error) {
	heroes, err := c.Heroes()
	if err != nil {
		return nil, err
	}
	for i := range heroes {
		if heroes[i].ID == id {
			return &heroes[i], nil
		}
	}
	return nil, fmt.Errorf("hero %d not found", id)
}

// Invalidate drops the in-memory memo so the next call refetches.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.heroes = nil
	c.items = nil
	c.ranks = nil
	c.mu.Unlock()
}
