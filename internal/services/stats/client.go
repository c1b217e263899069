// Package stats provides the client for the Deadlock analytics API:
// bucketed item win-rate rows and item pair co-occurrence rows.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sxndmxn/deadlock-build-creator/internal/config"
	"github.com/sxndmxn/deadlock-build-creator/internal/storage"
)

const cacheTTL = time.Hour

// Bucket kinds accepted by the item-stats endpoint.
const (
	BucketNetWorth = "net_worth_by_1000"
	BucketGameTime = "game_time_min"
)

// Client is a client for the Deadlock analytics API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	redisClient *storage.RedisClient
}

// NewClient creates a new analytics API client.
func NewClient(cfg *config.Config, redisClient *storage.RedisClient) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: cfg.StatsBaseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		redisClient: redisClient,
	}
}

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
		return nil, fmt.Errorf("analytics API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// cachedJSON fetches reqURL, caching the raw body in Redis under cacheKey.
func (c *Client) cachedJSON(reqURL, cacheKey string, out interface{}) error {
	if c.redisClient != nil {
		if cached, err := c.redisClient.Get(cacheKey); err == nil && cached != "" {
			if err := json.Unmarshal([]byte(cached), out); err == nil {
				return nil
			}
		}
	}

	body, err := c.doRequest(reqURL)
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

// rankQuery adds min/max badge params only when the filter actually
// restricts something. The API treats a missing param as unbounded.
func rankQuery(q url.Values, filter RankFilter) {
	if filter.MinBadge > 11 {
		q.Set("min_average_badge", strconv.Itoa(filter.MinBadge))
	}
	if filter.MaxBadge > 0 && filter.MaxBadge < 116 {
		q.Set("max_average_badge", strconv.Itoa(filter.MaxBadge))
	}
}

func (c *Client) itemStats(heroID int, bucket string, filter RankFilter) ([]ItemStatRow, error) {
	q := url.Values{}
	q.Set("hero_id", strconv.Itoa(heroID))
	q.Set("bucket", bucket)
	rankQuery(q, filter)

	reqURL := c.baseURL + "/v1/analytics/item-stats?" + q.Encode()
	cacheKey := fmt.Sprintf("stats:items:%d:%s:%d-%d", heroID, bucket, filter.MinBadge, filter.MaxBadge)

	var rows []ItemStatRow
	if err := c.cachedJSON(reqURL, cacheKey, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ItemStatsByNetWorth returns item win rates bucketed by 1000 souls of
// holder net worth.
func (c *Client) ItemStatsByNetWorth(heroID int, filter RankFilter) ([]ItemStatRow, error) {
	return c.itemStats(heroID, BucketNetWorth, filter)
}

// ItemStatsByGameTime returns item win rates bucketed by game minute.
func (c *Client) ItemStatsByGameTime(heroID int, filter RankFilter) ([]ItemStatRow, error) {
	return c.itemStats(heroID, BucketGameTime, filter)
}

// ItemPairStats returns co-occurrence win/match counts for item pairs
// bought on the same hero.
func (c *Client) ItemPairStats(heroID int, filter RankFilter) ([]ItemPairRow, error) {
	q := url.Values{}
	q.Set("hero_id", strconv.Itoa(heroID))
	q.Set("comb_size", "2")
	rankQuery(q, filter)

	reqURL := c.baseURL + "/v1/analytics/item-stats?" + q.Encode()
	cacheKey := fmt.Sprintf("stats:pairs:%d:%d-%d", heroID, filter.MinBadge, filter.MaxBadge)

	var rows []ItemPairRow
	if err := c.cachedJSON(reqURL, cacheKey, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
