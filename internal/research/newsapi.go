package research

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPIClient fetches candidate reference articles from NewsAPI.
type NewsAPIClient struct {
	apiKey string
	client *http.Client
}

// NewNewsAPIClient creates a new NewsAPI client.
func NewNewsAPIClient(apiKeyEnv string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey: os.Getenv(apiKeyEnv),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured returns whether the API key is available.
func (c *NewsAPIClient) IsConfigured() bool {
	return c.apiKey != ""
}

// Search searches for articles matching the keyword.
func (c *NewsAPIClient) Search(keyword string, daysBack, pageSize int) []Entry {
	if c.apiKey == "" {
		log.Println("NewsAPI not configured, skipping search")
		return nil
	}

	fromDate := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")
	toDate := time.Now().Format("2006-01-02")

	if pageSize > 100 {
		pageSize = 100
	}

	params := url.Values{
		"q":        {keyword},
		"from":     {fromDate},
		"to":       {toDate},
		"language": {"en"},
		"pageSize": {fmt.Sprintf("%d", pageSize)},
		"sortBy":   {"relevancy"},
	}

	req, err := http.NewRequest("GET", newsAPIBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("NewsAPI request error: %v", err)
		return nil
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("NewsAPI error: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("NewsAPI HTTP error: %d", resp.StatusCode)
		return nil
	}

	var result struct {
		Status   string `json:"status"`
		Articles []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Description string `json:"description"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("NewsAPI decode error: %v", err)
		return nil
	}

	if result.Status != "ok" {
		log.Printf("NewsAPI status: %s", result.Status)
		return nil
	}

	var entries []Entry
	for _, a := range result.Articles {
		if a.URL == "" || a.Title == "" {
			continue
		}
		if a.Title == "[Removed]" || a.URL == "https://removed.com" {
			continue
		}

		var pubDate string
		if a.PublishedAt != "" {
			t, err := time.Parse(time.RFC3339, a.PublishedAt)
			if err == nil {
				pubDate = t.Format("2006-01-02")
			}
		}

		source := "NewsAPI"
		if a.Source.Name != "" {
			source = a.Source.Name
		}

		entries = append(entries, Entry{
			URL:           a.URL,
			Title:         strings.TrimSpace(a.Title),
			PublishedDate: pubDate,
			Summary:       strings.TrimSpace(a.Description),
			Source:        source,
		})
	}

	log.Printf("Fetched %d articles from NewsAPI for keyword: %s", len(entries), keyword)
	return entries
}
