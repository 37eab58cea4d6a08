package research

import (
	"log"
	"strings"

	"github.com/seoscribe/seoscribe/internal/config"
	"github.com/seoscribe/seoscribe/internal/database"
	"github.com/seoscribe/seoscribe/internal/seo"
)

// Entry is a candidate reference article from any research source.
type Entry struct {
	URL           string
	Title         string
	PublishedDate string // YYYY-MM-DD or empty
	Summary       string
	Source        string
}

// Result holds the results of a research run.
type Result struct {
	TotalFound int
	Matched    int
	Stored     int
	Duplicates int
	Sources    map[string]int
}

// Researcher collects competitor articles for a keyword from RSS feeds
// and, when configured, NewsAPI.
type Researcher struct {
	db         *database.DB
	feedParser *FeedParser
	newsClient *NewsAPIClient
	daysBack   int
}

// New creates a Researcher from config.
func New(cfg *config.Config, db *database.DB) *Researcher {
	r := &Researcher{db: db, daysBack: cfg.Research.DaysBack}
	if r.daysBack == 0 {
		r.daysBack = 7
	}

	if len(cfg.Research.Feeds) > 0 {
		feeds := make([]FeedConfig, len(cfg.Research.Feeds))
		for i, f := range cfg.Research.Feeds {
			feeds[i] = FeedConfig{URL: f.URL, Name: f.Name}
		}
		r.feedParser = NewFeedParser(feeds)
	}

	if cfg.Research.NewsAPI.Enabled {
		r.newsClient = NewNewsAPIClient(cfg.Research.NewsAPI.APIKeyEnv)
	}

	return r
}

// Research collects entries from all sources, keeps the ones matching the
// keyword, and stores them as reference articles.
func (r *Researcher) Research(keyword string) *Result {
	result := &Result{Sources: make(map[string]int)}
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return result
	}

	var entries []Entry
	if r.feedParser != nil {
		log.Println("Collecting from RSS feeds...")
		entries = append(entries, r.feedParser.ParseAll(r.daysBack)...)
	}
	if r.newsClient != nil && r.newsClient.IsConfigured() {
		log.Println("Collecting from NewsAPI...")
		entries = append(entries, r.newsClient.Search(keyword, r.daysBack, 50)...)
	}

	result.TotalFound = len(entries)

	for _, entry := range FilterEntries(entries, keyword) {
		result.Matched++

		var source, pubDate *string
		if entry.Source != "" {
			source = &entry.Source
		}
		if entry.PublishedDate != "" {
			pubDate = &entry.PublishedDate
		}

		id, err := r.db.InsertReference(keyword, entry.URL, entry.Title, source, pubDate)
		if err != nil {
			log.Printf("Error storing reference %s: %v", entry.URL, err)
			continue
		}
		if id > 0 {
			result.Stored++
			result.Sources[entry.Source]++
		} else {
			result.Duplicates++
		}
	}

	log.Printf("Research complete for %q: %d found, %d matched, %d stored, %d duplicates",
		keyword, result.TotalFound, result.Matched, result.Stored, result.Duplicates)
	return result
}

// FilterEntries keeps entries whose title or summary mentions the keyword
// on word boundaries.
func FilterEntries(entries []Entry, keyword string) []Entry {
	var matched []Entry
	for _, e := range entries {
		if seo.ContainsPhrase(e.Title, keyword) || seo.ContainsPhrase(e.Summary, keyword) {
			matched = append(matched, e)
		}
	}
	return matched
}
