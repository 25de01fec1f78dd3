package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/furiafan/furiabot/internal/format"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// News fans out over all configured feeds concurrently, then filters by
// keyword, dedupes by link, sorts newest first and truncates. A feed that
// fails or parses to nothing simply contributes zero entries.
func (s *Service) News(ctx context.Context) format.Render {
	if len(s.feedURLs) == 0 {
		return format.News(nil, false)
	}

	var (
		mu       sync.Mutex
		items    []models.NewsItem
		failures int
	)

	var wg sync.WaitGroup
	for _, feedURL := range s.feedURLs {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()
			entries, err := s.feeds.Fetch(ctx, feedURL)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Feed fetch failed", "url", feedURL, "error", err)
				failures++
				return
			}
			items = append(items, entries...)
		}(feedURL)
	}
	wg.Wait()

	if failures == len(s.feedURLs) {
		return format.News(nil, true)
	}

	items = s.filterByKeywords(items)
	items = dedupeByLink(items)
	sortNewestFirst(items)

	if len(items) > s.maxNews {
		items = items[:s.maxNews]
	}
	return format.News(items, false)
}

// filterByKeywords keeps entries whose title or summary contains any
// configured keyword, case-insensitive. An empty keyword list keeps all.
func (s *Service) filterByKeywords(items []models.NewsItem) []models.NewsItem {
	if len(s.keywords) == 0 {
		return items
	}

	kept := items[:0]
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Summary)
		for _, kw := range s.keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				kept = append(kept, item)
				break
			}
		}
	}
	return kept
}

// dedupeByLink keeps the first occurrence of each link across all feeds.
func dedupeByLink(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]struct{}, len(items))
	kept := items[:0]
	for _, item := range items {
		if _, dup := seen[item.Link]; dup {
			continue
		}
		seen[item.Link] = struct{}{}
		kept = append(kept, item)
	}
	return kept
}

// sortNewestFirst orders by published time descending. A missing date is
// the zero time, which naturally sorts last.
func sortNewestFirst(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
}
