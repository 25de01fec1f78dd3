package feeds

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/panjf2000/ants/v2"

	"github.com/furiafan/furiabot/internal/pkg/config"
	"github.com/furiafan/furiabot/internal/pkg/models"
)

// Client downloads syndication feeds and parses them on a worker pool, so a
// slow parse never stalls the network waits running next to it.
type Client struct {
	client *http.Client
	pool   *ants.Pool
}

func NewClient(cfg *config.NewsConfig) (*Client, error) {
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed worker pool: %w", err)
	}

	return &Client{
		client: &http.Client{Timeout: cfg.Timeout},
		pool:   pool,
	}, nil
}

func (c *Client) Close() {
	c.pool.Release()
}

// Fetch downloads one feed and returns its entries. A malformed feed yields
// zero entries, not an error; only transport failures are reported.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("feed %s returned status %d", feedURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}

	type parsed struct {
		items []models.NewsItem
	}
	done := make(chan parsed, 1)

	err = c.pool.Submit(func() {
		feed, err := gofeed.NewParser().ParseString(string(body))
		if err != nil {
			slog.Warn("Malformed feed, skipping", "url", feedURL, "error", err)
			done <- parsed{}
			return
		}
		done <- parsed{items: entries(feed, feedURL)}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit feed parse: %w", err)
	}

	select {
	case p := <-done:
		return p.items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func entries(feed *gofeed.Feed, feedURL string) []models.NewsItem {
	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = feedURL
	}

	out := make([]models.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		n := models.NewsItem{
			Title:   strings.TrimSpace(item.Title),
			Link:    item.Link,
			Feed:    source,
			Summary: item.Description,
		}
		if item.PublishedParsed != nil {
			n.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			n.Published = *item.UpdatedParsed
		}
		out = append(out, n)
	}
	return out
}
