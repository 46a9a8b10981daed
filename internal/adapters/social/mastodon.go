package social

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MastodonPoster publishes statuses via the Mastodon REST API.
type MastodonPoster struct {
	client      *http.Client
	serverURL   string
	accessToken string
}

// NewMastodonPoster creates a poster for the given Mastodon server.
// PRE: serverURL is the instance base URL (e.g. https://mastodon.social);
// accessToken has write:statuses and read:statuses scope
// POST: poster is ready for use
func NewMastodonPoster(serverURL, accessToken string) *MastodonPoster {
	return &MastodonPoster{
		client:      &http.Client{Timeout: 10 * time.Second},
		serverURL:   strings.TrimRight(serverURL, "/"),
		accessToken: accessToken,
	}
}

// mastodonStatus is the subset of a Mastodon status we read.
type mastodonStatus struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Account   struct {
		Acct string `json:"acct"`
	} `json:"account"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

func (s mastodonStatus) toPost() Post {
	p := Post{
		ID:        s.ID,
		Content:   s.Content,
		Author:    s.Account.Acct,
		CreatedAt: s.CreatedAt,
	}
	for _, tag := range s.Tags {
		p.Tags = append(p.Tags, tag.Name)
	}
	return p
}

// CreatePost publishes a new status.
// PRE: content is non-empty
// POST: returns the published post, or an error the caller may surface to
// the user without failing the surrounding request
func (p *MastodonPoster) CreatePost(ctx context.Context, content string) (Post, error) {
	form := url.Values{"status": {content}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.serverURL+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return Post{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return Post{}, fmt.Errorf("post status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("mastodon_post_failed", "status", resp.StatusCode)
		return Post{}, fmt.Errorf("mastodon returned status %d", resp.StatusCode)
	}

	var status mastodonStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return Post{}, fmt.Errorf("decode status response: %w", err)
	}

	slog.Info("mastodon_posted", "post_id", status.ID)
	return status.toPost(), nil
}

// RecentTaggedPosts returns up to limit posts from the home timeline that
// carry the given hashtag, newest first.
// PRE: tag is non-empty, limit > 0
// POST: returns matching posts; the caller treats errors as an empty feed
func (p *MastodonPoster) RecentTaggedPosts(ctx context.Context, tag string, limit int) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.serverURL+"/api/v1/timelines/home", nil)
	if err != nil {
		return nil, fmt.Errorf("build timeline request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mastodon returned status %d", resp.StatusCode)
	}

	var statuses []mastodonStatus
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		return nil, fmt.Errorf("decode timeline response: %w", err)
	}

	var posts []Post
	for _, s := range statuses {
		if len(posts) >= limit {
			break
		}
		for _, t := range s.Tags {
			if strings.EqualFold(t.Name, tag) {
				posts = append(posts, s.toPost())
				break
			}
		}
	}
	return posts, nil
}
