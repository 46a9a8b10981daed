package social

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopPoster is a no-op poster for development and testing. It logs posts
// but does not publish them, and always reports an empty feed.
type NoopPoster struct{}

// NewNoopPoster creates a new NoopPoster.
func NewNoopPoster() *NoopPoster {
	return &NoopPoster{}
}

// CreatePost logs the post but does not publish it.
func (p *NoopPoster) CreatePost(_ context.Context, content string) (Post, error) {
	slog.Info("noop_social_post", "content", content)
	return Post{
		ID:        fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

// RecentTaggedPosts always returns an empty feed.
func (p *NoopPoster) RecentTaggedPosts(_ context.Context, tag string, limit int) ([]Post, error) {
	slog.Info("noop_social_feed", "tag", tag, "limit", limit)
	return nil, nil
}
