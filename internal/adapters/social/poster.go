package social

import (
	"context"
	"time"
)

// Post is a published status on the social feed.
type Post struct {
	ID        string
	Content   string
	Author    string
	Tags      []string
	CreatedAt time.Time
}

// Poster publishes statuses to and reads recent posts from an external
// social network. Read failures are presented as empty feeds; publish
// failures are reported to the user but never abort the surrounding
// request.
type Poster interface {
	CreatePost(ctx context.Context, content string) (Post, error)
	RecentTaggedPosts(ctx context.Context, tag string, limit int) ([]Post, error)
}
