// Package domain provides the entity models and error taxonomy for the news service.
package domain

import (
	"time"
)

// Topic is a category that articles belong to. The slug is the unique
// identifier and is immutable once created.
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// User is an author of articles and comments, keyed by username.
type User struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
}

// Article is a posted story. CommentCount is a derived attribute computed
// at read time via a grouped count of the comments table; it is only
// populated by read operations, never stored.
type Article struct {
	ArticleID    int       `json:"article_id"`
	Title        string    `json:"title"`
	Body         string    `json:"body,omitempty"`
	Votes        int       `json:"votes"`
	Topic        string    `json:"topic"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int       `json:"comment_count"`
}

// Comment is a reply attached to an article. Comments are removed when
// their article is deleted (ON DELETE CASCADE in the schema).
type Comment struct {
	CommentID int       `json:"comment_id"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	Author    string    `json:"author"`
	ArticleID int       `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
