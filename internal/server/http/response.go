package httpserver

import (
	"github.com/ncnews/news-service/internal/domain"
)

// Client-facing messages carried over from the original API. Several test
// suites in the wild match these strings verbatim.
const (
	msgNoSuchPath     = "No such path..."
	msgInvalidMethod  = "Invalid method..."
	msgBadRequest     = "Bad request..."
	msgInternalError  = "Internal Server Error..."
	msgArticleMissing = "Article not found..."
)

// topicsResponse wraps the topic list under the "topics" key.
type topicsResponse struct {
	Topics []*domain.Topic `json:"topics"`
}

// topicResponse wraps a single topic.
type topicResponse struct {
	Topic *domain.Topic `json:"topic"`
}

// usersResponse wraps the user list.
type usersResponse struct {
	Users []*domain.User `json:"users"`
}

// userResponse wraps a single user.
type userResponse struct {
	User *domain.User `json:"user"`
}

// articlesResponse wraps an article page together with the full filtered
// count, which ignores limit and page.
type articlesResponse struct {
	Articles   []*domain.Article `json:"articles"`
	TotalCount int               `json:"total_count"`
}

// articleResponse wraps a single article.
type articleResponse struct {
	Article *domain.Article `json:"article"`
}

// commentsResponse wraps a comment page.
type commentsResponse struct {
	Comments []*domain.Comment `json:"comments"`
}

// commentResponse wraps a single comment.
type commentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// catalogResponse describes the available endpoints for GET /api.
type catalogResponse struct {
	Endpoints map[string]string `json:"endpoints"`
}
