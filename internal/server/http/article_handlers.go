package httpserver

import (
	"net/http"

	"github.com/ncnews/news-service/internal/domain"
	"github.com/ncnews/news-service/internal/observability"
	"github.com/ncnews/news-service/internal/repository"
)

// createArticleRequest is the JSON request body for posting an article.
type createArticleRequest struct {
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Topic  string `json:"topic" validate:"required"`
	Author string `json:"author" validate:"required"`
}

// voteRequest is the JSON request body for vote adjustments. inc_votes is
// a pointer so a missing field is distinguishable from an explicit zero;
// both PATCH endpoints require it.
type voteRequest struct {
	IncVotes *int `json:"inc_votes" validate:"required"`
}

// listArticles handles GET /api/articles.
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	limit, page, ok := parsePageParams(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := repository.ArticleFilter{
		SortBy: query.Get("sort_by"),
		Order:  query.Get("order"),
		Author: query.Get("author"),
		Topic:  query.Get("topic"),
		Limit:  limit,
		Page:   page,
	}

	articles, totalCount, err := s.articleRepo.List(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, r, "list", err)
		return
	}

	s.metrics.RecordEntityOperation("article", "list")
	s.metrics.RecordArticlesListed(len(articles))
	writeJSON(w, http.StatusOK, articlesResponse{
		Articles:   articles,
		TotalCount: totalCount,
	})
}

// getArticle handles GET /api/articles/{articleID}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.parsePathID(w, r, "articleID")
	if !ok {
		return
	}

	article, err := s.articleRepo.Get(r.Context(), articleID)
	if err != nil {
		s.writeDomainError(w, r, "get", err)
		return
	}

	s.metrics.RecordEntityOperation("article", "get")
	writeJSON(w, http.StatusOK, articleResponse{Article: article})
}

// createArticle handles POST /api/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	article, err := s.articleRepo.Create(r.Context(), &domain.Article{
		Title:  req.Title,
		Body:   req.Body,
		Topic:  req.Topic,
		Author: req.Author,
	})
	if err != nil {
		s.writeDomainError(w, r, "create", err)
		return
	}

	s.metrics.RecordEntityOperation("article", "create")
	writeJSON(w, http.StatusCreated, articleResponse{Article: article})
}

// patchArticleVotes handles PATCH /api/articles/{articleID}.
func (s *Server) patchArticleVotes(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.parsePathID(w, r, "articleID")
	if !ok {
		return
	}

	var req voteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	article, err := s.articleRepo.IncrementVotes(r.Context(), articleID, *req.IncVotes)
	if err != nil {
		s.writeDomainError(w, r, "vote", err)
		return
	}

	s.metrics.RecordEntityOperation("article", "vote")
	s.metrics.RecordVoteApplied("article")
	writeJSON(w, http.StatusOK, articleResponse{Article: article})
}

// deleteArticle handles DELETE /api/articles/{articleID}.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.parsePathID(w, r, "articleID")
	if !ok {
		return
	}

	if err := s.articleRepo.Delete(r.Context(), articleID); err != nil {
		s.writeDomainError(w, r, "delete", err)
		return
	}

	s.metrics.RecordEntityOperation("article", "delete")
	logger := observability.WithArticleContext(s.logger, articleID)
	logger.Info().Msg("article deleted with its comments")
	w.WriteHeader(http.StatusNoContent)
}

// listArticleComments handles GET /api/articles/{articleID}/comments.
func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.parsePathID(w, r, "articleID")
	if !ok {
		return
	}

	limit, page, pok := parsePageParams(w, r)
	if !pok {
		return
	}

	query := r.URL.Query()
	filter := repository.CommentFilter{
		SortBy: query.Get("sort_by"),
		Order:  query.Get("order"),
		Limit:  limit,
		Page:   page,
	}

	comments, err := s.commentRepo.ListByArticle(r.Context(), articleID, filter)
	if err != nil {
		s.writeDomainError(w, r, "list", err)
		return
	}

	s.metrics.RecordEntityOperation("comment", "list")
	writeJSON(w, http.StatusOK, commentsResponse{Comments: comments})
}
