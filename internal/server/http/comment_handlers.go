package httpserver

import (
	"net/http"

	"github.com/ncnews/news-service/internal/domain"
)

// createCommentRequest is the JSON request body for commenting on an
// article. The original API takes the author under "username".
type createCommentRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// createComment handles POST /api/articles/{articleID}/comments.
func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.parsePathID(w, r, "articleID")
	if !ok {
		return
	}

	var req createCommentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	comment, err := s.commentRepo.Create(r.Context(), &domain.Comment{
		Body:      req.Body,
		Author:    req.Username,
		ArticleID: articleID,
	})
	if err != nil {
		s.writeDomainError(w, r, "create", err)
		return
	}

	s.metrics.RecordEntityOperation("comment", "create")
	writeJSON(w, http.StatusCreated, commentResponse{Comment: comment})
}

// patchCommentVotes handles PATCH /api/comments/{commentID}.
func (s *Server) patchCommentVotes(w http.ResponseWriter, r *http.Request) {
	commentID, ok := s.parsePathID(w, r, "commentID")
	if !ok {
		return
	}

	var req voteRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	comment, err := s.commentRepo.IncrementVotes(r.Context(), commentID, *req.IncVotes)
	if err != nil {
		s.writeDomainError(w, r, "vote", err)
		return
	}

	s.metrics.RecordEntityOperation("comment", "vote")
	s.metrics.RecordVoteApplied("comment")
	writeJSON(w, http.StatusOK, commentResponse{Comment: comment})
}

// deleteComment handles DELETE /api/comments/{commentID}.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := s.parsePathID(w, r, "commentID")
	if !ok {
		return
	}

	if err := s.commentRepo.Delete(r.Context(), commentID); err != nil {
		s.writeDomainError(w, r, "delete", err)
		return
	}

	s.metrics.RecordEntityOperation("comment", "delete")
	w.WriteHeader(http.StatusNoContent)
}
