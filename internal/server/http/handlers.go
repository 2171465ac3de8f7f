package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ncnews/news-service/internal/domain"
	"github.com/ncnews/news-service/internal/observability"
)

// maxRequestBodySize caps request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// createTopicRequest is the JSON request body for creating a topic. Every
// column is NOT NULL, so a missing field is rejected here rather than
// reaching the store as an empty string.
type createTopicRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// createUserRequest is the JSON request body for creating a user.
type createUserRequest struct {
	Username  string `json:"username" validate:"required"`
	AvatarURL string `json:"avatar_url" validate:"required,url"`
	Name      string `json:"name" validate:"required"`
}

// listTopics handles GET /api/topics.
func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topicRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, "list", err)
		return
	}
	s.metrics.RecordEntityOperation("topic", "list")
	writeJSON(w, http.StatusOK, topicsResponse{Topics: topics})
}

// createTopic handles POST /api/topics.
func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	topic, err := s.topicRepo.Create(r.Context(), &domain.Topic{
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		s.writeDomainError(w, r, "create", err)
		return
	}

	s.metrics.RecordEntityOperation("topic", "create")
	writeJSON(w, http.StatusCreated, topicResponse{Topic: topic})
}

// listUsers handles GET /api/users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, "list", err)
		return
	}
	s.metrics.RecordEntityOperation("user", "list")
	writeJSON(w, http.StatusOK, usersResponse{Users: users})
}

// createUser handles POST /api/users.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userRepo.Create(r.Context(), &domain.User{
		Username:  req.Username,
		AvatarURL: req.AvatarURL,
		Name:      req.Name,
	})
	if err != nil {
		s.writeDomainError(w, r, "create", err)
		return
	}

	s.metrics.RecordEntityOperation("user", "create")
	writeJSON(w, http.StatusCreated, userResponse{User: user})
}

// getUser handles GET /api/users/{username}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.userRepo.GetByUsername(r.Context(), username)
	if err != nil {
		s.writeDomainError(w, r, "get", err)
		return
	}

	s.metrics.RecordEntityOperation("user", "get")
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// getAPICatalog handles GET /api with a map of the available endpoints.
func (s *Server) getAPICatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{Endpoints: map[string]string{
		"GET /api":                           "this endpoint catalog",
		"GET /api/topics":                    "list all topics",
		"POST /api/topics":                   "create a topic",
		"GET /api/users":                     "list all users",
		"POST /api/users":                    "create a user",
		"GET /api/users/:username":           "get a user by username",
		"GET /api/articles":                  "list articles; supports sort_by, order, author, topic, limit, p",
		"POST /api/articles":                 "create an article",
		"GET /api/articles/:id":              "get an article with its comment count",
		"PATCH /api/articles/:id":            "adjust an article's votes by inc_votes",
		"DELETE /api/articles/:id":           "delete an article and its comments",
		"GET /api/articles/:id/comments":     "list an article's comments; supports sort_by, order, limit, p",
		"POST /api/articles/:id/comments":    "add a comment to an article",
		"PATCH /api/comments/:id":            "adjust a comment's votes by inc_votes",
		"DELETE /api/comments/:id":           "delete a comment",
	}})
}

// decodeJSON parses and validates a JSON request body into dst. On failure
// it writes a 400 and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}

	return true
}

// writeDomainError maps domain errors to the HTTP statuses and bodies the
// original API promised its clients. Not-found errors carry their own
// client-facing message; everything else collapses to a fixed string so
// internals never leak. op is the logical operation name, matching the
// label the success path records.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.RecordEntityOperationError(errEntity(err), op, "not_found")
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrAlreadyExists):
		s.metrics.RecordEntityOperationError(errEntity(err), op, "bad_request")
		writeError(w, http.StatusBadRequest, msgBadRequest)
	default:
		s.metrics.RecordEntityOperationError(errEntity(err), op, "internal")
		logger := observability.WithRequestContext(s.logger, middleware.GetReqID(r.Context()), r.Method, r.URL.Path)
		logger.Error().
			Err(err).
			Str("operation", op).
			Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// errEntity pulls the entity name out of a typed domain error for metric
// labels.
func errEntity(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity
	}
	var ae *domain.AlreadyExistsError
	if errors.As(err, &ae) {
		return ae.Entity
	}
	var fk *domain.ForeignKeyError
	if errors.As(err, &fk) {
		return fk.Entity
	}
	return "unknown"
}

// parsePathID parses a positive integer path parameter. A non-numeric
// value is a 400, matching the invalid-text-representation behavior of
// the original store layer.
func (s *Server) parsePathID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return 0, false
	}
	return id, true
}

// parsePageParams extracts limit and p from the query string. The page
// parameter is named "p" in the original API; "page" is accepted as an
// alias. Non-numeric values are a 400.
func parsePageParams(w http.ResponseWriter, r *http.Request) (limit, page int, ok bool) {
	query := r.URL.Query()

	if rawLimit := query.Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, msgBadRequest)
			return 0, 0, false
		}
		limit = parsed
	}

	rawPage := query.Get("p")
	if rawPage == "" {
		rawPage = query.Get("page")
	}
	if rawPage != "" {
		parsed, err := strconv.Atoi(rawPage)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, msgBadRequest)
			return 0, 0, false
		}
		page = parsed
	}

	return limit, page, true
}
