package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/ncnews/news-service/internal/domain"
	"github.com/ncnews/news-service/internal/observability"
	"github.com/ncnews/news-service/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock implementations
// ---------------------------------------------------------------------------

// mockTopicRepo implements repository.TopicRepository for handler tests.
type mockTopicRepo struct {
	createFn func(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	listFn   func(ctx context.Context) ([]*domain.Topic, error)
}

func (m *mockTopicRepo) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if m.createFn != nil {
		return m.createFn(ctx, topic)
	}
	return topic, nil
}

func (m *mockTopicRepo) List(ctx context.Context) ([]*domain.Topic, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []*domain.Topic{}, nil
}

// mockUserRepo implements repository.UserRepository for handler tests.
type mockUserRepo struct {
	createFn func(ctx context.Context, user *domain.User) (*domain.User, error)
	getFn    func(ctx context.Context, username string) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, username)
	}
	return nil, domain.NewNotFoundError("user", "User not found...")
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []*domain.User{}, nil
}

// mockArticleRepo implements repository.ArticleRepository for handler tests.
type mockArticleRepo struct {
	createFn func(ctx context.Context, article *domain.Article) (*domain.Article, error)
	getFn    func(ctx context.Context, articleID int) (*domain.Article, error)
	listFn   func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error)
	voteFn   func(ctx context.Context, articleID, delta int) (*domain.Article, error)
	deleteFn func(ctx context.Context, articleID int) error
}

func (m *mockArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if m.createFn != nil {
		return m.createFn(ctx, article)
	}
	return article, nil
}

func (m *mockArticleRepo) Get(ctx context.Context, articleID int) (*domain.Article, error) {
	if m.getFn != nil {
		return m.getFn(ctx, articleID)
	}
	return nil, domain.NewNotFoundError("article", "Article not found...")
}

func (m *mockArticleRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []*domain.Article{}, 0, nil
}

func (m *mockArticleRepo) IncrementVotes(ctx context.Context, articleID, delta int) (*domain.Article, error) {
	if m.voteFn != nil {
		return m.voteFn(ctx, articleID, delta)
	}
	return nil, domain.NewNotFoundError("article", "Article not found...")
}

func (m *mockArticleRepo) Delete(ctx context.Context, articleID int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, articleID)
	}
	return nil
}

// mockCommentRepo implements repository.CommentRepository for handler tests.
type mockCommentRepo struct {
	createFn func(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	listFn   func(ctx context.Context, articleID int, filter repository.CommentFilter) ([]*domain.Comment, error)
	voteFn   func(ctx context.Context, commentID, delta int) (*domain.Comment, error)
	deleteFn func(ctx context.Context, commentID int) error
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return comment, nil
}

func (m *mockCommentRepo) ListByArticle(ctx context.Context, articleID int, filter repository.CommentFilter) ([]*domain.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, articleID, filter)
	}
	return []*domain.Comment{}, nil
}

func (m *mockCommentRepo) IncrementVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error) {
	if m.voteFn != nil {
		return m.voteFn(ctx, commentID, delta)
	}
	return nil, domain.NewNotFoundError("comment", "Comment not found...")
}

func (m *mockCommentRepo) Delete(ctx context.Context, commentID int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var (
	testMetricsOnce sync.Once
	testMetrics     *observability.Metrics
)

// newTestServer creates a Server with mocked repositories. Metrics register
// with the default registry, so a single shared instance serves all tests.
func newTestServer(
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
) *Server {
	testMetricsOnce.Do(func() {
		testMetrics = observability.NewMetrics("news_handler_test")
	})

	s := &Server{
		topicRepo:   topicRepo,
		userRepo:    userRepo,
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		logger:      zerolog.Nop(),
		metrics:     testMetrics,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	s.router = s.buildRouter()
	return s
}

func defaultTestServer() *Server {
	return newTestServer(&mockTopicRepo{}, &mockUserRepo{}, &mockArticleRepo{}, &mockCommentRepo{})
}

// serveHTTP dispatches a request through the router and returns the recorder.
func serveHTTP(s *Server, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, r)
	return rr
}

// decodeBody decodes a JSON response body into target.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

// assertErrorBody checks status code and the "msg" field of an error body.
func assertErrorBody(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantMsg string) {
	t.Helper()
	if rr.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, wantStatus, rr.Body.String())
	}
	var body map[string]string
	decodeBody(t, rr, &body)
	if body["msg"] != wantMsg {
		t.Fatalf("msg = %q, want %q", body["msg"], wantMsg)
	}
}

// ---------------------------------------------------------------------------
// Tests: routing and error normalization
// ---------------------------------------------------------------------------

func TestUnknownPathReturns404(t *testing.T) {
	srv := defaultTestServer()
	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/nonsense", nil))
	assertErrorBody(t, rr, http.StatusNotFound, msgNoSuchPath)
}

func TestUnsupportedMethodReturns405(t *testing.T) {
	srv := defaultTestServer()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/topics"},
		{http.MethodPatch, "/api/users"},
		{http.MethodPut, "/api/articles/1"},
		{http.MethodPost, "/api/comments/1"},
	} {
		rr := serveHTTP(srv, httptest.NewRequest(tc.method, tc.path, nil))
		assertErrorBody(t, rr, http.StatusMethodNotAllowed, msgInvalidMethod)
	}
}

func TestGetAPICatalog(t *testing.T) {
	srv := defaultTestServer()
	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body catalogResponse
	decodeBody(t, rr, &body)
	if len(body.Endpoints) == 0 {
		t.Fatal("expected a non-empty endpoint catalog")
	}
	if _, ok := body.Endpoints["GET /api/articles"]; !ok {
		t.Fatal("catalog is missing GET /api/articles")
	}
}

// ---------------------------------------------------------------------------
// Tests: topics
// ---------------------------------------------------------------------------

func TestListTopics(t *testing.T) {
	topicRepo := &mockTopicRepo{
		listFn: func(_ context.Context) ([]*domain.Topic, error) {
			return []*domain.Topic{
				{Slug: "cats", Description: "Not dogs"},
				{Slug: "coding", Description: "all things code"},
			}, nil
		},
	}
	srv := newTestServer(topicRepo, &mockUserRepo{}, &mockArticleRepo{}, &mockCommentRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/topics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var body topicsResponse
	decodeBody(t, rr, &body)
	if len(body.Topics) != 2 || body.Topics[0].Slug != "cats" {
		t.Fatalf("unexpected topics payload: %+v", body)
	}
}

func TestCreateTopic(t *testing.T) {
	t.Run("creates topic", func(t *testing.T) {
		srv := defaultTestServer()

		payload := `{"slug":"testslug","description":"testdescription"}`
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/topics", bytes.NewBufferString(payload)))

		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
		}
		var body topicResponse
		decodeBody(t, rr, &body)
		if body.Topic.Slug != "testslug" || body.Topic.Description != "testdescription" {
			t.Fatalf("unexpected topic payload: %+v", body.Topic)
		}
	})

	t.Run("duplicate slug is a 400", func(t *testing.T) {
		topicRepo := &mockTopicRepo{
			createFn: func(_ context.Context, _ *domain.Topic) (*domain.Topic, error) {
				return nil, domain.NewAlreadyExistsError("topic", "slug testslug")
			},
		}
		srv := newTestServer(topicRepo, &mockUserRepo{}, &mockArticleRepo{}, &mockCommentRepo{})

		payload := `{"slug":"testslug","description":"testdescription"}`
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/topics", bytes.NewBufferString(payload)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})

	t.Run("missing slug is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/topics", bytes.NewBufferString(`{"description":"no slug"}`)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})

	t.Run("missing description is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/topics", bytes.NewBufferString(`{"slug":"onlyslug"}`)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/topics", bytes.NewBufferString(`{not json`)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})
}

// ---------------------------------------------------------------------------
// Tests: users
// ---------------------------------------------------------------------------

func TestGetUser(t *testing.T) {
	t.Run("returns user", func(t *testing.T) {
		userRepo := &mockUserRepo{
			getFn: func(_ context.Context, username string) (*domain.User, error) {
				if username != "butter_bridge" {
					t.Fatalf("username = %q, want butter_bridge", username)
				}
				return &domain.User{Username: "butter_bridge", Name: "jonny"}, nil
			},
		}
		srv := newTestServer(&mockTopicRepo{}, userRepo, &mockArticleRepo{}, &mockCommentRepo{})

		rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/users/butter_bridge", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		var body userResponse
		decodeBody(t, rr, &body)
		if body.User.Name != "jonny" {
			t.Fatalf("unexpected user payload: %+v", body.User)
		}
	})

	t.Run("unknown user is a 404 with its own message", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/users/nobody", nil))
		assertErrorBody(t, rr, http.StatusNotFound, "User not found...")
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("creates user", func(t *testing.T) {
		srv := defaultTestServer()

		payload := `{"username":"new_user","avatar_url":"https://example.com/a.png","name":"New User"}`
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(payload)))
		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
		}
	})

	t.Run("missing username is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{"name":"anon"}`)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})

	t.Run("missing name and avatar_url is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(`{"username":"ghost"}`)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})

	t.Run("non-url avatar_url is a 400", func(t *testing.T) {
		srv := defaultTestServer()
		payload := `{"username":"ghost","avatar_url":"not a url","name":"Ghost"}`
		rr := serveHTTP(srv, httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(payload)))
		assertErrorBody(t, rr, http.StatusBadRequest, msgBadRequest)
	})
}

func TestListUsers(t *testing.T) {
	userRepo := &mockUserRepo{
		listFn: func(_ context.Context) ([]*domain.User, error) {
			return []*domain.User{{Username: "butter_bridge"}}, nil
		},
	}
	srv := newTestServer(&mockTopicRepo{}, userRepo, &mockArticleRepo{}, &mockCommentRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body usersResponse
	decodeBody(t, rr, &body)
	if len(body.Users) != 1 {
		t.Fatalf("unexpected users payload: %+v", body)
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	topicRepo := &mockTopicRepo{
		listFn: func(_ context.Context) ([]*domain.Topic, error) {
			return nil, context.DeadlineExceeded
		},
	}
	srv := newTestServer(topicRepo, &mockUserRepo{}, &mockArticleRepo{}, &mockCommentRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/topics", nil))
	assertErrorBody(t, rr, http.StatusInternalServerError, msgInternalError)
}
