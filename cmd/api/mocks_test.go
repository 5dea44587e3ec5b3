package main

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"moviereview/internal/cache"
	"moviereview/internal/data"
)

// testToken is a well-formed 26-character bearer credential; which user it
// resolves to is up to each test's GetByToken expectation.
const testToken = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Insert(user *data.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserStore) GetAll() ([]*data.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*data.User), args.Error(1)
}

func (m *mockUserStore) Get(id int) (*data.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(email string) (*data.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.User), args.Error(1)
}

func (m *mockUserStore) GetByUsername(username string) (*data.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.User), args.Error(1)
}

func (m *mockUserStore) GetByToken(scope, plaintext string) (*data.User, error) {
	args := m.Called(scope, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.User), args.Error(1)
}

func (m *mockUserStore) Update(user *data.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserStore) Delete(id int) error {
	return m.Called(id).Error(0)
}

type mockCategoryStore struct{ mock.Mock }

func (m *mockCategoryStore) Insert(category *data.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryStore) GetAll() ([]*data.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*data.Category), args.Error(1)
}

func (m *mockCategoryStore) Get(id int) (*data.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.Category), args.Error(1)
}

func (m *mockCategoryStore) Update(category *data.Category) error {
	return m.Called(category).Error(0)
}

func (m *mockCategoryStore) Delete(id int) error {
	return m.Called(id).Error(0)
}

type mockMovieStore struct{ mock.Mock }

func (m *mockMovieStore) Insert(movie *data.Movie) error {
	return m.Called(movie).Error(0)
}

func (m *mockMovieStore) GetAll() ([]*data.Movie, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*data.Movie), args.Error(1)
}

func (m *mockMovieStore) Get(id int) (*data.Movie, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.Movie), args.Error(1)
}

func (m *mockMovieStore) Update(movie *data.Movie) error {
	return m.Called(movie).Error(0)
}

func (m *mockMovieStore) Delete(id int) error {
	return m.Called(id).Error(0)
}

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) Insert(review *data.Review) error {
	return m.Called(review).Error(0)
}

func (m *mockReviewStore) GetAllForMovie(movieID int) ([]*data.Review, error) {
	args := m.Called(movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*data.Review), args.Error(1)
}

func (m *mockReviewStore) GetAllByAuthor(author string) ([]*data.Review, error) {
	args := m.Called(author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*data.Review), args.Error(1)
}

func (m *mockReviewStore) GetForMovie(movieID, id int) (*data.Review, error) {
	args := m.Called(movieID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.Review), args.Error(1)
}

func (m *mockReviewStore) Update(review *data.Review) error {
	return m.Called(review).Error(0)
}

func (m *mockReviewStore) Delete(id int) error {
	return m.Called(id).Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) New(userID int, ttl time.Duration, scope string) (*data.Token, error) {
	args := m.Called(userID, ttl, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*data.Token), args.Error(1)
}

func (m *mockTokenStore) DeleteAllForUser(scope string, userID int) error {
	return m.Called(scope, userID).Error(0)
}

var (
	_ data.UserStore     = (*mockUserStore)(nil)
	_ data.CategoryStore = (*mockCategoryStore)(nil)
	_ data.MovieStore    = (*mockMovieStore)(nil)
	_ data.ReviewStore   = (*mockReviewStore)(nil)
	_ data.TokenStore    = (*mockTokenStore)(nil)
)

type mockStores struct {
	users      *mockUserStore
	categories *mockCategoryStore
	movies     *mockMovieStore
	reviews    *mockReviewStore
	tokens     *mockTokenStore
}

// newTestApp builds an application wired to mock stores, with the response
// cache disabled.
func newTestApp() (*application, *mockStores) {
	stores := &mockStores{
		users:      new(mockUserStore),
		categories: new(mockCategoryStore),
		movies:     new(mockMovieStore),
		reviews:    new(mockReviewStore),
		tokens:     new(mockTokenStore),
	}

	app := &application{
		config: config{env: "test"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		models: data.Models{
			Users:      stores.users,
			Categories: stores.categories,
			Movies:     stores.movies,
			Reviews:    stores.reviews,
			Tokens:     stores.tokens,
		},
		cache: cache.New(nil, 0),
	}
	return app, stores
}

// newTestServer assembles the middleware chain the way main does, minus the
// operational layers that have no bearing on handler behavior.
func newTestServer(app *application) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(app.CustomRecover())
	e.Use(app.Authenticate())
	app.routes(e)
	return e
}

// authenticateAs arms the token lookup so requests carrying testToken resolve
// to the given user.
func authenticateAs(stores *mockStores, user *data.User) {
	stores.users.On("GetByToken", data.ScopeAuth, testToken).Return(user, nil)
}

func withToken(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func adminUser() *data.User {
	return &data.User{ID: 1, Username: "admin", EmailAddress: "admin@example.com", Role: data.RoleAdmin}
}

func basicUser() *data.User {
	return &data.User{ID: 2, Username: "moviefan", EmailAddress: "fan@example.com", Role: data.RoleBasicUser}
}
