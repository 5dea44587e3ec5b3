package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviereview/internal/data"
)

// User registration is the one write open to anonymous callers.
func TestCreateUserWithoutCredentials(t *testing.T) {
	app, stores := newTestApp()
	stores.users.On("Insert", mock.AnythingOfType("*data.User")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*data.User).ID = 3
		}).
		Return(nil)
	e := newTestServer(app)

	payload := `{"username":"moviefan","email_address":"fan@example.com","password":"secret123","role":"Basic User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/users/3/", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())
	app.wg.Wait()
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	app, stores := newTestApp()
	stores.users.On("Insert", mock.AnythingOfType("*data.User")).
		Return(&data.UniqueViolationError{Field: "username"})
	e := newTestServer(app)

	payload := `{"username":"moviefan","email_address":"fan@example.com","password":"secret123","role":"Basic User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"username already exists"}`, rec.Body.String())
}

func TestCreateUserWeakPassword(t *testing.T) {
	app, stores := newTestApp()
	e := newTestServer(app)

	payload := `{"username":"moviefan","email_address":"fan@example.com","password":"short","role":"Basic User"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	stores.users.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestListUsers(t *testing.T) {
	app, stores := newTestApp()
	stores.users.On("GetAll").Return([]*data.User{basicUser()}, nil)
	e := newTestServer(app)

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "moviefan", first["username"])
	assert.NotContains(t, first, "password")

	controls := body["@controls"].(map[string]any)
	assert.Contains(t, controls, "moviereviewmeta:add-user")
}

func TestShowUser(t *testing.T) {
	app, stores := newTestApp()
	stores.users.On("Get", 2).Return(basicUser(), nil)
	e := newTestServer(app)

	req := httptest.NewRequest(http.MethodGet, "/api/users/2/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "moviefan", body["username"])

	controls := body["@controls"].(map[string]any)
	reviews := controls["moviereviewmeta:reviews-by-user"].(map[string]any)
	assert.Equal(t, "/api/users/2/reviews/", reviews["href"])
}

func TestUpdateUser(t *testing.T) {
	app, stores := newTestApp()
	authenticateAs(stores, basicUser())
	stores.users.On("Get", 2).Return(basicUser(), nil)
	stores.users.On("Update", mock.AnythingOfType("*data.User")).Return(nil)
	e := newTestServer(app)

	payload := `{"username":"moviefan","email_address":"new@example.com","password":"secret123","role":"Basic User"}`
	req := withToken(httptest.NewRequest(http.MethodPut, "/api/users/2/", strings.NewReader(payload)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteUser(t *testing.T) {
	app, stores := newTestApp()
	authenticateAs(stores, basicUser())
	stores.users.On("Get", 2).Return(basicUser(), nil)
	stores.users.On("Delete", 2).Return(nil)
	e := newTestServer(app)

	req := withToken(httptest.NewRequest(http.MethodDelete, "/api/users/2/", nil))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListUserReviews(t *testing.T) {
	app, stores := newTestApp()
	user := basicUser()
	stores.users.On("Get", 2).Return(user, nil)
	stores.reviews.On("GetAllByAuthor", "moviefan").Return([]*data.Review{
		{ID: 3, Rating: 4, Comment: "held up", Date: time.Date(2022, 11, 5, 18, 30, 0, 0, time.UTC), Author: "moviefan", MovieID: 9},
	}, nil)
	e := newTestServer(app)

	req := httptest.NewRequest(http.MethodGet, "/api/users/2/reviews/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "moviefan", first["author"])

	itemControls := first["@controls"].(map[string]any)
	self := itemControls["self"].(map[string]any)
	assert.Equal(t, "/api/movies/9/reviews/3/", self["href"])
}
