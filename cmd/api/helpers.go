package main

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
)

// Context keys for the authenticated caller and the entities resolved from
// path identifiers.
const (
	contextKeyUser         = "user"
	contextKeyResolvedUser = "resolvedUser"
	contextKeyCategory     = "category"
	contextKeyMovie        = "movie"
	contextKeyReview       = "review"
)

func contextUser(c echo.Context) *data.User {
	user, ok := c.Get(contextKeyUser).(*data.User)
	if !ok {
		return data.AnonymousUser
	}
	return user
}

func contextResolvedUser(c echo.Context) *data.User {
	return c.Get(contextKeyResolvedUser).(*data.User)
}

func contextCategory(c echo.Context) *data.Category {
	return c.Get(contextKeyCategory).(*data.Category)
}

func contextMovie(c echo.Context) *data.Movie {
	return c.Get(contextKeyMovie).(*data.Movie)
}

func contextReview(c echo.Context) *data.Review {
	return c.Get(contextKeyReview).(*data.Review)
}

func (app *application) readIDParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

func (app *application) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("background task panicked", "panic", err)
			}
		}()

		fn()
	}()
}
