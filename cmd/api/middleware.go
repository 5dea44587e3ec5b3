package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
)

func (app *application) CustomRecover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					c.Response().Header().Set("Connection", "close")
					app.logger.Error("recovered from panic", "panic", r)
					err = echo.NewHTTPError(http.StatusInternalServerError, "the server encountered a problem and could not process your request")
				}
			}()
			return next(c)
		}
	}
}

// Authenticate resolves the bearer credential on the request into a user
// record. Requests without an Authorization header proceed as the anonymous
// user; a malformed header or unknown/expired token is rejected outright.
func (app *application) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Add("Vary", "Authorization")

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(contextKeyUser, data.AnonymousUser)
				return next(c)
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || headerParts[0] != "Bearer" || len(headerParts[1]) != 26 {
				c.Response().Header().Set("WWW-Authenticate", "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			user, err := app.models.Users.GetByToken(data.ScopeAuth, headerParts[1])
			if err != nil {
				switch {
				case errors.Is(err, data.ErrNoRecordFound):
					c.Response().Header().Set("WWW-Authenticate", "Bearer")
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				default:
					return err
				}
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// requireRole gates a handler on a minimum role: 401 for anonymous callers,
// 403 when the resolved role is below the requirement. Item routes register
// their resolver middleware before this gate, so an unknown identifier stays
// a 404 regardless of credentials.
func (app *application) requireRole(min data.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := contextUser(c)
			if user.IsAnonymous() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if !user.Role.AtLeast(min) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// The resolver middlewares below turn path identifiers into entities before
// anything else runs on an item route, mirroring how the URLs are converted
// ahead of the handler chain. Unknown identifiers become 404 here.

func (app *application) resolveUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := app.readIDParam(c, "user_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		user, err := app.models.Users.Get(id)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrNoRecordFound):
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			default:
				return err
			}
		}
		c.Set(contextKeyResolvedUser, user)
		return next(c)
	}
}

func (app *application) resolveCategory(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := app.readIDParam(c, "category_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		category, err := app.models.Categories.Get(id)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrNoRecordFound):
				return echo.NewHTTPError(http.StatusNotFound, "Category not found")
			default:
				return err
			}
		}
		c.Set(contextKeyCategory, category)
		return next(c)
	}
}

func (app *application) resolveMovie(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := app.readIDParam(c, "movie_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Movie not found")
		}
		movie, err := app.models.Movies.Get(id)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrNoRecordFound):
				return echo.NewHTTPError(http.StatusNotFound, "Movie not found")
			default:
				return err
			}
		}
		c.Set(contextKeyMovie, movie)
		return next(c)
	}
}

// resolveMovieReview requires resolveMovie earlier in the chain; the review
// id is looked up scoped to the resolved movie.
func (app *application) resolveMovieReview(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		movie := contextMovie(c)
		id, err := app.readIDParam(c, "review_id")
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		review, err := app.models.Reviews.GetForMovie(movie.ID, id)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrNoRecordFound):
				return echo.NewHTTPError(http.StatusNotFound, "Review not found")
			default:
				return err
			}
		}
		c.Set(contextKeyReview, review)
		return next(c)
	}
}
