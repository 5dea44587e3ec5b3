package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/mason"
)

// loginHandler exchanges an email address and password for a bearer token.
// The same 401 covers an unknown email and a wrong password.
func (app *application) loginHandler(c echo.Context) error {
	payload, err := app.readPayload(c, data.LoginSchema())
	if err != nil {
		return err
	}

	email := payload["email_address"].(string)
	plaintext := payload["password"].(string)

	user, err := app.models.Users.GetByEmail(email)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNoRecordFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
		default:
			return err
		}
	}

	match, err := user.Password.Matches(plaintext)
	if err != nil {
		return err
	}
	if !match {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
	}

	token, err := app.models.Tokens.New(user.ID, 24*time.Hour, data.ScopeAuth)
	if err != nil {
		return err
	}

	body := mason.New(map[string]any{
		"token":  token.PlainText,
		"expiry": token.Expiry.UTC().Format(time.RFC3339),
	})
	body.AddNamespace()
	body.AddControlCurrentUser()
	return c.JSON(http.StatusCreated, body)
}

// currentUserHandler returns the document of the caller the bearer token
// resolved to.
func (app *application) currentUserHandler(c echo.Context) error {
	user := contextUser(c)
	if user.IsAnonymous() {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	body := mason.New(user.Attributes())
	body.AddNamespace()
	body.AddControl("self", mason.Control{Href: mason.CurrentUserURL()})
	body.AddControlProfile(mason.UserProfileURL())
	body.AddControlEditUser(user)
	body.AddControlReviewsByUser(user)
	return c.JSON(http.StatusOK, body)
}
