package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviereview/internal/mason"
)

// entrypointHandler is the root document of the API: a pure control document
// from which a client discovers every other resource.
func (app *application) entrypointHandler(c echo.Context) error {
	body := mason.New(nil)
	body.AddNamespace()
	body.AddControl("self", mason.Control{Href: mason.EntryURL()})
	body.AddControlMoviesAll(mason.RelMoviesAll)
	body.AddControlUsersAll(mason.RelUsersAll)
	body.AddControlCategoriesAll(mason.RelCategoriesAll)
	body.AddControlAddMovie()
	body.AddControlAddUser()
	body.AddControlAddCategory()
	body.AddControlLogin()
	body.AddControlCurrentUser()
	return c.JSON(http.StatusOK, body)
}

func (app *application) healthcheckHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.env,
			"version":     version,
		},
	})
}
