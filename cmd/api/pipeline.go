package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/schema"
)

// This file is the shared write pipeline. Every create/update/delete walks
// the same stages: content-type check, schema validation, deserialization,
// persistence, conflict translation, cache invalidation, response. A failing
// stage terminates the request with its associated status code; nothing is
// retried.

// readPayload rejects non-JSON bodies with 415 before any other check, then
// decodes and validates the payload against the resource schema.
func (app *application) readPayload(c echo.Context, s *schema.Schema) (map[string]any, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if !strings.EqualFold(mediaType, echo.MIMEApplicationJSON) {
		return nil, echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported media type")
	}

	var payload map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}

	if err := s.Validate(payload); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return payload, nil
}

// translateWriteError maps the persistence and deserialization failures the
// pipeline knows about onto their HTTP responses. Anything unrecognized is
// returned as-is and surfaces as a server error rather than being masked as
// a client fault.
func translateWriteError(err error) error {
	var uniqueErr *data.UniqueViolationError
	var payloadErr *data.InvalidPayloadError

	switch {
	case errors.As(err, &uniqueErr):
		return echo.NewHTTPError(http.StatusConflict, uniqueErr.Error())
	case errors.Is(err, data.ErrForeignKeyViolation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, data.ErrNoRecordFound):
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case errors.As(err, &payloadErr):
		return echo.NewHTTPError(http.StatusBadRequest, payloadErr.Error())
	}
	return err
}

// invalidate drops the cached documents for the given paths before the
// response is written, so a GET after the write never sees stale data.
func (app *application) invalidate(c echo.Context, paths ...string) {
	app.cache.Invalidate(c.Request().Context(), paths...)
}

// createResource runs the create pipeline: deserialize the validated payload
// into a fresh entity, insert it, and answer 201 with a Location header and
// an empty body. The location closure runs after the insert so it can use
// the assigned id.
func (app *application) createResource(c echo.Context, s *schema.Schema, deserialize func(map[string]any) error, insert func() error, location func() string, stalePaths func() []string) error {
	payload, err := app.readPayload(c, s)
	if err != nil {
		return err
	}
	if err := deserialize(payload); err != nil {
		return translateWriteError(err)
	}
	if err := insert(); err != nil {
		return translateWriteError(err)
	}

	app.invalidate(c, stalePaths()...)
	c.Response().Header().Set("Location", location())
	return c.NoContent(http.StatusCreated)
}

// updateResource runs the update pipeline against an already-resolved entity
// and answers 204 with an empty body.
func (app *application) updateResource(c echo.Context, s *schema.Schema, deserialize func(map[string]any) error, update func() error, stalePaths func() []string) error {
	payload, err := app.readPayload(c, s)
	if err != nil {
		return err
	}
	if err := deserialize(payload); err != nil {
		return translateWriteError(err)
	}
	if err := update(); err != nil {
		return translateWriteError(err)
	}

	app.invalidate(c, stalePaths()...)
	return c.NoContent(http.StatusNoContent)
}

// deleteResource runs the delete pipeline; a referential-integrity failure
// (deleting a row with dependents) comes back as 409.
func (app *application) deleteResource(c echo.Context, del func() error, stalePaths func() []string) error {
	if err := del(); err != nil {
		return translateWriteError(err)
	}

	app.invalidate(c, stalePaths()...)
	return c.NoContent(http.StatusNoContent)
}
