package main

import (
	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
)

// routes registers the fixed resource surface. Item routes chain a resolver
// middleware ahead of the role gate, so an unknown identifier answers 404
// before any credential or body is inspected. Resource GETs run through the
// response cache; per-caller documents (auth/me) and the healthcheck do not,
// since the cache is keyed by path alone.
func (app *application) routes(e *echo.Echo) {
	api := e.Group("/api")
	cached := app.cache.Middleware()

	api.GET("/", app.entrypointHandler, cached)
	api.GET("/healthcheck/", app.healthcheckHandler)

	api.POST("/auth/login/", app.loginHandler)
	api.GET("/auth/me/", app.currentUserHandler)

	api.GET("/users/", app.listUsersHandler, cached)
	api.POST("/users/", app.createUserHandler)
	api.GET("/users/:user_id/", app.showUserHandler, cached, app.resolveUser)
	api.PUT("/users/:user_id/", app.updateUserHandler, app.resolveUser, app.requireRole(data.RoleBasicUser))
	api.DELETE("/users/:user_id/", app.deleteUserHandler, app.resolveUser, app.requireRole(data.RoleBasicUser))
	api.GET("/users/:user_id/reviews/", app.listUserReviewsHandler, cached, app.resolveUser)

	api.GET("/categories/", app.listCategoriesHandler, cached)
	api.POST("/categories/", app.createCategoryHandler, app.requireRole(data.RoleAdmin))
	api.GET("/categories/:category_id/", app.showCategoryHandler, cached, app.resolveCategory)
	api.PUT("/categories/:category_id/", app.updateCategoryHandler, app.resolveCategory, app.requireRole(data.RoleAdmin))
	api.DELETE("/categories/:category_id/", app.deleteCategoryHandler, app.resolveCategory, app.requireRole(data.RoleAdmin))

	api.GET("/movies/", app.listMoviesHandler, cached)
	api.POST("/movies/", app.createMovieHandler, app.requireRole(data.RoleAdmin))
	api.GET("/movies/:movie_id/", app.showMovieHandler, cached, app.resolveMovie)
	api.PUT("/movies/:movie_id/", app.updateMovieHandler, app.resolveMovie, app.requireRole(data.RoleAdmin))
	api.DELETE("/movies/:movie_id/", app.deleteMovieHandler, app.resolveMovie, app.requireRole(data.RoleAdmin))

	api.GET("/movies/:movie_id/reviews/", app.listMovieReviewsHandler, cached, app.resolveMovie)
	api.POST("/movies/:movie_id/reviews/", app.createMovieReviewHandler, app.resolveMovie, app.requireRole(data.RoleBasicUser))
	api.GET("/movies/:movie_id/reviews/:review_id/", app.showMovieReviewHandler, cached, app.resolveMovie, app.resolveMovieReview)
	api.PUT("/movies/:movie_id/reviews/:review_id/", app.updateMovieReviewHandler, app.resolveMovie, app.resolveMovieReview, app.requireRole(data.RoleBasicUser))
	api.DELETE("/movies/:movie_id/reviews/:review_id/", app.deleteMovieReviewHandler, app.resolveMovie, app.resolveMovieReview, app.requireRole(data.RoleBasicUser))
}
