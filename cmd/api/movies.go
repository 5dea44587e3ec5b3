package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/mason"
)

func (app *application) listMoviesHandler(c echo.Context) error {
	movies, err := app.models.Movies.GetAll()
	if err != nil {
		return err
	}

	items := make([]mason.Document, 0, len(movies))
	for _, movie := range movies {
		item := mason.New(movie.Attributes())
		item.AddControlGetMovie(movie)
		item.AddControlReviewsForMovie(movie)
		items = append(items, item)
	}

	body := mason.New(nil)
	body.AddNamespace()
	body.AddControlMoviesAll("self")
	body.AddControlAddMovie()
	body.AddControlUp(mason.EntryURL())
	body.AddItems(items)
	return c.JSON(http.StatusOK, body)
}

func (app *application) createMovieHandler(c echo.Context) error {
	movie := &data.Movie{}

	return app.createResource(c,
		data.MovieSchema(),
		movie.Deserialize,
		func() error { return app.models.Movies.Insert(movie) },
		func() string { return mason.MovieURL(movie.ID) },
		func() []string { return []string{mason.MoviesURL()} },
	)
}

func (app *application) showMovieHandler(c echo.Context) error {
	movie := contextMovie(c)

	body := mason.New(movie.Attributes())
	body.AddNamespace()
	body.AddControlGetMovie(movie)
	body.AddControlProfile(mason.MovieProfileURL())
	body.AddControlMoviesAll("collection")
	body.AddControlEditMovie(movie)
	body.AddControlDeleteMovie(movie)
	body.AddControlReviewsForMovie(movie)
	body.AddControlUp(mason.CategoryURL(movie.CategoryID))
	return c.JSON(http.StatusOK, body)
}

func (app *application) updateMovieHandler(c echo.Context) error {
	movie := contextMovie(c)

	return app.updateResource(c,
		data.MovieSchema(),
		movie.Deserialize,
		func() error { return app.models.Movies.Update(movie) },
		func() []string { return []string{mason.MoviesURL(), mason.MovieURL(movie.ID)} },
	)
}

// deleteMovieHandler cascades to the movie's reviews, so every cached review
// document under the movie goes stale along with the movie itself. The review
// list is snapshotted before the delete; afterwards the cascade has already
// removed the rows.
func (app *application) deleteMovieHandler(c echo.Context) error {
	movie := contextMovie(c)

	reviews, err := app.models.Reviews.GetAllForMovie(movie.ID)
	if err != nil {
		return err
	}

	return app.deleteResource(c,
		func() error { return app.models.Movies.Delete(movie.ID) },
		func() []string {
			paths := []string{mason.MoviesURL(), mason.MovieURL(movie.ID), mason.MovieReviewsURL(movie.ID)}
			seen := map[string]bool{}
			for _, review := range reviews {
				paths = append(paths, mason.MovieReviewURL(movie.ID, review.ID))
				if !seen[review.Author] {
					seen[review.Author] = true
					if user, err := app.models.Users.GetByUsername(review.Author); err == nil {
						paths = append(paths, mason.UserReviewsURL(user.ID))
					}
				}
			}
			return paths
		},
	)
}
