package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/mason"
)

func (app *application) listMovieReviewsHandler(c echo.Context) error {
	movie := contextMovie(c)

	reviews, err := app.models.Reviews.GetAllForMovie(movie.ID)
	if err != nil {
		return err
	}

	items := make([]mason.Document, 0, len(reviews))
	for _, review := range reviews {
		item := mason.New(review.Attributes())
		item.AddControlGetReview(review)
		items = append(items, item)
	}

	body := mason.New(nil)
	body.AddNamespace()
	body.AddControl("self", mason.Control{Href: mason.MovieReviewsURL(movie.ID)})
	body.AddControlAddReview(movie)
	body.AddControlUp(mason.MovieURL(movie.ID))
	body.AddItems(items)
	return c.JSON(http.StatusOK, body)
}

func (app *application) createMovieReviewHandler(c echo.Context) error {
	movie := contextMovie(c)
	review := &data.Review{MovieID: movie.ID}

	return app.createResource(c,
		data.ReviewSchema(),
		review.Deserialize,
		func() error { return app.models.Reviews.Insert(review) },
		func() string { return mason.MovieReviewURL(movie.ID, review.ID) },
		func() []string { return app.staleReviewPaths(movie, review.Author) },
	)
}

func (app *application) showMovieReviewHandler(c echo.Context) error {
	review := contextReview(c)
	movie := contextMovie(c)

	body := mason.New(review.Attributes())
	body.AddNamespace()
	body.AddControlGetReview(review)
	body.AddControlProfile(mason.ReviewProfileURL())
	body.AddControlUp(mason.MovieURL(movie.ID))
	body.AddControlEditReview(review)
	body.AddControlDeleteReview(review)
	return c.JSON(http.StatusOK, body)
}

func (app *application) updateMovieReviewHandler(c echo.Context) error {
	movie := contextMovie(c)
	review := contextReview(c)
	oldAuthor := review.Author

	return app.updateResource(c,
		data.ReviewSchema(),
		review.Deserialize,
		func() error { return app.models.Reviews.Update(review) },
		func() []string {
			paths := append(
				app.staleReviewPaths(movie, review.Author),
				mason.MovieReviewURL(movie.ID, review.ID),
			)
			if oldAuthor != review.Author {
				paths = append(paths, app.staleReviewPaths(movie, oldAuthor)...)
			}
			return paths
		},
	)
}

func (app *application) deleteMovieReviewHandler(c echo.Context) error {
	movie := contextMovie(c)
	review := contextReview(c)

	return app.deleteResource(c,
		func() error { return app.models.Reviews.Delete(review.ID) },
		func() []string {
			return append(
				app.staleReviewPaths(movie, review.Author),
				mason.MovieReviewURL(movie.ID, review.ID),
			)
		},
	)
}

// staleReviewPaths lists the cached collections a review write touches. The
// author is loose text, so the author's review collection is only included
// while the username still resolves to a user.
func (app *application) staleReviewPaths(movie *data.Movie, author string) []string {
	paths := []string{mason.MovieReviewsURL(movie.ID)}
	if author != "" {
		if user, err := app.models.Users.GetByUsername(author); err == nil {
			paths = append(paths, mason.UserReviewsURL(user.ID))
		}
	}
	return paths
}
