package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/mason"
)

func (app *application) listUsersHandler(c echo.Context) error {
	users, err := app.models.Users.GetAll()
	if err != nil {
		return err
	}

	items := make([]mason.Document, 0, len(users))
	for _, user := range users {
		item := mason.New(user.Attributes())
		item.AddControlGetUser(user)
		item.AddControlReviewsByUser(user)
		items = append(items, item)
	}

	body := mason.New(nil)
	body.AddNamespace()
	body.AddControlUsersAll("self")
	body.AddControlAddUser()
	body.AddControlUp(mason.EntryURL())
	body.AddItems(items)
	return c.JSON(http.StatusOK, body)
}

func (app *application) createUserHandler(c echo.Context) error {
	user := &data.User{}

	return app.createResource(c,
		data.UserSchema(),
		user.Deserialize,
		func() error {
			if err := app.models.Users.Insert(user); err != nil {
				return err
			}
			app.background(func() {
				err := app.mailer.Send(user.EmailAddress, "user_welcome.tmpl", user.Attributes())
				if err != nil {
					app.logger.Error("sending welcome email failed", "err", err.Error())
				}
			})
			return nil
		},
		func() string { return mason.UserURL(user.ID) },
		func() []string { return []string{mason.UsersURL()} },
	)
}

func (app *application) showUserHandler(c echo.Context) error {
	user := contextResolvedUser(c)

	body := mason.New(user.Attributes())
	body.AddNamespace()
	body.AddControlGetUser(user)
	body.AddControlProfile(mason.UserProfileURL())
	body.AddControlUsersAll("collection")
	body.AddControlEditUser(user)
	body.AddControlDeleteUser(user)
	body.AddControlReviewsByUser(user)
	return c.JSON(http.StatusOK, body)
}

func (app *application) updateUserHandler(c echo.Context) error {
	user := contextResolvedUser(c)

	return app.updateResource(c,
		data.UserSchema(),
		user.Deserialize,
		func() error { return app.models.Users.Update(user) },
		func() []string {
			return []string{mason.UsersURL(), mason.UserURL(user.ID), mason.UserReviewsURL(user.ID)}
		},
	)
}

func (app *application) deleteUserHandler(c echo.Context) error {
	user := contextResolvedUser(c)

	return app.deleteResource(c,
		func() error { return app.models.Users.Delete(user.ID) },
		func() []string {
			return []string{mason.UsersURL(), mason.UserURL(user.ID), mason.UserReviewsURL(user.ID)}
		},
	)
}

func (app *application) listUserReviewsHandler(c echo.Context) error {
	user := contextResolvedUser(c)

	reviews, err := app.models.Reviews.GetAllByAuthor(user.Username)
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
	body.AddControl("self", mason.Control{Href: mason.UserReviewsURL(user.ID)})
	body.AddControlUp(mason.UserURL(user.ID))
	body.AddItems(items)
	return c.JSON(http.StatusOK, body)
}
