package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"moviereview/internal/data"
	"moviereview/internal/mason"
)

func (app *application) listCategoriesHandler(c echo.Context) error {
	categories, err := app.models.Categories.GetAll()
	if err != nil {
		return err
	}

	items := make([]mason.Document, 0, len(categories))
	for _, category := range categories {
		item := mason.New(category.Attributes())
		item.AddControlGetCategory(category)
		items = append(items, item)
	}

	body := mason.New(nil)
	body.AddNamespace()
	body.AddControlCategoriesAll("self")
	body.AddControlAddCategory()
	body.AddControlUp(mason.EntryURL())
	body.AddItems(items)
	return c.JSON(http.StatusOK, body)
}

func (app *application) createCategoryHandler(c echo.Context) error {
	category := &data.Category{}

	return app.createResource(c,
		data.CategorySchema(),
		category.Deserialize,
		func() error { return app.models.Categories.Insert(category) },
		func() string { return mason.CategoryURL(category.ID) },
		func() []string { return []string{mason.CategoriesURL()} },
	)
}

func (app *application) showCategoryHandler(c echo.Context) error {
	category := contextCategory(c)

	body := mason.New(category.Attributes())
	body.AddNamespace()
	body.AddControlGetCategory(category)
	body.AddControlProfile(mason.CategoryProfileURL())
	body.AddControlCategoriesAll("collection")
	body.AddControlEditCategory(category)
	body.AddControlDeleteCategory(category)
	body.AddControlMoviesAll(mason.RelMoviesAll)
	return c.JSON(http.StatusOK, body)
}

func (app *application) updateCategoryHandler(c echo.Context) error {
	category := contextCategory(c)

	return app.updateResource(c,
		data.CategorySchema(),
		category.Deserialize,
		func() error { return app.models.Categories.Update(category) },
		func() []string { return []string{mason.CategoriesURL(), mason.CategoryURL(category.ID)} },
	)
}

func (app *application) deleteCategoryHandler(c echo.Context) error {
	category := contextCategory(c)

	return app.deleteResource(c,
		func() error { return app.models.Categories.Delete(category.ID) },
		func() []string { return []string{mason.CategoriesURL(), mason.CategoryURL(category.ID)} },
	)
}
