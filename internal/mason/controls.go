package mason

import (
	"net/http"

	"moviereview/internal/data"
)

// One control-adding method per resource transition, all on the same Document
// type: handlers freely mix controls across resource types (a review document
// links to its parent movie, a movie to its category-scoped collection), so
// the builder exposes the union of every resource's controls.

const encodingJSON = "json"

// ---- users ----

// AddControlUsersAll links to the user collection under the given relation
// ("self", "collection" or RelUsersAll depending on the document).
func (d Document) AddControlUsersAll(relation string) {
	d.AddControl(relation, Control{Href: UsersURL(), Title: "All users"})
}

func (d Document) AddControlAddUser() {
	d.AddControl(RelAddUser, Control{
		Href:     UsersURL(),
		Method:   http.MethodPost,
		Encoding: encodingJSON,
		Title:    "Create a new user",
		Schema:   data.UserSchema(),
	})
}

func (d Document) AddControlGetUser(user *data.User) {
	d.AddControl("self", Control{Href: UserURL(user.ID)})
}

func (d Document) AddControlEditUser(user *data.User) {
	d.AddControl("edit", Control{
		Href:     UserURL(user.ID),
		Method:   http.MethodPut,
		Encoding: encodingJSON,
		Title:    "Edit this user",
		Schema:   data.UserSchema(),
	})
}

func (d Document) AddControlDeleteUser(user *data.User) {
	d.AddControl(RelDelete, Control{
		Href:   UserURL(user.ID),
		Method: http.MethodDelete,
		Title:  "Delete this user",
	})
}

func (d Document) AddControlReviewsByUser(user *data.User) {
	d.AddControl(RelReviewsByUser, Control{
		Href:  UserReviewsURL(user.ID),
		Title: "Reviews written by this user",
	})
}

// ---- categories ----

func (d Document) AddControlCategoriesAll(relation string) {
	d.AddControl(relation, Control{Href: CategoriesURL(), Title: "All categories"})
}

func (d Document) AddControlAddCategory() {
	d.AddControl(RelAddCategory, Control{
		Href:     CategoriesURL(),
		Method:   http.MethodPost,
		Encoding: encodingJSON,
		Title:    "Create a new category",
		Schema:   data.CategorySchema(),
	})
}

func (d Document) AddControlGetCategory(category *data.Category) {
	d.AddControl("self", Control{Href: CategoryURL(category.ID)})
}

func (d Document) AddControlEditCategory(category *data.Category) {
	d.AddControl("edit", Control{
		Href:     CategoryURL(category.ID),
		Method:   http.MethodPut,
		Encoding: encodingJSON,
		Title:    "Edit this category",
		Schema:   data.CategorySchema(),
	})
}

func (d Document) AddControlDeleteCategory(category *data.Category) {
	d.AddControl(RelDelete, Control{
		Href:   CategoryURL(category.ID),
		Method: http.MethodDelete,
		Title:  "Delete this category",
	})
}

// ---- movies ----

func (d Document) AddControlMoviesAll(relation string) {
	d.AddControl(relation, Control{Href: MoviesURL(), Title: "All movies"})
}

func (d Document) AddControlAddMovie() {
	d.AddControl(RelAddMovie, Control{
		Href:     MoviesURL(),
		Method:   http.MethodPost,
		Encoding: encodingJSON,
		Title:    "Create a new movie",
		Schema:   data.MovieSchema(),
	})
}

func (d Document) AddControlGetMovie(movie *data.Movie) {
	d.AddControl("self", Control{Href: MovieURL(movie.ID)})
}

func (d Document) AddControlEditMovie(movie *data.Movie) {
	d.AddControl("edit", Control{
		Href:     MovieURL(movie.ID),
		Method:   http.MethodPut,
		Encoding: encodingJSON,
		Title:    "Edit this movie",
		Schema:   data.MovieSchema(),
	})
}

func (d Document) AddControlDeleteMovie(movie *data.Movie) {
	d.AddControl(RelDelete, Control{
		Href:   MovieURL(movie.ID),
		Method: http.MethodDelete,
		Title:  "Delete this movie",
	})
}

func (d Document) AddControlReviewsForMovie(movie *data.Movie) {
	d.AddControl(RelReviewsForMovie, Control{
		Href:  MovieReviewsURL(movie.ID),
		Title: "Reviews of this movie",
	})
}

// ---- reviews ----

func (d Document) AddControlAddReview(movie *data.Movie) {
	d.AddControl(RelAddReview, Control{
		Href:     MovieReviewsURL(movie.ID),
		Method:   http.MethodPost,
		Encoding: encodingJSON,
		Title:    "Add a review for this movie",
		Schema:   data.ReviewSchema(),
	})
}

func (d Document) AddControlGetReview(review *data.Review) {
	d.AddControl("self", Control{Href: MovieReviewURL(review.MovieID, review.ID)})
}

func (d Document) AddControlEditReview(review *data.Review) {
	d.AddControl("edit", Control{
		Href:     MovieReviewURL(review.MovieID, review.ID),
		Method:   http.MethodPut,
		Encoding: encodingJSON,
		Title:    "Edit this review",
		Schema:   data.ReviewSchema(),
	})
}

func (d Document) AddControlDeleteReview(review *data.Review) {
	d.AddControl(RelDelete, Control{
		Href:   MovieReviewURL(review.MovieID, review.ID),
		Method: http.MethodDelete,
		Title:  "Delete this review",
	})
}

// ---- authentication ----

func (d Document) AddControlLogin() {
	d.AddControl(RelLogin, Control{
		Href:     LoginURL(),
		Method:   http.MethodPost,
		Encoding: encodingJSON,
		Title:    "Obtain an authentication token",
		Schema:   data.LoginSchema(),
	})
}

func (d Document) AddControlCurrentUser() {
	d.AddControl(RelCurrentUser, Control{
		Href:  CurrentUserURL(),
		Title: "The currently authenticated user",
	})
}
