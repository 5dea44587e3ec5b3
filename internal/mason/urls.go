package mason

import "fmt"

// Canonical resource URLs. The fixed route table lives in cmd/api; these
// builders keep every control href consistent with it.

func EntryURL() string { return "/api/" }

func LoginURL() string { return "/api/auth/login/" }

func CurrentUserURL() string { return "/api/auth/me/" }

func UsersURL() string { return "/api/users/" }

func UserURL(id int) string { return fmt.Sprintf("/api/users/%d/", id) }

func UserReviewsURL(id int) string { return fmt.Sprintf("/api/users/%d/reviews/", id) }

func CategoriesURL() string { return "/api/categories/" }

func CategoryURL(id int) string { return fmt.Sprintf("/api/categories/%d/", id) }

func MoviesURL() string { return "/api/movies/" }

func MovieURL(id int) string { return fmt.Sprintf("/api/movies/%d/", id) }

func MovieReviewsURL(movieID int) string { return fmt.Sprintf("/api/movies/%d/reviews/", movieID) }

func MovieReviewURL(movieID, id int) string {
	return fmt.Sprintf("/api/movies/%d/reviews/%d/", movieID, id)
}

// Static profile documents describing each resource type.

func UserProfileURL() string { return "/profiles/user/" }

func CategoryProfileURL() string { return "/profiles/category/" }

func MovieProfileURL() string { return "/profiles/movie/" }

func ReviewProfileURL() string { return "/profiles/review/" }
