package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moviereview/internal/schema"
)

// Movie belongs to a category and owns its reviews. Length is the running
// time in seconds.
type Movie struct {
	ID          int
	Title       string
	Director    string
	Length      int
	ReleaseDate time.Time
	CategoryID  int
}

func (m *Movie) Attributes() map[string]any {
	return map[string]any{
		"id":           m.ID,
		"title":        m.Title,
		"director":     m.Director,
		"length":       m.Length,
		"release_date": m.ReleaseDate.Format(schema.DateLayout),
		"category_id":  m.CategoryID,
	}
}

func (m *Movie) Deserialize(payload map[string]any) error {
	title, err := stringField(payload, "title")
	if err != nil {
		return err
	}
	director, err := stringField(payload, "director")
	if err != nil {
		return err
	}
	length, err := intField(payload, "length")
	if err != nil {
		return err
	}
	releaseDate, err := dateField(payload, "release_date")
	if err != nil {
		return err
	}
	categoryID, err := intField(payload, "category_id")
	if err != nil {
		return err
	}

	m.Title = title
	m.Director = director
	m.Length = length
	m.ReleaseDate = releaseDate
	m.CategoryID = categoryID
	return nil
}

func MovieSchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"title", "director", "length", "release_date", "category_id"},
		Properties: map[string]schema.Property{
			"title": {
				Description: "Title of the movie",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
			"director": {
				Description: "Director of the movie",
				Type:        "string",
			},
			"length": {
				Description: "Length of the movie in seconds",
				Type:        "integer",
				Minimum:     schema.Num(1),
			},
			"release_date": {
				Description: "Release date of the movie",
				Type:        "string",
				Format:      schema.FormatDate,
			},
			"category_id": {
				Description: "Id of the category the movie belongs to",
				Type:        "integer",
				Minimum:     schema.Num(1),
			},
		},
	}
}

type MovieModel struct {
	DB *sql.DB
}

func (m *MovieModel) Insert(movie *Movie) error {
	query := `INSERT INTO movies (title, director, length, release_date, category_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	args := []any{movie.Title, movie.Director, movie.Length, movie.ReleaseDate, movie.CategoryID}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&movie.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (m *MovieModel) GetAll() ([]*Movie, error) {
	query := `SELECT id, title, director, length, release_date, category_id FROM movies ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*Movie{}
	for rows.Next() {
		var movie Movie
		err := rows.Scan(&movie.ID, &movie.Title, &movie.Director, &movie.Length, &movie.ReleaseDate, &movie.CategoryID)
		if err != nil {
			return nil, err
		}
		movies = append(movies, &movie)
	}
	return movies, rows.Err()
}

func (m *MovieModel) Get(id int) (*Movie, error) {
	if id < 1 {
		return nil, ErrNoRecordFound
	}

	query := `SELECT id, title, director, length, release_date, category_id FROM movies WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var movie Movie
	err := m.DB.QueryRowContext(ctx, query, id).Scan(&movie.ID, &movie.Title, &movie.Director, &movie.Length, &movie.ReleaseDate, &movie.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &movie, nil
}

func (m *MovieModel) Update(movie *Movie) error {
	query := `UPDATE movies SET title = $1, director = $2, length = $3, release_date = $4, category_id = $5
	WHERE id = $6`

	args := []any{movie.Title, movie.Director, movie.Length, movie.ReleaseDate, movie.CategoryID, movie.ID}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoRecordFound
	}
	return nil
}

// Delete cascades to the movie's reviews through the ON DELETE CASCADE on
// reviews.movie_id.
func (m *MovieModel) Delete(id int) error {
	if id < 1 {
		return ErrNoRecordFound
	}

	query := `DELETE FROM movies WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoRecordFound
	}
	return nil
}
