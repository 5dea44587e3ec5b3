package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moviereview/internal/schema"
)

// Review belongs to a movie. The author is the reviewing user's username,
// kept as loose text on purpose: deleting a user leaves their reviews behind.
type Review struct {
	ID      int
	Rating  int
	Comment string
	Date    time.Time
	Author  string
	MovieID int
}

func (r *Review) Attributes() map[string]any {
	return map[string]any{
		"id":       r.ID,
		"rating":   r.Rating,
		"comment":  r.Comment,
		"date":     r.Date.UTC().Format(schema.DateTimeLayout),
		"author":   r.Author,
		"movie_id": r.MovieID,
	}
}

// Deserialize populates the review from a schema-validated payload. The
// owning movie id comes from the request path, not the payload.
func (r *Review) Deserialize(payload map[string]any) error {
	rating, err := intField(payload, "rating")
	if err != nil {
		return err
	}
	comment, err := stringField(payload, "comment")
	if err != nil {
		return err
	}
	date, err := timestampField(payload, "date")
	if err != nil {
		return err
	}
	author, err := stringField(payload, "author")
	if err != nil {
		return err
	}

	r.Rating = rating
	r.Comment = comment
	r.Date = date
	r.Author = author
	return nil
}

func ReviewSchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"rating", "comment", "date", "author"},
		Properties: map[string]schema.Property{
			"rating": {
				Description: "Rating of the movie from 1 to 5",
				Type:        "integer",
				Minimum:     schema.Num(1),
				Maximum:     schema.Num(5),
			},
			"comment": {
				Description: "Comment explaining the rating",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
			"date": {
				Description: "Timestamp of the review",
				Type:        "string",
				Format:      schema.FormatDateTime,
			},
			"author": {
				Description: "Username of the reviewing user",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
		},
	}
}

type ReviewModel struct {
	DB *sql.DB
}

func (m *ReviewModel) Insert(review *Review) error {
	query := `INSERT INTO reviews (rating, comment, date, author, movie_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

	args := []any{review.Rating, review.Comment, review.Date, review.Author, review.MovieID}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&review.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (m *ReviewModel) GetAllForMovie(movieID int) ([]*Review, error) {
	query := `SELECT id, rating, comment, date, author, movie_id FROM reviews WHERE movie_id = $1 ORDER BY id`
	return m.getAll(query, movieID)
}

func (m *ReviewModel) GetAllByAuthor(author string) ([]*Review, error) {
	query := `SELECT id, rating, comment, date, author, movie_id FROM reviews WHERE author = $1 ORDER BY id`
	return m.getAll(query, author)
}

func (m *ReviewModel) getAll(query string, arg any) ([]*Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var review Review
		err := rows.Scan(&review.ID, &review.Rating, &review.Comment, &review.Date, &review.Author, &review.MovieID)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, rows.Err()
}

// GetForMovie resolves a review by id scoped to its movie, so a review id
// under the wrong movie path is not found.
func (m *ReviewModel) GetForMovie(movieID, id int) (*Review, error) {
	if id < 1 {
		return nil, ErrNoRecordFound
	}

	query := `SELECT id, rating, comment, date, author, movie_id FROM reviews WHERE id = $1 AND movie_id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var review Review
	err := m.DB.QueryRowContext(ctx, query, id, movieID).Scan(&review.ID, &review.Rating, &review.Comment, &review.Date, &review.Author, &review.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &review, nil
}

func (m *ReviewModel) Update(review *Review) error {
	query := `UPDATE reviews SET rating = $1, comment = $2, date = $3, author = $4
	WHERE id = $5`

	args := []any{review.Rating, review.Comment, review.Date, review.Author, review.ID}

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

func (m *ReviewModel) Delete(id int) error {
	if id < 1 {
		return ErrNoRecordFound
	}

	query := `DELETE FROM reviews WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
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
