package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"moviereview/internal/schema"
)

// Category groups movies. Its title is unique and a category cannot be
// deleted while a movie still references it.
type Category struct {
	ID    int
	Title string
}

func (c *Category) Attributes() map[string]any {
	return map[string]any{
		"id":    c.ID,
		"title": c.Title,
	}
}

func (c *Category) Deserialize(payload map[string]any) error {
	title, err := stringField(payload, "title")
	if err != nil {
		return err
	}
	c.Title = title
	return nil
}

func CategorySchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"title"},
		Properties: map[string]schema.Property{
			"title": {
				Description: "Unique title of the category",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
		},
	}
}

type CategoryModel struct {
	DB *sql.DB
}

func (m *CategoryModel) Insert(category *Category) error {
	query := `INSERT INTO categories (title) VALUES ($1) RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, category.Title).Scan(&category.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (m *CategoryModel) GetAll() ([]*Category, error) {
	query := `SELECT id, title FROM categories ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Title); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	return categories, rows.Err()
}

func (m *CategoryModel) Get(id int) (*Category, error) {
	if id < 1 {
		return nil, ErrNoRecordFound
	}

	query := `SELECT id, title FROM categories WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var category Category
	err := m.DB.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Title)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &category, nil
}

func (m *CategoryModel) Update(category *Category) error {
	query := `UPDATE categories SET title = $1 WHERE id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, category.Title, category.ID)
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

// Delete fails with ErrForeignKeyViolation while any movie still references
// the category; the schema declares ON DELETE RESTRICT for movies.category_id.
func (m *CategoryModel) Delete(id int) error {
	if id < 1 {
		return ErrNoRecordFound
	}

	query := `DELETE FROM categories WHERE id = $1`

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
