package data

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var (
	ErrNoRecordFound       = errors.New("record not found")
	ErrForeignKeyViolation = errors.New("referenced record does not exist or still has dependent records")
)

// UniqueViolationError reports which column a commit-time uniqueness
// constraint failed on, so conflict responses can name the field.
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// InvalidPayloadError reports a payload field that could not be converted
// into an entity attribute during deserialization.
type InvalidPayloadError struct {
	Field  string
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// uniqueConstraintFields maps the unique constraints declared in the database
// schema to the payload field they guard.
var uniqueConstraintFields = map[string]string{
	"users_username_key":      "username",
	"users_email_address_key": "email_address",
	"categories_title_key":    "title",
}

// translateError converts lib/pq constraint violations into the sentinel
// errors the request pipeline knows how to respond to. Anything else is
// returned unchanged so unexpected database failures surface as such.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			field := uniqueConstraintFields[pqErr.Constraint]
			if field == "" {
				field = pqErr.Constraint
			}
			return &UniqueViolationError{Field: field}
		case "23503":
			return ErrForeignKeyViolation
		}
	}
	return err
}

type UserStore interface {
	Insert(user *User) error
	GetAll() ([]*User, error)
	Get(id int) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetByToken(scope, plaintext string) (*User, error)
	Update(user *User) error
	Delete(id int) error
}

type CategoryStore interface {
	Insert(category *Category) error
	GetAll() ([]*Category, error)
	Get(id int) (*Category, error)
	Update(category *Category) error
	Delete(id int) error
}

type MovieStore interface {
	Insert(movie *Movie) error
	GetAll() ([]*Movie, error)
	Get(id int) (*Movie, error)
	Update(movie *Movie) error
	Delete(id int) error
}

type ReviewStore interface {
	Insert(review *Review) error
	GetAllForMovie(movieID int) ([]*Review, error)
	GetAllByAuthor(author string) ([]*Review, error)
	GetForMovie(movieID, id int) (*Review, error)
	Update(review *Review) error
	Delete(id int) error
}

type TokenStore interface {
	New(userID int, ttl time.Duration, scope string) (*Token, error)
	DeleteAllForUser(scope string, userID int) error
}

// Models bundles one store per entity behind their interfaces so handlers can
// be exercised against mocks in tests.
type Models struct {
	Users      UserStore
	Categories CategoryStore
	Movies     MovieStore
	Reviews    ReviewStore
	Tokens     TokenStore
}

func NewModels(db *sql.DB) Models {
	return Models{
		Users:      &UserModel{DB: db},
		Categories: &CategoryModel{DB: db},
		Movies:     &MovieModel{DB: db},
		Reviews:    &ReviewModel{DB: db},
		Tokens:     &TokenModel{DB: db},
	}
}
