package data

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moviereview/internal/schema"
)

// Role orders the two privilege levels: BasicUser < Admin. The string values
// are the serialized form carried in payloads and documents.
type Role string

const (
	RoleBasicUser Role = "Basic User"
	RoleAdmin     Role = "Admin"
)

func (r Role) level() int {
	switch r {
	case RoleBasicUser:
		return 1
	case RoleAdmin:
		return 2
	}
	return 0
}

// AtLeast reports whether the role admits an operation gated on min. Unknown
// roles admit nothing.
func (r Role) AtLeast(min Role) bool {
	return r.level() > 0 && r.level() >= min.level()
}

type password struct {
	plaintext *string
	hash      []byte
}

func (p *password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintextPassword
	p.hash = hash

	return nil
}

func (p *password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

var AnonymousUser = &User{}

type User struct {
	ID           int
	Username     string
	EmailAddress string
	Password     password
	Role         Role
}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// Attributes returns the serialized representation merged into hypermedia
// documents. The password hash is never serialized.
func (u *User) Attributes() map[string]any {
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"email_address": u.EmailAddress,
		"role":          string(u.Role),
	}
}

// Deserialize populates the user from a schema-validated payload, hashing the
// plaintext password on the way in.
func (u *User) Deserialize(payload map[string]any) error {
	username, err := stringField(payload, "username")
	if err != nil {
		return err
	}
	email, err := stringField(payload, "email_address")
	if err != nil {
		return err
	}
	plaintext, err := stringField(payload, "password")
	if err != nil {
		return err
	}
	role, err := stringField(payload, "role")
	if err != nil {
		return err
	}

	u.Username = username
	u.EmailAddress = email
	u.Role = Role(role)
	return u.Password.Set(plaintext)
}

// UserSchema declares the payload accepted by the user create and edit forms.
func UserSchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"username", "email_address", "password", "role"},
		Properties: map[string]schema.Property{
			"username": {
				Description: "Unique name of the user",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
			"email_address": {
				Description: "Unique email address of the user",
				Type:        "string",
				Format:      schema.FormatEmail,
			},
			"password": {
				Description: "Password of the user",
				Type:        "string",
				MinLength:   schema.Int(8),
			},
			"role": {
				Description: "Role of the user",
				Type:        "string",
				Enum:        []string{string(RoleAdmin), string(RoleBasicUser)},
			},
		},
	}
}

// LoginSchema declares the payload accepted by the login form.
func LoginSchema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"email_address", "password"},
		Properties: map[string]schema.Property{
			"email_address": {
				Description: "Email address of the user",
				Type:        "string",
				Format:      schema.FormatEmail,
			},
			"password": {
				Description: "Password of the user",
				Type:        "string",
				MinLength:   schema.Int(1),
			},
		},
	}
}

type UserModel struct {
	DB *sql.DB
}

func (m *UserModel) Insert(user *User) error {
	query := `INSERT INTO users (username, email_address, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

	args := []any{user.Username, user.EmailAddress, user.Password.hash, string(user.Role)}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&user.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (m *UserModel) GetAll() ([]*User, error) {
	query := `SELECT id, username, email_address, password_hash, role FROM users ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		var user User
		err := rows.Scan(&user.ID, &user.Username, &user.EmailAddress, &user.Password.hash, &user.Role)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (m *UserModel) Get(id int) (*User, error) {
	if id < 1 {
		return nil, ErrNoRecordFound
	}

	query := `SELECT id, username, email_address, password_hash, role FROM users WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var user User
	err := m.DB.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.EmailAddress, &user.Password.hash, &user.Role)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

func (m *UserModel) GetByEmail(email string) (*User, error) {
	query := `SELECT id, username, email_address, password_hash, role FROM users WHERE email_address = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var user User
	err := m.DB.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Username, &user.EmailAddress, &user.Password.hash, &user.Role)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

func (m *UserModel) GetByUsername(username string) (*User, error) {
	query := `SELECT id, username, email_address, password_hash, role FROM users WHERE username = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var user User
	err := m.DB.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.EmailAddress, &user.Password.hash, &user.Role)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

func (m *UserModel) GetByToken(scope, plaintext string) (*User, error) {
	tokenHash := sha256.Sum256([]byte(plaintext))

	query := `SELECT users.id, users.username, users.email_address, users.password_hash, users.role
	FROM users
	INNER JOIN tokens ON users.id = tokens.user_id
	WHERE tokens.hash = $1
	AND tokens.scope = $2
	AND tokens.expiry > $3`

	args := []any{tokenHash[:], scope, time.Now()}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var user User
	err := m.DB.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.EmailAddress, &user.Password.hash, &user.Role)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNoRecordFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

func (m *UserModel) Update(user *User) error {
	query := `UPDATE users SET username = $1, email_address = $2, password_hash = $3, role = $4
	WHERE id = $5`

	args := []any{user.Username, user.EmailAddress, user.Password.hash, string(user.Role), user.ID}

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

// Delete removes the user and, through the cascade on tokens.user_id, their
// auth tokens. Reviews reference the author by username rather than a foreign
// key, so they stay in place.
func (m *UserModel) Delete(id int) error {
	if id < 1 {
		return ErrNoRecordFound
	}

	query := `DELETE FROM users WHERE id = $1`

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
