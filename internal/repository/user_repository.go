package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/filmhub/swapper-api/internal/model"
	"github.com/filmhub/swapper-api/internal/utils"
)

// UserRepo encapsulates all database queries related to user
// accounts.
type UserRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, now: time.Now}
}

// Register hashes the password and inserts a new user.  The username
// is checked first for a friendlier error, but the unique constraint
// remains authoritative: a concurrent duplicate insert fails at the
// database and is reported as ErrUsernameTaken all the same.  The
// plaintext password is discarded after hashing and never logged.
func (r *UserRepo) Register(ctx context.Context, username, password string, cost int) (model.User, error) {
	username = strings.TrimSpace(username)

	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username = ?", username).Scan(&exists)
	if err == nil {
		return model.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}

	createdAt := stamp(r.now())
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, hash, createdAt)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return model.User{ID: uint64(id), Username: username, CreatedAt: createdAt}, nil
}

// Verify looks up the user and compares the stored bcrypt hash
// against the supplied password.  ErrUserNotFound and
// ErrInvalidPassword are distinct so callers can phrase their
// responses, though both map to a 401 upstream.
func (r *UserRepo) Verify(ctx context.Context, username, password string) (model.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidPassword
	}
	return u, nil
}

// GetByUsername fetches a user record by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}
