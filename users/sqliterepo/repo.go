package sqliterepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT NOT NULL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	date_joined TIMESTAMP NOT NULL
);`

var _ users.Repo = (*Repo)(nil)

// Repo is a SQLite-backed credential store. The UNIQUE constraint on
// username is the uniqueness guarantee; Create maps constraint violations to
// users.UsernameTakenErr.
type Repo struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string) (*Repo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqliterepo Open] open database")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[sqliterepo Open] apply schema")
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Create(ctx context.Context, username, passwordHash string) (*users.User, error) {
	user := &users.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		DateJoined:   time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, date_joined) VALUES (?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.DateJoined)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, users.UsernameTakenErr
		}
		return nil, errors.Wrap(err, "[sqliterepo Create] insert user")
	}

	return user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, date_joined FROM users WHERE username = ?`, username)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, date_joined FROM users WHERE id = ?`, id)
}

func (r *Repo) getOne(ctx context.Context, query string, arg string) (*users.User, error) {
	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.DateJoined)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.NotFoundErr
	}
	if err != nil {
		return nil, errors.Wrap(err, "[sqliterepo getOne] query user")
	}
	return user, nil
}
