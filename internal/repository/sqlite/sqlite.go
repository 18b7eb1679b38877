package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/penmark/penmark/internal/domain"
	"github.com/penmark/penmark/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database file and hands out the repositories backed
// by it.
type DB struct {
	sql   *sql.DB
	users *UserRepository
	posts *PostRepository
}

// New opens (or creates) the SQLite database at the given path and configures
// it for use. WAL mode improves concurrent read performance; foreign keys are
// enforced so a post can never outlive its owner row.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite allows a single writer at a time; keep the pool at one
	// connection and let the engine serialize conflicting writes.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{sql: db}
	d.users = &UserRepository{db: db}
	d.posts = &PostRepository{db: db}
	return d, nil
}

// Migrate applies any unapplied schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.sql)
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Users returns the user repository backed by this database.
func (d *DB) Users() domain.UserRepository {
	return d.users
}

// Posts returns the post repository backed by this database.
func (d *DB) Posts() domain.PostRepository {
	return d.posts
}
