package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				email TEXT NOT NULL UNIQUE COLLATE NOCASE,
				password_hash TEXT NOT NULL,
				is_admin BOOLEAN NOT NULL DEFAULT FALSE,
				theme TEXT NOT NULL DEFAULT 'light',
				view_mode TEXT NOT NULL DEFAULT 'grid'
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Shared global catalog. isbn is nullable; uniqueness only applies
		// to rows that have one.
		_, err = db.Exec(`
			CREATE TABLE books (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				isbn TEXT UNIQUE,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				publisher TEXT,
				cover_url TEXT,
				page_count INTEGER,
				language TEXT
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE user_books (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				book_id TEXT NOT NULL REFERENCES books (id),
				custom_cover_url TEXT,
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				current_page INTEGER NOT NULL DEFAULT 0,
				purchase_date TEXT,
				purchase_price REAL,
				loaned_to TEXT,
				loan_date TEXT,
				UNIQUE (user_id, book_id)
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_user_books_user_id ON user_books (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Pre-dedup book records, retained for the admin catalog editor.
		_, err = db.Exec(`
			CREATE TABLE legacy_books (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				publisher TEXT,
				cover_url TEXT,
				is_read BOOLEAN NOT NULL DEFAULT FALSE,
				current_page INTEGER NOT NULL DEFAULT 0
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE notes (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				book_id TEXT REFERENCES books (id),
				chapter TEXT,
				page INTEGER,
				content TEXT NOT NULL,
				is_general BOOLEAN NOT NULL DEFAULT FALSE
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_notes_user_id ON notes (user_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE reading_logs (
				id TEXT PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
				user_book_id TEXT NOT NULL REFERENCES user_books (id) ON DELETE CASCADE,
				previous_page INTEGER NOT NULL,
				current_page INTEGER NOT NULL,
				pages_read INTEGER NOT NULL,
				percentage REAL NOT NULL
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_reading_logs_user_book_id ON reading_logs (user_book_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE verification_codes (
				email TEXT PRIMARY KEY COLLATE NOCASE,
				code_hash TEXT NOT NULL,
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{
			"verification_codes",
			"reading_logs",
			"notes",
			"legacy_books",
			"user_books",
			"books",
			"users",
		} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
