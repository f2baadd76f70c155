// Package sqldb implements the repository interfaces on top of database/sql.
//
// Two drivers are supported:
//   - "sqlite" (modernc.org/sqlite, pure Go) — the default store and the
//     test store via ":memory:"
//   - "mysql" (go-sql-driver/mysql) — the networked deployment the original
//     system ran against
//
// Both use ? placeholders, so every query below is shared. Only the schema
// bootstrap differs per driver. Values are always bound, never interpolated.
package sqldb

import (
	"database/sql"
	"fmt"

	// Driver registration imports: each driver's init() registers itself
	// with database/sql under its name.
	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Store wraps a sql.DB pool and provides the account and entry repository
// methods. Each method performs exactly one statement; the pool checks a
// connection out and back in around each call, so no connection is ever
// held across operations.
type Store struct {
	conn   *sql.DB
	driver string
}

// Open connects to the database named by driver ("sqlite" or "mysql") and
// dsn, verifies the connection, and bootstraps the schema.
//
// sqlite dsn examples: "data/diary.db" (file), ":memory:" (tests).
// mysql dsn example:
// "root:@tcp(localhost:3306)/DiarySystem?clientFoundRows=true".
// clientFoundRows makes RowsAffected report matched rows instead of changed
// rows, which UpdateEntry relies on to tell "row exists, values identical"
// apart from "no such row".
func Open(driver, dsn string) (*Store, error) {
	if driver != "sqlite" && driver != "mysql" {
		return nil, fmt.Errorf("sqldb: unsupported driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqldb: opening database: %w", err)
	}

	// sql.Open only prepares the pool; Ping forces a real connection so a
	// bad DSN or unreachable host surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqldb: pinging database: %w", err)
	}

	if driver == "sqlite" {
		// WAL allows concurrent reads during a write; foreign keys are off
		// by default in SQLite and the diary table references user(id).
		if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqldb: setting WAL mode: %w", err)
		}
		if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqldb: enabling foreign keys: %w", err)
		}
	}

	s := &Store{conn: conn, driver: driver}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqldb: bootstrapping schema: %w", err)
	}

	return s, nil
}

// Close closes the connection pool. Callers should defer this right after a
// successful Open.
func (s *Store) Close() error {
	return s.conn.Close()
}

// migrate creates the two tables if they do not exist. Table and column
// names are fixed: user(id, username, password) and diary(id, name,
// duration, address, date, time, details, user_id).
//
// The UNIQUE index on username backs the uniqueness invariant that the
// service layer enforces with its check-then-insert; a racing duplicate
// insert surfaces as a storage error rather than a second row.
func (s *Store) migrate() error {
	var stmts []string
	if s.driver == "mysql" {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS user (
				id       INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS diary (
				id       INT AUTO_INCREMENT PRIMARY KEY,
				name     VARCHAR(255) NOT NULL,
				duration VARCHAR(255) NOT NULL DEFAULT '',
				address  VARCHAR(255) NOT NULL DEFAULT '',
				date     VARCHAR(255) NOT NULL,
				time     VARCHAR(255) NOT NULL,
				details  TEXT NOT NULL,
				user_id  INT NOT NULL,
				FOREIGN KEY (user_id) REFERENCES user(id)
			)`,
		}
	} else {
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS user (
				id       INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS diary (
				id       INTEGER PRIMARY KEY AUTOINCREMENT,
				name     TEXT NOT NULL,
				duration TEXT NOT NULL DEFAULT '',
				address  TEXT NOT NULL DEFAULT '',
				date     TEXT NOT NULL,
				time     TEXT NOT NULL,
				details  TEXT NOT NULL DEFAULT '',
				user_id  INTEGER NOT NULL REFERENCES user(id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_diary_user_id ON diary(user_id)`,
		}
	}

	for _, stmt := range stmts {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
