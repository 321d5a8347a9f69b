package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures the schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:quizforge.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/quizforge?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS quizzes (
  slug TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  schedule_date INTEGER NOT NULL,
  end_date INTEGER NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  time_per_question INTEGER NOT NULL DEFAULT 60,
  created_by TEXT NOT NULL,
  updated_by TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  slug TEXT PRIMARY KEY,
  quiz_slug TEXT NOT NULL REFERENCES quizzes(slug) ON DELETE CASCADE,
  question_text TEXT NOT NULL,
  question_img TEXT NOT NULL DEFAULT '',
  question_type TEXT NOT NULL,
  answer TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS taken_quizzes (
  id TEXT PRIMARY KEY,
  quiz_slug TEXT NOT NULL REFERENCES quizzes(slug) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  taken_on INTEGER NOT NULL,
  score INTEGER NOT NULL DEFAULT 0,
  UNIQUE (quiz_slug, user_id)
);

CREATE TABLE IF NOT EXISTS question_solutions (
  id TEXT PRIMARY KEY,
  taken_quiz_id TEXT NOT NULL REFERENCES taken_quizzes(id) ON DELETE CASCADE,
  question_slug TEXT NOT NULL REFERENCES questions(slug) ON DELETE CASCADE,
  answer TEXT NOT NULL DEFAULT '',
  is_correct INTEGER NOT NULL DEFAULT 0
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS quizzes (
  slug TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  schedule_date BIGINT NOT NULL,
  end_date BIGINT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  time_per_question INTEGER NOT NULL DEFAULT 60,
  created_by TEXT NOT NULL,
  updated_by TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
  slug TEXT PRIMARY KEY,
  quiz_slug TEXT NOT NULL REFERENCES quizzes(slug) ON DELETE CASCADE,
  question_text TEXT NOT NULL,
  question_img TEXT NOT NULL DEFAULT '',
  question_type TEXT NOT NULL,
  answer TEXT NOT NULL,
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS taken_quizzes (
  id TEXT PRIMARY KEY,
  quiz_slug TEXT NOT NULL REFERENCES quizzes(slug) ON DELETE CASCADE,
  user_id TEXT NOT NULL,
  taken_on BIGINT NOT NULL,
  score INTEGER NOT NULL DEFAULT 0,
  UNIQUE (quiz_slug, user_id)
);

CREATE TABLE IF NOT EXISTS question_solutions (
  id TEXT PRIMARY KEY,
  taken_quiz_id TEXT NOT NULL REFERENCES taken_quizzes(id) ON DELETE CASCADE,
  question_slug TEXT NOT NULL REFERENCES questions(slug) ON DELETE CASCADE,
  answer TEXT NOT NULL DEFAULT '',
  is_correct INTEGER NOT NULL DEFAULT 0
);
`
