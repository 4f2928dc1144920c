package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metrics (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		target REAL NOT NULL,
		current REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL,
		end_date DATETIME,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metric_logs (
		id TEXT NOT NULL PRIMARY KEY,
		value REAL NOT NULL,
		note TEXT,
		date DATETIME NOT NULL,
		metric_id TEXT NOT NULL REFERENCES metrics(id)
	);

	CREATE TABLE IF NOT EXISTS job_applications (
		id TEXT NOT NULL PRIMARY KEY,
		job_title TEXT NOT NULL,
		company TEXT NOT NULL,
		application_url TEXT,
		resume_version TEXT,
		contact_name TEXT,
		contact_email TEXT,
		contact_linkedin TEXT,
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'Applied',
		applied_date DATETIME NOT NULL,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS challenges (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		target REAL NOT NULL,
		current REAL NOT NULL DEFAULT 0,
		unit TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS prep_activities (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		date DATETIME NOT NULL,
		self_rating INTEGER,
		notes TEXT,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		entity_id TEXT,
		user_id TEXT NOT NULL REFERENCES users(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
