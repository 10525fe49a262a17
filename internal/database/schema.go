package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.  `row_number`
// is quoted because it is a reserved word in MySQL 8.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS genres (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS files (
		id   BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		path VARCHAR(512) NOT NULL UNIQUE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS films (
		id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(255) NOT NULL,
		description         TEXT NOT NULL,
		release_year        INT NOT NULL,
		genre_id            BIGINT UNSIGNED NOT NULL,
		minimal_age         INT NOT NULL DEFAULT 0,
		duration_in_minutes INT NOT NULL,
		file_id             BIGINT UNSIGNED NOT NULL DEFAULT 0,
		KEY idx_films_genre (genre_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS halls (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(100) NOT NULL UNIQUE,
		row_count   INT NOT NULL,
		place_count INT NOT NULL,
		description TEXT NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS film_sessions (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		film_id    BIGINT UNSIGNED NOT NULL,
		hall_id    BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		end_time   DATETIME NOT NULL,
		price      INT NOT NULL,
		KEY idx_sessions_film (film_id),
		KEY idx_sessions_start (start_time)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		full_name     VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_hash (token_hash),
		KEY idx_refresh_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS tickets (" +
		"id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY," +
		"session_id   BIGINT UNSIGNED NOT NULL," +
		"`row_number` INT NOT NULL," +
		"place_number INT NOT NULL," +
		"user_id      BIGINT UNSIGNED NOT NULL," +
		"UNIQUE KEY uq_tickets_seat (session_id, `row_number`, place_number)," +
		"KEY idx_tickets_user (user_id)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// Migrate creates every table the application uses.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
