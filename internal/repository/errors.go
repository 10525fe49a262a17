// Package repository holds the MySQL data access layer.  Lookups that find
// nothing return one of the Err*NotFound sentinels below; callers treat
// those as an expected outcome and everything else as a storage fault.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrSessionNotFound = errors.New("film session not found")
	ErrFilmNotFound    = errors.New("film not found")
	ErrGenreNotFound   = errors.New("genre not found")
	ErrHallNotFound    = errors.New("hall not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrFileNotFound    = errors.New("file not found")

	// ErrEmailExists is returned by UserRepo.Create when the email is taken.
	ErrEmailExists = errors.New("email already exists")
	ErrGenreExists = errors.New("genre name already exists")
	ErrHallExists  = errors.New("hall name already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a unique key violation.
func isDuplicateKey(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
