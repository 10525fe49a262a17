package main

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	genreCols = []string{"id", "name"}
	hallCols  = []string{"id", "name", "row_count", "place_count", "description"}
)

func TestSeedCatalog_RunsTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	opts := seedOptions{hall: "Hall 1", start: time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)}

	// first run creates the genre and the hall
	mock.ExpectQuery("FROM genres WHERE name").WithArgs("Sci-Fi").WillReturnRows(sqlmock.NewRows(genreCols))
	mock.ExpectExec("INSERT INTO genres").WithArgs("Sci-Fi").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO films").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM halls WHERE name").WithArgs("Hall 1").WillReturnRows(sqlmock.NewRows(hallCols))
	mock.ExpectExec("INSERT INTO halls").WithArgs("Hall 1", 10, 12, "").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO film_sessions").WillReturnResult(sqlmock.NewResult(10, 1))

	// second run finds both and only adds a film and a session
	mock.ExpectQuery("FROM genres WHERE name").WithArgs("Sci-Fi").
		WillReturnRows(sqlmock.NewRows(genreCols).AddRow(4, "Sci-Fi"))
	mock.ExpectExec("INSERT INTO films").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery("FROM halls WHERE name").WithArgs("Hall 1").
		WillReturnRows(sqlmock.NewRows(hallCols).AddRow(2, "Hall 1", 10, 12, ""))
	mock.ExpectExec("INSERT INTO film_sessions").WillReturnResult(sqlmock.NewResult(11, 1))

	first, err := seedCatalog(context.Background(), db, opts)
	require.NoError(t, err)
	second, err := seedCatalog(context.Background(), db, opts)
	require.NoError(t, err)

	assert.Equal(t, first.genre.ID, second.genre.ID)
	assert.Equal(t, first.hall.ID, second.hall.ID)
	assert.Equal(t, uint64(10), first.session.ID)
	assert.Equal(t, uint64(11), second.session.ID)
	assert.Equal(t, opts.start.Add(148*time.Minute), second.session.EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedCatalog_GenreInsertedConcurrently(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM genres WHERE name").WithArgs("Sci-Fi").WillReturnRows(sqlmock.NewRows(genreCols))
	mock.ExpectExec("INSERT INTO genres").WithArgs("Sci-Fi").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'Sci-Fi' for key 'name'"})
	mock.ExpectQuery("FROM genres WHERE name").WithArgs("Sci-Fi").
		WillReturnRows(sqlmock.NewRows(genreCols).AddRow(7, "Sci-Fi"))
	mock.ExpectExec("INSERT INTO films").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("FROM halls WHERE name").WithArgs("Hall 1").
		WillReturnRows(sqlmock.NewRows(hallCols).AddRow(2, "Hall 1", 10, 12, ""))
	mock.ExpectExec("INSERT INTO film_sessions").WillReturnResult(sqlmock.NewResult(1, 1))

	out, err := seedCatalog(context.Background(), db, seedOptions{hall: "Hall 1", start: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), out.genre.ID)
	assert.Equal(t, uint64(7), out.film.GenreID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
