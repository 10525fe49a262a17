package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
	"github.com/iliyamo/cinema-tickets/internal/service"
)

const seedGenre = "Sci-Fi"

type seedOptions struct {
	poster   string
	filesDir string
	hall     string
	start    time.Time
}

type seeded struct {
	genre   *model.Genre
	film    model.Film
	hall    *model.Hall
	session model.FilmSession
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		opts  seedOptions
		start string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a sample film and session, reusing the sample genre and hall",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.start = time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
			if start != "" {
				t, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				opts.start = t.UTC()
			}
			opts.filesDir = a.cfg.Files.Path

			out, err := seedCatalog(cmd.Context(), a.db, opts)
			if err != nil {
				return err
			}
			cmd.Printf("genre=%d film=%d hall=%d session=%d starts=%s\n",
				out.genre.ID, out.film.ID, out.hall.ID, out.session.ID, out.session.StartTime.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.poster, "poster", "", "path of a poster image to attach to the film")
	cmd.Flags().StringVar(&start, "start", "", "session start (RFC3339), default is tomorrow")
	cmd.Flags().StringVar(&opts.hall, "hall", "Hall 1", "hall to schedule the session in, created 10x12 if missing")
	return cmd
}

// seedCatalog can run any number of times: the genre and hall are looked up
// by their unique names, a new film and session are added on every run.
func seedCatalog(ctx context.Context, db *sql.DB, opts seedOptions) (*seeded, error) {
	var out seeded
	var err error

	if out.genre, err = ensureGenre(ctx, repository.NewGenreRepo(db), seedGenre); err != nil {
		return nil, err
	}

	out.film = model.Film{
		Name:              "Inception",
		Description:       "A thief who steals corporate secrets through dream-sharing technology.",
		ReleaseYear:       2010,
		GenreID:           out.genre.ID,
		MinimalAge:        13,
		DurationInMinutes: 148,
	}
	if opts.poster != "" {
		content, err := os.ReadFile(opts.poster)
		if err != nil {
			return nil, err
		}
		f, err := service.NewFileService(repository.NewFileRepo(db), opts.filesDir).
			Save(ctx, filepath.Base(opts.poster), content)
		if err != nil {
			return nil, err
		}
		out.film.FileID = f.ID
	}
	if err := repository.NewFilmRepo(db).Create(ctx, &out.film); err != nil {
		return nil, err
	}

	if out.hall, err = ensureHall(ctx, repository.NewHallRepo(db), opts.hall); err != nil {
		return nil, err
	}

	out.session = model.FilmSession{
		FilmID:    out.film.ID,
		HallID:    out.hall.ID,
		StartTime: opts.start,
		EndTime:   opts.start.Add(time.Duration(out.film.DurationInMinutes) * time.Minute),
		Price:     500,
	}
	if err := repository.NewFilmSessionRepo(db).Create(ctx, &out.session); err != nil {
		return nil, err
	}
	return &out, nil
}

func ensureGenre(ctx context.Context, genres *repository.GenreRepo, name string) (*model.Genre, error) {
	g, err := genres.FindByName(ctx, name)
	if !errors.Is(err, repository.ErrGenreNotFound) {
		return g, err
	}
	g = &model.Genre{Name: name}
	err = genres.Create(ctx, g)
	if errors.Is(err, repository.ErrGenreExists) {
		// a concurrent seed inserted it first
		return genres.FindByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func ensureHall(ctx context.Context, halls *repository.HallRepo, name string) (*model.Hall, error) {
	h, err := halls.FindByName(ctx, name)
	if !errors.Is(err, repository.ErrHallNotFound) {
		return h, err
	}
	h = &model.Hall{Name: name, RowCount: 10, PlaceCount: 12}
	err = halls.Create(ctx, h)
	if errors.Is(err, repository.ErrHallExists) {
		return halls.FindByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}
