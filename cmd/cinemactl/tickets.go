package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/iliyamo/cinema-tickets/internal/model"
	"github.com/iliyamo/cinema-tickets/internal/repository"
	"github.com/iliyamo/cinema-tickets/internal/service"
)

func newTicketsCmd(a *app) *cobra.Command {
	var userID uint64
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List a user's reservations, latest screening first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user is required")
			}
			films := service.NewFilmService(repository.NewFilmRepo(a.db), repository.NewGenreRepo(a.db))
			tickets := service.NewTicketService(repository.NewTicketRepo(a.db), repository.NewFilmSessionRepo(a.db), films)

			items, err := tickets.ReservationsWithDetailsForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			renderReservations(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&userID, "user", 0, "user id")
	return cmd
}

func renderReservations(w io.Writer, items []model.ReservationWithDetails) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Ticket", "Film", "Genre", "Starts", "Row", "Place", "Price"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 30},
	})
	for _, it := range items {
		genre := "-"
		if it.Film.Genre != nil {
			genre = it.Film.Genre.Name
		}
		t.AppendRow(table.Row{
			it.Ticket.ID,
			it.Film.Name,
			genre,
			it.Session.StartTime.Format(time.DateTime),
			it.Ticket.RowNumber,
			it.Ticket.PlaceNumber,
			it.Session.Price,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", fmt.Sprint(len(items))})
	t.Render()
}
