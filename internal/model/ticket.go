package model

import "time"

// Ticket is a reserved seat. The triple (SessionID, RowNumber, PlaceNumber)
// identifies the seat and is unique across the tickets table, so a seat can
// be held by at most one ticket. Tickets are never updated or deleted.
//
// Fields:
//  ID          – tickets.id, assigned by the database on insert.
//  SessionID   – film session the seat belongs to.
//  RowNumber   – 1-based row inside the session's hall.
//  PlaceNumber – 1-based place inside the row.
//  UserID      – user who reserved the seat.
type Ticket struct {
	ID          uint64 `json:"id"`
	SessionID   uint64 `json:"session_id"`
	RowNumber   int    `json:"row_number"`
	PlaceNumber int    `json:"place_number"`
	UserID      uint64 `json:"user_id"`
}

// ReservationWithDetails is the read model behind a user's ticket history:
// a ticket together with its session and film. Film.Genre is set when the
// film's genre exists.
type ReservationWithDetails struct {
	Ticket  Ticket      `json:"ticket"`
	Session FilmSession `json:"session"`
	Film    Film        `json:"film"`
}

// StartsAt is the session start used to order a history.
func (r ReservationWithDetails) StartsAt() time.Time { return r.Session.StartTime }
