// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketReservedEvent is published after a seat has been reserved.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type TicketReservedEvent struct {
	TicketID   uint64 `json:"ticket_id,omitempty"`
	UserID     uint64 `json:"user_id"`
	SessionID  uint64 `json:"session_id"`
	Row        int    `json:"row"`
	Place      int    `json:"place"`
	HallName   string `json:"hall_name"`
	FilmName   string `json:"film_name"`
	StartsAt   string `json:"starts_at"`
	Price      int    `json:"price"`
	ReservedAt string `json:"reserved_at"`
}
