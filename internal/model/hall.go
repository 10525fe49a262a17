package model

// Hall represents a screening hall. A seat (row, place) is valid for the
// hall when 1 <= row <= RowCount and 1 <= place <= PlaceCount.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the hall.
//  RowCount    – number of seating rows.
//  PlaceCount  – number of places in every row.
//  Description – optional free text.
type Hall struct {
	ID          uint64 `json:"id"`          // halls.id
	Name        string `json:"name"`        // halls.name
	RowCount    int    `json:"row_count"`   // halls.row_count
	PlaceCount  int    `json:"place_count"` // halls.place_count
	Description string `json:"description"` // halls.description
}

// Contains reports whether (row, place) addresses a seat inside the hall.
func (h Hall) Contains(row, place int) bool {
	return row >= 1 && row <= h.RowCount && place >= 1 && place <= h.PlaceCount
}
