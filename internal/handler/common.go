package handler // handler defines http handlers

import (
	"errors"  // errors provides the sentinel returned by getUserID
	"strconv" // strconv converts path parameters and context values

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/cinema-tickets/internal/middleware" // middleware owns the user id context key
)

var errNoUser = errors.New("invalid user_id in context")

// getUserID extracts the user_id stored by JWTAuth and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.UserIDKey).(type) { // perform type switch on the value
	case uint64: // JWTAuth stores uint64
		if t != 0 {
			return t, nil
		}
	case int64: // tolerate values set by tests or other middleware
		if t > 0 {
			return uint64(t), nil
		}
	case string: // when stored as string
		if n, err := strconv.ParseUint(t, 10, 64); err == nil && n != 0 {
			return n, nil
		}
	}
	return 0, errNoUser // missing or malformed value
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
