package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware.
// The subject must be present — its absence means the middleware did not run
// on this route, which is a wiring bug surfaced as 401 rather than a panic.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	subject, _ := c.Get("subject").(string)
	if subject == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	fullName, _ := c.Get("full_name").(string)

	return ports.Identity{SubjectID: subject, Email: email, FullName: fullName}, nil
}

const dateLayout = "2006-01-02"

// parseDate parses a calendar date from a request field.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "dates must use the YYYY-MM-DD format")
	}
	return t, nil
}
