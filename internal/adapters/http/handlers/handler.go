package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"goldtrack/internal/core/domain"
	"goldtrack/internal/pkg/response"
	"goldtrack/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// fail maps a service error onto the response envelope. Unrecognized errors
// are reported as fallback with a 500.
func fail(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked):
		return response.Unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrEmployeeInactive),
		errors.Is(err, domain.ErrUserInactive):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrEmployeeProfileMissing):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrEmployeeAlreadyExists),
		errors.Is(err, domain.ErrUserAlreadyExists):
		return response.Conflict(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// parseBody binds the JSON body into dst and validates its tags
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	if err := validator.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// paramID reads a positive numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}
	return uint(id), nil
}

// dateRange reads the optional from and to query parameters
func dateRange(c *fiber.Ctx, loc *time.Location) (domain.DateRange, error) {
	var r domain.DateRange
	if v := c.Query("from"); v != "" {
		t, err := parseTime(v, loc, false)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := parseTime(v, loc, true)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	return r, nil
}

// parseTime accepts unix milliseconds, RFC 3339, or a bare YYYY-MM-DD day in
// loc. A bare day used as an upper bound covers the whole day.
func parseTime(v string, loc *time.Location, end bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, v)
	}
	if end {
		day = day.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return day.UTC(), nil
}
