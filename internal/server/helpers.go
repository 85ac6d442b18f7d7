package server

import (
	"errors"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// loginPath is where anonymous users are sent when they try to comment
// or like. The redirect preserves the page they came from in ?next=.
const loginPath = "/login/"

// respondServiceError maps a service error onto the HTTP response.
// ErrLoginRequired becomes a 302 to the login page; AppError codes map
// to their conventional statuses; anything else is a 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrLoginRequired) {
		next := c.Path()
		return c.Redirect(loginPath+"?next="+next, fiber.StatusFound)
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, statusForCode(appErr.Code), appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

func statusForCode(code string) int {
	switch code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "CONFLICT":
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errInvalidBody() error {
	return models.NewValidationError("Invalid request body")
}

// parseListFilter reads the public listing query params: q for the
// search term, tag for an exact tag filter and page for pagination
// (1-based, fixed page size).
func parseListFilter(c *fiber.Ctx) repository.ListFilter {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return repository.ListFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Tag:    strings.TrimSpace(c.Query("tag")),
		Offset: (page - 1) * repository.PublicPageSize,
	}
}

// parseIDList reads a list of post IDs from the bulk moderation form.
// Invalid entries are rejected rather than skipped so a malformed
// submission never silently approves the wrong subset.
func parseIDList(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, models.NewValidationError("invalid post id: " + v)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
