package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList([]string{"3", " 7 ", "", "12"})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 7, 12}, ids)

	_, err = parseIDList([]string{"3", "seven"})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestStatusForCode(t *testing.T) {
	cases := map[string]int{
		"NOT_FOUND":        fiber.StatusNotFound,
		"VALIDATION_ERROR": fiber.StatusBadRequest,
		"UNAUTHORIZED":     fiber.StatusUnauthorized,
		"FORBIDDEN":        fiber.StatusForbidden,
		"CONFLICT":         fiber.StatusConflict,
		"INTERNAL_ERROR":   fiber.StatusInternalServerError,
		"SOMETHING_ELSE":   fiber.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, statusForCode(code), code)
	}
}

func TestParseListFilter(t *testing.T) {
	app := fiber.New()
	var got repository.ListFilter
	app.Get("/", func(c *fiber.Ctx) error {
		got = parseListFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		url  string
		want repository.ListFilter
	}{
		{"/", repository.ListFilter{}},
		{"/?q=%20coffee%20&tag=life", repository.ListFilter{Query: "coffee", Tag: "life"}},
		{"/?page=3", repository.ListFilter{Offset: 2 * repository.PublicPageSize}},
		{"/?page=0", repository.ListFilter{}},
		{"/?page=nope", repository.ListFilter{}},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.url, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.want, got, tc.url)
	}
}
