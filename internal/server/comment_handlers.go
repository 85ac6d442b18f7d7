package server

import (
	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /post/:slug/. Posting to a post's own URL
// adds a comment to it. Anonymous users are redirected to login with the
// post page as the return target.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	comment, err := s.commentService.Add(c.UserContext(), s.actor(c), c.Params("slug"), req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}
