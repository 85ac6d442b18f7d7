package server

import (
	"github.com/gofiber/fiber/v2"
)

// bulkSelection is the body of the bulk moderation endpoints: a list of
// post IDs submitted as strings, matching the checkbox form encoding.
type bulkSelection struct {
	PostIDs []string `json:"post_ids" form:"post_ids"`
}

// PendingPosts handles GET /admin/pending/
func (s *Server) PendingPosts(c *fiber.Ctx) error {
	posts, err := s.moderation.ListPending(c.UserContext(), s.actor(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// FeaturedPosts handles GET /admin/featured/
func (s *Server) FeaturedPosts(c *fiber.Ctx) error {
	posts, err := s.moderation.ListFeatured(c.UserContext(), s.actor(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// BulkApprove handles POST /admin/approve/. Selected posts move to
// approved in one statement; unknown IDs are skipped and the count of
// rows actually changed is reported back.
func (s *Server) BulkApprove(c *fiber.Ctx) error {
	var req bulkSelection
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}
	ids, err := parseIDList(req.PostIDs)
	if err != nil {
		return respondServiceError(c, err)
	}

	n, err := s.moderation.Approve(c.UserContext(), s.actor(c), ids)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"approved": n})
}

// BulkToggleFeatured handles POST /admin/featured/toggle/
func (s *Server) BulkToggleFeatured(c *fiber.Ctx) error {
	var req bulkSelection
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}
	ids, err := parseIDList(req.PostIDs)
	if err != nil {
		return respondServiceError(c, err)
	}

	n, err := s.moderation.ToggleFeatured(c.UserContext(), s.actor(c), ids)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"toggled": n})
}
