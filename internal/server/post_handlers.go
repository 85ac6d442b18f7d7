package server

import (
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /. Only approved posts are listed; q searches
// title, body and tag names, tag filters by exact tag name, page selects
// a fixed-size page. Drafts, pending and rejected posts never appear
// here regardless of who asks.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	filter := parseListFilter(c)
	actor := s.actor(c)

	posts, err := s.postService.ListPublic(c.UserContext(), filter, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":     posts,
		"page":      filter.Offset/repository.PublicPageSize + 1,
		"page_size": repository.PublicPageSize,
		"q":         filter.Query,
		"tag":       filter.Tag,
	})
}

// GetPost handles GET /post/:slug/. The detail page shows any status, so
// authors can preview drafts at their permanent URL; comments come along
// oldest first.
func (s *Server) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	actor := s.actor(c)

	post, err := s.postService.Get(c.UserContext(), slug, actor.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListForPost(c.UserContext(), post.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost handles POST /post/new/
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.PostInput
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	post, err := s.postService.Create(c.UserContext(), s.actor(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// UpdatePost handles POST /post/:slug/edit/
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req service.PostInput
	if err := c.BodyParser(&req); err != nil {
		return respondServiceError(c, errInvalidBody())
	}

	post, err := s.postService.Update(c.UserContext(), s.actor(c), c.Params("slug"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles POST /post/:slug/delete/
func (s *Server) DeletePost(c *fiber.Ctx) error {
	if err := s.postService.Delete(c.UserContext(), s.actor(c), c.Params("slug")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /post/:slug/like/. Anonymous users are
// redirected to login; authenticated users flip their like and get the
// resulting state back.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	state, err := s.postService.ToggleLike(c.UserContext(), s.actor(c), c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(state)
}
