package service

import (
	"context"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 2000

// CommentService handles comments under posts.
type CommentService interface {
	Add(ctx context.Context, actor authz.Actor, slug, body string) (*models.Comment, error)
	ListForPost(ctx context.Context, postID uint) ([]*models.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

// Add creates a comment on the post identified by slug. Anonymous actors
// get ErrLoginRequired so the handler can send them to the login page
// instead of a hard 403.
func (s *commentService) Add(ctx context.Context, actor authz.Actor, slug, body string) (*models.Comment, error) {
	switch authz.Can(actor, authz.ActionComment, 0) {
	case authz.Allow:
	case authz.DenyLogin:
		return nil, ErrLoginRequired
	default:
		return nil, models.NewForbiddenError("cannot comment on this post")
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewFieldValidationError(map[string]string{"body": "comment body is required"})
	}
	if len(body) > maxCommentLen {
		return nil, models.NewFieldValidationError(map[string]string{"body": "comment is too long"})
	}

	post, err := s.posts.GetBySlug(ctx, slug, actor.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}

	comment := &models.Comment{
		Body:   body,
		UserID: actor.UserID,
		PostID: post.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListForPost returns the post's comments oldest first.
func (s *commentService) ListForPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
