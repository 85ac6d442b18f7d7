package service

import (
	"context"

	"inkwell/internal/authz"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
)

// ModerationService implements the staff review queue: listing pending
// posts, bulk approval and the featured flag.
type ModerationService interface {
	ListPending(ctx context.Context, actor authz.Actor) ([]*models.Post, error)
	ListFeatured(ctx context.Context, actor authz.Actor) ([]*models.Post, error)
	Approve(ctx context.Context, actor authz.Actor, ids []uint) (int64, error)
	ToggleFeatured(ctx context.Context, actor authz.Actor, ids []uint) (int64, error)
}

type moderationService struct {
	posts    repository.PostRepository
	notifier *notifications.Notifier
}

func NewModerationService(posts repository.PostRepository, notifier *notifications.Notifier) ModerationService {
	return &moderationService{posts: posts, notifier: notifier}
}

func (s *moderationService) requireStaff(actor authz.Actor) error {
	if authz.Can(actor, authz.ActionModerate, 0) != authz.Allow {
		return models.NewForbiddenError("staff access required")
	}
	return nil
}

func (s *moderationService) ListPending(ctx context.Context, actor authz.Actor) ([]*models.Post, error) {
	if err := s.requireStaff(actor); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByStatus(ctx, models.PostStatusPending)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *moderationService) ListFeatured(ctx context.Context, actor authz.Actor) ([]*models.Post, error) {
	if err := s.requireStaff(actor); err != nil {
		return nil, err
	}
	posts, err := s.posts.ListFeatured(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Approve flips the selected posts to approved. Only the status column
// changes; title, body, slug and featured are untouched. IDs that do not
// exist are skipped, so the returned count can be lower than len(ids).
func (s *moderationService) Approve(ctx context.Context, actor authz.Actor, ids []uint) (int64, error) {
	if err := s.requireStaff(actor); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, models.NewValidationError("no posts selected")
	}
	n, err := s.posts.UpdateStatus(ctx, ids, models.PostStatusApproved)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	middleware.PostsApproved.Add(float64(n))
	for _, id := range ids {
		s.notifier.Publish(ctx, notifications.Event{
			Name:   notifications.EventPostApproved,
			PostID: id,
		})
	}
	return n, nil
}

// ToggleFeatured inverts the featured flag on each selected post.
func (s *moderationService) ToggleFeatured(ctx context.Context, actor authz.Actor, ids []uint) (int64, error) {
	if err := s.requireStaff(actor); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, models.NewValidationError("no posts selected")
	}
	n, err := s.posts.ToggleFeatured(ctx, ids)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
