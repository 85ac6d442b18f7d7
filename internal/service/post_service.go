// Package service implements the application workflows on top of the
// repositories. Services enforce the access policy, validate input and
// translate storage errors into API errors.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/notifications"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
	"inkwell/internal/workflow"
)

// ErrLoginRequired signals that an anonymous actor attempted an action
// that only requires authentication, not a role. Handlers translate it
// into a redirect to the login page instead of a hard 403.
var ErrLoginRequired = errors.New("login required")

const (
	maxTitleLen = 200
	maxBodyLen  = 50000
)

// PostInput carries the post form fields shared by create and edit.
type PostInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Status string `json:"status"`
	Tags   string `json:"tags"`
}

// LikeState reports the outcome of a like toggle.
type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"likes_count"`
}

// PostService handles the post lifecycle: creation with slug assignment,
// editing, deletion, public listing and like toggling.
type PostService interface {
	Create(ctx context.Context, actor authz.Actor, in PostInput) (*models.Post, error)
	Update(ctx context.Context, actor authz.Actor, slug string, in PostInput) (*models.Post, error)
	Delete(ctx context.Context, actor authz.Actor, slug string) error
	Get(ctx context.Context, slug string, currentUserID uint) (*models.Post, error)
	ListPublic(ctx context.Context, filter repository.ListFilter, currentUserID uint) ([]*models.Post, error)
	ToggleLike(ctx context.Context, actor authz.Actor, slug string) (*LikeState, error)
}

type postService struct {
	posts    repository.PostRepository
	tags     repository.TagRepository
	notifier *notifications.Notifier
}

func NewPostService(posts repository.PostRepository, tags repository.TagRepository, notifier *notifications.Notifier) PostService {
	return &postService{posts: posts, tags: tags, notifier: notifier}
}

func validatePostInput(in PostInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	} else if len(in.Title) > maxTitleLen {
		fields["title"] = "title is too long"
	}
	if strings.TrimSpace(in.Body) == "" {
		fields["body"] = "body is required"
	} else if len(in.Body) > maxBodyLen {
		fields["body"] = "body is too long"
	}
	if in.Status != "" && !models.ValidPostStatus(models.PostStatus(in.Status)) {
		fields["status"] = "status must be one of draft, pending, approved, rejected"
	}
	for _, name := range workflow.ParseTagInput(in.Tags) {
		if err := validation.ValidateTagName(name); err != nil {
			fields["tags"] = err.Error()
			break
		}
	}
	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}
	return nil
}

// Create builds a new post for the actor. The slug is derived from the
// title and disambiguated with a numeric suffix against every slug ever
// used, including soft-deleted posts. A concurrent writer can still win
// the same slug between the lookup and the insert; the unique index is
// the arbiter and the insert is retried once with a fresh lookup.
func (s *postService) Create(ctx context.Context, actor authz.Actor, in PostInput) (*models.Post, error) {
	if authz.Can(actor, authz.ActionCreatePost, 0) != authz.Allow {
		return nil, models.NewForbiddenError("only authors can create posts")
	}
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	status := models.PostStatusDraft
	if in.Status != "" {
		status = models.PostStatus(in.Status)
	}

	post := &models.Post{
		Title:  strings.TrimSpace(in.Title),
		Body:   in.Body,
		UserID: actor.UserID,
		Status: status,
	}

	base := workflow.Slugify(post.Title)
	if err := s.createWithSlug(ctx, post, base); err != nil {
		return nil, err
	}

	if err := s.applyTags(ctx, post, in.Tags); err != nil {
		return nil, err
	}

	middleware.PostsCreated.WithLabelValues(string(post.Status)).Inc()
	s.notifier.Publish(ctx, notifications.Event{
		Name:     notifications.EventPostCreated,
		PostID:   post.ID,
		Slug:     post.Slug,
		AuthorID: post.UserID,
	})
	return post, nil
}

// createWithSlug assigns the next free slug for base and inserts the
// post, retrying once when the unique index rejects a raced slug.
// Titles without alphanumeric runes fold to an empty base; that falls
// back to "post" here, before the lookup, so the suffix search runs
// against the slugs actually in use.
func (s *postService) createWithSlug(ctx context.Context, post *models.Post, base string) error {
	if base == "" {
		base = "post"
	}
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		taken, err := s.posts.TakenSlugs(ctx, base)
		if err != nil {
			return models.NewInternalError(err)
		}
		post.Slug = workflow.NextAvailableSlug(base, taken)

		err = s.posts.Create(ctx, post)
		if err == nil {
			return nil
		}
		if database.IsUniqueViolation(err) {
			middleware.SlugCollisions.Inc()
			middleware.Logger.WarnContext(ctx, "slug collision, retrying",
				"slug", post.Slug, "attempt", attempt+1)
			lastErr = err
			continue
		}
		return models.NewInternalError(err)
	}
	return models.NewConflictError("could not assign a unique slug, try again", lastErr)
}

// applyTags reconciles the post's tag set with the comma-separated input
// by clearing the association and relinking the requested names.
func (s *postService) applyTags(ctx context.Context, post *models.Post, input string) error {
	names := workflow.ParseTagInput(input)
	tags, err := s.tags.FindOrCreateAll(ctx, names)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.posts.ReplaceTags(ctx, post, tags); err != nil {
		return models.NewInternalError(err)
	}
	post.Tags = tags
	return nil
}

// Update edits an existing post. The slug never changes, even when the
// title does: published URLs stay stable. Featured is a moderation flag
// and is not touched by the author edit path.
func (s *postService) Update(ctx context.Context, actor authz.Actor, slug string, in PostInput) (*models.Post, error) {
	post, err := s.loadOwned(ctx, actor, authz.ActionEditPost, slug)
	if err != nil {
		return nil, err
	}
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Body = in.Body
	if in.Status != "" {
		post.Status = models.PostStatus(in.Status)
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.applyTags(ctx, post, in.Tags); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post with its comments, likes and tag links.
func (s *postService) Delete(ctx context.Context, actor authz.Actor, slug string) error {
	post, err := s.loadOwned(ctx, actor, authz.ActionDeletePost, slug)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return models.NewInternalError(err)
	}
	s.notifier.Publish(ctx, notifications.Event{
		Name:     notifications.EventPostDeleted,
		PostID:   post.ID,
		Slug:     post.Slug,
		AuthorID: post.UserID,
	})
	return nil
}

// loadOwned fetches the post and checks the actor may perform action on
// it. The policy checks role before ownership, so a reader gets 403 even
// on their own post.
func (s *postService) loadOwned(ctx context.Context, actor authz.Actor, action authz.Action, slug string) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug, actor.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}
	if authz.Can(actor, action, post.UserID) != authz.Allow {
		return nil, models.NewForbiddenError("you do not have permission to modify this post")
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}
	return post, nil
}

func (s *postService) ListPublic(ctx context.Context, filter repository.ListFilter, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.posts.ListApproved(ctx, filter, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ToggleLike flips the actor's like on the post. The unique index on
// (user_id, post_id) absorbs concurrent toggles: a raced insert lands
// as a no-op and the reported state reflects the row that won.
func (s *postService) ToggleLike(ctx context.Context, actor authz.Actor, slug string) (*LikeState, error) {
	switch authz.Can(actor, authz.ActionToggleLike, 0) {
	case authz.Allow:
	case authz.DenyLogin:
		return nil, ErrLoginRequired
	default:
		return nil, models.NewForbiddenError("cannot like this post")
	}

	post, err := s.posts.GetBySlug(ctx, slug, actor.UserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", slug)
	}

	liked, err := s.posts.IsLiked(ctx, actor.UserID, post.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if liked {
		if err := s.posts.Unlike(ctx, actor.UserID, post.ID); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		err := s.posts.Like(ctx, actor.UserID, post.ID)
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, models.NewInternalError(err)
		}
	}

	count, err := s.posts.LikeCount(ctx, post.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LikeState{Liked: !liked, Count: count}, nil
}
