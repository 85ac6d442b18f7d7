package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getBySlugFn      func(context.Context, string, uint) (*models.Post, error)
	listApprovedFn   func(context.Context, repository.ListFilter, uint) ([]*models.Post, error)
	listByStatusFn   func(context.Context, models.PostStatus) ([]*models.Post, error)
	listFeaturedFn   func(context.Context) ([]*models.Post, error)
	takenSlugsFn     func(context.Context, string) (map[string]bool, error)
	updateFn         func(context.Context, *models.Post) error
	updateStatusFn   func(context.Context, []uint, models.PostStatus) (int64, error)
	toggleFeaturedFn func(context.Context, []uint) (int64, error)
	replaceTagsFn    func(context.Context, *models.Post, []models.Tag) error
	deleteFn         func(context.Context, *models.Post) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	likeCountFn      func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug, currentUserID)
}
func (s *postRepoStub) ListApproved(ctx context.Context, filter repository.ListFilter, currentUserID uint) ([]*models.Post, error) {
	return s.listApprovedFn(ctx, filter, currentUserID)
}
func (s *postRepoStub) ListByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error) {
	return s.listByStatusFn(ctx, status)
}
func (s *postRepoStub) ListFeatured(ctx context.Context) ([]*models.Post, error) {
	return s.listFeaturedFn(ctx)
}
func (s *postRepoStub) TakenSlugs(ctx context.Context, base string) (map[string]bool, error) {
	return s.takenSlugsFn(ctx, base)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) UpdateStatus(ctx context.Context, ids []uint, status models.PostStatus) (int64, error) {
	return s.updateStatusFn(ctx, ids, status)
}
func (s *postRepoStub) ToggleFeatured(ctx context.Context, ids []uint) (int64, error) {
	return s.toggleFeaturedFn(ctx, ids)
}
func (s *postRepoStub) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return s.replaceTagsFn(ctx, post, tags)
}
func (s *postRepoStub) Delete(ctx context.Context, post *models.Post) error {
	return s.deleteFn(ctx, post)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeCountFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:    func(_ context.Context, _ *models.Post) error { return nil },
		getBySlugFn: func(_ context.Context, _ string, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listApprovedFn: func(_ context.Context, _ repository.ListFilter, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listByStatusFn:   func(_ context.Context, _ models.PostStatus) ([]*models.Post, error) { return nil, nil },
		listFeaturedFn:   func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		takenSlugsFn:     func(_ context.Context, _ string) (map[string]bool, error) { return map[string]bool{}, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		updateStatusFn:   func(_ context.Context, ids []uint, _ models.PostStatus) (int64, error) { return int64(len(ids)), nil },
		toggleFeaturedFn: func(_ context.Context, ids []uint) (int64, error) { return int64(len(ids)), nil },
		replaceTagsFn:    func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
		deleteFn:         func(_ context.Context, _ *models.Post) error { return nil },
		isLikedFn:        func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:           func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:         func(_ context.Context, _, _ uint) error { return nil },
		likeCountFn:      func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// tagRepoStub is a stub for repository.TagRepository.
type tagRepoStub struct {
	findOrCreateFn    func(context.Context, string) (*models.Tag, error)
	findOrCreateAllFn func(context.Context, []string) ([]models.Tag, error)
	getByNameFn       func(context.Context, string) (*models.Tag, error)
	countFn           func(context.Context) (int64, error)
}

func (s *tagRepoStub) FindOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	return s.findOrCreateFn(ctx, name)
}
func (s *tagRepoStub) FindOrCreateAll(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.findOrCreateAllFn(ctx, names)
}
func (s *tagRepoStub) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	return s.getByNameFn(ctx, name)
}
func (s *tagRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		findOrCreateFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{ID: 1, Name: name}, nil
		},
		findOrCreateAllFn: func(_ context.Context, names []string) ([]models.Tag, error) {
			tags := make([]models.Tag, len(names))
			for i, n := range names {
				tags[i] = models.Tag{ID: uint(i + 1), Name: n}
			}
			return tags, nil
		},
		getByNameFn: func(_ context.Context, name string) (*models.Tag, error) {
			return &models.Tag{ID: 1, Name: name}, nil
		},
		countFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
	}
}
