// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PublicPageSize is the fixed page size of the public listing.
const PublicPageSize = 10

// ListFilter narrows the public approved-posts listing. Query matches a
// case-insensitive substring of title, body or any tag name; Tag is an
// exact-match tag name. Both compose conjunctively.
type ListFilter struct {
	Query  string
	Tag    string
	Offset int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error)
	ListApproved(ctx context.Context, filter ListFilter, currentUserID uint) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error)
	ListFeatured(ctx context.Context) ([]*models.Post, error)
	TakenSlugs(ctx context.Context, base string) (map[string]bool, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, ids []uint, status models.PostStatus) (int64, error)
	ToggleFeatured(ctx context.Context, ids []uint) (int64, error)
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, post *models.Post) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikeCount(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Omit the association so tag linking stays an explicit ReplaceTags
	// step after slug assignment succeeds.
	return r.db.WithContext(ctx).Omit("Tags").Create(post).Error
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked", currentUserID)
	}
	return db.Select(selectQuery + ", 0 AS liked")
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("User.Profile").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListApproved(ctx context.Context, filter ListFilter, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Tags").
		Where("posts.status = ?", models.PostStatusApproved)

	if filter.Query != "" {
		// LOWER/LIKE rather than ILIKE so the same SQL runs on Postgres
		// and the sqlite test databases. EXISTS collapses duplicates
		// when a post matches via several tags.
		like := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where(
			"LOWER(posts.title) LIKE ? OR LOWER(posts.body) LIKE ? OR EXISTS ("+
				"SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id "+
				"WHERE pt.post_id = posts.id AND LOWER(t.name) LIKE ?)",
			like, like, like,
		)
	}
	if filter.Tag != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id "+
				"WHERE pt.post_id = posts.id AND t.name = ?)",
			filter.Tag,
		)
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	err := q.Order("posts.created_at DESC").
		Limit(PublicPageSize).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByStatus(ctx context.Context, status models.PostStatus) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("User").
		Preload("Tags").
		Where("posts.status = ?", status).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListFeatured(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), 0).
		Preload("User").
		Preload("Tags").
		Where("posts.status = ? AND posts.featured = ?", models.PostStatusApproved, true).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// TakenSlugs returns the persisted slugs sharing the given base, as a
// set for the suffix search. Soft-deleted posts still hold their slug.
func (r *postRepository) TakenSlugs(ctx context.Context, base string) (map[string]bool, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Post{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		taken[s] = true
	}
	return taken, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// Save would upsert associations; the tag set is managed separately
	// through ReplaceTags. Featured and Status must persist even when
	// set back to zero values, hence Select over struct updates.
	return r.db.WithContext(ctx).
		Model(post).
		Select("Title", "Body", "Status", "Featured").
		Updates(post).Error
}

func (r *postRepository) UpdateStatus(ctx context.Context, ids []uint, status models.PostStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id IN ?", ids).
		Update("status", status)
	return res.RowsAffected, res.Error
}

// ToggleFeatured flips the featured flag of each selected post. Status
// is never touched here.
func (r *postRepository) ToggleFeatured(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id IN ?", ids).
		Update("featured", gorm.Expr("NOT featured"))
	return res.RowsAffected, res.Error
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

// Delete removes the post together with everything it exclusively owns:
// comments, likes and tag links. Tag rows persist even when orphaned.
func (r *postRepository) Delete(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Post{}, post.ID).Error
	})
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like inserts the (user, post) row. ON CONFLICT DO NOTHING makes a
// concurrent double-submission come out as "already liked" instead of a
// duplicate key error.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	like := models.Like{UserID: userID, PostID: postID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
