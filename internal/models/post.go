// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// PostStatus defines the publication state of a post.
type PostStatus string

const (
	// PostStatusDraft is the initial state of every new post.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPending indicates a post is awaiting moderation.
	PostStatusPending PostStatus = "pending"
	// PostStatusApproved indicates a post is publicly visible.
	PostStatusApproved PostStatus = "approved"
	// PostStatusRejected indicates moderation declined the post.
	PostStatusRejected PostStatus = "rejected"
)

// ValidPostStatus reports whether s is one of the four workflow states.
// There is no enforced transition table: authors may set any of these on
// their own posts, visibility rules do the rest.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPending, PostStatusApproved, PostStatusRejected:
		return true
	}
	return false
}

// Post represents an article in the Inkwell application. The slug is
// derived from the title at creation and never recomputed afterwards.
type Post struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"size:200;not null" json:"title"`
	Slug     string     `gorm:"size:220;not null;uniqueIndex" json:"slug"`
	Body     string     `gorm:"type:text;not null" json:"body"`
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	User     User       `gorm:"foreignKey:UserID" json:"user"`
	Status   PostStatus `gorm:"type:varchar(10);not null;default:'draft';index" json:"status"`
	Featured bool       `gorm:"default:false" json:"featured"`
	Tags     []Tag      `gorm:"many2many:post_tags" json:"tags"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
