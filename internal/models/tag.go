package models

// Tag is a shared label attached to posts. Tags are created lazily on
// first use and are never deleted, even when no post references them
// anymore. Names are unique and case-sensitive.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Posts []Post `gorm:"many2many:post_tags" json:"-"`
}
