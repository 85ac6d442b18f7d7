package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var tagPool = []string{
	"go", "web", "databases", "testing", "writing", "books", "travel",
	"food", "music", "photography", "opinion", "tutorial", "news",
}

// Seeder populates the database with demo content: authors, readers,
// posts in every workflow state, tags, comments and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll removes all seeded content. Order follows the foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, table := range []string{"likes", "comments", "post_tags", "posts", "tags", "profiles", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the full demo dataset and returns a summary of what was
// created.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d authors, %d readers, %d posts...",
		s.opts.NumAuthors, s.opts.NumReaders, s.opts.NumPosts)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	// A staff account and one known author for manual testing.
	staff, err := s.factory.CreateUser(models.RoleReader, func(u *models.User) {
		u.Username = "editor"
		u.Email = "editor@example.com"
		u.IsStaff = true
	})
	if err != nil {
		return fmt.Errorf("creating staff user: %w", err)
	}
	_ = staff

	authors := make([]*models.User, 0, s.opts.NumAuthors)
	known, err := s.factory.CreateUser(models.RoleAuthor, func(u *models.User) {
		u.Username = "ada"
		u.Email = "ada@example.com"
	})
	if err != nil {
		return fmt.Errorf("creating known author: %w", err)
	}
	authors = append(authors, known)

	for i := 1; i < s.opts.NumAuthors; i++ {
		author, err := s.factory.CreateUser(models.RoleAuthor)
		if err != nil {
			log.Printf("author %d skipped: %v", i, err)
			continue
		}
		authors = append(authors, author)
	}

	readers := make([]*models.User, 0, s.opts.NumReaders)
	for i := 0; i < s.opts.NumReaders; i++ {
		reader, err := s.factory.CreateUser(models.RoleReader)
		if err != nil {
			log.Printf("reader %d skipped: %v", i, err)
			continue
		}
		readers = append(readers, reader)
	}

	if len(authors) == 0 {
		return fmt.Errorf("no authors created, cannot seed posts")
	}

	// Spread statuses so the moderation queue has something to review:
	// most posts approved, some pending, a few drafts and rejections.
	statuses := []models.PostStatus{
		models.PostStatusApproved, models.PostStatusApproved, models.PostStatusApproved,
		models.PostStatusApproved, models.PostStatusApproved, models.PostStatusApproved,
		models.PostStatusPending, models.PostStatusPending,
		models.PostStatusDraft, models.PostStatusRejected,
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := authors[gofakeit.Number(0, len(authors)-1)]
		status := statuses[i%len(statuses)]
		featured := status == models.PostStatusApproved && gofakeit.Number(0, 9) == 0

		post, err := s.factory.CreatePost(author, i, func(p *models.Post) {
			p.Status = status
			p.Featured = featured
		})
		if err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}

		nTags := gofakeit.Number(0, 3)
		names := make([]string, 0, nTags)
		for len(names) < nTags {
			name := tagPool[gofakeit.Number(0, len(tagPool)-1)]
			dup := false
			for _, n := range names {
				if n == name {
					dup = true
					break
				}
			}
			if !dup {
				names = append(names, name)
			}
		}
		if err := s.factory.AttachTags(post, names); err != nil {
			return fmt.Errorf("tagging post %d: %w", i, err)
		}

		posts = append(posts, post)
		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	// Engagement on approved posts only, mirroring what the public sees.
	everyone := append(append([]*models.User{}, authors...), readers...)
	for _, post := range posts {
		if post.Status != models.PostStatusApproved {
			continue
		}
		for i := 0; i < gofakeit.Number(0, 5); i++ {
			user := everyone[gofakeit.Number(0, len(everyone)-1)]
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return fmt.Errorf("commenting on %s: %w", post.Slug, err)
			}
		}
		for i := 0; i < gofakeit.Number(0, 8); i++ {
			user := everyone[gofakeit.Number(0, len(everyone)-1)]
			if err := s.factory.CreateLike(user, post); err != nil {
				return fmt.Errorf("liking %s: %w", post.Slug, err)
			}
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(everyone)+1, len(posts))
	return nil
}
