package schema

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
)

// ProvisionAccountsGorm resets and seeds the accounts table through the
// ORM layer: drop, auto-migrate, seed.
func ProvisionAccountsGorm(ctx context.Context, db *gorm.DB) error {
	gdb := db.WithContext(ctx)
	if err := gdb.Migrator().DropTable(&models.Account{}); err != nil {
		return fmt.Errorf("drop accounts: %w", err)
	}
	if err := gdb.AutoMigrate(&models.Account{}); err != nil {
		return fmt.Errorf("migrate accounts: %w", err)
	}
	seed := SeedAccounts()
	if err := gdb.Create(&seed).Error; err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	return nil
}

// ProvisionBlog resets the users/posts/tags tables (and the post_tags
// join table) and loads the demonstration dataset: authors with posts,
// one authorless post, and overlapping tags.
func ProvisionBlog(ctx context.Context, db *gorm.DB) error {
	gdb := db.WithContext(ctx)

	if err := gdb.Migrator().DropTable(&models.Post{}, &models.User{}, &models.Tag{}, "post_tags"); err != nil {
		return fmt.Errorf("drop blog tables: %w", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Tag{}); err != nil {
		return fmt.Errorf("migrate blog tables: %w", err)
	}

	now := time.Now()
	users := []models.User{
		{Name: "Alice", Email: "alice@example.com", IsActive: true, CreatedAt: now},
		{Name: "Bob", Email: "bob@example.com", IsActive: true, CreatedAt: now},
		{Name: "Charlie", Email: "charlie@example.com", IsActive: true, CreatedAt: now},
		{Name: "David", Email: "david@example.com", IsActive: false, CreatedAt: now},
	}
	if err := gdb.Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	tags := []models.Tag{
		{Name: "Go"},
		{Name: "Databases"},
		{Name: "WebDev"},
	}
	if err := gdb.Create(&tags).Error; err != nil {
		return fmt.Errorf("seed tags: %w", err)
	}

	posts := []models.Post{
		{Title: "Alice's First Post", Content: "Content for A1", UserID: &users[0].ID, PublishedAt: now,
			Tags: []models.Tag{tags[0], tags[1]}},
		{Title: "Bob's Important Post", Content: "Content for B1", UserID: &users[1].ID, PublishedAt: now,
			Tags: []models.Tag{tags[0], tags[2]}},
		{Title: "Alice's Second Post", Content: "Content for A2", UserID: &users[0].ID, PublishedAt: now,
			Tags: []models.Tag{tags[1]}},
		{Title: "Standalone Post", Content: "No author yet", PublishedAt: now},
	}
	if err := gdb.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	return nil
}
