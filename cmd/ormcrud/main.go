// ORM CRUD walkthrough over the blog schema: create, read with
// filters, update, and cascading delete through the repo surface.
package main

import (
	"context"
	"os"

	"github.com/sheikh-saqib/fund-transfer-system/internal/blog"
	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/gormstore"
)

func main() {
	log, err := logger.New(config.LogMode())
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error("orm crud demo failed", "error", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	config.Load(log)
	ctx := context.Background()

	db, err := gormstore.OpenSQLite(config.SQLitePath(log))
	if err != nil {
		return err
	}
	if err := schema.ProvisionBlog(ctx, db); err != nil {
		return err
	}
	repo := blog.NewRepo(db, log)

	// Create.
	created, err := repo.CreateUsers(ctx, nil, []*models.User{
		{Name: "Eve", Email: "eve@example.com", IsActive: true},
	})
	if err != nil {
		return err
	}
	eve := created[0]
	if _, err := repo.CreatePosts(ctx, nil, []*models.Post{
		{Title: "Eve's Post", Content: "Content for E1", UserID: &eve.ID},
	}); err != nil {
		return err
	}
	log.Info("user created", "id", eve.ID, "email", eve.Email)

	// Read with a filter.
	active, err := repo.ActiveUsers(ctx, nil)
	if err != nil {
		return err
	}
	for _, u := range active {
		log.Info("active user", "name", u.Name, "email", u.Email)
	}

	// Update.
	if err := repo.UpdateUserEmail(ctx, nil, eve.ID, "eve@new.example.com"); err != nil {
		return err
	}
	if err := repo.DeactivateUser(ctx, nil, eve.ID); err != nil {
		return err
	}
	log.Info("user updated", "id", eve.ID)

	// Delete; posts go with their author.
	before, err := repo.CountPosts(ctx, nil)
	if err != nil {
		return err
	}
	if err := repo.DeleteUser(ctx, nil, eve.ID); err != nil {
		return err
	}
	after, err := repo.CountPosts(ctx, nil)
	if err != nil {
		return err
	}
	log.Info("user deleted with posts", "posts_before", before, "posts_after", after)

	return nil
}
