// Relationship walkthrough: explicit lazy loading, eager preloading,
// join queries over one-to-many and many-to-many associations, and a
// cascading post delete.
package main

import (
	"context"
	"os"

	"github.com/sheikh-saqib/fund-transfer-system/internal/blog"
	"github.com/sheikh-saqib/fund-transfer-system/internal/config"
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
		log.Error("relationships demo failed", "error", err)
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

	// Explicit lazy loading: one query per relationship, on demand.
	alice, ok, err := repo.GetUserByEmail(ctx, nil, "alice@example.com")
	if err != nil {
		return err
	}
	if ok {
		posts, err := blog.LoadPosts(ctx, db, alice)
		if err != nil {
			return err
		}
		for i := range posts {
			tags, err := blog.LoadTags(ctx, db, &posts[i])
			if err != nil {
				return err
			}
			names := make([]string, 0, len(tags))
			for _, tag := range tags {
				names = append(names, tag.Name)
			}
			log.Info("loaded post", "author", alice.Name, "title", posts[i].Title, "tags", names)
		}
	}

	// Eager loading: the whole tree up front.
	users, err := blog.UsersWithPostsAndTags(ctx, db)
	if err != nil {
		return err
	}
	for _, u := range users {
		log.Info("preloaded user", "name", u.Name, "posts", len(u.Posts))
	}

	// Join queries with typed result records.
	withAuthors, err := blog.PostsWithAuthors(ctx, db)
	if err != nil {
		return err
	}
	for _, row := range withAuthors {
		log.Info("authored post", "author", row.Author, "title", row.Title)
	}

	counts, err := blog.UserPostCounts(ctx, db)
	if err != nil {
		return err
	}
	for _, row := range counts {
		log.Info("post count", "name", row.Name, "posts", row.PostCount)
	}

	postless, err := blog.UsersWithoutPosts(ctx, db)
	if err != nil {
		return err
	}
	for _, u := range postless {
		log.Info("user without posts", "name", u.Name)
	}

	goPosts, err := blog.PostsTaggedWith(ctx, db, "Go")
	if err != nil {
		return err
	}
	log.Info("posts tagged Go", "titles", goPosts)

	// Removing a post deletes it together with its tag links.
	if ok && len(users) > 0 {
		posts, err := blog.LoadPosts(ctx, db, alice)
		if err != nil {
			return err
		}
		if len(posts) > 0 {
			before, _ := repo.CountPosts(ctx, nil)
			if err := repo.DeletePost(ctx, nil, posts[0].ID); err != nil {
				return err
			}
			after, _ := repo.CountPosts(ctx, nil)
			log.Info("post removed", "title", posts[0].Title, "posts_before", before, "posts_after", after)
		}
	}

	return nil
}
