package blog_test

import (
	"context"
	"testing"

	"github.com/sheikh-saqib/fund-transfer-system/internal/blog"
	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/schema"
	"github.com/sheikh-saqib/fund-transfer-system/internal/storage/testutil"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, blog.Repo) {
	t.Helper()
	db := testutil.GormSQLite(t)
	if err := schema.ProvisionBlog(context.Background(), db); err != nil {
		t.Fatalf("provision blog: %v", err)
	}
	return db, blog.NewRepo(db, testutil.Logger(t))
}

func TestRepoCRUD(t *testing.T) {
	db, repo := setup(t)
	ctx := context.Background()

	created, err := repo.CreateUsers(ctx, nil, []*models.User{
		{Name: "Eve", Email: "eve@example.com", IsActive: true},
	})
	if err != nil {
		t.Fatalf("CreateUsers: %v", err)
	}
	eve := created[0]
	if eve.ID == 0 {
		t.Fatalf("CreateUsers did not assign an ID")
	}

	got, ok, err := repo.GetUserByEmail(ctx, nil, "eve@example.com")
	if err != nil || !ok {
		t.Fatalf("GetUserByEmail: ok=%v err=%v", ok, err)
	}
	if got.Name != "Eve" {
		t.Fatalf("GetUserByEmail: got %q", got.Name)
	}
	if _, ok, err := repo.GetUserByEmail(ctx, nil, "nobody@example.com"); err != nil || ok {
		t.Fatalf("missing email: ok=%v err=%v", ok, err)
	}

	if err := repo.UpdateUserEmail(ctx, nil, eve.ID, "eve@new.example.com"); err != nil {
		t.Fatalf("UpdateUserEmail: %v", err)
	}
	if _, ok, _ := repo.GetUserByEmail(ctx, nil, "eve@new.example.com"); !ok {
		t.Fatalf("update not applied")
	}

	active, err := repo.ActiveUsers(ctx, nil)
	if err != nil {
		t.Fatalf("ActiveUsers: %v", err)
	}
	// Seeded Alice/Bob/Charlie are active, David is not, plus Eve.
	if len(active) != 4 {
		t.Fatalf("expected 4 active users, got %d", len(active))
	}
	if err := repo.DeactivateUser(ctx, nil, eve.ID); err != nil {
		t.Fatalf("DeactivateUser: %v", err)
	}
	active, _ = repo.ActiveUsers(ctx, nil)
	if len(active) != 3 {
		t.Fatalf("expected 3 active users after deactivation, got %d", len(active))
	}

	// Deleting a user removes their posts too.
	posts, err := repo.CreatePosts(ctx, nil, []*models.Post{
		{Title: "Eve's Post", Content: "body", UserID: &eve.ID},
	})
	if err != nil {
		t.Fatalf("CreatePosts: %v", err)
	}
	before, _ := repo.CountPosts(ctx, nil)
	if err := repo.DeleteUser(ctx, nil, eve.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	after, _ := repo.CountPosts(ctx, nil)
	if after != before-1 {
		t.Fatalf("cascade delete: before=%d after=%d", before, after)
	}
	var orphan int64
	if err := db.Model(&models.Post{}).Where("id = ?", posts[0].ID).Count(&orphan).Error; err != nil {
		t.Fatalf("count orphan: %v", err)
	}
	if orphan != 0 {
		t.Fatalf("post survived its author")
	}
}

func TestJoinQueries(t *testing.T) {
	db, _ := setup(t)
	ctx := context.Background()

	withAuthors, err := blog.PostsWithAuthors(ctx, db)
	if err != nil {
		t.Fatalf("PostsWithAuthors: %v", err)
	}
	// The standalone post has no author and must be excluded.
	if len(withAuthors) != 3 {
		t.Fatalf("expected 3 authored posts, got %d", len(withAuthors))
	}
	if withAuthors[0].Author != "Alice" || withAuthors[0].Title != "Alice's First Post" {
		t.Fatalf("unexpected first row: %+v", withAuthors[0])
	}

	counts, err := blog.UserPostCounts(ctx, db)
	if err != nil {
		t.Fatalf("UserPostCounts: %v", err)
	}
	want := map[string]int64{"Alice": 2, "Bob": 1, "Charlie": 0, "David": 0}
	if len(counts) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(counts))
	}
	for _, row := range counts {
		if want[row.Name] != row.PostCount {
			t.Fatalf("%s: got %d posts, want %d", row.Name, row.PostCount, want[row.Name])
		}
	}

	postless, err := blog.UsersWithoutPosts(ctx, db)
	if err != nil {
		t.Fatalf("UsersWithoutPosts: %v", err)
	}
	if len(postless) != 2 || postless[0].Name != "Charlie" || postless[1].Name != "David" {
		t.Fatalf("unexpected post-less users: %+v", postless)
	}

	tagged, err := blog.PostsTaggedWith(ctx, db, "Go")
	if err != nil {
		t.Fatalf("PostsTaggedWith: %v", err)
	}
	if len(tagged) != 2 {
		t.Fatalf("expected 2 Go posts, got %v", tagged)
	}
}

func TestExplicitLoading(t *testing.T) {
	db, repo := setup(t)
	ctx := context.Background()

	alice, ok, err := repo.GetUserByEmail(ctx, nil, "alice@example.com")
	if err != nil || !ok {
		t.Fatalf("GetUserByEmail: ok=%v err=%v", ok, err)
	}
	if len(alice.Posts) != 0 {
		t.Fatalf("posts loaded without an explicit request")
	}

	posts, err := blog.LoadPosts(ctx, db, alice)
	if err != nil {
		t.Fatalf("LoadPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts for Alice, got %d", len(posts))
	}

	tags, err := blog.LoadTags(ctx, db, &posts[0])
	if err != nil {
		t.Fatalf("LoadTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags on %q, got %d", posts[0].Title, len(tags))
	}

	users, err := blog.UsersWithPosts(ctx, db)
	if err != nil {
		t.Fatalf("UsersWithPosts: %v", err)
	}
	byName := map[string]int{}
	for _, u := range users {
		byName[u.Name] = len(u.Posts)
	}
	if byName["Alice"] != 2 || byName["Bob"] != 1 || byName["Charlie"] != 0 {
		t.Fatalf("unexpected preload counts: %v", byName)
	}

	tree, err := blog.UsersWithPostsAndTags(ctx, db)
	if err != nil {
		t.Fatalf("UsersWithPostsAndTags: %v", err)
	}
	for _, u := range tree {
		if u.Name != "Alice" {
			continue
		}
		total := 0
		for _, p := range u.Posts {
			total += len(p.Tags)
		}
		if total != 3 {
			t.Fatalf("expected 3 tags across Alice's posts, got %d", total)
		}
	}
}
