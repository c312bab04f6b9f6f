package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
)

// Typed result records, one per query shape. Rows are scanned into
// these rather than accessed dynamically by field name.

type PostWithAuthor struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type UserPostCount struct {
	Name      string `json:"name"`
	PostCount int64  `json:"post_count"`
}

// PostsWithAuthors inner-joins posts to their authors; authorless posts
// are excluded by the join.
func PostsWithAuthors(ctx context.Context, db *gorm.DB) ([]PostWithAuthor, error) {
	var rows []PostWithAuthor
	err := db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.title AS title", "users.name AS author").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("users.name ASC, posts.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UserPostCounts left-joins users to posts so post-less users appear
// with a zero count.
func UserPostCounts(ctx context.Context, db *gorm.DB) ([]UserPostCount, error) {
	var rows []UserPostCount
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.name AS name", "COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.user_id = users.id").
		Group("users.id").
		Order("users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UsersWithoutPosts returns users that have never published.
func UsersWithoutPosts(ctx context.Context, db *gorm.DB) ([]*models.User, error) {
	var users []*models.User
	err := db.WithContext(ctx).
		Joins("LEFT JOIN posts ON posts.user_id = users.id").
		Where("posts.id IS NULL").
		Order("users.name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// PostsTaggedWith returns titles of posts carrying the given tag,
// walking the many-to-many join table.
func PostsTaggedWith(ctx context.Context, db *gorm.DB, tagName string) ([]string, error) {
	var titles []string
	err := db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", tagName).
		Order("posts.title ASC").
		Pluck("posts.title", &titles).Error
	if err != nil {
		return nil, err
	}
	return titles, nil
}
