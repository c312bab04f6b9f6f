package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
)

// Relationship loading is always explicit here. LoadPosts/LoadTags issue
// one extra query per call (the lazy strategy, made visible); the
// UsersWith* functions fetch everything up front (the eager strategies).

// LoadPosts fetches a user's posts in a separate query.
func LoadPosts(ctx context.Context, db *gorm.DB, user *models.User) ([]models.Post, error) {
	var posts []models.Post
	err := db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("title ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// LoadTags fetches a post's tags in a separate query.
func LoadTags(ctx context.Context, db *gorm.DB, post *models.Post) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.WithContext(ctx).
		Model(post).
		Association("Tags").
		Find(&tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// UsersWithPosts eager-loads every user's posts with a second IN-clause
// query.
func UsersWithPosts(ctx context.Context, db *gorm.DB) ([]*models.User, error) {
	var users []*models.User
	err := db.WithContext(ctx).
		Preload("Posts").
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UsersWithPostsAndTags eager-loads the full user -> posts -> tags tree.
func UsersWithPostsAndTags(ctx context.Context, db *gorm.DB) ([]*models.User, error) {
	var users []*models.User
	err := db.WithContext(ctx).
		Preload("Posts").
		Preload("Posts.Tags").
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
