// Package blog holds the ORM demonstration surface: CRUD over users and
// posts, join queries, and explicit relationship loading. Related rows
// are never fetched implicitly on field access; callers ask for them
// through the Load* and *With* functions in loading.go.
package blog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sheikh-saqib/fund-transfer-system/internal/models"
	"github.com/sheikh-saqib/fund-transfer-system/internal/pkg/logger"
)

type Repo interface {
	CreateUsers(ctx context.Context, tx *gorm.DB, users []*models.User) ([]*models.User, error)
	CreatePosts(ctx context.Context, tx *gorm.DB, posts []*models.Post) ([]*models.Post, error)
	GetUserByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, bool, error)
	ActiveUsers(ctx context.Context, tx *gorm.DB) ([]*models.User, error)
	UpdateUserEmail(ctx context.Context, tx *gorm.DB, userID int64, email string) error
	DeactivateUser(ctx context.Context, tx *gorm.DB, userID int64) error
	TagPost(ctx context.Context, tx *gorm.DB, postID int64, tagNames []string) error
	DeleteUser(ctx context.Context, tx *gorm.DB, userID int64) error
	DeletePost(ctx context.Context, tx *gorm.DB, postID int64) error
	CountPosts(ctx context.Context, tx *gorm.DB) (int64, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRepo(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "BlogRepo")}
}

func (r *repo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *repo) CreateUsers(ctx context.Context, tx *gorm.DB, users []*models.User) ([]*models.User, error) {
	if len(users) == 0 {
		return []*models.User{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) CreatePosts(ctx context.Context, tx *gorm.DB, posts []*models.Post) ([]*models.Post, error) {
	if len(posts) == 0 {
		return []*models.Post{}, nil
	}
	if err := r.handle(tx).WithContext(ctx).Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) GetUserByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, bool, error) {
	var user models.User
	err := r.handle(tx).WithContext(ctx).
		Where("email = ?", email).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func (r *repo) ActiveUsers(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	var users []*models.User
	err := r.handle(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) UpdateUserEmail(ctx context.Context, tx *gorm.DB, userID int64, email string) error {
	return r.handle(tx).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("email", email).Error
}

func (r *repo) DeactivateUser(ctx context.Context, tx *gorm.DB, userID int64) error {
	return r.handle(tx).WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", false).Error
}

// TagPost attaches tags to a post by name, creating missing tags first.
func (r *repo) TagPost(ctx context.Context, tx *gorm.DB, postID int64, tagNames []string) error {
	gdb := r.handle(tx).WithContext(ctx)

	var post models.Post
	if err := gdb.Take(&post, postID).Error; err != nil {
		return err
	}
	for _, name := range tagNames {
		var tag models.Tag
		if err := gdb.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		if err := gdb.Model(&post).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes a user together with their posts, the relational
// analog of a delete-orphan cascade.
func (r *repo) DeleteUser(ctx context.Context, tx *gorm.DB, userID int64) error {
	gdb := r.handle(tx).WithContext(ctx)
	if err := gdb.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	return gdb.Delete(&models.User{}, userID).Error
}

func (r *repo) DeletePost(ctx context.Context, tx *gorm.DB, postID int64) error {
	gdb := r.handle(tx).WithContext(ctx)
	if err := gdb.Model(&models.Post{ID: postID}).Association("Tags").Clear(); err != nil {
		return err
	}
	return gdb.Delete(&models.Post{}, postID).Error
}

func (r *repo) CountPosts(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.handle(tx).WithContext(ctx).
		Model(&models.Post{}).
		Count(&count).Error
	return count, err
}
