package models

import "time"

// User is an author in the blog demonstration schema.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Email     string    `gorm:"size:100;not null;unique" json:"email"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	// Posts is populated only by an explicit load or preload, never
	// implicitly on access.
	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

func (User) TableName() string { return "users" }

// Post belongs to at most one user and carries any number of tags
// through the post_tags join table.
type Post struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Content     string    `gorm:"not null" json:"content"`
	UserID      *int64    `gorm:"column:user_id" json:"user_id,omitempty"`
	PublishedAt time.Time `gorm:"column:published_at" json:"published_at"`

	Tags []Tag `gorm:"many2many:post_tags" json:"tags,omitempty"`
}

func (Post) TableName() string { return "posts" }

type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;not null;unique" json:"name"`
}

func (Tag) TableName() string { return "tags" }
