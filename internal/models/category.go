package models

import "time"

// Category groups articles
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	CreatedBy   *string   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CategoryWithCount is a category with the number of published articles in it
type CategoryWithCount struct {
	Category
	ArticleCount int `json:"article_count"`
}

// CategoryInput is the payload for creating or updating a category
type CategoryInput struct {
	Name        string `json:"name" form:"name" yaml:"name"`
	Description string `json:"description" form:"description" yaml:"description"`
}

// Tag is an optional label on articles
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedBy *string   `json:"created_by,omitempty" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TagInput is the payload for creating or renaming a tag
type TagInput struct {
	Name string `json:"name" form:"name" yaml:"name"`
}
