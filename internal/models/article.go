package models

import (
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// Article represents a blog article or vault prompt
type Article struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Body        string     `json:"body" db:"body"`
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	AuthorID    string     `json:"author_id" db:"author_id"`
	CategoryID  string     `json:"category_id" db:"category_id"`
	Status      string     `json:"status" db:"status"`
	PublishedAt *time.Time `json:"published_at" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// IsPublished reports whether the article is visible to readers
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// ArticleDetails is the read model returned to clients: the article joined
// with its category, author and tags plus aggregates computed on read.
type ArticleDetails struct {
	Article
	CategoryName  string   `json:"category_name"`
	CategorySlug  string   `json:"category_slug"`
	AuthorName    string   `json:"author_name"`
	TagIDs        []string `json:"tag_ids"`
	TagNames      []string `json:"tag_names"`
	LikeCount     int      `json:"like_count"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
}

// ArticleInput carries the editable fields of an article
type ArticleInput struct {
	Title      string   `json:"title" form:"title"`
	Body       string   `json:"body" form:"body"`
	CategoryID string   `json:"category_id" form:"category_id"`
	TagIDs     []string `json:"tag_ids" form:"tag_ids"`
	Status     string   `json:"status" form:"status"`
}

// ArticleFilter narrows the public article listing
type ArticleFilter struct {
	CategoryID string
	AuthorID   string
	Search     string
	ExcludeID  string
	Limit      uint64
}

// Author is the public projection of a user who writes content
type Author struct {
	ID       string `json:"id" db:"id"`
	FullName string `json:"full_name" db:"full_name"`
}

// MaxSearchResults caps the search result set
const MaxSearchResults = 50

// RelatedArticlesLimit caps the related articles list
const RelatedArticlesLimit = 3
