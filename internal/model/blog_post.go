package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost represents a single article on the site.
// Slug and ReadTime are derived fields: slug from the title, read time from
// the content word count. Both are recomputed whenever their source changes.
type BlogPost struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content,omitempty" json:"content,omitempty"`
	Excerpt string             `bson:"excerpt" json:"excerpt"`
	Slug    string             `bson:"slug" json:"slug"`
	Author  string             `bson:"author" json:"author"`
	Tags    []string           `bson:"tags" json:"tags"`
	// PublishedAt is set when the post is created as published.
	PublishedAt   time.Time `bson:"publishedAt" json:"publishedAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
	IsPublished   bool      `bson:"isPublished" json:"isPublished"`
	FeaturedImage string    `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	// ReadTime is an estimate in minutes at 200 words per minute, minimum 1.
	ReadTime int `bson:"readTime" json:"readTime"`
}

// BlogListOptions carries filter and pagination parameters for listing posts.
type BlogListOptions struct {
	Page  int
	Limit int
	// Tag, when non-empty, restricts the listing to posts carrying that tag.
	Tag string
}

// BlogPage is one page of a post listing. Posts carry no content field.
type BlogPage struct {
	Posts      []BlogPost `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
