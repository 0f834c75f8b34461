package models

import (
	"time"
)

// RootParent is the parent id of a top-level comment
const RootParent int64 = 0

// Comment represents a reader comment on an article
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	Post       int64     `json:"post" db:"post_id"`
	Parent     int64     `json:"parent" db:"parent_id"`
	UserID     *int64    `json:"user_id,omitempty" db:"user_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Content    string    `json:"content" db:"content"` // rendered markup
	Date       time.Time `json:"date" db:"created_at"`
}

// CommentNode is a comment with its ordered replies
type CommentNode struct {
	Comment
	Replies []CommentNode `json:"replies"`
}

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 5000
