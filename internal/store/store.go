package store

import (
	"context"
	"errors"
	"time"

	"github.com/rest1/board/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateAPIKey   = errors.New("duplicate api key")
)

type Store interface {
	MemberStore
	PostStore
	CommentStore
	Close() error
}

type MemberStore interface {
	CreateMember(ctx context.Context, member *model.Member) (int64, error)
	GetMember(ctx context.Context, id int64) (model.Member, error)
	FindMemberByUsername(ctx context.Context, username string) (model.Member, error)
	FindMemberByAPIKey(ctx context.Context, apiKey string) (model.Member, error)
	CountMembers(ctx context.Context) (int64, error)
}

// PostStore persists posts. GetPost loads the whole aggregate including
// comments; ListPosts returns posts newest first without comments.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) (int64, error)
	GetPost(ctx context.Context, id int64) (model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, id int64, title, content string, modifiedAt time.Time) error
	// DeletePost removes the post and every comment it owns atomically.
	DeletePost(ctx context.Context, id int64) error
	CountPosts(ctx context.Context) (int64, error)
}

// CommentStore mutates comments through their owning post; every call
// fails with ErrNotFound when the comment does not belong to postID.
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) (int64, error)
	UpdateComment(ctx context.Context, postID, commentID int64, content string, modifiedAt time.Time) error
	DeleteComment(ctx context.Context, postID, commentID int64) error
}
