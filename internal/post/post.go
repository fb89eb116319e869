// Package post implements the post aggregate: posts and the comments they
// own. Every mutation loads the aggregate, checks ownership, and only then
// writes.
package post

import (
	"context"
	"fmt"
	"time"

	"github.com/rest1/board/internal/auth"
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/store"
)

const (
	CodePostModifyDenied    = "403-1"
	CodePostDeleteDenied    = "403-2"
	CodeCommentModifyDenied = "403-1"
	CodeCommentDeleteDenied = "403-2"
)

// Store is the persistence the aggregate needs.
type Store interface {
	store.PostStore
	store.CommentStore
}

type Service struct {
	store Store
	tr    *i18n.Translator
	now   func() time.Time
}

func NewService(st Store, tr *i18n.Translator) *Service {
	return &Service{store: st, tr: tr, now: time.Now}
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]model.Post, error) {
	return s.store.ListPosts(ctx)
}

// Get loads a post with its comments. Missing posts yield store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (model.Post, error) {
	return s.store.GetPost(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.CountPosts(ctx)
}

func (s *Service) Write(ctx context.Context, author model.Member, title, content string) (model.Post, error) {
	now := s.now()
	p := model.Post{
		Title:      title,
		Content:    content,
		AuthorID:   author.ID,
		AuthorName: author.Name(),
		CreatedAt:  now,
		ModifiedAt: now,
		Comments:   []model.Comment{},
	}
	id, err := s.store.CreatePost(ctx, &p)
	if err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	p.ID = id
	return p, nil
}

func (s *Service) Modify(ctx context.Context, actor model.Member, id int64, title, content string) (model.Post, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if err := auth.Authorize(actor.ID, p.AuthorID, CodePostModifyDenied, s.tr.T(i18n.MsgPostModifyDenied)); err != nil {
		return model.Post{}, err
	}
	now := s.now()
	if err := s.store.UpdatePost(ctx, id, title, content, now); err != nil {
		return model.Post{}, fmt.Errorf("update post %d: %w", id, err)
	}
	p.Title = title
	p.Content = content
	p.ModifiedAt = now
	return p, nil
}

// Delete removes the post and, with it, all of its comments.
func (s *Service) Delete(ctx context.Context, actor model.Member, id int64) (model.Post, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if err := auth.Authorize(actor.ID, p.AuthorID, CodePostDeleteDenied, s.tr.T(i18n.MsgPostDeleteDenied)); err != nil {
		return model.Post{}, err
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return model.Post{}, fmt.Errorf("delete post %d: %w", id, err)
	}
	return p, nil
}

// ListComments returns the comments of a post, newest first.
func (s *Service) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return p.CommentsNewestFirst(), nil
}

// GetComment finds a comment through its owning post.
func (s *Service) GetComment(ctx context.Context, postID, commentID int64) (model.Comment, error) {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return model.Comment{}, err
	}
	c, ok := p.FindComment(commentID)
	if !ok {
		return model.Comment{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Service) AddComment(ctx context.Context, author model.Member, postID int64, content string) (model.Comment, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return model.Comment{}, err
	}
	now := s.now()
	c := model.Comment{
		PostID:     postID,
		Content:    content,
		AuthorID:   author.ID,
		AuthorName: author.Name(),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	id, err := s.store.CreateComment(ctx, &c)
	if err != nil {
		return model.Comment{}, fmt.Errorf("create comment on post %d: %w", postID, err)
	}
	c.ID = id
	return c, nil
}

func (s *Service) ModifyComment(ctx context.Context, actor model.Member, postID, commentID int64, content string) (model.Comment, error) {
	c, err := s.GetComment(ctx, postID, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if err := auth.Authorize(actor.ID, c.AuthorID, CodeCommentModifyDenied, s.tr.T(i18n.MsgCommentModifyDenied)); err != nil {
		return model.Comment{}, err
	}
	now := s.now()
	if err := s.store.UpdateComment(ctx, postID, commentID, content, now); err != nil {
		return model.Comment{}, fmt.Errorf("update comment %d: %w", commentID, err)
	}
	c.Content = content
	c.ModifiedAt = now
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, actor model.Member, postID, commentID int64) (model.Comment, error) {
	c, err := s.GetComment(ctx, postID, commentID)
	if err != nil {
		return model.Comment{}, err
	}
	if err := auth.Authorize(actor.ID, c.AuthorID, CodeCommentDeleteDenied, s.tr.T(i18n.MsgCommentDeleteDenied)); err != nil {
		return model.Comment{}, err
	}
	if err := s.store.DeleteComment(ctx, postID, commentID); err != nil {
		return model.Comment{}, fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	return c, nil
}
