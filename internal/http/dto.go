package httpapp

import (
	"time"

	"github.com/rest1/board/internal/model"
)

type MemberDTO struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Name       string    `json:"name"`
}

type PostDTO struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
}

type CommentDTO struct {
	ID         int64     `json:"id"`
	CreateDate time.Time `json:"createDate"`
	ModifyDate time.Time `json:"modifyDate"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	AuthorName string    `json:"authorName"`
	PostID     int64     `json:"postId"`
}

func newMemberDTO(m model.Member) MemberDTO {
	return MemberDTO{ID: m.ID, CreateDate: m.CreatedAt, ModifyDate: m.ModifiedAt, Name: m.Name()}
}

func newPostDTO(p model.Post) PostDTO {
	return PostDTO{
		ID:         p.ID,
		CreateDate: p.CreatedAt,
		ModifyDate: p.ModifiedAt,
		Title:      p.Title,
		Content:    p.Content,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
	}
}

func newCommentDTO(c model.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID,
		CreateDate: c.CreatedAt,
		ModifyDate: c.ModifiedAt,
		Content:    c.Content,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		PostID:     c.PostID,
	}
}

// Request bodies.

type JoinRequest struct {
	Username *string `json:"username" validate:"notblank,min=2,max=30"`
	Password *string `json:"password" validate:"notblank,min=2,max=30"`
	Nickname *string `json:"nickname" validate:"notblank,min=2,max=30"`
}

type LoginRequest struct {
	Username *string `json:"username" validate:"notblank,min=2,max=30"`
	Password *string `json:"password" validate:"notblank,min=2,max=30"`
}

type PostWriteRequest struct {
	Title   *string `json:"title" validate:"notblank,min=2,max=10"`
	Content *string `json:"content" validate:"notblank,min=2,max=100"`
}

type CommentWriteRequest struct {
	Content *string `json:"content" validate:"notblank,min=2,max=100"`
}

// Envelope payloads.

type JoinResponse struct {
	MemberDTO MemberDTO `json:"memberDto"`
}

type LoginResponse struct {
	MemberDTO MemberDTO `json:"memberDto"`
	APIKey    string    `json:"apiKey"`
}

type MeResponse struct {
	MemberDTO MemberDTO `json:"memberDto"`
}

type PostWriteResponse struct {
	PostDTO PostDTO `json:"postDto"`
}

type CommentWriteResponse struct {
	CommentDTO CommentDTO `json:"commentDto"`
}
