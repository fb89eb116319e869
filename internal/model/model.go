package model

import "time"

type Member struct {
	ID         int64
	Username   string
	Password   string
	Nickname   string
	APIKey     string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Name is the public display name of the member.
func (m Member) Name() string {
	return m.Nickname
}

type Post struct {
	ID         int64
	Title      string
	Content    string
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
	ModifiedAt time.Time
	// Comments holds the post's comments in insertion order.
	Comments []Comment
}

type Comment struct {
	ID         int64
	PostID     int64
	Content    string
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// FindComment looks a comment up among the comments this post owns.
func (p Post) FindComment(id int64) (Comment, bool) {
	for _, c := range p.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}

// CommentsNewestFirst returns a copy of the comments in reverse insertion order.
func (p Post) CommentsNewestFirst() []Comment {
	out := make([]Comment, len(p.Comments))
	for i, c := range p.Comments {
		out[len(p.Comments)-1-i] = c
	}
	return out
}
