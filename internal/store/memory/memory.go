// Package memory is a process-local store.Store used for development and
// tests. Every mutation runs under one write lock, so each one is atomic
// with respect to readers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/store"
)

type Store struct {
	mu sync.RWMutex

	members       map[int64]model.Member
	byUsername    map[string]int64
	byAPIKey      map[string]int64
	posts         map[int64]model.Post
	lastMemberID  int64
	lastPostID    int64
	lastCommentID int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		members:    make(map[int64]model.Member),
		byUsername: make(map[string]int64),
		byAPIKey:   make(map[string]int64),
		posts:      make(map[int64]model.Post),
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreateMember(_ context.Context, member *model.Member) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[member.Username]; ok {
		return 0, store.ErrDuplicateUsername
	}
	if _, ok := s.byAPIKey[member.APIKey]; ok {
		return 0, store.ErrDuplicateAPIKey
	}
	s.lastMemberID++
	m := *member
	m.ID = s.lastMemberID
	s.members[m.ID] = m
	s.byUsername[m.Username] = m.ID
	s.byAPIKey[m.APIKey] = m.ID
	return m.ID, nil
}

func (s *Store) GetMember(_ context.Context, id int64) (model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return model.Member{}, store.ErrNotFound
	}
	return m, nil
}

func (s *Store) FindMemberByUsername(ctx context.Context, username string) (model.Member, error) {
	s.mu.RLock()
	id, ok := s.byUsername[username]
	s.mu.RUnlock()
	if !ok {
		return model.Member{}, store.ErrNotFound
	}
	return s.GetMember(ctx, id)
}

func (s *Store) FindMemberByAPIKey(ctx context.Context, apiKey string) (model.Member, error) {
	s.mu.RLock()
	id, ok := s.byAPIKey[apiKey]
	s.mu.RUnlock()
	if !ok {
		return model.Member{}, store.ErrNotFound
	}
	return s.GetMember(ctx, id)
}

func (s *Store) CountMembers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.members)), nil
}

func (s *Store) CreatePost(_ context.Context, post *model.Post) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPostID++
	p := *post
	p.ID = s.lastPostID
	p.Comments = nil
	s.posts[p.ID] = p
	return p.ID, nil
}

func (s *Store) GetPost(_ context.Context, id int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return model.Post{}, store.ErrNotFound
	}
	return s.resolve(p, true), nil
}

func (s *Store) ListPosts(_ context.Context) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, s.resolve(p, false))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *Store) UpdatePost(_ context.Context, id int64, title, content string, modifiedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return store.ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.ModifiedAt = modifiedAt
	s.posts[id] = p
	return nil
}

// DeletePost drops the post together with the comments stored inside it.
func (s *Store) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) CountPosts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.posts)), nil
}

func (s *Store) CreateComment(_ context.Context, comment *model.Comment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[comment.PostID]
	if !ok {
		return 0, store.ErrNotFound
	}
	s.lastCommentID++
	c := *comment
	c.ID = s.lastCommentID
	p.Comments = append(cloneComments(p.Comments), c)
	s.posts[p.ID] = p
	return c.ID, nil
}

func (s *Store) UpdateComment(_ context.Context, postID, commentID int64, content string, modifiedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	comments := cloneComments(p.Comments)
	for i := range comments {
		if comments[i].ID == commentID {
			comments[i].Content = content
			comments[i].ModifiedAt = modifiedAt
			p.Comments = comments
			s.posts[postID] = p
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteComment(_ context.Context, postID, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return store.ErrNotFound
	}
	for i, c := range p.Comments {
		if c.ID == commentID {
			comments := make([]model.Comment, 0, len(p.Comments)-1)
			comments = append(comments, p.Comments[:i]...)
			comments = append(comments, p.Comments[i+1:]...)
			p.Comments = comments
			s.posts[postID] = p
			return nil
		}
	}
	return store.ErrNotFound
}

// resolve fills author names and returns a copy that callers may mutate.
// Must be called with s.mu held.
func (s *Store) resolve(p model.Post, withComments bool) model.Post {
	p.AuthorName = s.members[p.AuthorID].Nickname
	if !withComments {
		p.Comments = nil
		return p
	}
	comments := cloneComments(p.Comments)
	for i := range comments {
		comments[i].AuthorName = s.members[comments[i].AuthorID].Nickname
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	p.Comments = comments
	return p
}

func cloneComments(in []model.Comment) []model.Comment {
	if in == nil {
		return nil
	}
	out := make([]model.Comment, len(in))
	copy(out, in)
	return out
}
