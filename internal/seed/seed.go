// Package seed loads the base data set into an empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rest1/board/internal/member"
	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/post"
)

type seedMember struct {
	username, password, nickname string
}

var members = []seedMember{
	{"system", "system", "시스템"},
	{"admin", "admin", "운영자"},
	{"user1", "1234", "유저1"},
	{"user2", "1234", "유저2"},
	{"user3", "1234", "유저3"},
}

type seedPost struct {
	author   string
	title    string
	content  string
	comments []seedComment
}

type seedComment struct {
	author  string
	content string
}

var posts = []seedPost{
	{"user1", "제목1", "내용1", []seedComment{
		{"user1", "댓글 1-1"},
		{"user1", "댓글 1-2"},
		{"user1", "댓글 1-3"},
	}},
	{"user1", "제목2", "내용2", []seedComment{
		{"user2", "댓글 2-1"},
		{"user2", "댓글 2-2"},
	}},
	{"user2", "제목3", "내용3", nil},
}

// Run creates the base members, then the base posts and comments. Each
// step is skipped when its store already holds data.
func Run(ctx context.Context, ms *member.Service, ps *post.Service, log logrus.FieldLogger) error {
	if err := seedMembers(ctx, ms, log); err != nil {
		return err
	}
	return seedPosts(ctx, ms, ps, log)
}

func seedMembers(ctx context.Context, ms *member.Service, log logrus.FieldLogger) error {
	n, err := ms.Count(ctx)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if n > 0 {
		log.WithField("members", n).Debug("members present, skipping member seed")
		return nil
	}
	for _, m := range members {
		if _, err := ms.Join(ctx, m.username, m.password, m.nickname); err != nil {
			return fmt.Errorf("seed member %s: %w", m.username, err)
		}
	}
	log.WithField("members", len(members)).Info("seeded members")
	return nil
}

func seedPosts(ctx context.Context, ms *member.Service, ps *post.Service, log logrus.FieldLogger) error {
	n, err := ps.Count(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if n > 0 {
		log.WithField("posts", n).Debug("posts present, skipping post seed")
		return nil
	}

	authors := map[string]model.Member{}
	author := func(username string) (model.Member, error) {
		if m, ok := authors[username]; ok {
			return m, nil
		}
		m, err := ms.FindByUsername(ctx, username)
		if err != nil {
			return model.Member{}, fmt.Errorf("seed author %s: %w", username, err)
		}
		authors[username] = m
		return m, nil
	}

	for _, entry := range posts {
		a, err := author(entry.author)
		if err != nil {
			return err
		}
		p, err := ps.Write(ctx, a, entry.title, entry.content)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", entry.title, err)
		}
		for _, cs := range entry.comments {
			ca, err := author(cs.author)
			if err != nil {
				return err
			}
			if _, err := ps.AddComment(ctx, ca, p.ID, cs.content); err != nil {
				return fmt.Errorf("seed comment %q: %w", cs.content, err)
			}
		}
	}
	log.WithField("posts", len(posts)).Info("seeded posts")
	return nil
}
