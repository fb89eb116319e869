// Package member implements registration and login.
package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rest1/board/internal/auth"
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/rsdata"
	"github.com/rest1/board/internal/store"
)

const (
	CodeUsernameTaken   = "409-1"
	CodeUnknownUsername = "401-1"
	CodeWrongPassword   = "401-2"
)

type Service struct {
	store store.MemberStore
	tr    *i18n.Translator
	now   func() time.Time
}

func NewService(st store.MemberStore, tr *i18n.Translator) *Service {
	return &Service{store: st, tr: tr, now: time.Now}
}

// Join registers a member and issues its API key.
func (s *Service) Join(ctx context.Context, username, password, nickname string) (model.Member, error) {
	if _, err := s.store.FindMemberByUsername(ctx, username); err == nil {
		return model.Member{}, s.usernameTaken()
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.Member{}, fmt.Errorf("find member %q: %w", username, err)
	}

	now := s.now()
	m := model.Member{
		Username:   username,
		Password:   password,
		Nickname:   nickname,
		APIKey:     auth.NewAPIKey(),
		CreatedAt:  now,
		ModifiedAt: now,
	}
	id, err := s.store.CreateMember(ctx, &m)
	if err != nil {
		// a concurrent join can still lose the race at the unique index
		if errors.Is(err, store.ErrDuplicateUsername) {
			return model.Member{}, s.usernameTaken()
		}
		return model.Member{}, fmt.Errorf("create member: %w", err)
	}
	m.ID = id
	return m, nil
}

// Login checks credentials. Passwords are compared verbatim.
func (s *Service) Login(ctx context.Context, username, password string) (model.Member, error) {
	m, err := s.store.FindMemberByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Member{}, rsdata.NewError(CodeUnknownUsername, s.tr.T(i18n.MsgUnknownUsername))
		}
		return model.Member{}, fmt.Errorf("find member %q: %w", username, err)
	}
	if m.Password != password {
		return model.Member{}, rsdata.NewError(CodeWrongPassword, s.tr.T(i18n.MsgWrongPassword))
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (model.Member, error) {
	return s.store.GetMember(ctx, id)
}

func (s *Service) FindByUsername(ctx context.Context, username string) (model.Member, error) {
	return s.store.FindMemberByUsername(ctx, username)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.CountMembers(ctx)
}

func (s *Service) usernameTaken() error {
	return rsdata.NewError(CodeUsernameTaken, s.tr.T(i18n.MsgUsernameTaken))
}
