package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/rsdata"
	"github.com/rest1/board/internal/store"
)

const bearerPrefix = "Bearer "

const (
	CodeMissingCredentials   = "401-1"
	CodeMalformedCredentials = "401-2"
	CodeInvalidCredentials   = "401-3"
)

// KeyFinder resolves API keys to members.
type KeyFinder interface {
	FindMemberByAPIKey(ctx context.Context, apiKey string) (model.Member, error)
}

type Service struct {
	members KeyFinder
	tr      *i18n.Translator
}

func NewService(members KeyFinder, tr *i18n.Translator) *Service {
	return &Service{members: members, tr: tr}
}

// Authenticate resolves the member identified by a raw Authorization
// header value. Checks run in order and the first failure wins:
// blank header (401-1), missing "Bearer " prefix (401-2), unknown key (401-3).
func (s *Service) Authenticate(ctx context.Context, header string) (model.Member, error) {
	if strings.TrimSpace(header) == "" {
		return model.Member{}, rsdata.NewError(CodeMissingCredentials, s.tr.T(i18n.MsgMissingCredentials))
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return model.Member{}, rsdata.NewError(CodeMalformedCredentials, s.tr.T(i18n.MsgMalformedCredentials))
	}
	apiKey := strings.TrimPrefix(header, bearerPrefix)
	if apiKey == "" {
		return model.Member{}, rsdata.NewError(CodeInvalidCredentials, s.tr.T(i18n.MsgInvalidCredentials))
	}
	member, err := s.members.FindMemberByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Member{}, rsdata.NewError(CodeInvalidCredentials, s.tr.T(i18n.MsgInvalidCredentials))
		}
		return model.Member{}, fmt.Errorf("find member by api key: %w", err)
	}
	return member, nil
}

// Authorize permits an action only when the actor owns the target. The
// denial carries the caller-supplied result code and message.
func Authorize(actorID, ownerID int64, code, msg string) error {
	if actorID != ownerID {
		return rsdata.NewError(code, msg)
	}
	return nil
}

// NewAPIKey returns a fresh opaque API key.
func NewAPIKey() string {
	return uuid.NewString()
}

// BearerHeader renders the Authorization header value for apiKey.
func BearerHeader(apiKey string) string {
	return bearerPrefix + apiKey
}
