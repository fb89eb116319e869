package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/model"
	"github.com/rest1/board/internal/rsdata"
	"github.com/rest1/board/internal/store/sqlite"
)

func newTestService(t *testing.T, name string) (*Service, model.Member) {
	t.Helper()
	st, err := sqlite.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	now := time.Now()
	m := model.Member{Username: "user1", Password: "1234", Nickname: "유저1", APIKey: NewAPIKey(), CreatedAt: now, ModifiedAt: now}
	id, err := st.CreateMember(context.Background(), &m)
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	m.ID = id
	return NewService(st, i18n.New("en")), m
}

func TestAuthenticate(t *testing.T) {
	svc, member := newTestService(t, "auth_authenticate")

	got, err := svc.Authenticate(context.Background(), BearerHeader(member.APIKey))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != member.ID {
		t.Fatalf("expected member %d, got %d", member.ID, got.ID)
	}

	again, err := svc.Authenticate(context.Background(), BearerHeader(member.APIKey))
	if err != nil || again.ID != got.ID {
		t.Fatalf("expected same actor for same key, got %+v (%v)", again, err)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, member := newTestService(t, "auth_failures")

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"absent", "", CodeMissingCredentials},
		{"blank", "   ", CodeMissingCredentials},
		{"no bearer prefix", member.APIKey, CodeMalformedCredentials},
		{"lowercase scheme", "bearer " + member.APIKey, CodeMalformedCredentials},
		{"basic scheme", "Basic dXNlcjE6MTIzNA==", CodeMalformedCredentials},
		{"empty key", "Bearer ", CodeInvalidCredentials},
		{"unknown key", "Bearer " + uuid.NewString(), CodeInvalidCredentials},
		{"padded key", "Bearer  " + member.APIKey + "  ", CodeInvalidCredentials},
		{"trailing space", "Bearer " + member.APIKey + " ", CodeInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.header)
			e, ok := rsdata.AsError(err)
			if !ok {
				t.Fatalf("expected result error, got %v", err)
			}
			if e.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, e.Code)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	if err := Authorize(1, 1, "403-1", "denied"); err != nil {
		t.Fatalf("owner should be allowed: %v", err)
	}

	err := Authorize(2, 1, "403-2", "denied")
	var e *rsdata.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected result error, got %v", err)
	}
	if e.Code != "403-2" || e.Msg != "denied" {
		t.Fatalf("unexpected denial: %+v", e)
	}
}

func TestNewAPIKeyUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		k := NewAPIKey()
		if k == "" || seen[k] {
			t.Fatalf("expected unique non-empty key, got %q", k)
		}
		seen[k] = true
	}
}
