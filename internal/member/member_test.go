package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/rsdata"
	"github.com/rest1/board/internal/store/memory"
)

func TestJoinIssuesUniqueKeys(t *testing.T) {
	svc := NewService(memory.New(), i18n.New("en"))
	ctx := context.Background()

	a, err := svc.Join(ctx, "user1", "1234", "유저1")
	require.NoError(t, err)
	b, err := svc.Join(ctx, "user2", "1234", "유저2")
	require.NoError(t, err)

	assert.NotEmpty(t, a.APIKey)
	assert.NotEqual(t, a.APIKey, b.APIKey)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "유저1", a.Name())

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestJoinDuplicateUsername(t *testing.T) {
	svc := NewService(memory.New(), i18n.New("ko"))
	ctx := context.Background()

	_, err := svc.Join(ctx, "user1", "1234", "유저1")
	require.NoError(t, err)

	_, err = svc.Join(ctx, "user1", "5678", "다른사람")
	e, ok := rsdata.AsError(err)
	require.True(t, ok, "expected result error, got %v", err)
	assert.Equal(t, CodeUsernameTaken, e.Code)
	assert.Equal(t, "이미 사용중인 아이디입니다.", e.Msg)
}

func TestLogin(t *testing.T) {
	svc := NewService(memory.New(), i18n.New("en"))
	ctx := context.Background()

	joined, err := svc.Join(ctx, "user1", "1234", "유저1")
	require.NoError(t, err)

	m, err := svc.Login(ctx, "user1", "1234")
	require.NoError(t, err)
	assert.Equal(t, joined.ID, m.ID)
	assert.Equal(t, joined.APIKey, m.APIKey)

	_, err = svc.Login(ctx, "user1", "12345")
	assert.True(t, rsdata.HasCode(err, CodeWrongPassword), "got %v", err)

	_, err = svc.Login(ctx, "ghost", "1234")
	assert.True(t, rsdata.HasCode(err, CodeUnknownUsername), "got %v", err)
}
