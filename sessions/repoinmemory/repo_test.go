package repoinmemory_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/repoinmemory"
	"github.com/stretchr/testify/require"
)

func testSession(token string, expiresAt time.Time) sessions.Session {
	return sessions.Session{
		Token:     token,
		UserID:    "user-1",
		CreatedAt: expiresAt.Add(-time.Hour),
		ExpiresAt: expiresAt,
	}
}

func TestUpsertGetDelete(t *testing.T) {
	repo := repoinmemory.NewInMemorySessionRepo()
	session := testSession("tok-1", time.Now().Add(time.Hour))

	require.NoError(t, repo.Upsert("tok-1", session))

	got, err := repo.Get("tok-1")
	require.NoError(t, err)
	require.Equal(t, session, got)

	require.NoError(t, repo.Delete("tok-1"))

	_, err = repo.Get("tok-1")
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)

	// Deleting again is fine.
	require.NoError(t, repo.Delete("tok-1"))
}

func TestDeleteExpired(t *testing.T) {
	repo := repoinmemory.NewInMemorySessionRepo()
	now := time.Now()

	require.NoError(t, repo.Upsert("old", testSession("old", now.Add(-time.Minute))))
	require.NoError(t, repo.Upsert("live", testSession("live", now.Add(time.Hour))))

	require.NoError(t, repo.DeleteExpired(now))

	_, err := repo.Get("old")
	require.ErrorIs(t, err, sessions.SessionNotFoundErr)

	_, err = repo.Get("live")
	require.NoError(t, err)
}
