package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmlabs/authkeeper/models"
)

func newTestStorage(t *testing.T) (CredentialStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)
	return s, path
}

func testRecord(email string) models.UserRecord {
	return models.UserRecord{
		Email:          email,
		Name:           "Tech",
		Mobile:         "9999999999",
		PasswordDigest: "digest",
		RegisteredAt:   time.Now().UTC().Truncate(time.Second),
	}
}

// ── users ────────────────────────────────────────────────────────────────────

func TestFileStorage_UpsertAndFind(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, testRecord("Tech@OmegaSeikiMobility.com ")))

	got, err := s.FindUser(ctx, " tech@omegaseikimobility.COM")
	require.NoError(t, err)
	assert.Equal(t, "tech@omegaseikimobility.com", got.Email)
	assert.Equal(t, "digest", got.PasswordDigest)
}

func TestFileStorage_FindMissing(t *testing.T) {
	s, _ := newTestStorage(t)

	_, err := s.FindUser(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFileStorage_UpsertReplaces(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, testRecord("a@b.c")))

	updated := testRecord("a@b.c")
	updated.PasswordDigest = "new-digest"
	require.NoError(t, s.UpsertUser(ctx, updated))

	got, err := s.FindUser(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", got.PasswordDigest)

	all, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must replace, not duplicate")
}

func TestFileStorage_RemoveUser(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, testRecord("a@b.c")))
	require.NoError(t, s.RemoveUser(ctx, "A@B.C"))

	_, err := s.FindUser(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// removing again is a no-op
	require.NoError(t, s.RemoveUser(ctx, "a@b.c"))
}

func TestFileStorage_SurvivesRestart(t *testing.T) {
	s, path := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, testRecord("a@b.c")))
	require.NoError(t, s.SaveSession(ctx, models.Session{ID: "SID_1_x", Email: "a@b.c"}))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)

	got, err := reopened.FindUser(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "digest", got.PasswordDigest)

	session, err := reopened.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SID_1_x", session.ID)
}

// ── sessions ─────────────────────────────────────────────────────────────────

func TestFileStorage_SessionLifecycle(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	_, err := s.Session(ctx)
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)

	require.NoError(t, s.SaveSession(ctx, models.Session{ID: "SID_2_y", Email: "A@B.C"}))

	session, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", session.Email, "session email is normalized")

	require.NoError(t, s.ClearSession(ctx))
	_, err = s.Session(ctx)
	assert.ErrorIs(t, err, ErrLocalSessionNotFound)

	// clearing again is a no-op
	require.NoError(t, s.ClearSession(ctx))
}

// ── durability edge cases ────────────────────────────────────────────────────

func TestFileStorage_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o600))

	s, err := NewFileStorage(path)
	require.NoError(t, err, "a corrupt cache must never be fatal")

	all, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStorage_InMemory(t *testing.T) {
	s, err := NewFileStorage(":memory:")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.UpsertUser(ctx, testRecord("a@b.c")))
	got, err := s.FindUser(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)
}

// ── migration ────────────────────────────────────────────────────────────────

func TestFileStorage_MigrateDropsSessionKeepsUsers(t *testing.T) {
	s, path := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx, "REL_V1"))
	require.NoError(t, s.UpsertUser(ctx, testRecord("a@b.c")))
	require.NoError(t, s.SaveSession(ctx, models.Session{ID: "SID_3_z", Email: "a@b.c"}))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Migrate(ctx, "REL_V2"))

	_, err = reopened.Session(ctx)
	assert.ErrorIs(t, err, ErrLocalSessionNotFound, "version change invalidates the session")

	got, err := reopened.FindUser(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email, "version change preserves the registry")
}

func TestFileStorage_MigrateSameTagKeepsSession(t *testing.T) {
	s, path := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx, "REL_V1"))
	require.NoError(t, s.SaveSession(ctx, models.Session{ID: "SID_4_w", Email: "a@b.c"}))

	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Migrate(ctx, "REL_V1"))

	session, err := reopened.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "SID_4_w", session.ID)
}
