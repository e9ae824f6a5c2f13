package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dapodiksmk/siswa-web/internal/model"
)

func newTestSessionService(t *testing.T, ttl time.Duration) (*SessionService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSessionService(rdb, ttl), mr
}

func TestSessionRoundTrip(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	sess := svc.New()
	assert.True(t, sess.Fresh())
	assert.False(t, sess.Authenticated())

	sess.SetUser(&model.User{ID: 1, Username: "admin"})
	require.True(t, sess.Dirty())
	require.NoError(t, svc.Save(ctx, sess))
	assert.False(t, sess.Dirty())
	assert.False(t, sess.Fresh())

	loaded, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated())
	assert.Equal(t, "admin", loaded.User.Username)
}

func TestSessionFlashesAreOneShot(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	sess := svc.New()
	sess.AddFlash("Siswa Berhasil Didaftarkan!")
	require.NoError(t, svc.Save(ctx, sess))

	loaded, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Siswa Berhasil Didaftarkan!"}, loaded.PopFlashes())
	require.True(t, loaded.Dirty())
	require.NoError(t, svc.Save(ctx, loaded))

	again, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, again.PopFlashes())
}

func TestSessionDestroy(t *testing.T) {
	svc, _ := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	sess := svc.New()
	sess.SetUser(&model.User{ID: 1, Username: "admin"})
	require.NoError(t, svc.Save(ctx, sess))

	require.NoError(t, svc.Destroy(ctx, sess.ID))

	_, err := svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Destroying again is still not an error.
	assert.NoError(t, svc.Destroy(ctx, sess.ID))
}

func TestSessionExpiresAfterInactivity(t *testing.T) {
	svc, mr := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	sess := svc.New()
	sess.SetUser(&model.User{ID: 1, Username: "admin"})
	require.NoError(t, svc.Save(ctx, sess))

	mr.FastForward(time.Hour + time.Minute)

	_, err := svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionTouchSlidesTTL(t *testing.T) {
	svc, mr := newTestSessionService(t, time.Hour)
	ctx := context.Background()

	sess := svc.New()
	sess.SetUser(&model.User{ID: 1, Username: "admin"})
	require.NoError(t, svc.Save(ctx, sess))

	mr.FastForward(45 * time.Minute)
	require.NoError(t, svc.Touch(ctx, sess))
	mr.FastForward(45 * time.Minute)

	// 90 minutes total, but the touch at minute 45 reset the window.
	_, err := svc.Get(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestTouchOnFreshSessionIsNoop(t *testing.T) {
	svc, mr := newTestSessionService(t, time.Hour)

	sess := svc.New()
	require.NoError(t, svc.Touch(context.Background(), sess))
	assert.Empty(t, mr.Keys())
}
