package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func newLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client), mr
}

func TestDoctorKey(t *testing.T) {
	assert.Equal(t, "appointments:doctor:42", DoctorKey(42))
}

func TestRedisLocker_TryLockAndUnlock(t *testing.T) {
	l, mr := newLocker(t)
	ctx := context.Background()
	key := DoctorKey(7)

	token, acquired, err := l.TryLock(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)
	assert.NotEmpty(t, token)

	_, again, err := l.TryLock(ctx, key, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, again, "second writer must not get the lock")

	require.NoError(t, l.Unlock(ctx, key, token))
	assert.False(t, mr.Exists(key))

	_, acquired, err = l.TryLock(ctx, key, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLocker_UnlockForeignToken(t *testing.T) {
	l, mr := newLocker(t)
	ctx := context.Background()
	key := DoctorKey(7)

	_, acquired, err := l.TryLock(ctx, key, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	err = l.Unlock(ctx, key, "someone-else")
	assert.ErrorIs(t, err, ErrLockNotOwned)
	assert.True(t, mr.Exists(key))
}

func TestRedisLocker_ExpiredLockIsReleasable(t *testing.T) {
	l, mr := newLocker(t)
	ctx := context.Background()
	key := DoctorKey(7)

	token, acquired, err := l.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	mr.FastForward(2 * time.Second)

	assert.NoError(t, l.Unlock(ctx, key, token))
}

func TestNoopLocker(t *testing.T) {
	var l NoopLocker
	_, acquired, err := l.TryLock(context.Background(), DoctorKey(1), time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NoError(t, l.Unlock(context.Background(), DoctorKey(1), ""))
}

func TestLockDoctor(t *testing.T) {
	l, mr := newLocker(t)
	ctx := context.Background()

	release, ok := LockDoctor(ctx, l, 7, 5*time.Second, logger.NewNop(), "Test")
	require.True(t, ok)
	assert.True(t, mr.Exists(DoctorKey(7)))

	_, ok = LockDoctor(ctx, l, 7, 5*time.Second, logger.NewNop(), "Test")
	assert.False(t, ok, "second writer must be told the doctor is busy")

	release()
	assert.False(t, mr.Exists(DoctorKey(7)))
}

func TestLockDoctor_RedisDownContinuesWithoutLock(t *testing.T) {
	l, mr := newLocker(t)
	mr.Close()

	release, ok := LockDoctor(context.Background(), l, 7, 5*time.Second, logger.NewNop(), "Test")

	assert.True(t, ok)
	require.NotNil(t, release)
	release()
}
