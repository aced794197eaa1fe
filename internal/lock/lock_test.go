package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_Acquire(t *testing.T) {
	client, mock := redismock.NewClientMock()
	locker := NewRedisLocker(client)
	ctx := context.Background()

	t.Run("Free key", func(t *testing.T) {
		mock.ExpectSetNX("reserve:1:546", "1", DefaultTTL).SetVal(true)
		ok, err := locker.Acquire(ctx, "reserve:1:546", DefaultTTL)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Held key", func(t *testing.T) {
		mock.ExpectSetNX("reserve:1:546", "1", DefaultTTL).SetVal(false)
		ok, err := locker.Acquire(ctx, "reserve:1:546", DefaultTTL)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Redis error", func(t *testing.T) {
		mock.ExpectSetNX("reserve:1:546", "1", DefaultTTL).SetErr(errors.New("connection refused"))
		ok, err := locker.Acquire(ctx, "reserve:1:546", DefaultTTL)
		assert.Error(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	key := StartRentalKey(1, 546)
	ttl := 5 * time.Second

	t.Run("Releases after success", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", ttl).SetVal(true)
		mock.ExpectDel(key).SetVal(1)

		var seen bool
		err := Scope(ctx, NewRedisLocker(client), key, ttl, func(acquired bool) error {
			seen = acquired
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Releases after error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", ttl).SetVal(true)
		mock.ExpectDel(key).SetVal(1)

		cause := errors.New("not available")
		err := Scope(ctx, NewRedisLocker(client), key, ttl, func(acquired bool) error {
			return cause
		})
		assert.ErrorIs(t, err, cause)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Releases after panic", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", ttl).SetVal(true)
		mock.ExpectDel(key).SetVal(1)

		assert.Panics(t, func() {
			_ = Scope(ctx, NewRedisLocker(client), key, ttl, func(acquired bool) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Does not release a key it did not take", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectSetNX(key, "1", ttl).SetVal(false)

		var seen = true
		err := Scope(ctx, NewRedisLocker(client), key, ttl, func(acquired bool) error {
			seen = acquired
			return nil
		})
		assert.NoError(t, err)
		assert.False(t, seen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "reserve:7:546", ReserveKey(7, 546))
	assert.Equal(t, "start:7:546", StartRentalKey(7, 546))
}
