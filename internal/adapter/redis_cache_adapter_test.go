package adapter

import (
	"context"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("quizforge:document:quizzes:doc-1").SetVal(`[{"quizId":"q1"}]`)

	val, err := cache.Get(context.Background(), "quizforge:document:quizzes:doc-1")
	require.NoError(t, err)
	assert.Equal(t, `[{"quizId":"q1"}]`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectGet("absent").RedisNil()

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectSet("key", "value", 5*time.Minute).SetVal("OK")

	assert.NoError(t, cache.Set(context.Background(), "key", "value", 5*time.Minute))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectDel("key").SetVal(1)

	assert.NoError(t, cache.Delete(context.Background(), "key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(client)

	mock.ExpectPing().SetVal("PONG")

	assert.NoError(t, cache.Ping(context.Background()))
}
