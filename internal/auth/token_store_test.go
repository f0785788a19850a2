package auth_test

import (
	"context"
	"testing"
	"time"

	"go-empdir/internal/auth"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := auth.NewTokenStore(client)

		mock.ExpectSet("refresh_token:u1", "tok-1", 7*24*time.Hour).SetVal("OK")

		assert.NoError(t, store.Save(ctx, "u1", "tok-1", 7*24*time.Hour))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := auth.NewTokenStore(client)

		mock.ExpectGet("refresh_token:u1").SetVal("tok-1")

		got, err := store.Get(ctx, "u1")
		assert.NoError(t, err)
		assert.Equal(t, "tok-1", got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		store := auth.NewTokenStore(client)

		mock.ExpectDel("refresh_token:u1").SetVal(1)

		assert.NoError(t, store.Delete(ctx, "u1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
