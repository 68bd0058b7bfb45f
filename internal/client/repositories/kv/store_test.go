package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

// stores runs a test body against every Store implementation.
func stores(t *testing.T, body func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { body(t, NewSQLiteStore(setupDB(t))) })
	t.Run("memory", func(t *testing.T) { body(t, NewMemoryStore()) })
}

func TestStore_SetAndGet(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k1", []byte{0x01, 0x02}))

		v, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x02}, v)
	})
}

func TestStore_GetMissing_ReturnsNilNil(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		v, err := s.Get(context.Background(), "absent")
		require.NoError(t, err)
		require.Nil(t, v)
	})
}

func TestStore_EmptyValueIsNotMissing(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "empty", nil))

		v, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		require.NotNil(t, v)
		require.Empty(t, v)
	})
}

func TestStore_SetOverwrites(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("old")))
		require.NoError(t, s.Set(ctx, "k", []byte("new")))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, []byte("new"), v)
	})
}

func TestStore_ListReturnsAllPairs(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "a", []byte{0xAA}))
		require.NoError(t, s.Set(ctx, "b", []byte{0xBB, 0xCC}))

		m, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Equal(t, []byte{0xAA}, m["a"])
		assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
	})
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "x", []byte{0x01}))
		require.NoError(t, s.Delete(ctx, "x"))

		v, err := s.Get(ctx, "x")
		require.NoError(t, err)
		require.Nil(t, v)

		require.NoError(t, s.Delete(ctx, "x"))
	})
}

func TestStore_Clear(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "a", []byte{1}))
		require.NoError(t, s.Set(ctx, "b", []byte{2}))
		require.NoError(t, s.Clear(ctx))

		m, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, m)
	})
}

func TestStore_WithTx_Commits(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "gone", []byte("x")))

		err := s.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			if err := repo.Set(ctx, "a", []byte("1")); err != nil {
				return err
			}
			return repo.Delete(ctx, "gone")
		})
		require.NoError(t, err)

		v, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)

		v, err = s.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestStore_WithTx_RollsBackOnError(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "a", []byte("before")))

		boom := errors.New("boom")
		err := s.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			require.NoError(t, repo.Set(ctx, "a", []byte("after")))
			require.NoError(t, repo.Set(ctx, "b", []byte("new")))

			v, err := repo.Get(ctx, "a")
			require.NoError(t, err)
			require.Equal(t, []byte("after"), v, "writes are visible inside the transaction")
			return boom
		})
		require.ErrorIs(t, err, boom)

		v, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("before"), v)

		v, err = s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), out)

	out[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestSQLite_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")

	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear kv")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")
}

func TestSQLiteStore_WithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	require.NoError(t, db.Close())

	err := s.WithTx(context.Background(), func(ctx context.Context, repo Repository) error {
		return nil
	})
	require.Error(t, err)
}
