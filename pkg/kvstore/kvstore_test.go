package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriplan/database"
)

type doc struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

func newStore(t *testing.T) Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	return New(db)
}

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var got doc
	assert.ErrorIs(t, s.Get(ctx, "profile:u1", &got), ErrNotFound)

	require.NoError(t, s.Put(ctx, "profile:u1", doc{Region: "oriental", Count: 1}))
	require.NoError(t, s.Get(ctx, "profile:u1", &got))
	assert.Equal(t, doc{Region: "oriental", Count: 1}, got)

	// overwrite in place
	require.NoError(t, s.Put(ctx, "profile:u1", doc{Region: "souss-massa", Count: 2}))
	require.NoError(t, s.Get(ctx, "profile:u1", &got))
	assert.Equal(t, "souss-massa", got.Region)
	assert.Equal(t, 2, got.Count)

	require.NoError(t, s.Put(ctx, "profile:u2", doc{Region: "x"}))

	require.NoError(t, s.Delete(ctx, "profile:u1"))
	assert.ErrorIs(t, s.Get(ctx, "profile:u1", &got), ErrNotFound)
	require.NoError(t, s.Get(ctx, "profile:u2", &got))
	assert.Equal(t, "x", got.Region)

	// deleting a missing key is not an error
	assert.NoError(t, s.Delete(ctx, "nope"))
}

func TestPutRejectsUnencodable(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.Put(context.Background(), "bad", make(chan int)))
}
