// Package storagetest checks Store implementations against the behavior
// every backend shares.
package storagetest

import (
	"context"
	"testing"

	"github.com/signadot/space/ir"
	"github.com/signadot/space/parse"
	"github.com/signadot/space/system/docd/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractDoc = `name John
age 20
pets
 0
  name Fido
 0
  name Rex
bio line one
 line two
`

// RunStoreContract exercises store with a fixed set of documents. The store
// should start empty.
func RunStoreContract(t *testing.T, store storage.Store) {
	ctx := context.Background()

	t.Run("Put and Get", func(t *testing.T) {
		doc := parse.ParseString(contractDoc)
		require.NoError(t, store.Put(ctx, "john", doc))

		got, err := store.Get(ctx, "john")
		require.NoError(t, err)
		assert.True(t, ir.Equal(doc, got), "document changed in storage")
		assert.Equal(t, doc.Get("pets").Fields, got.Get("pets").Fields, "duplicates lost")
		bio, _ := got.GetString("bio")
		assert.Equal(t, "line one\nline two", bio)
	})

	t.Run("Get Is A Copy", func(t *testing.T) {
		doc := parse.ParseString("a 1\n")
		require.NoError(t, store.Put(ctx, "copy", doc))
		doc.SetString("a", "2")

		got, err := store.Get(ctx, "copy")
		require.NoError(t, err)
		got.SetString("a", "3")

		again, err := store.Get(ctx, "copy")
		require.NoError(t, err)
		a, _ := again.GetString("a")
		assert.Equal(t, "1", a)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Invalid Key", func(t *testing.T) {
		for _, key := range []string{"", "..", "a/b", "a b"} {
			_, err := store.Get(ctx, key)
			assert.ErrorIs(t, err, storage.ErrInvalidKey, key)
			assert.ErrorIs(t, store.Put(ctx, key, ir.New()), storage.ErrInvalidKey, key)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", parse.ParseString("a 1\n")))
		require.NoError(t, store.Delete(ctx, "gone"))
		_, err := store.Get(ctx, "gone")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "gone"), "deleting twice")
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "list-b", ir.New()))
		require.NoError(t, store.Put(ctx, "list-a", parse.ParseString("x y\n")))
		defer func() {
			_ = store.Delete(ctx, "list-a")
			_ = store.Delete(ctx, "list-b")
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "list-a")
		assert.Contains(t, keys, "list-b")
		assert.NotContains(t, keys, "gone")
		assert.IsIncreasing(t, keys)
	})
}
