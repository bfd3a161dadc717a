package catalog_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrenagi/go-video-catalog/catalog"
)

func newTestStore(t *testing.T) (*catalog.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "videos.json")
	return catalog.NewStore(path), path
}

func TestNewStore(t *testing.T) {
	t.Run("a missing backing file is not an error, the store starts empty", func(t *testing.T) {
		s, _ := newTestStore(t)
		assert.Empty(t, s.List())
		assert.Equal(t, 1, s.NextID())
	})

	t.Run("a corrupt backing file yields an empty store, no error escapes construction", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "videos.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json["), 0o644))

		s := catalog.NewStore(path)
		assert.Empty(t, s.List())
	})

	t.Run("an array with unknown fields is rejected as a whole, not partially loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "videos.json")
		content := `[{"id":1,"title":"a","description":"","uploader":"x","tags":[],"uploaded_at":"t","bogus":true}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s := catalog.NewStore(path)
		assert.Empty(t, s.List())
	})
}

func TestAdd(t *testing.T) {
	t.Run("each added video gets a strictly greater id than every earlier one", func(t *testing.T) {
		s, _ := newTestStore(t)
		last := 0
		for _, title := range []string{"a", "b", "c", "d"} {
			v, err := s.Add(title, "", "anonymous", nil)
			require.NoError(t, err)
			assert.Greater(t, v.ID, last)
			last = v.ID
		}
	})

	t.Run("deleting the highest id does not lower the next assigned id", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Add("a", "", "anonymous", nil)
		require.NoError(t, err)
		v2, err := s.Add("b", "", "anonymous", nil)
		require.NoError(t, err)

		ok, err := s.Delete(v2.ID)
		require.NoError(t, err)
		require.True(t, ok)

		v3, err := s.Add("c", "", "anonymous", nil)
		require.NoError(t, err)
		assert.Equal(t, v2.ID+1, v3.ID)
	})

	t.Run("the save error propagates when the backing file cannot be written", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sub", "videos.json")
		s := catalog.NewStore(path)

		// the parent directory does not exist, so the temp file cannot be created
		_, err := s.Add("a", "", "anonymous", nil)
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deleting an absent id returns false and performs no write", func(t *testing.T) {
		s, path := newTestStore(t)
		_, err := s.Add("a", "", "anonymous", nil)
		require.NoError(t, err)

		before, err := os.ReadFile(path)
		require.NoError(t, err)

		ok, err := s.Delete(42)
		require.NoError(t, err)
		assert.False(t, ok)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("deleting a present id removes exactly that video and keeps the rest in order", func(t *testing.T) {
		s, _ := newTestStore(t)
		for _, title := range []string{"a", "b", "c"} {
			_, err := s.Add(title, "", "anonymous", nil)
			require.NoError(t, err)
		}

		ok, err := s.Delete(2)
		require.NoError(t, err)
		assert.True(t, ok)

		videos := s.List()
		require.Len(t, videos, 2)
		assert.Equal(t, "a", videos[0].Title)
		assert.Equal(t, "c", videos[1].Title)
	})
}

func TestList(t *testing.T) {
	t.Run("mutating the returned slice does not affect the store", func(t *testing.T) {
		s, _ := newTestStore(t)
		_, err := s.Add("a", "", "anonymous", nil)
		require.NoError(t, err)

		videos := s.List()
		videos[0].Title = "mutated"

		got, found := s.Get(1)
		require.True(t, found)
		assert.Equal(t, "a", got.Title)
	})
}

func TestGet(t *testing.T) {
	s, _ := newTestStore(t)
	v, err := s.Add("a", "desc", "alice", []string{"x"})
	require.NoError(t, err)

	got, found := s.Get(v.ID)
	assert.True(t, found)
	assert.Equal(t, v, got)

	_, found = s.Get(999)
	assert.False(t, found)
}

func TestRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	want := make([]catalog.Video, 0, 3)
	for _, title := range []string{"a", "b", "c"} {
		v, err := s.Add(title, "desc "+title, "alice", []string{"tag-" + title, title})
		require.NoError(t, err)
		want = append(want, v)
	}

	reloaded := catalog.NewStore(path)
	assert.Equal(t, want, reloaded.List())
}

func TestPersistedFormat(t *testing.T) {
	s, path := newTestStore(t)
	_, err := s.Add("a", "d", "alice", []string{"x", "y"})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	for _, key := range []string{"id", "title", "description", "uploader", "tags", "uploaded_at"} {
		assert.Contains(t, entries[0], key)
	}
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`, entries[0]["uploaded_at"])
}

func TestSearch(t *testing.T) {
	newCatalog := func(t *testing.T) *catalog.Store {
		s, _ := newTestStore(t)
		_, err := s.Add("My First Vlog", "Hello world vlog", "alice", []string{"vlog", "intro"})
		require.NoError(t, err)
		_, err = s.Add("Python Tutorial", "Learn Python in 10 minutes", "bob", []string{"python", "programming"})
		require.NoError(t, err)
		return s
	}

	t.Run("the empty query matches every video", func(t *testing.T) {
		s := newCatalog(t)
		assert.Len(t, s.Search(""), 2)
	})

	t.Run("matching is case-insensitive across title, description and tags", func(t *testing.T) {
		s := newCatalog(t)
		results := s.Search("PYTHON")
		require.Len(t, results, 1)
		assert.Equal(t, 2, results[0].ID)

		results = s.Search("hello WORLD")
		require.Len(t, results, 1)
		assert.Equal(t, 1, results[0].ID)
	})

	t.Run("a query matching nothing returns an empty result", func(t *testing.T) {
		s := newCatalog(t)
		assert.Empty(t, s.Search("no-such-thing"))
	})

	t.Run("search does not touch the backing file", func(t *testing.T) {
		s, path := newTestStore(t)
		_, err := s.Add("a", "", "anonymous", nil)
		require.NoError(t, err)

		before, err := os.ReadFile(path)
		require.NoError(t, err)
		s.Search("a")
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestCatalogScenario(t *testing.T) {
	s, _ := newTestStore(t)

	v1, err := s.Add("My First Vlog", "Hello world vlog", "alice", []string{"vlog", "intro"})
	require.NoError(t, err)
	assert.Equal(t, 1, v1.ID)

	v2, err := s.Add("Python Tutorial", "Learn Python in 10 minutes", "bob", []string{"python", "programming"})
	require.NoError(t, err)
	assert.Equal(t, 2, v2.ID)

	results := s.Search("python")
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].ID)

	ok, err := s.Delete(1)
	require.NoError(t, err)
	assert.True(t, ok)

	videos := s.List()
	require.Len(t, videos, 1)
	assert.Equal(t, 2, videos[0].ID)
}
