package jsonfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"kodbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_EnsureUserExists(t *testing.T) {
	repo := NewUserRepo(t.TempDir())

	require.NoError(t, repo.EnsureUserExists(42, "alice"))
	require.NoError(t, repo.EnsureUserExists(42, ""))
	require.NoError(t, repo.EnsureUserExists(7, "bob"))

	count, err := repo.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	users, err := repo.doc.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", users["42"].Handle, "empty handle must not erase the known one")
	assert.False(t, users["42"].FirstSeen.IsZero())
}

func TestPreferenceRepo(t *testing.T) {
	dir := t.TempDir()
	repo := NewPreferenceRepo(dir)

	_, ok, err := repo.GetLanguage(42)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetLanguage(42, "en"))

	lang, ok, err := repo.GetLanguage(42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	data, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"42": "en"}`, string(data))
}

func TestRepos_LegacyUsersFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(`{"42":"en","7":"ru"}`), 0o644))

	prefs := NewPreferenceRepo(dir)
	users := NewUserRepo(dir)

	lang, ok, err := prefs.GetLanguage(42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	require.NoError(t, users.EnsureUserExists(42, "alice"))
	count, err := users.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, prefs.SetLanguage(7, "uz"))
	data, err := os.ReadFile(filepath.Join(dir, UsersFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"42":"en","7":"uz"}`, string(data))
}

func TestStatsRepo_Increment(t *testing.T) {
	repo := NewStatsRepo(t.TempDir())

	count, err := repo.GetCount("101")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.Increment("101")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.Increment("101")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStatsRepo_ConcurrentIncrement(t *testing.T) {
	repo := NewStatsRepo(t.TempDir())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Increment("hot")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.GetCount("hot")
	require.NoError(t, err)
	assert.Equal(t, workers, count)
}

func TestStatsRepo_TopCodes(t *testing.T) {
	repo := NewStatsRepo(t.TempDir())
	for code, n := range map[string]int{"a": 1, "b": 3, "c": 3, "d": 2} {
		for i := 0; i < n; i++ {
			_, err := repo.Increment(code)
			require.NoError(t, err)
		}
	}

	top, err := repo.TopCodes(3)
	require.NoError(t, err)
	assert.Equal(t, []domain.UsageStat{
		{Code: "b", Count: 3},
		{Code: "c", Count: 3},
		{Code: "d", Count: 2},
	}, top)

	all, err := repo.TopCodes(0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCatalogRepo(t *testing.T) {
	repo := NewCatalogRepo(t.TempDir())

	_, ok, err := repo.GetReference("202")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.AddEntry("202", "https://host.example/s/abc"))

	ref, ok, err := repo.GetReference("202")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://host.example/s/abc", ref)

	_, ok, err = repo.GetReference("Abc")
	require.NoError(t, err)
	assert.False(t, ok)
}
