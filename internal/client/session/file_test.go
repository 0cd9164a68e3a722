package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	return s
}

func TestFileStore_TokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	token, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, token, "fresh store should have no token")

	require.NoError(t, s.SetToken("abc.def.ghi"))

	token, err = s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, s.ClearToken())

	token, err = s.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_TokenFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	s := newTestStore(t)
	require.NoError(t, s.SetToken("secret"))

	info, err := os.Stat(filepath.Join(s.dir, tokenFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_ProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Nil(t, p)

	want := &Profile{ID: "u1", Email: "a@b.c", Username: "alice"}
	require.NoError(t, s.SetProfile(want))

	p, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, want, p)
}

func TestFileStore_Clear(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetToken("tok"))
	require.NoError(t, s.SetProfile(&Profile{ID: "u1", Email: "a@b.c"}))

	require.NoError(t, s.Clear())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Nil(t, p)

	// clearing an already empty store is fine
	require.NoError(t, s.Clear())
}

func TestFileStore_CorruptProfile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, profileFileName), []byte("{not json"), 0o600))

	_, err := s.Profile()
	assert.Error(t, err)
}
