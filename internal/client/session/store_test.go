package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dmitrijs2005/authgate/internal/client/client"
	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".authctl")
	st := NewStore(dir)

	_, err := st.Load()
	assert.ErrorIs(t, err, common.ErrorNotFound)

	want := &client.Session{
		Token: &models.AuthToken{
			Token: "someAuthToken", TokenID: "someTokenId", ValidUntil: 100, RenewUntil: 200,
			UserID: "someUserId", LoginID: "someLoginId", PermissionUnits: []string{"001"},
		},
		URL: "http://localhost:8080/login/rest/authToken/someTokenId",
	}
	require.NoError(t, st.Save(want))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(filepath.Join(dir, fileName))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	require.NoError(t, st.Delete())
	_, err = st.Load()
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.NoError(t, st.Delete(), "deleting twice is fine")
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{"), 0o600))

	_, err := NewStore(dir).Load()
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
