package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/passvault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.csv")
	csv := "service,username,password\ngithub.com,octocat,hunter2\nexample.org,alice,s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	f := &fakeVault{}
	a, out := newTestApp(t, f)
	stubPasswords(t, "master-pass")

	require.NoError(t, a.Run(context.Background(), []string{"import", path}))

	require.Len(t, f.saved, 2)
	assert.Equal(t, "github.com", f.saved[0].Service)
	assert.Equal(t, "s3cret", f.saved[1].Password)
	assert.Contains(t, out.String(), "Imported 2 credentials.")
}

func TestImport_MissingFile(t *testing.T) {
	a, _ := newTestApp(t, &fakeVault{})
	err := a.Run(context.Background(), []string{"import", filepath.Join(t.TempDir(), "absent.csv")})
	require.Error(t, err)
}

func TestImport_NoArg(t *testing.T) {
	a, _ := newTestApp(t, &fakeVault{})
	err := a.Run(context.Background(), []string{"import"})
	require.ErrorContains(t, err, "usage: import")
}

func TestExport(t *testing.T) {
	f := &fakeVault{creds: []vault.Credential{
		{Service: "github.com", Username: "octocat", Password: "hunter2"},
	}}
	a, out := newTestApp(t, f)
	stubPasswords(t, "master-pass")

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, a.Run(context.Background(), []string{"export", path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "github.com,octocat,hunter2")
	assert.Contains(t, out.String(), "Exported 1 credentials.")
}

func TestPromptCredentials(t *testing.T) {
	a, _ := newTestApp(t, &fakeVault{})
	stubTexts(t, "alice")
	stubPasswords(t, "s3cret")

	user, pass, err := a.PromptCredentials()
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "s3cret", pass)
}
