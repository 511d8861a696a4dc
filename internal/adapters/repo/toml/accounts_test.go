package toml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sit-kite/campus-agent/internal/domain"
)

func writeAccountsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "accounts.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadCredentials(t *testing.T) {
	t.Parallel()

	path := writeAccountsFile(t, `
version = 1

[[accounts]]
account = "1910001"
password = "secret"

[[accounts]]
account = " 1910002 "
password = "hunter2"
`)

	credentials, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Credential{
		{Account: "1910001", Password: "secret"},
		{Account: "1910002", Password: "hunter2"},
	}, credentials)
}

func TestLoadCredentialsSkipsBlankEntries(t *testing.T) {
	t.Parallel()

	path := writeAccountsFile(t, `
[[accounts]]
account = "1910001"
password = "secret"

[[accounts]]
account = ""
password = "secret"

[[accounts]]
account = "1910003"
password = ""
`)

	credentials, err := LoadCredentials(path)
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	assert.Equal(t, "1910001", credentials[0].Account)
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	t.Parallel()

	credentials, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, credentials)
}

func TestLoadCredentialsVersionTooNew(t *testing.T) {
	t.Parallel()

	path := writeAccountsFile(t, `
version = 2

[[accounts]]
account = "1910001"
password = "secret"
`)

	_, err := LoadCredentials(path)
	require.ErrorContains(t, err, "unsupported accounts schema version")
}

func TestLoadCredentialsMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeAccountsFile(t, `accounts = not-toml`)

	_, err := LoadCredentials(path)
	require.ErrorContains(t, err, "decode accounts file")
}
