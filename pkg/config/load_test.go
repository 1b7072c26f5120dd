package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := loadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 5*time.Second, cfg.Engine.StoreTimeout)
	assert.Equal(t, uint64(3), cfg.Engine.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.RetryInterval)
	assert.False(t, cfg.Engine.RejectSelfTransfer)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:ledger.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("ENGINE_STORE_TIMEOUT", "250ms")
	t.Setenv("ENGINE_MAX_RETRIES", "7")
	t.Setenv("ENGINE_REJECT_SELF_TRANSFER", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")

	cfg, err := loadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "file:ledger.db", cfg.DB.Url)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.StoreTimeout)
	assert.Equal(t, uint64(7), cfg.Engine.MaxRetries)
	assert.True(t, cfg.Engine.RejectSelfTransfer)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
}

func TestLoadFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("ENGINE_RETRY_INTERVAL", "soon")
	_, err := loadFromEnv()
	assert.Error(t, err)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("abc"))
	assert.Equal(t, "po****able", maskValue("postgres://u:p@h/db?sslmode=disable"))
}

// unsetForTest clears key for the test and restores its value afterwards.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func writeEnvFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FindsEnvFileInParentDirectory(t *testing.T) {
	unsetForTest(t, "ENGINE_MAX_RETRIES")
	unsetForTest(t, "DATABASE_DRIVER")
	root := t.TempDir()
	writeEnvFile(t, root, ".env.ledger", "ENGINE_MAX_RETRIES=9\nDATABASE_DRIVER=sqlite\n")
	nested := filepath.Join(root, "cmd", "server")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load(".env.missing", ".env.ledger")
	require.NoError(t, err)
	assert.Equal(t, uint64(9), cfg.Engine.MaxRetries)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	unsetForTest(t, "ENGINE_MAX_RETRIES")
	t.Setenv("DATABASE_DRIVER", "postgres")
	dir := t.TempDir()
	writeEnvFile(t, dir, ".env", "DATABASE_DRIVER=sqlite\nENGINE_MAX_RETRIES=4\n")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, uint64(4), cfg.Engine.MaxRetries)
}

func TestLoad_StopsAtFirstFileFound(t *testing.T) {
	unsetForTest(t, "ENGINE_MAX_RETRIES")
	unsetForTest(t, "LOG_PREFIX")
	dir := t.TempDir()
	first := writeEnvFile(t, dir, "first.env", "ENGINE_MAX_RETRIES=5\n")
	writeEnvFile(t, dir, ".env", "ENGINE_MAX_RETRIES=6\nLOG_PREFIX=[other]\n")
	t.Chdir(dir)

	cfg, err := Load(first, ".env")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cfg.Engine.MaxRetries)
	assert.Equal(t, "[ledger]", cfg.Log.Prefix, "later files are not read")
}

func TestLoad_NoEnvFileUsesProcessEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENGINE_MAX_RETRIES", "2")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), cfg.Engine.MaxRetries)
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	unsetForTest(t, "ENGINE_MAX_RETRIES")
	dir := t.TempDir()
	path := writeEnvFile(t, dir, "bad.env", "ENGINE_MAX_RETRIES='unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFindEnvFile(t *testing.T) {
	dir := t.TempDir()
	abs := writeEnvFile(t, dir, "abs.env", "")
	got, err := findEnvFile(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	_, err = findEnvFile(filepath.Join(dir, "none.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	t.Chdir(dir)
	_, err = findEnvFile("ledger-no-such-file.env")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFromEnv_LogDefaults(t *testing.T) {
	cfg, err := loadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"transactionID", "accountNumber", "kind"}, cfg.Log.HighlightKeys)

	t.Setenv("LOG_HIGHLIGHT_KEYS", "reference,accountNumber")
	cfg, err = loadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"reference", "accountNumber"}, cfg.Log.HighlightKeys)
}
