package main

import (
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close() //nolint: errcheck
	return l.Addr().(*net.TCPAddr).Port
}

func TestRun_ServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", strconv.Itoa(port))
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("APP_ENV", "test")

	done := make(chan error, 1)
	go func() { done <- run() }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint: gosec,noctx
		if err != nil {
			return false
		}
		resp.Body.Close() //nolint: errcheck
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
