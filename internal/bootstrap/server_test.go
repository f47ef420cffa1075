package bootstrap

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/flightservices/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_Timeouts(t *testing.T) {
	srv := NewServer(config.HTTPConfig{Address: ":9999", ReadTimeoutSeconds: 3, WriteTimeoutSeconds: 7}, http.NotFoundHandler())

	assert.Equal(t, ":9999", srv.Addr)
	assert.Equal(t, 3*time.Second, srv.ReadTimeout)
	assert.Equal(t, 7*time.Second, srv.WriteTimeout)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.HTTPConfig{Address: "127.0.0.1:0", ReadTimeoutSeconds: 1, WriteTimeoutSeconds: 1}, http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_ListenError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	err = Run(context.Background(), config.HTTPConfig{Address: lis.Addr().String()}, http.NotFoundHandler())
	assert.Error(t, err)
}
