package grpc_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	conduitgrpc "conduit/internal/conduit/adapters/grpc"
	"conduit/internal/conduit/config"
	"conduit/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func startServer(t *testing.T) (*conduitgrpc.Server, healthpb.HealthClient) {
	t.Helper()
	ctx := testContext(t)

	server := conduitgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	require.NoError(t, server.Start(ctx))
	t.Cleanup(func() { server.Stop(ctx) })

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return server, healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServerHealth(t *testing.T) {
	server, client := startServer(t)

	t.Run("после запуска сервис обслуживает запросы", func(t *testing.T) {
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, config.ServiceName))
	})

	t.Run("ручное переключение статуса", func(t *testing.T) {
		server.SetServing(testContext(t), false)
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client, config.ServiceName))

		server.SetServing(testContext(t), true)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, config.ServiceName))
	})
}

func TestServerWatch(t *testing.T) {
	server, client := startServer(t)

	var healthy atomic.Bool
	check := func(context.Context) error {
		if healthy.Load() {
			return nil
		}
		return errors.New("database unavailable")
	}

	ctx, cancel := context.WithCancel(testContext(t))
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.Watch(ctx, check, 10*time.Millisecond)
	}()

	hasStatus := func(want healthpb.HealthCheckResponse_ServingStatus) func() bool {
		return func() bool {
			resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
			return err == nil && resp.GetStatus() == want
		}
	}

	assert.Eventually(t, hasStatus(healthpb.HealthCheckResponse_NOT_SERVING), 2*time.Second, 10*time.Millisecond)

	healthy.Store(true)
	assert.Eventually(t, hasStatus(healthpb.HealthCheckResponse_SERVING), 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestServerStartAddressInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	port := listener.Addr().(*net.TCPAddr).Port
	server := conduitgrpc.New(&config.GRPCConfig{Host: "127.0.0.1", Port: port})

	err = server.Start(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), conduitgrpc.ErrServerStart)
	assert.Empty(t, server.Addr())
}
