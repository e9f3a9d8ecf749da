package realtime_test

import (
	"context"
	"encoding/json"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/realtime"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

const testChannel = "panaderia:test"

func newBroker(t *testing.T) (*realtime.RedisBroker, *realtime.Hub, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	hub := realtime.NewHub()
	return realtime.NewRedisBroker(client, testChannel, hub, logger.Nop()), hub, mr
}

func TestRedisBroker_PublicaYReenviaAlHub(t *testing.T) {
	broker, hub, _ := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, broker.Start(ctx))

	ch, unsub := hub.Subscribe(false)
	defer unsub()

	broker.Publish(ctx, ports.Event{
		Type:    ports.EventSaleCreated,
		Payload: map[string]string{"batchId": "b1", "saleId": "s1"},
	})

	ev := recv(t, ch)
	assert.Equal(t, ports.EventSaleCreated, ev.Type)
	raw, ok := ev.Payload.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"batchId":"b1","saleId":"s1"}`, string(raw))
}

func TestRedisBroker_ConservaAdminOnly(t *testing.T) {
	broker, hub, _ := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, broker.Start(ctx))

	empleado, unsubE := hub.Subscribe(false)
	defer unsubE()
	admin, unsubA := hub.Subscribe(true)
	defer unsubA()

	broker.Publish(ctx, ports.Event{Type: ports.EventUserRegistered, AdminOnly: true})

	assert.Equal(t, ports.EventUserRegistered, recv(t, admin).Type)
	assertNothing(t, empleado)
}

func TestRedisBroker_SinRedisEntregaLocal(t *testing.T) {
	broker, hub, mr := newBroker(t)
	ch, unsub := hub.Subscribe(false)
	defer unsub()

	mr.Close()
	broker.Publish(context.Background(), ports.Event{Type: ports.EventBatchDeleted})

	assert.Equal(t, ports.EventBatchDeleted, recv(t, ch).Type)
}

func TestRedisBroker_IgnoraMensajesInvalidos(t *testing.T) {
	broker, hub, mr := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, broker.Start(ctx))

	ch, unsub := hub.Subscribe(false)
	defer unsub()

	mr.Publish(testChannel, "no-es-json")
	mr.Publish(testChannel, `{"payload":{}}`)
	broker.Publish(ctx, ports.Event{Type: ports.EventBatchUpdated})

	assert.Equal(t, ports.EventBatchUpdated, recv(t, ch).Type)
}
