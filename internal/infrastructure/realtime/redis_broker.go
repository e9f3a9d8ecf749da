package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

var _ ports.Notifier = (*RedisBroker)(nil)

// envelope es la forma en que un evento viaja por el canal de Redis.
type envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	AdminOnly bool            `json:"adminOnly,omitempty"`
}

// RedisBroker publica eventos en un canal pub/sub de Redis para que todas las
// réplicas de la API los reciban, y reenvía lo recibido al hub local.
type RedisBroker struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     *logger.Logger
}

// NewRedisBroker construye el broker. Start debe llamarse para recibir eventos.
func NewRedisBroker(client *redis.Client, channel string, hub *Hub, log *logger.Logger) *RedisBroker {
	return &RedisBroker{client: client, channel: channel, hub: hub, log: log.Component("realtime")}
}

// NewRedisClient crea un cliente a partir de una URL redis:// y verifica la conexión.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("realtime: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("realtime: ping: %w", err)
	}
	return client, nil
}

// Publish envía el evento a Redis. Si Redis falla, el evento se entrega solo
// a los clientes de este proceso.
func (b *RedisBroker) Publish(ctx context.Context, ev ports.Event) {
	data, err := encode(ev)
	if err == nil {
		err = b.client.Publish(ctx, b.channel, data).Err()
	}
	if err != nil {
		b.log.Warn().Err(err).Str("event", ev.Type).Msg("publicación en redis fallida, entrega local")
		b.hub.Publish(ctx, ev)
	}
}

// Start se suscribe al canal y reenvía cada mensaje al hub hasta que ctx se cancele.
// Retorna cuando la suscripción está confirmada.
func (b *RedisBroker) Start(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("realtime: subscribe %s: %w", b.channel, err)
	}

	go func() {
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				ev, err := decode(msg.Payload)
				if err != nil {
					b.log.Warn().Err(err).Msg("mensaje de redis inválido")
					continue
				}
				b.hub.Publish(ctx, ev)
			}
		}
	}()
	return nil
}

func encode(ev ports.Event) ([]byte, error) {
	env := envelope{Type: ev.Type, AdminOnly: ev.AdminOnly}
	if ev.Payload != nil {
		raw, err := json.Marshal(ev.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

func decode(s string) (ports.Event, error) {
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return ports.Event{}, err
	}
	if env.Type == "" {
		return ports.Event{}, fmt.Errorf("evento sin tipo")
	}
	ev := ports.Event{Type: env.Type, AdminOnly: env.AdminOnly}
	if len(env.Payload) > 0 {
		ev.Payload = env.Payload
	}
	return ev, nil
}
