package realtime

import (
	"context"
	"sync"

	"github.com/jhoicas/panaderia-api/internal/application/ports"
)

const subscriberBuffer = 16

var _ ports.Notifier = (*Hub)(nil)

// Hub reparte eventos a los clientes conectados dentro del proceso.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan ports.Event]bool // canal -> suscriptor admin
}

// NewHub crea un hub sin suscriptores.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[chan ports.Event]bool)}
}

// Subscribe registra un cliente. La función devuelta lo da de baja y cierra el canal;
// llamarla más de una vez no tiene efecto.
func (h *Hub) Subscribe(admin bool) (<-chan ports.Event, func()) {
	ch := make(chan ports.Event, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[ch] = admin
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish entrega el evento sin bloquear: si el buffer de un cliente está lleno
// el evento se descarta para ese cliente.
func (h *Hub) Publish(_ context.Context, ev ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch, admin := range h.subscribers {
		if ev.AdminOnly && !admin {
			continue
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount cantidad de clientes conectados.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
