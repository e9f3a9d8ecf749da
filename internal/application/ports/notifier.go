package ports

import "context"

// Tipos de evento de cambio que se reparten a los clientes conectados.
const (
	EventBatchCreated     = "batch:created"
	EventBatchUpdated     = "batch:updated"
	EventBatchDeleted     = "batch:deleted"
	EventSaleCreated      = "sale:created"
	EventSaleUpdated      = "sale:updated"
	EventSaleDeleted      = "sale:deleted"
	EventUserRegistered   = "user:registered"
	EventUserApproved     = "user:approved"
	EventInventoryUpdated = "inventory:updated"
)

// Event es un aviso de "algo cambió". El cliente vuelve a pedir los datos; el
// payload solo identifica qué cambió.
type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	AdminOnly bool   `json:"-"` // solo lo reciben suscriptores admin
}

// Notifier define el puerto de salida para publicar eventos de cambio.
// Publicar nunca bloquea ni falla la operación que lo origina: un adaptador
// que no puede entregar registra el error y sigue.
type Notifier interface {
	Publish(ctx context.Context, ev Event)
}

// NopNotifier descarta todos los eventos.
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(context.Context, Event) {}
