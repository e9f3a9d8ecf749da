package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// eventSubscriber lo implementa *realtime.Hub.
type eventSubscriber interface {
	Subscribe(admin bool) (<-chan ports.Event, func())
}

// EventsHandler transmite los eventos de cambio como Server-Sent Events.
type EventsHandler struct {
	hub       eventSubscriber
	keepalive time.Duration
}

// NewEventsHandler construye el handler. keepalive <= 0 usa 30s.
func NewEventsHandler(hub eventSubscriber, keepalive time.Duration) *EventsHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &EventsHandler{hub: hub, keepalive: keepalive}
}

// Stream godoc
// @Summary      Eventos de cambio en tiempo real (SSE)
// @Description  Acepta el token en ?token= porque EventSource no envía headers.
//
//	Los eventos user:* solo llegan a administradores.
//
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Param        token  query  string  false  "JWT"
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)
	events, cancel := h.hub.Subscribe(GetRole(c) == entity.RoleAdmin)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
		if err := w.Flush(); err != nil {
			return
		}

		ticker := time.NewTicker(h.keepalive)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			case <-ticker.C:
				fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			}
			// Flush falla cuando el cliente se desconectó.
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
