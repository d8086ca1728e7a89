package web

import (
	"fmt"
	"log"
	"net/http"

	"invoice-discounting/internal/bus"
	"invoice-discounting/internal/core"
)

// streamedEvents are the workflow notifications forwarded to SSE clients.
var streamedEvents = []string{
	core.EventContractSubmitted,
	core.EventContractDecided,
	core.EventProjectSubmitted,
	core.EventProjectApproved,
	core.EventProjectCompleted,
	core.EventInvoiceCreated,
	core.EventInvoiceDecided,
	core.EventInvoiceFunded,
}

// events handles GET /api/events: a server-sent event stream of workflow
// notifications. Slow clients are not allowed to stall publishers; events
// that cannot be buffered are dropped for that client only.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, "streaming unsupported", "STREAMING_UNSUPPORTED", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := make(chan bus.Event, 64)
	unsubs := make([]func(), 0, len(streamedEvents))
	for _, name := range streamedEvents {
		unsubs = append(unsubs, h.bus.Subscribe(name, func(e bus.Event) {
			select {
			case ch <- e:
			default:
				log.Printf("events: dropping %s for slow client %s", e.Name, requestIDFromContext(r.Context()))
			}
		}))
	}
	defer func() {
		for _, u := range unsubs {
			u()
		}
	}()

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-ch:
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, e.Payload)
			flusher.Flush()
		}
	}
}
