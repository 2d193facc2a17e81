package coordinator

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/salimbeni/soundtouch-homeassistant-integration/pkg/speaker"
)

// Handler consumes the body of a push notification for one resource.
// Handlers run on the connection's dispatch goroutine and must not block.
type Handler func(body map[string]any)

// Dispatcher routes push notifications to handlers by resource path.
// It replaces chained resource comparisons with a registration table so
// each entity kind subscribes only to the resources it parses.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
	}
}

// Handle registers h for the given resource path. Multiple handlers per
// resource are invoked in registration order.
func (d *Dispatcher) Handle(resource string, h Handler) {
	d.mu.Lock()
	d.handlers[resource] = append(d.handlers[resource], h)
	d.mu.Unlock()
}

// Dispatch fans a push notification out to the handlers registered for
// its resource. Messages without a resource or without any registered
// handler are ignored.
func (d *Dispatcher) Dispatch(msg speaker.Message) {
	if msg.Resource == "" || msg.Body == nil {
		return
	}

	d.mu.RLock()
	handlers := d.handlers[msg.Resource]
	d.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug().Str("resource", msg.Resource).Msg("No handler for push")
		return
	}

	for _, h := range handlers {
		h(msg.Body)
	}
}
