// Package events is an in-process publish/subscribe bus for domain events.
package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Type names a domain event
type Type string

const (
	CourseImported Type = "course.imported"
	CourseDeleted  Type = "course.deleted"
	VideoCompleted Type = "video.completed"

	// anyType keys handlers subscribed to every event
	anyType Type = "*"
)

// Event is a domain event; fields not relevant to the type are zero
type Event struct {
	Type       Type
	OwnerID    string
	CourseID   int64
	PlaylistID string
	VideoID    string
	VideoCount int
	At         time.Time
}

// Handler reacts to a published event
type Handler func(ctx context.Context, event Event)

// Bus delivers events synchronously to the handlers subscribed to their type
//
// A panicking handler is logged and does not stop delivery to the others.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type]map[uint64]Handler
	nextID   uint64
	logger   *zap.Logger
}

// NewBus creates an empty bus
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[Type]map[uint64]Handler),
		logger:   logger,
	}
}

// Subscribe registers handler for the given event types and returns a function removing it
//
// With no types the handler receives every event.
func (b *Bus) Subscribe(handler Handler, types ...Type) (unsubscribe func()) {
	if len(types) == 0 {
		types = []Type{anyType}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	for _, t := range types {
		if b.handlers[t] == nil {
			b.handlers[t] = make(map[uint64]Handler)
		}
		b.handlers[t][id] = handler
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for _, t := range types {
				delete(b.handlers[t], id)
			}
		})
	}
}

// Publish delivers event to every handler subscribed to its type or to all events
func (b *Bus) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type])+len(b.handlers[anyType]))
	for _, h := range b.handlers[event.Type] {
		handlers = append(handlers, h)
	}
	for _, h := range b.handlers[anyType] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(ctx, h, event)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("event handler panicked",
				zap.String("event", string(event.Type)),
				zap.Any("panic", rec),
			)
		}
	}()
	h(ctx, event)
}

// LogHandler returns a handler writing every event to logger at info level
func LogHandler(logger *zap.Logger) Handler {
	return func(ctx context.Context, event Event) {
		fields := []zap.Field{
			zap.String("event", string(event.Type)),
			zap.String("owner_id", event.OwnerID),
			zap.Time("at", event.At),
		}
		if event.CourseID != 0 {
			fields = append(fields, zap.Int64("course_id", event.CourseID))
		}
		if event.PlaylistID != "" {
			fields = append(fields, zap.String("playlist_id", event.PlaylistID))
		}
		if event.VideoID != "" {
			fields = append(fields, zap.String("video_id", event.VideoID))
		}
		if event.VideoCount != 0 {
			fields = append(fields, zap.Int("video_count", event.VideoCount))
		}
		logger.Info("domain event", fields...)
	}
}
