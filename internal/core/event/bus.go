package event

import (
	"reflect"
)

// Bus carries two kinds of traffic:
//
//   - Publish delivers synchronously to every subscriber of the event type,
//     in subscription order. Damage and death use it because the AI must
//     react within the same tick.
//   - Emit queues into the back buffer. SwapBuffers at tick start makes the
//     previous tick's events readable and DispatchAll delivers them in
//     emission order. Effects (muzzle flash, impacts) use it.
//
// Single goroutine (the game loop); no locking.
type Bus struct {
	front    []queued
	back     []queued
	handlers map[reflect.Type][]func(any)
}

type queued struct {
	t  reflect.Type
	ev any
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]queued, 0, 64),
		back:     make([]queued, 0, 64),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// Publish delivers event to all handlers of T immediately.
func Publish[T any](b *Bus, event T) {
	for _, h := range b.handlers[typeOf[T]()] {
		h(event)
	}
}

// Emit queues an event into the back buffer (readable after the next swap).
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, queued{t: typeOf[T](), ev: event})
}

// SwapBuffers rotates back→front and clears the new back buffer.
// Called once at tick start.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers.
// Events emitted by handlers land in the back buffer.
func (b *Bus) DispatchAll() int {
	for _, q := range b.front {
		for _, h := range b.handlers[q.t] {
			h(q.ev)
		}
	}
	n := len(b.front)
	b.front = b.front[:0]
	return n
}

// Pending returns the number of events waiting for the next swap.
func (b *Bus) Pending() int { return len(b.back) }
