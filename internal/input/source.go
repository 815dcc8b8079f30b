package input

import (
	"slices"
	"sync"

	"github.com/abelbrown/disciple/internal/geom"
)

// TouchHandler receives the points of one touch event, first point first.
type TouchHandler func(points []geom.Point)

// Subscription unregisters a handler. Cancel may be called any number of
// times.
type Subscription interface {
	Cancel()
}

// TouchSource delivers touch events.
type TouchSource interface {
	OnTouchStart(h TouchHandler) Subscription
	OnTouchMove(h TouchHandler) Subscription
}

// KeyboardOptions configure the text entry shown by ShowKeyboard.
type KeyboardOptions struct {
	Value     string
	MaxLength int
}

// Keyboard is the host's text entry.
type Keyboard interface {
	ShowKeyboard(opts KeyboardOptions)
	HideKeyboard()
	OnKeyboardInput(h func(value string)) Subscription
	OnKeyboardConfirm(h func(value string)) Subscription
}

// Hub is an in-memory TouchSource and Keyboard. Hosts translate their
// native events into Dispatch calls; tests call them directly.
type Hub struct {
	mu       sync.Mutex
	nextID   int
	starts   map[int]TouchHandler
	moves    map[int]TouchHandler
	inputs   map[int]func(string)
	confirms map[int]func(string)

	visible bool
	opts    KeyboardOptions
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		starts:   make(map[int]TouchHandler),
		moves:    make(map[int]TouchHandler),
		inputs:   make(map[int]func(string)),
		confirms: make(map[int]func(string)),
	}
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Cancel() { s.once.Do(s.cancel) }

func register[H any](h *Hub, m map[int]H, fn H) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	m[id] = fn
	return &subscription{cancel: func() {
		h.mu.Lock()
		delete(m, id)
		h.mu.Unlock()
	}}
}

// snapshot copies handlers in registration order so they can run without
// holding the lock.
func snapshot[H any](h *Hub, m map[int]H) []H {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]H, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}

func (h *Hub) OnTouchStart(fn TouchHandler) Subscription { return register(h, h.starts, fn) }
func (h *Hub) OnTouchMove(fn TouchHandler) Subscription  { return register(h, h.moves, fn) }

func (h *Hub) OnKeyboardInput(fn func(string)) Subscription   { return register(h, h.inputs, fn) }
func (h *Hub) OnKeyboardConfirm(fn func(string)) Subscription { return register(h, h.confirms, fn) }

func (h *Hub) ShowKeyboard(opts KeyboardOptions) {
	h.mu.Lock()
	h.visible = true
	h.opts = opts
	h.mu.Unlock()
}

func (h *Hub) HideKeyboard() {
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
}

// KeyboardVisible reports whether the keyboard is shown and with which
// options.
func (h *Hub) KeyboardVisible() (KeyboardOptions, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opts, h.visible
}

// Handlers returns the number of live registrations of every kind.
func (h *Hub) Handlers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.starts) + len(h.moves) + len(h.inputs) + len(h.confirms)
}

func (h *Hub) DispatchTouchStart(points ...geom.Point) {
	for _, fn := range snapshot(h, h.starts) {
		fn(points)
	}
}

func (h *Hub) DispatchTouchMove(points ...geom.Point) {
	for _, fn := range snapshot(h, h.moves) {
		fn(points)
	}
}

func (h *Hub) DispatchKeyboardInput(value string) {
	for _, fn := range snapshot(h, h.inputs) {
		fn(value)
	}
}

func (h *Hub) DispatchKeyboardConfirm(value string) {
	for _, fn := range snapshot(h, h.confirms) {
		fn(value)
	}
}
