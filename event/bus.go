package event

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

// Handler receives events from a Bus.
type Handler interface {
	HandleEvent(Event)
}

// HandlerFunc lets a function be a Handler.
type HandlerFunc func(Event)

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ev Event) {
	f(ev)
}

// Bus delivers events to subscribed handlers. Delivery is synchronous on the
// publishing goroutine, in subscription order. A handler may subscribe or
// unsubscribe from inside a delivery; it takes effect from the next Publish.
type Bus struct {
	trie   *trie
	fold   func(string) string
	logger irc.Logger

	protect sync.RWMutex
}

// NewBus creates a bus. Targets are folded with strings.ToLower until
// SetFold is called. A nil logger discards.
func NewBus(logger irc.Logger) *Bus {
	if logger == nil {
		logger = irc.DiscardLogger()
	}
	return &Bus{
		trie:   newTrie(),
		fold:   strings.ToLower,
		logger: logger,
	}
}

// SetFold changes how targets are folded, subscriptions made earlier keep
// the key they were made with.
func (b *Bus) SetFold(fold func(string) string) {
	b.protect.Lock()
	defer b.protect.Unlock()
	b.fold = fold
}

// Subscribe registers a handler for a kind. An empty target receives the
// event for every channel, otherwise only events for that channel. The
// returned id is used to Unsubscribe.
func (b *Bus) Subscribe(kind Kind, target string, h Handler) uint64 {
	b.protect.Lock()
	defer b.protect.Unlock()
	return b.trie.register(kindKey(kind), b.fold(target), h)
}

// SubscribeAll registers a handler for every kind.
func (b *Bus) SubscribeAll(h Handler) []uint64 {
	b.protect.Lock()
	defer b.protect.Unlock()
	ids := make([]uint64, 0, kindEnd-1)
	for _, k := range Kinds() {
		ids = append(ids, b.trie.register(kindKey(k), "", h))
	}
	return ids
}

// Unsubscribe removes a handler by id.
func (b *Bus) Unsubscribe(id uint64) bool {
	b.protect.Lock()
	defer b.protect.Unlock()
	return b.trie.unregister(id)
}

// Has checks if anything at all listens for a kind.
func (b *Bus) Has(kind Kind) bool {
	b.protect.RLock()
	defer b.protect.RUnlock()
	return b.trie.count(kindKey(kind)) > 0
}

// Publish delivers an event and returns how many handlers received it. A
// panicking handler is logged and does not stop the others.
func (b *Bus) Publish(ev Event) int {
	var target string
	if t, ok := ev.(Targeted); ok {
		target = t.Target()
	}

	b.protect.RLock()
	list := b.trie.handlers(kindKey(ev.Kind()), b.fold(target))
	b.protect.RUnlock()

	for _, r := range list {
		b.deliver(r.handler, ev)
	}
	return len(list)
}

func (b *Bus) deliver(h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "kind", ev.Kind(), "panic", fmt.Sprint(r))
		}
	}()
	h.HandleEvent(ev)
}

// On subscribes a function that takes the concrete event type, the kind is
// taken from T.
func On[T Event](b *Bus, target string, fn func(T)) uint64 {
	var zero T
	return b.Subscribe(zero.Kind(), target, HandlerFunc(func(ev Event) {
		if t, ok := ev.(T); ok {
			fn(t)
		}
	}))
}

func kindKey(k Kind) string {
	return strconv.Itoa(int(k))
}
