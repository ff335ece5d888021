/*
Package dispatch routes tokenized lines to the handler registered for their
command or numeric.

Each token has at most one handler, registering a handler for a token that
already has one replaces it. This is how built in handlers are overridden:

	d.Register("privmsg", myPrivmsg)

After any handler has run, numerics are additionally passed to the numeric
fanout function whether or not a handler existed.
*/
package dispatch

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

var (
	// ErrNoHandler is returned by Process when nothing is registered for
	// the token.
	ErrNoHandler = errors.New("dispatch: no handler registered")
)

// Handler processes one line.
type Handler interface {
	Handle(ev *irc.Event) error
}

// HandlerFunc implements the Handler interface
type HandlerFunc func(ev *irc.Event) error

// Handle implements Handler interface
func (h HandlerFunc) Handle(ev *irc.Event) error {
	return h(ev)
}

// NumericFunc receives every numeric after it has been dispatched.
type NumericFunc func(numeric int, ev *irc.Event)

// Dispatcher is a runtime mutable table of token to handler.
type Dispatcher struct {
	handlers map[string]Handler
	numeric  NumericFunc

	protect sync.RWMutex
}

// NewDispatcher creates an empty dispatcher, numeric may be nil.
func NewDispatcher(numeric NumericFunc) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]Handler),
		numeric:  numeric,
	}
}

// Register sets the handler for a token, returning true if it replaced
// another handler.
func (d *Dispatcher) Register(token string, handler Handler) bool {
	token = strings.ToLower(token)

	d.protect.Lock()
	defer d.protect.Unlock()
	_, replaced := d.handlers[token]
	d.handlers[token] = handler
	return replaced
}

// RegisterFunc is Register for a function.
func (d *Dispatcher) RegisterFunc(token string, fn func(*irc.Event) error) bool {
	return d.Register(token, HandlerFunc(fn))
}

// Unregister removes the handler for a token. If the handler was removed it
// returns true, false if there was none.
func (d *Dispatcher) Unregister(token string) bool {
	token = strings.ToLower(token)

	d.protect.Lock()
	defer d.protect.Unlock()
	_, ok := d.handlers[token]
	delete(d.handlers, token)
	return ok
}

// Handler returns the handler of a token.
func (d *Dispatcher) Handler(token string) (Handler, bool) {
	d.protect.RLock()
	defer d.protect.RUnlock()
	h, ok := d.handlers[strings.ToLower(token)]
	return h, ok
}

// Tokens returns every token with a handler, sorted.
func (d *Dispatcher) Tokens() []string {
	d.protect.RLock()
	tokens := make([]string, 0, len(d.handlers))
	for t := range d.handlers {
		tokens = append(tokens, t)
	}
	d.protect.RUnlock()

	sort.Strings(tokens)
	return tokens
}

// Process runs the handler for token. A missing handler returns an error
// whose cause is ErrNoHandler. Errors and panics from the handler come back
// as an *irc.ParserError with the Error flag. Numeric tokens are passed on
// to the numeric fanout afterwards in every case.
func (d *Dispatcher) Process(token string, ev *irc.Event) (err error) {
	h, ok := d.Handler(token)
	if !ok {
		err = errors.Wrapf(ErrNoHandler, "token: %s", token)
	} else {
		err = d.call(h, ev)
	}

	if n, isNum := irc.IsNumeric(token); isNum && d.numeric != nil {
		d.numeric(n, ev)
	}
	return err
}

func (d *Dispatcher) call(h Handler, ev *irc.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = irc.WrapParserError(irc.Error, errors.New(fmt.Sprint(r)),
				"Exception in handler", ev.String())
		}
	}()

	err = h.Handle(ev)
	if err == nil {
		return nil
	}
	if perr, ok := err.(*irc.ParserError); ok {
		return perr
	}
	return irc.WrapParserError(irc.Error, err, "Handler failed", ev.String())
}
