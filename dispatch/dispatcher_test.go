package dispatch

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

func TestDispatcher_Register(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	var called string
	first := HandlerFunc(func(*irc.Event) error { called = "first"; return nil })
	second := HandlerFunc(func(*irc.Event) error { called = "second"; return nil })

	if d.Register("PRIVMSG", first) {
		t.Error("Nothing should have been replaced")
	}
	if !d.Register("privmsg", second) {
		t.Error("The first handler should have been replaced")
	}

	if err := d.Process("PrivMsg", irc.NewEvent(":a!b@c PRIVMSG #c :hi")); err != nil {
		t.Error("Unexpected:", err)
	}
	if exp := "second"; called != exp {
		t.Error("Unexpected:", called, "should be:", exp)
	}

	if !d.Unregister("PRIVMSG") || d.Unregister("privmsg") {
		t.Error("Unregister should succeed once")
	}
}

func TestDispatcher_NoHandler(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	err := d.Process("wallops", irc.NewEvent(":srv WALLOPS :x"))
	if errors.Cause(err) != ErrNoHandler {
		t.Error("Unexpected:", err)
	}
}

func TestDispatcher_Numeric(t *testing.T) {
	t.Parallel()

	var fanned []int
	d := NewDispatcher(func(n int, _ *irc.Event) { fanned = append(fanned, n) })
	d.RegisterFunc("001", func(*irc.Event) error { return nil })

	d.Process("001", irc.NewEvent(":srv 001 me :Welcome"))
	d.Process("999", irc.NewEvent(":srv 999 me :what"))
	d.Process("JOIN", irc.NewEvent(":a JOIN #c"))

	if len(fanned) != 2 || fanned[0] != 1 || fanned[1] != 999 {
		t.Error("Unexpected:", fanned)
	}
}

func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	boom := errors.New("boom")
	d.RegisterFunc("a", func(*irc.Event) error { return boom })
	d.RegisterFunc("b", func(*irc.Event) error { panic("oops") })
	d.RegisterFunc("c", func(*irc.Event) error {
		return irc.NewParserError(irc.Fatal, "desync", "")
	})

	err := d.Process("a", irc.NewEvent("A"))
	perr, ok := err.(*irc.ParserError)
	if !ok || !perr.IsError() || perr.Cause() != boom {
		t.Error("Unexpected:", err)
	}

	err = d.Process("b", irc.NewEvent("B"))
	perr, ok = err.(*irc.ParserError)
	if !ok || !perr.IsError() || !perr.IsException() {
		t.Error("Unexpected:", err)
	}
	if exp := "B"; perr.LastLine != exp {
		t.Error("Unexpected:", perr.LastLine, "should be:", exp)
	}

	err = d.Process("c", irc.NewEvent("C"))
	perr, ok = err.(*irc.ParserError)
	if !ok || !perr.IsFatal() || perr.IsError() {
		t.Error("ParserErrors should pass through untouched:", err)
	}
}

func TestDispatcher_Tokens(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(nil)
	d.RegisterFunc("PING", func(*irc.Event) error { return nil })
	d.RegisterFunc("005", func(*irc.Event) error { return nil })

	tokens := d.Tokens()
	if len(tokens) != 2 || tokens[0] != "005" || tokens[1] != "ping" {
		t.Error("Unexpected:", tokens)
	}
}
