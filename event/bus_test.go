package event

import (
	"strings"
	"testing"

	"github.com/DMDirc/DMDirc-sub001/data"
)

func newTestChannel(name string) *data.Channel {
	return data.NewRegistry(data.NewModeTable()).AddChannel(name)
}

func TestBus_PublishOrder(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	var order []string
	b.Subscribe(KindPingSent, "", HandlerFunc(func(Event) { order = append(order, "a") }))
	b.Subscribe(KindPingSent, "", HandlerFunc(func(Event) { order = append(order, "b") }))
	b.Subscribe(KindPingSuccess, "", HandlerFunc(func(Event) { order = append(order, "x") }))

	if exp, val := 2, b.Publish(PingSent{}); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "ab", strings.Join(order, ""); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestBus_Targeted(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	var all, one int
	b.Subscribe(KindChannelSelfJoin, "", HandlerFunc(func(Event) { all++ }))
	b.Subscribe(KindChannelSelfJoin, "#Chan", HandlerFunc(func(Event) { one++ }))

	b.Publish(ChannelSelfJoin{Channel: newTestChannel("#chan")})
	b.Publish(ChannelSelfJoin{Channel: newTestChannel("#other")})

	if all != 2 || one != 1 {
		t.Error("Unexpected counts:", all, one)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	id := b.Subscribe(KindPingFailed, "", HandlerFunc(func(Event) {}))
	if !b.Has(KindPingFailed) {
		t.Error("Should have a handler")
	}
	if !b.Unsubscribe(id) {
		t.Error("Should unsubscribe")
	}
	if b.Has(KindPingFailed) || b.Publish(PingFailed{}) != 0 {
		t.Error("Should have no handlers")
	}
}

func TestBus_Panic(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	reached := false
	b.Subscribe(KindDataIn, "", HandlerFunc(func(Event) { panic("boom") }))
	b.Subscribe(KindDataIn, "", HandlerFunc(func(Event) { reached = true }))

	if exp, val := 2, b.Publish(DataIn{Line: "x"}); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if !reached {
		t.Error("A panicking handler should not stop delivery")
	}
}

func TestBus_On(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	var got string
	On(b, "", func(ev DataIn) { got = ev.Line })

	b.Publish(DataIn{Line: "PING :x"})
	if exp := "PING :x"; got != exp {
		t.Error("Unexpected:", got, "should be:", exp)
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	t.Parallel()

	b := NewBus(nil)
	n := 0
	ids := b.SubscribeAll(HandlerFunc(func(Event) { n++ }))
	if exp, val := len(Kinds()), len(ids); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	b.Publish(ServerReady{})
	b.Publish(ChannelGotNames{Channel: newTestChannel("#c")})
	if n != 2 {
		t.Error("Unexpected:", n, "should be:", 2)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		if k.String() == "" || k.String() == "Unknown" {
			t.Error("Kind has no name:", int(k))
		}
	}
	if exp, val := "Unknown", Kind(0).String(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "ChannelJoin", KindChannelJoin.String(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}
