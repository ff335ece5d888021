package session

import (
	"testing"

	"github.com/DMDirc/DMDirc-sub001/event"
)

func newChannelSession(t *testing.T) *Session {
	t.Helper()
	s, _ := newTestSession(t, nil)
	s.SetAutoListMode(false)
	register(s, "PREFIX=(qov)~@+ CHANTYPES=#")
	feed(s,
		":me!u@h JOIN #chan",
		":server 353 me = #chan :@me ~@bob +alice!a@alice.example",
		":server 366 me #chan :End of /NAMES list.",
	)
	return s
}

func TestServer_Away(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	var states []event.AwayState
	event.On(s.Bus(), "", func(ev event.AwayState) {
		states = append(states, ev)
	})

	s.SetAway("out")
	feed(s,
		":server 306 me :You have been marked as being away",
		":server 305 me :You are no longer marked as being away",
	)
	if len(states) != 2 {
		t.Fatal("Unexpected:", states)
	}
	if !states[0].Away || states[0].Reason != "out" {
		t.Error("Unexpected event:", states[0])
	}
	if states[1].Away || s.LocalClient().Away() {
		t.Error("Unexpected event:", states[1])
	}

	s.ProcessLine(":server 301 me bob :Gone to lunch")
	if exp, val := "Gone to lunch", s.Registry().FindClient("bob").AwayReason(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestServer_Who(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	var other event.AwayStateOther
	event.On(s.Bus(), "", func(ev event.AwayStateOther) {
		other = ev
	})
	var inChannel int
	event.On(s.Bus(), "#chan", func(ev event.ChannelAwayStateOther) {
		inChannel++
	})

	s.ProcessLine(":server 352 me #chan bident bob.example server bob G@ :0 Bob Smith")
	bob := s.Registry().FindClient("bob")
	if exp, val := "bob!bident@bob.example", bob.String(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "Bob Smith", bob.Realname(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if other.Client != bob || !other.Away || inChannel != 1 {
		t.Error("Unexpected events:", other, inChannel)
	}

	// The same state again publishes nothing.
	s.ProcessLine(":server 352 me #chan bident bob.example server bob G@ :0 Bob Smith")
	if inChannel != 1 {
		t.Error("Unexpected:", inChannel, "should be:", 1)
	}

	s.ProcessLine(":server 352 me #chan x y server stranger H :0 Nobody")
	if s.Registry().FindClient("stranger") != nil {
		t.Error("WHO should not create clients")
	}
}

func TestServer_Invite(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	var invite event.Invite
	event.On(s.Bus(), "", func(ev event.Invite) {
		invite = ev
	})
	s.ProcessLine(":bob!b@h INVITE me :#secret")
	if invite.Host != "bob!b@h" || invite.Channel != "#secret" {
		t.Error("Unexpected event:", invite)
	}
}

func TestServer_Wallops(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Line string
		Kind event.Kind
	}{
		{":oper!o@h WALLOPS :* server going down", event.KindWallop},
		{":oper!o@h WALLOPS :$ hello users", event.KindWalluser},
		{":oper!o@h WALLOPS :plain text", event.KindWallDesync},
		{":oper!o@h WALLOPS :*", event.KindWallDesync},
	}

	s := newChannelSession(t)
	log := record(s.Bus())
	for i, test := range tests {
		log.Reset()
		s.ProcessLine(test.Line)
		if kinds := log.Kinds(); len(kinds) != 1 || kinds[0] != test.Kind {
			t.Errorf("%d) Expected: %v, got: %v", i, test.Kind, kinds)
		}
	}

	var wallop event.Wallop
	event.On(s.Bus(), "", func(ev event.Wallop) {
		wallop = ev
	})
	s.ProcessLine(":oper!o@h WALLOPS :* server going down")
	if wallop.Message != "server going down" || wallop.Host != "oper!o@h" {
		t.Error("Unexpected event:", wallop)
	}
}

func TestServer_MOTD(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, nil)
	register(s, "")
	log := record(s.Bus())
	var end []event.MOTDEnd
	event.On(s.Bus(), "", func(ev event.MOTDEnd) {
		end = append(end, ev)
	})

	feed(s,
		":server 375 me :- server Message of the Day -",
		":server 372 me :- hello",
		":server 372 me :- world",
		":server 376 me :End of /MOTD command.",
		":server 422 me :MOTD File is missing",
	)
	if exp, val := 2, log.Count(event.KindMOTDLine); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if log.Count(event.KindMOTDStart) != 1 || len(end) != 2 {
		t.Fatal("Unexpected events:", log.Kinds())
	}
	if end[0].NoMOTD || !end[1].NoMOTD || end[1].Data != "MOTD File is missing" {
		t.Error("Unexpected events:", end)
	}
}

func TestServer_Names(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	ch := s.Registry().FindChannel("#chan")

	bob := ch.Member("bob")
	if !bob.HasMode('q') || !bob.HasMode('o') {
		t.Error("Multiple prefixes should all be kept:", bob.ModeString())
	}
	if exp, val := "~", bob.ImportantModePrefix(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "alice.example", s.Registry().FindClient("alice").Host(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	// A fresh listing replaces the members.
	feed(s,
		":server 353 me = #chan :@me carol",
		":server 366 me #chan :End of /NAMES list.",
	)
	if exp, val := 2, ch.MemberCount(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if ch.Member("bob") != nil || ch.Member("carol") == nil {
		t.Error("Unexpected members:", ch.Members())
	}
}

func TestServer_Topic(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	ch := s.Registry().FindChannel("#chan")
	var topics []event.ChannelTopic
	event.On(s.Bus(), "#chan", func(ev event.ChannelTopic) {
		topics = append(topics, ev)
	})

	s.ProcessLine(":server 332 me #chan :Welcome to the channel")
	if len(topics) != 0 {
		t.Error("332 alone publishes nothing")
	}
	s.ProcessLine(":server 333 me #chan bob 1234567890")
	if len(topics) != 1 || !topics[0].OnJoin {
		t.Fatal("Unexpected:", topics)
	}
	if ch.Topic() != "Welcome to the channel" || ch.TopicSetter() != "bob" || ch.TopicTime() != 1234567890 {
		t.Error("Unexpected topic:", ch.Topic(), ch.TopicSetter(), ch.TopicTime())
	}

	s.ProcessLine(":bob!b@h TOPIC #chan :New topic")
	if len(topics) != 2 || topics[1].OnJoin {
		t.Fatal("Unexpected:", topics)
	}
	if ch.Topic() != "New topic" || ch.TopicSetter() != "bob!b@h" || ch.TopicTime() == 1234567890 {
		t.Error("Unexpected topic:", ch.Topic(), ch.TopicSetter(), ch.TopicTime())
	}

	s.ProcessLine(":bob!b@h TOPIC #chan")
	if len(ch.Topic()) != 0 {
		t.Error("A TOPIC without text clears it:", ch.Topic())
	}
}

func TestServer_CreationTime(t *testing.T) {
	t.Parallel()

	s := newChannelSession(t)
	ch := s.Registry().FindChannel("#chan")

	s.ProcessLine(":server 329 me #chan 1100000000")
	if exp, val := int64(1100000000), ch.CreateTime(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	var warned bool
	event.On(s.Bus(), "", func(ev event.ErrorInfo) {
		warned = ev.Err.IsWarning()
	})
	s.ProcessLine(":server 329 me #chan notanumber")
	if !warned || ch.CreateTime() != 1100000000 {
		t.Error("A bad creation time should warn and change nothing")
	}
}
