package session

import (
	"testing"

	"github.com/DMDirc/DMDirc-sub001/event"
)

func TestRegistration_NickInUse(t *testing.T) {
	t.Parallel()

	s, tr := newTestSession(t, nil)
	exp := []string{"NICK me_", "NICK _me", "NICK __me"}
	for i, nick := range exp {
		s.ProcessLine(":server 433 * me :Nickname is already in use.")
		if val := tr.Last(); val != nick {
			t.Errorf("%d) Expected: %q, got: %q", i, nick, val)
		}
	}

	s.ProcessLine(":server 001 __me :Welcome to the network")
	if exp, val := "__me", s.LocalClient().Nickname(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if s.Registry().FindClient("__me") != s.LocalClient() {
		t.Error("The local client should be stored under its new nickname")
	}

	// Once registered a refused nickname is left to the user.
	tr.Reset()
	s.ProcessLine(":server 433 __me other :Nickname is already in use.")
	if len(tr.Lines()) != 0 {
		t.Error("Unexpected:", tr.Lines())
	}
}

func TestRegistration_NickInUseHandled(t *testing.T) {
	t.Parallel()

	s, tr := newTestSession(t, nil)
	var refused string
	event.On(s.Bus(), "", func(ev event.NickInUse) {
		refused = ev.Nick
	})

	s.ProcessLine(":server 433 * me :Nickname is already in use.")
	if exp, val := "me", refused; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if len(tr.Lines()) != 0 {
		t.Error("A handled refusal sends nothing:", tr.Lines())
	}
}

func TestRegistration_AltnickIsPrefixed(t *testing.T) {
	t.Parallel()

	conf := testConfig()
	conf.Altnick = "_me"
	s, tr := newTestSession(t, conf)

	exp := []string{"NICK _me", "NICK __me"}
	for i, nick := range exp {
		s.ProcessLine(":server 433 * x :Nickname is already in use.")
		if val := tr.Last(); val != nick {
			t.Errorf("%d) Expected: %q, got: %q", i, nick, val)
		}
	}
}

func TestRegistration_Welcome(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, nil)
	var ready int
	event.On(s.Bus(), "", func(ev event.ServerReady) { ready++ })

	s.ProcessLine(":irc.example.net 001 me :Welcome")
	if exp, val := 1, ready; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	self := s.LocalClient()
	if self.IsFake() || s.Registry().FindClient("ME") != self {
		t.Error("001 should store the local client")
	}
	if exp, val := "irc.example.net", s.ServerName(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "me", s.ThinkNickname(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestRegistration_PasswordRequired(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, nil)
	var asked bool
	event.On(s.Bus(), "", func(ev event.PasswordRequired) { asked = true })

	s.ProcessLine(":server 464 me :Password required")
	if !asked {
		t.Error("464 should ask for a password")
	}
}

func TestRegistration_NickBeforeWelcome(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, nil)
	log := record(s.Bus())
	s.ProcessLine(":me!u@h NICK :other")
	if len(log.Kinds()) != 0 {
		t.Error("Unexpected events:", log.Kinds())
	}
}

func TestRegistration_CTCPBeforeWelcome(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, nil)
	var ctcp event.PrivateCTCP
	event.On(s.Bus(), "", func(ev event.PrivateCTCP) {
		ctcp = ev
	})
	s.ProcessLine(":services!s@h PRIVMSG me :\x01VERSION\x01")
	if exp, val := "VERSION", ctcp.Type; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}
