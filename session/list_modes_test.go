package session

import (
	"testing"
	"time"

	"github.com/DMDirc/DMDirc-sub001/event"
)

func newListSession(t *testing.T, version, isupport, names string) (*Session, *testTransport) {
	t.Helper()
	s, tr := newTestSession(t, nil)
	s.ProcessLine(":server 001 me :Welcome")
	if len(version) > 0 {
		s.ProcessLine(":server 004 me server " + version + " iow biklmnopstv")
	}
	s.ProcessLine(":server 005 me " + isupport + " :are supported by this server")
	feed(s,
		":me!u@h JOIN #chan",
		":server 353 me = #chan :"+names,
	)
	tr.Reset()
	return s, tr
}

func TestListModes_Request(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Version  string
		ISupport string
		Names    string
		Exp      []string
	}{
		{"", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me",
			[]string{"MODE #chan Ibe"}},
		{"", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=2", "@me",
			[]string{"MODE #chan Ib", "MODE #chan e"}},
		{"hybrid-7.2", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "+me",
			[]string{"MODE #chan b"}},
		{"hybrid-7.2", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me",
			[]string{"MODE #chan Ibe"}},
		{"Unreal3.2.8", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me",
			[]string{"MODE #chan I", "MODE #chan b", "MODE #chan e"}},
		{"", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=1 LISTMODE=997", "@me",
			[]string{"LISTMODE #chan Ibe"}},
	}

	for i, test := range tests {
		s, tr := newListSession(t, test.Version, test.ISupport, test.Names)
		s.ProcessLine(":server 366 me #chan :End of /NAMES list.")

		lines := tr.Lines()
		if len(lines) != len(test.Exp) {
			t.Errorf("%d) Expected: %q, got: %q", i, test.Exp, lines)
			continue
		}
		for j := range lines {
			if lines[j] != test.Exp[j] {
				t.Errorf("%d) Expected: %q, got: %q", i, test.Exp[j], lines[j])
			}
		}
	}
}

func TestListModes_Replies(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me")
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")
	if exp, val := 3, ch.ListModeQueue().Len(); val != exp {
		t.Fatal("Unexpected:", val, "should be:", exp)
	}

	var got int
	event.On(s.Bus(), "#chan", func(ev event.ChannelGotListModes) {
		got++
	})

	feed(s,
		":server 346 me #chan *!*@invited op 1",
		":server 347 me #chan :End of Channel Invite List",
		":server 367 me #chan *!*@banned op 2",
		":server 367 me #chan *!*@banned2 op 3",
		":server 368 me #chan :End of Channel Ban List",
	)
	if got != 0 {
		t.Error("List modes are not complete yet")
	}
	s.ProcessLine(":server 349 me #chan :End of Channel Exception List")
	if exp, val := 1, got; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	if exp, val := 1, len(ch.ListMode('I')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := 2, len(ch.ListMode('b')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := 0, len(ch.ListMode('e')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	// A second listing replaces the first.
	s.SendRaw("MODE #chan b")
	feed(s,
		":server 367 me #chan *!*@new op 4",
		":server 368 me #chan :End of Channel Ban List",
	)
	if bans := ch.ListMode('b'); len(bans) != 1 || bans[0].Item != "*!*@new" {
		t.Error("Unexpected:", bans)
	}
}

func TestListModes_QueueWins(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me")
	s.SetAutoListMode(false)
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")
	ch.ListModeQueue().Offer('e')

	var warned bool
	event.On(s.Bus(), "", func(ev event.ErrorInfo) {
		warned = warned || ev.Err.IsWarning()
	})
	feed(s,
		":server 367 me #chan *!*@excepted op 1",
		":server 368 me #chan :End of Channel Ban List",
	)
	if !warned {
		t.Error("A disagreement should warn")
	}
	if exp, val := 1, len(ch.ListMode('e')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := 0, ch.ListModeQueue().Len(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestListModes_NotOpped(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=3", "@me")
	s.SetAutoListMode(false)
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")

	s.SendRaw("MODE #chan eb")
	s.ProcessLine(":server 482 me #chan :You're not channel operator")
	if m, ok := ch.ListModeQueue().Peek(); !ok || m != 'b' {
		t.Error("The refused mode should be dropped from the queue:", string(m))
	}
}

func TestListModes_Stale(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst", "@me")
	ch := s.Registry().FindChannel("#chan")
	ch.ListModeQueueAt(time.Now()).Offer('b')

	if exp, val := 1, ch.ListModeQueueAt(time.Now().Add(10*time.Second)).Len(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := 0, ch.ListModeQueueAt(time.Now().Add(time.Minute)).Len(); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestListModes_StaleBatchRefreshes(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst", "@me")
	s.SetAutoListMode(false)
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")

	s.SendRaw("MODE #chan b")
	s.ProcessLine(":server 367 me #chan old!*@* op 1")
	if !ch.AddState('b') {
		t.Error("The unfinished batch should be marked")
	}

	// The end of the list never arrived.
	ch.ListModeQueueAt(time.Now().Add(time.Minute))
	if ch.AddState('b') {
		t.Error("A stale queue should clear the batch marks")
	}

	s.SendRaw("MODE #chan b")
	feed(s,
		":server 367 me #chan new!*@* op 2",
		":server 368 me #chan :End of Channel Ban List",
	)
	items := ch.ListMode('b')
	if len(items) != 1 || items[0].Item != "new!*@*" {
		t.Error("Unexpected:", items)
	}
}

func TestListModes_ListModeNumeric(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "", "PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst LISTMODE=997", "@me")
	s.SetAutoListMode(false)
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")

	var got int
	event.On(s.Bus(), "#chan", func(ev event.ChannelGotListModes) {
		got++
	})
	feed(s,
		":server 997 me #chan e *!*@friend op 5",
		":server 997 me #chan I *!*@guest op 6",
		":server 998 me #chan e :End of list",
	)
	if exp, val := 1, len(ch.ListMode('e')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if items := ch.ListMode('I'); len(items) != 1 || items[0].Time != 6 {
		t.Error("Unexpected:", items)
	}
	if exp, val := 1, got; val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestListModes_SharedBanQuiet(t *testing.T) {
	t.Parallel()

	s, _ := newListSession(t, "hyperion-1.0.2b", "PREFIX=(ov)@+ CHANMODES=bdeIq,k,l,imnpst MODES=4", "@me")
	s.SetAutoListMode(false)
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")
	ch := s.Registry().FindChannel("#chan")

	feed(s,
		":server 367 me #chan *!*@banned op 1",
		":server 367 me #chan %*!*@quieted op 2",
		":server 367 me #chan 10.0.0.0/8 op 3",
		":server 368 me #chan :End of Channel Ban List",
	)
	if bans := ch.ListMode('b'); len(bans) != 1 || bans[0].Item != "*!*@banned" {
		t.Error("Unexpected bans:", bans)
	}
	if quiets := ch.ListMode('q'); len(quiets) != 1 || quiets[0].Item != "*!*@quieted" {
		t.Error("Unexpected quiets:", quiets)
	}
	if dlines := ch.ListMode('d'); len(dlines) != 1 || dlines[0].Item != "10.0.0.0/8" {
		t.Error("Unexpected d-lines:", dlines)
	}

	s.ProcessLine(":op!o@h MODE #chan +q *!*@loud")
	if exp, val := 2, len(ch.ListMode('q')); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestListModes_MaxListModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ISupport string
		Mode     byte
		Exp      int
	}{
		{"MAXLIST=beI:100,q:50", 'e', 100},
		{"MAXLIST=beI:100,q:50", 'q', 50},
		{"MAXLIST=beI:100", 'q', 0},
		{"MAXLIST=beI:100 MAXBANS=30", 'q', 30},
		{"MAXBANS=60", 'b', 60},
		{"NETWORK=x", 'b', -1},
	}

	for i, test := range tests {
		s, _ := newTestSession(t, nil)
		register(s, test.ISupport)
		if val := s.MaxListModes(test.Mode); val != test.Exp {
			t.Errorf("%d) Expected: %d, got: %d", i, test.Exp, val)
		}
	}
}
