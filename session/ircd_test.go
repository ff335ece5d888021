package session

import (
	"testing"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

func TestIRCD_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Version string
		Network string
		Created string
		Exp     string
	}{
		{"", "", "", "generic"},
		{"Unreal3.2.8.1", "", "", "unreal"},
		{"unreal4.2.0", "", "", "unreal4"},
		{"bahamut-1.8(04)", "", "", "bahamut"},
		{"u2.10.12.10", "", "", "ircu"},
		{"u2.10.H.10.225", "", "", "irchispano"},
		{"hybrid-7.2.2+oftc1.6.3", "", "", "oftc-hybrid"},
		{"ircd-hybrid-7.2.3", "", "", "hybrid7"},
		{"hybrid-7.2", "", "", "hybrid"},
		{"charybdis-3.3.0", "", "", "charybdis"},
		{"InspIRCd-2.0", "", "", "inspircd"},
		{"hyperion-1.0.2b", "", "", "hyperion"},
		{"dancer-ircd-1.0.36", "", "", "dancer"},
		{"ircd-ratbox-2.2.8", "", "", "ratbox"},
		{"2.11.2p1", "IRCnet", "", "ircnet"},
		{"0.99", "", "This server was created by BitlBee", "bitlbee"},
		{"1.0", "SomeNet", "yesterday", "generic"},
	}

	for i, test := range tests {
		info := irc.NewNetworkInfo()
		if len(test.Created) > 0 {
			info.Set(irc.CAP_003IRCD, test.Created)
		}
		if val := detectIRCD(test.Version, test.Network, info); val != test.Exp {
			t.Errorf("%d) Expected: %q, got: %q (%s)", i, test.Exp, val, test.Version)
		}
	}
}

func TestIRCD_QuirksTable(t *testing.T) {
	t.Parallel()

	q := NewQuirksTable()
	if got := q.Get("hybrid"); got.OpOnlyListModes != "eI" {
		t.Error("Unexpected:", got.OpOnlyListModes, "should be:", "eI")
	}
	if got := q.Get("nosuchircd"); got.SingleModeRequests || len(got.ListNumerics) == 0 {
		t.Error("Unknown families should get the defaults:", got)
	}
	if got := q.Get("swiftirc").ListNumerics[irc.RPL_QUIETLIST]; got.Mode != 'q' || !got.Item {
		t.Error("Unexpected:", got)
	}
	if _, ok := q.Get("generic").ListNumerics[irc.RPL_QUIETLIST]; ok {
		t.Error("Quiet lists are not a common numeric")
	}

	q.Set("myircd", Quirks{SingleModeRequests: true})
	got := q.Get("myircd")
	if !got.SingleModeRequests {
		t.Error("Set quirks should be returned")
	}
	if got.ListNumerics[irc.RPL_BANLIST].Mode != 'b' {
		t.Error("Set quirks without numerics should get the common ones")
	}

	var found bool
	for _, name := range q.Families() {
		found = found || name == "myircd"
	}
	if !found {
		t.Error("Families should include myircd:", q.Families())
	}
}

func TestIRCD_RegisterQuirks(t *testing.T) {
	t.Parallel()

	s, tr := newTestSession(t, nil)
	s.RegisterQuirks("ratbox", Quirks{SingleModeRequests: true})
	s.ProcessLine(":server 001 me :Welcome")
	s.ProcessLine(":server 004 me server ircd-ratbox-2.2.8 iow biklmnopstv")
	s.ProcessLine(":server 005 me PREFIX=(ov)@+ CHANMODES=beI,k,l,imnpst MODES=4 :are supported")
	feed(s,
		":me!u@h JOIN #chan",
		":server 353 me = #chan :@me",
	)
	tr.Reset()
	s.ProcessLine(":server 366 me #chan :End of /NAMES list.")

	exp := []string{"MODE #chan I", "MODE #chan b", "MODE #chan e"}
	lines := tr.Lines()
	if len(lines) != len(exp) {
		t.Fatal("Unexpected:", lines, "should be:", exp)
	}
	for i := range exp {
		if lines[i] != exp[i] {
			t.Errorf("%d) Expected: %q, got: %q", i, exp[i], lines[i])
		}
	}

	other := New(testConfig())
	if other.Quirks().Get("ratbox").SingleModeRequests {
		t.Error("Quirks should be per session")
	}
}
