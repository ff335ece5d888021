package session

import (
	"strings"

	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// handleAway records the away reason from a 301.
func (s *Session) handleAway(ev *irc.Event) error {
	if len(ev.Tokens) < 4 {
		return nil
	}
	if c := s.reg.FindClient(ev.Arg(3)); c != nil {
		c.SetAwayReason(ev.Trailing())
	}
	return nil
}

// handleAwayState is our own away state, 306 for away and 305 for back.
func (s *Session) handleAwayState(ev *irc.Event) error {
	self := s.reg.Self()
	away := ev.Name == irc.RPL_NOWAWAY
	self.SetAway(away)

	s.bus.Publish(event.AwayState{Away: away, Reason: self.AwayReason()})
	return nil
}

// handleWho fills in what a WHO reply says about a client:
// :server 352 me #chan ident host server nick flags :hops realname
func (s *Session) handleWho(ev *irc.Event) error {
	if len(ev.Tokens) < 10 {
		return nil
	}

	nick := ev.Arg(7)
	client := s.reg.FindClient(nick)
	if client == nil {
		return nil
	}

	client.SetUserBits(nick+"!"+ev.Arg(4)+"@"+ev.Arg(5), false, false)
	if len(client.Realname()) == 0 {
		if parts := strings.SplitN(ev.Trailing(), " ", 2); len(parts) == 2 {
			client.SetRealname(parts[1])
		}
	}

	away := strings.IndexByte(ev.Arg(8), 'G') >= 0
	if client.Away() == away {
		return nil
	}
	client.SetAway(away)
	s.bus.Publish(event.AwayStateOther{Client: client, Away: away})

	if ch := s.reg.FindChannel(ev.Arg(3)); ch != nil {
		if cc := ch.MemberFor(client); cc != nil {
			s.bus.Publish(event.ChannelAwayStateOther{Channel: ch, Member: cc, Away: away})
		}
	}
	return nil
}
