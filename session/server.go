package session

import (
	"strings"

	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// handleInvite is us being invited: :nick!ident@host INVITE me :#chan
func (s *Session) handleInvite(ev *irc.Event) error {
	if len(ev.Tokens) < 4 {
		return nil
	}
	s.bus.Publish(event.Invite{Host: ev.Sender, Channel: ev.Arg(3)})
	return nil
}

// handleWallops tells wallops to opers (*) and to users ($) apart, the
// marker word is dropped.
func (s *Session) handleWallops(ev *irc.Event) error {
	if len(ev.Tokens) < 3 {
		return nil
	}

	host, message := ev.Sender, ev.Trailing()
	if parts := strings.SplitN(message, " ", 2); len(parts) > 1 {
		switch message[0] {
		case '*':
			s.bus.Publish(event.Wallop{Message: parts[1], Host: host})
			return nil
		case '$':
			s.bus.Publish(event.Walluser{Message: parts[1], Host: host})
			return nil
		}
	}
	s.bus.Publish(event.WallDesync{Message: message, Host: host})
	return nil
}

func (s *Session) handleMOTD(ev *irc.Event) error {
	text := ev.Trailing()
	switch ev.Name {
	case irc.RPL_MOTDSTART:
		s.bus.Publish(event.MOTDStart{Line: text})
	case irc.RPL_MOTD:
		s.bus.Publish(event.MOTDLine{Line: text})
	case irc.RPL_ENDOFMOTD:
		s.bus.Publish(event.MOTDEnd{Data: text})
	case irc.ERR_NOMOTD:
		s.bus.Publish(event.MOTDEnd{NoMOTD: true, Data: text})
	}
	return nil
}
