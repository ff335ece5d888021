package session

import (
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// nickPrepend is put in front of a nickname when both ours are taken.
const nickPrepend = "_"

// handleWelcome is the 001, after it we know our own nickname.
func (s *Session) handleWelcome(ev *irc.Event) error {
	s.got001.Store(true)
	s.info.SetServerName(ev.Sender)

	nick := ev.Arg(2)
	self := s.reg.Self()
	switch {
	case self.IsFake():
		self.SetUserBits(nick, true, true)
		self.SetFake(false)
		s.reg.AddClient(self)
	case !s.reg.CaseMapper().Equal(self.Nickname(), nick):
		s.reg.ForceRemoveClient(self)
		self.SetUserBits(nick, true, true)
		if s.reg.FindClient(nick) != nil {
			s.reportf(irc.Fatal, "001 overwrites existing client?")
		} else {
			s.reg.AddClient(self)
		}
	}
	s.setThinkNickname(nick)

	s.startPingTimer()
	s.bus.Publish(event.ServerReady{})
	return nil
}

// handleNickInUse tries the alternative nickname, then prepends to it, as
// long as we are not registered and nobody else handles it.
func (s *Session) handleNickInUse(ev *irc.Event) error {
	if s.bus.Publish(event.NickInUse{Nick: ev.Arg(3)}) > 0 {
		return nil
	}

	s.debug(event.DebugInfoCat, "no nick in use handler")
	if s.got001.Load() {
		return nil
	}

	if !s.triedAlt.Swap(true) {
		return s.SetNickname(s.conf.Altnick)
	}

	// An altnick that is already the prepended nickname is built on, not
	// tried again.
	think, desired := s.ThinkNickname(), s.desiredNickname()
	cm := s.reg.CaseMapper()
	if cm.Equal(think, s.conf.Altnick) && !cm.Equal(s.conf.Altnick, nickPrepend+desired) {
		think = desired
	}
	return s.SetNickname(nickPrepend + think)
}

func (s *Session) handlePasswordRequired(ev *irc.Event) error {
	s.bus.Publish(event.PasswordRequired{})
	return nil
}

// handleNoticeAuth gets everything sent before registration that is not
// otherwise understood.
func (s *Session) handleNoticeAuth(ev *irc.Event) error {
	s.bus.Publish(event.NoticeAuth{Message: ev.Trailing()})
	return nil
}
