package session

import (
	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// lookupSender finds the client that sent a line, filling in its ident and
// host if we did not know them yet.
func (s *Session) lookupSender(ev *irc.Event) *data.Client {
	client := s.reg.FindClient(ev.Sender)
	if client != nil && len(client.Host()) == 0 {
		client.SetUserBits(ev.Sender, false, false)
	}
	return client
}

// leave removes a member from a channel with the event published before or
// after, as RemoveAfterCallback says. The channel is forgotten when we are
// the one leaving or when nobody we know is left on it.
func (s *Session) leave(ch *data.Channel, cc *data.ChannelClient, publish func()) {
	client := cc.Client()
	before := s.removeAfterCallback.Load()

	if before {
		publish()
	}
	s.debug(event.DebugInfoCat, "removing member", "nick", client.Nickname(), "channel", ch.Name())
	if s.reg.IsSelf(client) {
		ch.Empty()
		s.reg.RemoveChannel(ch)
	} else {
		ch.DelClient(client)
		if ch.MemberCount() == 0 {
			s.reg.RemoveChannel(ch)
		}
	}
	if !before {
		publish()
	}
}

// handleJoin: :nick!ident@host JOIN #chan
func (s *Session) handleJoin(ev *irc.Event) error {
	if len(ev.Tokens) < 3 {
		return nil
	}

	name := ev.Arg(2)
	client := s.lookupSender(ev)
	if client == nil {
		client = data.NewClient(ev.Sender)
		s.reg.AddClient(client)
	}
	isSelf := s.reg.IsSelf(client)

	ch := s.reg.FindChannel(name)
	switch {
	case ch != nil && isSelf:
		if ch.MemberFor(client) == nil {
			s.reportf(irc.Fatal, "Joined known channel that we wern't already on..")
		}
		ch.Empty()
		s.reg.RemoveChannel(ch)
	case ch != nil:
		if ch.MemberFor(client) != nil {
			return nil
		}
		cc := ch.AddClient(client)
		s.bus.Publish(event.ChannelJoin{Channel: ch, Member: cc})
		return nil
	case !isSelf:
		s.reportf(irc.Warning, "Got join for channel (%s) that I am not on. [Me: %s]", name, s.Nickname())
		ch = s.reg.AddChannel(name)
		ch.AddClient(client)
		return nil
	}

	ch = s.reg.AddChannel(name)
	ch.AddClient(client)
	if err := s.sendString("MODE " + ch.Name()); err != nil {
		s.debug(event.DebugSocket, "mode request failed", "channel", ch.Name(), "err", err)
	}
	s.bus.Publish(event.ChannelSelfJoin{Channel: ch})
	return nil
}

// handlePart: :nick!ident@host PART #chan [:reason]
func (s *Session) handlePart(ev *irc.Event) error {
	if len(ev.Tokens) < 3 {
		return nil
	}

	client := s.lookupSender(ev)
	if client == nil {
		return nil
	}
	name := ev.Arg(2)
	ch := s.reg.FindChannel(name)
	if ch == nil {
		if !s.reg.IsSelf(client) {
			s.reportf(irc.Warning, "Got part for channel (%s) that I am not on. [User: %s]", name, ev.Sender)
		}
		return nil
	}
	cc := ch.MemberFor(client)
	if cc == nil {
		return nil
	}

	var reason string
	if len(ev.Tokens) > 3 {
		reason = ev.Trailing()
	}
	s.leave(ch, cc, func() {
		s.bus.Publish(event.ChannelPart{Channel: ch, Member: cc, Reason: reason})
	})
	return nil
}

// handleKick: :nick!ident@host KICK #chan kicked [:reason]
func (s *Session) handleKick(ev *irc.Event) error {
	if len(ev.Tokens) < 4 {
		return nil
	}

	client := s.reg.FindClient(ev.Arg(3))
	if client == nil {
		return nil
	}
	name := ev.Arg(2)
	ch := s.reg.FindChannel(name)
	if ch == nil {
		if !s.reg.IsSelf(client) {
			s.reportf(irc.Warning, "Got kick for channel (%s) that I am not on. [User: %s]", name, ev.Arg(3))
		}
		return nil
	}
	cc := ch.MemberFor(client)
	if cc == nil {
		return nil
	}

	var reason string
	if len(ev.Tokens) > 4 {
		reason = ev.Trailing()
	}
	kicker, _ := ch.LookupMember(ev.Sender, s.createFake.Load())
	s.leave(ch, cc, func() {
		s.bus.Publish(event.ChannelKick{
			Channel:    ch,
			Kicked:     cc,
			Kicker:     kicker,
			Reason:     reason,
			KickerHost: ev.Sender,
		})
	})
	return nil
}

// handleQuit: :nick!ident@host QUIT [:reason]
func (s *Session) handleQuit(ev *irc.Event) error {
	client := s.lookupSender(ev)
	if client == nil {
		return nil
	}

	var reason string
	if len(ev.Tokens) > 2 {
		reason = ev.Trailing()
	}

	for _, cc := range client.Memberships() {
		cc := cc
		ch := cc.Channel()
		s.leave(ch, cc, func() {
			s.bus.Publish(event.ChannelQuit{Channel: ch, Member: cc, Reason: reason})
		})
	}
	s.bus.Publish(event.Quit{Client: client, Reason: reason})

	if !s.reg.IsSelf(client) {
		s.reg.RemoveClient(client)
		return nil
	}
	for _, c := range s.reg.Clients() {
		s.reg.RemoveClient(c)
	}
	return nil
}

// handleNick: :oldnick!ident@host NICK :newnick
func (s *Session) handleNick(ev *irc.Event) error {
	if len(ev.Tokens) < 3 {
		return nil
	}

	client := s.reg.FindClient(ev.Sender)
	if client == nil {
		return nil
	}
	oldNick := ev.Nick()
	newNick := ev.Trailing()

	if err := s.reg.RenameClient(client, newNick); err != nil {
		if errors.Cause(err) == data.ErrNickCollision {
			s.reportf(irc.Fatal, "Nick change would overwrite existing client")
			return nil
		}
		return err
	}
	if len(client.Host()) == 0 {
		client.SetUserBits(ev.Sender, false, false)
	}
	if s.reg.IsSelf(client) {
		s.setThinkNickname(newNick)
	}

	for _, cc := range client.Memberships() {
		s.bus.Publish(event.ChannelNickChanged{Channel: cc.Channel(), Member: cc, OldNick: oldNick})
	}
	s.bus.Publish(event.NickChanged{Client: client, OldNick: oldNick})
	return nil
}
