package session

import (
	"strings"

	"github.com/ergochat/irc-go/ircmsg"
	"github.com/ergochat/irc-go/ircutils"
	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

var (
	// errNoTarget is returned when sending without a target.
	errNoTarget = errors.New("session: no target given")
	// errNoCTCPType is returned when sending a CTCP without a type.
	errNoCTCPType = errors.New("session: no ctcp type given")
)

// sanitize strips line breaks and null bytes from anything we send.
func sanitize(s string) string {
	return ircutils.SanitizeText(s, irc.MaxLineLength)
}

// SendRaw sends a line as given, apart from stripping line breaks.
func (s *Session) SendRaw(line string) error {
	return s.doSendString(sanitize(line), false)
}

// sendString sends a line decided on by the session itself.
func (s *Session) sendString(line string) error {
	return s.doSendString(line, true)
}

// doSendString writes a line and notes anything about it the session needs
// to remember: our away reason and which list modes were asked for.
func (s *Session) doSendString(line string, fromParser bool) error {
	if s.State() != StateOpen || s.transport == nil {
		return ErrNotConnected
	}

	s.bus.Publish(event.DataOut{Line: line, FromParser: fromParser})
	s.logger.Debug("->", "line", line)
	if err := s.transport.WriteLine(line); err != nil {
		s.debug(event.DebugSocket, "write failed", "err", err)
		return errors.Wrap(err, "session: write failed")
	}

	tokens := irc.Tokenize(line)
	switch {
	case strings.EqualFold(tokens[0], irc.AWAY) && len(tokens) > 1:
		if self := s.reg.Self(); self != nil {
			self.SetAwayReason(tokens[len(tokens)-1])
		}
	case strings.EqualFold(tokens[0], irc.MODE) && len(tokens) == 3:
		s.noteListModeRequest(tokens[1], tokens[2])
	}
	return nil
}

// noteListModeRequest queues every list mode of a MODE #chan +beI request so
// that the replies can be told apart.
func (s *Session) noteListModeRequest(target, modes string) {
	ch := s.reg.FindChannel(target)
	if ch == nil {
		return
	}
	lmq := ch.ListModeQueue()
	seen := make(map[byte]bool, len(modes))
	for i := 0; i < len(modes); i++ {
		m := modes[i]
		if seen[m] || !s.table.IsListMode(m) {
			continue
		}
		seen[m] = true
		lmq.Offer(m)
		s.debug(event.DebugListModes, "queued list mode", "channel", ch.Name(), "mode", string(m))
	}
}

// SetNickname asks for a new nickname. Before connecting it only changes
// the nickname used to register.
func (s *Session) SetNickname(nick string) error {
	nick = sanitize(nick)
	if len(nick) == 0 {
		return errors.New("session: empty nickname")
	}

	if s.State() == StateOpen {
		if self := s.reg.Self(); self != nil && !self.IsFake() &&
			s.reg.CaseMapper().Equal(self.Nickname(), nick) {
			return nil
		}
		s.setThinkNickname(nick)
		return s.sendString("NICK " + nick)
	}

	s.protect.Lock()
	s.nickname = nick
	s.protect.Unlock()
	s.setThinkNickname(nick)
	return nil
}

// JoinChannel joins a channel. With autoPrefix an invalid name is given the
// first channel prefix of the network.
func (s *Session) JoinChannel(channel, key string, autoPrefix bool) error {
	channel = sanitize(channel)
	if !s.IsValidChannelName(channel) {
		if !autoPrefix {
			return errors.Errorf("session: invalid channel name %q", channel)
		}
		chantypes, ok := s.info.Get(irc.CAP_CHANTYPES)
		if !ok {
			return errors.Errorf("session: no channel types known for %q", channel)
		}
		prefix := "#"
		if len(chantypes) > 0 {
			prefix = chantypes[:1]
		}
		channel = prefix + channel
	}

	if len(key) > 0 {
		return s.sendString("JOIN " + channel + " " + sanitize(key))
	}
	return s.sendString("JOIN " + channel)
}

// PartChannel leaves a channel we are on.
func (s *Session) PartChannel(channel, reason string) error {
	if s.reg.FindChannel(channel) == nil {
		return errors.Errorf("session: not on %s", channel)
	}
	if len(reason) == 0 {
		return s.sendString("PART " + channel)
	}
	return s.sendString("PART " + channel + " :" + sanitize(reason))
}

// SendMessage sends a PRIVMSG.
func (s *Session) SendMessage(target, message string) error {
	if len(target) == 0 {
		return errNoTarget
	}
	return s.sendString("PRIVMSG " + target + " :" + sanitize(message))
}

// SendNotice sends a NOTICE.
func (s *Session) SendNotice(target, message string) error {
	if len(target) == 0 {
		return errNoTarget
	}
	return s.sendString("NOTICE " + target + " :" + sanitize(message))
}

// SendAction sends a /me.
func (s *Session) SendAction(target, message string) error {
	return s.SendCTCP(target, "ACTION", message)
}

// SendCTCP sends a CTCP request, the type is upper cased.
func (s *Session) SendCTCP(target, ctcpType, message string) error {
	if len(target) == 0 {
		return errNoTarget
	}
	if len(ctcpType) == 0 {
		return errNoCTCPType
	}
	return s.SendMessage(target, irc.CTCPPack(ctcpType, message))
}

// SendCTCPReply sends a CTCP reply, the type is upper cased.
func (s *Session) SendCTCPReply(target, ctcpType, message string) error {
	if len(target) == 0 {
		return errNoTarget
	}
	if len(ctcpType) == 0 {
		return errNoCTCPType
	}
	return s.SendNotice(target, irc.CTCPPack(ctcpType, message))
}

// SetAway marks us away, an empty reason comes back.
func (s *Session) SetAway(reason string) error {
	if len(reason) == 0 {
		return s.sendString("AWAY")
	}
	return s.sendString("AWAY :" + sanitize(reason))
}

// MaxLength returns how long the text of a command to a target may be so
// that the line the server relays stays within the line limit. Our own
// host is counted as the server sends it on.
func (s *Session) MaxLength(command, target string) int {
	length := irc.MaxLineLength - len(command) - len(target) - 5

	self := s.reg.Self()
	if self == nil || self.IsFake() {
		s.reportf(irc.Error|irc.User, "getMaxLength() called, but I don't know who I am?")
		return length
	}
	return length - len(self.String())
}

// TruncateMessage cuts a message to fit in a PRIVMSG to the target without
// splitting a UTF-8 sequence.
func (s *Session) TruncateMessage(target, message string) string {
	limit := s.MaxLength(irc.PRIVMSG, target)
	if limit <= 0 {
		return ""
	}
	return ircmsg.TruncateUTF8Safe(message, limit)
}
