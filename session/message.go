package session

import (
	"strings"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// messageKind is what a PRIVMSG or NOTICE turned out to be.
type messageKind int

const (
	kindMessage messageKind = iota
	kindNotice
	kindAction
	kindCTCP
	kindCTCPReply
)

// handleMessage sorts a PRIVMSG or NOTICE by what it carries and where it
// was sent: a channel, us, or something else.
//
//	:nick!ident@host PRIVMSG #chan :hello
//	:nick!ident@host PRIVMSG @#chan :hello ops
//	:nick!ident@host NOTICE me :\x01VERSION client\x01
func (s *Session) handleMessage(ev *irc.Event) error {
	if s.ignore.Matches(irc.Host(ev.Sender)) {
		s.debug(event.DebugProcessor, "ignored", "host", ev.Sender)
		return nil
	}
	if len(ev.Tokens) < 3 {
		return nil
	}

	if strings.IndexByte(ev.Sender, '!') < 0 && strings.EqualFold(ev.Arg(2), "AUTH") &&
		strings.EqualFold(ev.Name, irc.NOTICE) {
		s.process(irc.NOTICE_AUTH, ev)
		return nil
	}

	var message string
	if len(ev.Tokens) > 3 {
		message = ev.Trailing()
	}

	isNotice := strings.EqualFold(ev.Name, irc.NOTICE)
	kind := kindMessage
	if isNotice {
		kind = kindNotice
	}
	var ctcpType string
	switch {
	case !isNotice && irc.IsAction(message):
		kind = kindAction
		_, message = irc.CTCPUnpack(message)
	case irc.IsCTCP(message):
		kind = kindCTCP
		if isNotice {
			kind = kindCTCPReply
		}
		ctcpType, message = irc.CTCPUnpack(message)
	}

	host := ev.Sender
	if client := s.reg.FindClient(host); client != nil && len(client.Host()) == 0 {
		client.SetUserBits(host, false, false)
	}

	target := ev.Arg(2)
	var prefix byte
	if len(target) > 1 && s.table.IsPrefixGlyph(target[0]) {
		if _, isMode := s.table.PrefixBit(target[0]); !isMode {
			prefix = target[0]
			target = target[1:]
		}
	}

	switch {
	case s.IsValidChannelName(target):
		ch := s.reg.FindChannel(target)
		if ch == nil {
			return nil
		}
		member, _ := ch.LookupMember(host, s.createFake.Load())
		s.publishChannelMessage(kind, ch, member, prefix, ctcpType, message, host)
	case s.reg.CaseMapper().Equal(target, s.Nickname()):
		s.publishPrivateMessage(kind, ctcpType, message, host)
	default:
		s.publishUnknownMessage(kind, ctcpType, message, ev.Arg(2), host)
	}
	return nil
}

func (s *Session) publishChannelMessage(kind messageKind, ch *data.Channel, member *data.ChannelClient,
	prefix byte, ctcpType, message, host string) {

	var ev event.Event
	switch kind {
	case kindAction:
		ev = event.ChannelAction{Channel: ch, Member: member, Message: message, Host: host}
	case kindCTCP:
		ev = event.ChannelCTCP{Channel: ch, Member: member, Type: ctcpType, Message: message, Host: host}
	case kindCTCPReply:
		ev = event.ChannelCTCPReply{Channel: ch, Member: member, Type: ctcpType, Message: message, Host: host}
	case kindMessage:
		if prefix != 0 {
			ev = event.ChannelModeMessage{Channel: ch, Member: member, Prefix: prefix, Message: message, Host: host}
		} else {
			ev = event.ChannelMessage{Channel: ch, Member: member, Message: message, Host: host}
		}
	case kindNotice:
		if prefix != 0 {
			ev = event.ChannelModeNotice{Channel: ch, Member: member, Prefix: prefix, Message: message, Host: host}
		} else {
			ev = event.ChannelNotice{Channel: ch, Member: member, Message: message, Host: host}
		}
	}
	s.bus.Publish(ev)
}

func (s *Session) publishPrivateMessage(kind messageKind, ctcpType, message, host string) {
	var ev event.Event
	switch kind {
	case kindAction:
		ev = event.PrivateAction{Message: message, Host: host}
	case kindCTCP:
		ev = event.PrivateCTCP{Type: ctcpType, Message: message, Host: host}
	case kindCTCPReply:
		ev = event.PrivateCTCPReply{Type: ctcpType, Message: message, Host: host}
	case kindMessage:
		ev = event.PrivateMessage{Message: message, Host: host}
	case kindNotice:
		ev = event.PrivateNotice{Message: message, Host: host}
	}
	s.bus.Publish(ev)
}

func (s *Session) publishUnknownMessage(kind messageKind, ctcpType, message, target, host string) {
	var ev event.Event
	switch kind {
	case kindAction:
		ev = event.UnknownAction{Message: message, Target: target, Host: host}
	case kindCTCP:
		ev = event.UnknownCTCP{Type: ctcpType, Message: message, Target: target, Host: host}
	case kindCTCPReply:
		ev = event.UnknownCTCPReply{Type: ctcpType, Message: message, Target: target, Host: host}
	case kindMessage:
		ev = event.UnknownMessage{Message: message, Target: target, Host: host}
	case kindNotice:
		ev = event.UnknownNotice{Message: message, Target: target, Host: host}
	}
	s.bus.Publish(ev)
}
