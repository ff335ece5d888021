package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// handleNames adds everyone in a 353 to the channel. The first 353 after a
// 366 replaces the members rather than adding to them.
//
// :server 353 me = #chan :@op +voice nick!ident@host
func (s *Session) handleNames(ev *irc.Event) error {
	if len(ev.Tokens) < 6 {
		return nil
	}
	ch := s.reg.FindChannel(ev.Arg(4))
	if ch == nil {
		return nil
	}

	if !ch.AddingNames() {
		ch.Empty()
	}
	ch.SetAddingNames(true)

	for _, name := range strings.Split(ev.Trailing(), " ") {
		if len(name) == 0 {
			continue
		}

		host, bits := s.splitNamesPrefix(name)
		if len(host) == 0 {
			continue
		}
		client := s.reg.FindClient(host)
		if client == nil {
			client = data.NewClient(host)
			s.reg.AddClient(client)
		}
		client.SetUserBits(host, false, false)

		cc := ch.AddClient(client)
		cc.SetModes(bits)
	}
	return nil
}

// splitNamesPrefix takes every leading prefix glyph off a NAMES entry, there
// may be several with multi-prefix.
func (s *Session) splitNamesPrefix(name string) (string, uint64) {
	var bits uint64
	for i := 0; i < len(name); i++ {
		mode, ok := s.table.GlyphMode(name[i])
		if !ok {
			return name[i:], bits
		}
		if bit, ok := s.table.PrefixBit(mode); ok {
			bits |= bit
		}
	}
	return "", bits
}

// handleEndOfNames is the 366, list modes are asked for the first time
// round if that is wanted.
func (s *Session) handleEndOfNames(ev *irc.Event) error {
	if len(ev.Tokens) < 4 {
		return nil
	}
	ch := s.reg.FindChannel(ev.Arg(3))
	if ch == nil {
		return nil
	}

	ch.SetAddingNames(false)
	s.bus.Publish(event.ChannelGotNames{Channel: ch})

	if !ch.HasAskedForListModes() && s.autoListMode.Load() {
		if err := s.RequestListModes(ch); err != nil {
			s.debug(event.DebugSocket, "list mode request failed", "channel", ch.Name(), "err", err)
		}
	}
	return nil
}

// handleCreationTime: :server 329 me #chan 1234567890
func (s *Session) handleCreationTime(ev *irc.Event) error {
	if len(ev.Tokens) < 5 {
		return nil
	}
	ch := s.reg.FindChannel(ev.Arg(3))
	if ch == nil {
		return nil
	}
	t, err := strconv.ParseInt(ev.Arg(4), 10, 64)
	if err != nil {
		s.reportf(irc.Warning, "Invalid channel creation time: %s", ev.Arg(4))
		return nil
	}
	ch.SetCreateTime(t)
	return nil
}

// handleTopic takes care of TOPIC changes and the 332/333 pair sent on
// join. The event for a join is only published once the 333 arrives.
func (s *Session) handleTopic(ev *irc.Event) error {
	switch ev.Name {
	case irc.RPL_TOPIC:
		if len(ev.Tokens) < 5 {
			return nil
		}
		if ch := s.reg.FindChannel(ev.Arg(3)); ch != nil {
			ch.SetTopic(ev.Trailing())
		}

	case irc.RPL_TOPICWHOTIME:
		if len(ev.Tokens) < 4 {
			return nil
		}
		ch := s.reg.FindChannel(ev.Arg(3))
		if ch == nil {
			return nil
		}
		if len(ev.Tokens) > 4 {
			ch.SetTopicSetter(ev.Arg(4))
		}
		if len(ev.Tokens) > 5 {
			if t, err := strconv.ParseInt(ev.Arg(5), 10, 64); err == nil {
				ch.SetTopicTime(t)
			}
		}
		s.bus.Publish(event.ChannelTopic{Channel: ch, OnJoin: true})

	default:
		if len(ev.Tokens) < 3 {
			return nil
		}
		s.lookupSender(ev)
		ch := s.reg.FindChannel(ev.Arg(2))
		if ch == nil {
			return nil
		}
		var topic string
		if len(ev.Tokens) > 3 {
			topic = ev.Trailing()
		}
		ch.SetTopicTime(time.Now().Unix())
		ch.SetTopicSetter(ev.Sender)
		ch.SetTopic(topic)
		s.bus.Publish(event.ChannelTopic{Channel: ch, OnJoin: false})
	}
	return nil
}
