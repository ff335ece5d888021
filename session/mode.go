package session

import (
	"strings"
	"time"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// handleMode applies MODE lines and the 324/221 replies.
//
//	:nick!ident@host MODE #chan +ov-k nick nick key
//	:server 324 me #chan +ntk key
//	:server 221 me +iw
func (s *Session) handleMode(ev *irc.Event) error {
	switch ev.Name {
	case irc.RPL_UMODEIS:
		if len(ev.Tokens) < 4 {
			return nil
		}
		s.processUserMode(ev, ev.Trailing(), true)
		return nil
	case irc.RPL_CHANNELMODEIS:
		if len(ev.Tokens) < 5 {
			return nil
		}
		s.processChannelMode(ev, ev.Arg(3), ev.Tokens[4:], true)
		return nil
	}

	if len(ev.Tokens) < 4 {
		return nil
	}
	target := ev.Arg(2)
	if !s.IsValidChannelName(target) {
		s.processUserMode(ev, ev.Arg(3), false)
		return nil
	}
	s.processChannelMode(ev, target, ev.Tokens[3:], false)
	return nil
}

// processUserMode applies a user mode string to the client named in the
// third token. Unknown modes are learned.
func (s *Session) processUserMode(ev *irc.Event, modes string, discovered bool) {
	client := s.reg.FindClient(ev.Arg(2))
	if client == nil {
		return
	}

	var current uint64
	if !discovered {
		current = client.Modes()
	}

	positive := true
	for i := 0; i < len(modes); i++ {
		m := modes[i]
		switch m {
		case '+':
			positive = true
			continue
		case '-':
			positive = false
			continue
		case ':':
			continue
		}

		bit, ok := s.table.UserBit(m)
		if !ok {
			s.reportf(irc.Warning, "Got unknown user mode %c - Added", m)
			bit = s.table.AddUserMode(m)
		}
		if positive {
			current |= bit
		} else {
			current &^= bit
		}
	}
	client.SetModes(current)

	if discovered {
		s.bus.Publish(event.UserModeDiscovered{Client: client, Modes: modes})
		return
	}
	s.bus.Publish(event.UserModeChanged{Client: client, Host: ev.Sender, Modes: modes})
}

// processChannelMode applies a channel mode string and its parameters. A
// 324 describes every mode so the current booleans start out empty.
func (s *Session) processChannelMode(ev *irc.Event, name string, modeTokens []string, is324 bool) {
	ch := s.reg.FindChannel(name)
	if ch == nil {
		return
	}

	var setter *data.ChannelClient
	var host string
	current := ch.Modes()
	if is324 {
		current = 0
	} else {
		host = ev.Sender
		setter = ch.Member(host)
		if setter != nil && len(setter.Client().Host()) == 0 {
			setter.Client().SetUserBits(host, false, false)
		}
	}

	single := func(mode string) {
		s.bus.Publish(event.ChannelSingleModeChanged{
			Channel: ch,
			Member:  setter,
			Host:    host,
			Mode:    strings.TrimSpace(mode),
		})
	}

	modes := modeTokens[0]
	next := 1
	param := func() (string, bool) {
		if next >= len(modeTokens) {
			s.reportf(irc.Fatal|irc.User, "Broken Modes. Parameter required but not given.")
			return "", false
		}
		next++
		return modeTokens[next-1], true
	}

	var nonUser, nonUserParams strings.Builder
	positive := true
	for i := 0; i < len(modes); i++ {
		m := modes[i]
		sign := "-"
		if positive {
			sign = "+"
		}

		switch m {
		case ':':
			continue
		case '+', '-':
			positive = m == '+'
			nonUser.WriteByte(m)
			continue
		}

		class := s.table.Class(m)
		if class == data.ClassUnknown {
			s.reportf(irc.Warning, "Got unknown mode %c - Added as boolean mode", m)
			s.table.AddBool(m)
			class = data.ClassBoolean
		}

		switch class {
		case data.ClassBoolean:
			bit, _ := s.table.BoolBit(m)
			if positive {
				current |= bit
			} else {
				current &^= bit
			}
			nonUser.WriteByte(m)

		case data.ClassPrefix:
			nick, ok := param()
			if !ok {
				return
			}
			bit, _ := s.table.PrefixBit(m)
			cc := s.memberForMode(ch, nick)
			if positive {
				cc.SetModes(cc.Modes() | bit)
			} else {
				cc.SetModes(cc.Modes() &^ bit)
			}
			s.debug(event.DebugInfoCat, "user mode", "channel", ch.Name(), "nick", nick, "mode", sign+string(m))
			s.bus.Publish(event.ChannelUserModeChanged{
				Channel: ch,
				Member:  cc,
				Setter:  setter,
				Host:    host,
				Mode:    sign + string(m),
			})

		case data.ClassParam:
			kind, _ := s.table.ParamKind(m)
			nonUser.WriteByte(m)
			if !positive && kind&(data.ModeList|data.ModeUnset) == 0 {
				ch.SetModeParam(m, "")
				single(sign + string(m))
				continue
			}

			value, ok := param()
			if !ok {
				return
			}
			nonUserParams.WriteByte(' ')
			nonUserParams.WriteString(value)

			switch {
			case kind&data.ModeList != 0:
				item := data.NewListModeItem(value, host, time.Now().Unix())
				s.setListModeParam(ch, m, item, positive)
			case positive:
				ch.SetModeParam(m, value)
			default:
				ch.SetModeParam(m, "")
			}
			single(sign + string(m) + " " + value)
		}
	}

	ch.SetModes(current)
	s.bus.Publish(event.ChannelModeChanged{
		Channel: ch,
		Member:  setter,
		Host:    host,
		Modes:   strings.TrimSpace(strings.Join(modeTokens, " ")),
	})
	if !is324 {
		s.bus.Publish(event.ChannelNonUserModeChanged{
			Channel: ch,
			Member:  setter,
			Host:    host,
			Modes:   strings.TrimSpace(nonUser.String() + nonUserParams.String()),
		})
	}
}

// memberForMode finds the member a prefix mode is about, anyone we did not
// know about is added.
func (s *Session) memberForMode(ch *data.Channel, nick string) *data.ChannelClient {
	if cc := ch.Member(nick); cc != nil {
		return cc
	}
	client := s.reg.FindClient(nick)
	if client == nil {
		client = data.NewClient(nick)
		s.reg.AddClient(client)
	}
	return ch.AddClient(client)
}
