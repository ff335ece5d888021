package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

const (
	defaultChanModeBools = "imnpstrc"
	defaultUserSettable  = "bklimnpstrc"
	defaultMaxModes      = 1
)

func (s *Session) handleCreated(ev *irc.Event) error {
	s.info.ParseCreated(ev)
	return nil
}

func (s *Session) handleMyInfo(ev *irc.Event) error {
	s.info.ParseMyInfo(ev)
	s.parseUserModes()
	return nil
}

// handleISupport stores every token of a 005 and re-derives the tables the
// recognised keys describe.
func (s *Session) handleISupport(ev *irc.Event) error {
	for _, tok := range s.info.ParseISupport(ev) {
		s.debug(event.DebugCapabilities, "isupport", "key", tok.Key, "value", tok.Value)

		switch tok.Key {
		case irc.CAP_NETWORK:
			if tok.Negated {
				continue
			}
			s.info.SetNetworkName(tok.Value)
			s.bus.Publish(event.GotNetwork{
				Network: tok.Value,
				Server:  s.ServerName(),
				IRCD:    s.ServerType(),
			})
		case irc.CAP_CASEMAPPING:
			s.parseCaseMapping(tok.Value)
		case irc.CAP_CHANTYPES:
			s.parseChanPrefix()
		case irc.CAP_PREFIX:
			s.parsePrefixModes()
		case irc.CAP_CHANMODES:
			s.parseChanModes()
		case irc.CAP_LISTMODE:
			if !tok.Negated {
				s.enableListMode(tok.Value)
			}
		}
	}
	return nil
}

// parseCaseMapping replaces the case mapper, re-keying everything known.
func (s *Session) parseCaseMapping(value string) {
	limit, ok := irc.CaseMapping(value)
	if !ok && len(value) > 0 {
		s.reportf(irc.Warning, "Unknown casemapping: '%s' - assuming rfc1459", value)
	}
	for _, nick := range s.reg.SetCaseMapper(irc.NewCaseMapper(limit)) {
		s.reportf(irc.Warning, "Casemapping change made '%s' clash with another client, it was forgotten", nick)
	}
}

// enableListMode registers the dedicated list reply numerics a server
// advertises with LISTMODE=n, items come as n and the end as n+1.
func (s *Session) enableListMode(value string) {
	n, err := strconv.Atoi(value)
	if err != nil {
		s.reportf(irc.Warning, "LISTMODE value is not a numeric: '%s'", value)
		return
	}

	item, end := fmt.Sprintf("%03d", n), fmt.Sprintf("%03d", n+1)
	s.info.Set(irc.CAP_LISTMODE, item)
	s.info.Set(irc.CAP_LISTMODEEND, end)
	s.dispatcher.RegisterFunc(item, s.handleListMode)
	s.dispatcher.RegisterFunc(end, s.handleListMode)
}

// callPost005 ends capability negotiation, filling in defaults for anything
// the server never said. It only ever runs once per connection.
func (s *Session) callPost005() {
	if s.post005.Swap(true) {
		return
	}

	if !s.info.Has(irc.CAP_CHANTYPES) {
		s.parseChanPrefix()
	}
	if !s.info.Has(irc.CAP_PREFIX) {
		s.parsePrefixModes()
	}
	if !s.info.Has(irc.CAP_USERMODES) {
		s.parseUserModes()
	}
	if !s.info.Has(irc.CAP_CHANMODES) {
		s.parseChanModes()
	}

	s.debug(event.DebugCapabilities, "negotiation done", "ircd", s.ServerType())
	s.bus.Publish(event.Post005{})
}

// defaultChanModes builds a CHANMODES value for servers that do not send
// one. Servers that listed their channel modes in 004 have them used as
// booleans.
func (s *Session) defaultChanModes() string {
	userChanModes, ok := s.info.Get(irc.CAP_USERCHANMODES)
	if !ok {
		return "b,k,l," + defaultChanModeBools
	}

	var b strings.Builder
	b.WriteString(s.serverQuirks().DefaultListModes)
	b.WriteString("b,k,l,")
	for i := 0; i < len(userChanModes); i++ {
		m := userChanModes[i]
		if _, isPrefix := s.table.PrefixBit(m); isPrefix {
			continue
		}
		if strings.IndexByte(b.String(), m) >= 0 {
			continue
		}
		b.WriteByte(m)
	}
	return b.String()
}

func (s *Session) parseChanModes() {
	def := s.defaultChanModes()
	modes, ok := s.info.Get(irc.CAP_CHANMODES)
	if !ok {
		modes = def
		s.info.Set(irc.CAP_CHANMODES, def)
	}

	if err := s.table.ParseChanModes(modes); err != nil {
		s.reportf(irc.Error, "CHANMODES String not valid. Using default string of \"%s\"", def)
		s.info.Set(irc.CAP_CHANMODES, def)
		s.table.ParseChanModes(def)
	}
}

func (s *Session) parsePrefixModes() {
	prefix, ok := s.info.Get(irc.CAP_PREFIX)
	if !ok || !strings.HasPrefix(prefix, "(") {
		prefix = data.DefaultPrefix
		s.info.Set(irc.CAP_PREFIX, prefix)
	}

	if err := s.table.ParsePrefixModes(prefix); err != nil {
		s.reportf(irc.Error, "PREFIX String not valid. Using default string of \"%s\"", data.DefaultPrefix)
		s.info.Set(irc.CAP_PREFIX, data.DefaultPrefix)
		s.table.ParsePrefixModes(data.DefaultPrefix)
	}
	s.info.Set(irc.CAP_PREFIXSTRING, s.table.PrefixModes())
}

func (s *Session) parseUserModes() {
	modes, ok := s.info.Get(irc.CAP_USERMODES)
	if !ok {
		modes = data.DefaultUserModes
		s.info.Set(irc.CAP_USERMODES, modes)
	}
	s.table.ParseUserModes(modes)
}

func (s *Session) parseChanPrefix() {
	prefixes, ok := s.info.Get(irc.CAP_CHANTYPES)
	if !ok {
		prefixes = data.DefaultChanPrefix
		s.info.Set(irc.CAP_CHANTYPES, prefixes)
	}
	s.table.SetChanPrefix(prefixes)
}

// IsValidChannelName checks if a name could be a channel on this network.
// Our own nickname never is, a channel we are on always is.
func (s *Session) IsValidChannelName(name string) bool {
	if len(name) == 0 {
		return false
	}
	if s.reg.CaseMapper().Equal(name, s.Nickname()) {
		return false
	}
	if s.reg.FindChannel(name) != nil {
		return true
	}

	prefixes := s.table.ChanPrefix()
	if len(prefixes) == 0 {
		return strings.IndexByte("#&!+", name[0]) >= 0
	}
	return name == "0" || strings.IndexByte(prefixes, name[0]) >= 0
}

// IsUserSettable checks if a channel mode can be set by users, as opposed
// to only by the server.
func (s *Session) IsUserSettable(mode byte) bool {
	modes, ok := s.info.Get(irc.CAP_USERCHANMODES)
	if !ok {
		modes = defaultUserSettable
	}
	return strings.IndexByte(modes, mode) >= 0
}

// MaxModes returns how many parameterised modes fit in one MODE line.
func (s *Session) MaxModes() int {
	if n, ok := s.info.Int(irc.CAP_MODES); ok && n > 0 {
		return n
	}
	return defaultMaxModes
}

// MaxTopicLength returns TOPICLEN, 0 when unknown.
func (s *Session) MaxTopicLength() int {
	n, _ := s.info.Int("TOPICLEN")
	return n
}

// MaxListModes returns how many entries a list mode may hold, -1 if that
// can not be worked out. MAXLIST is preferred over MAXBANS.
func (s *Session) MaxListModes(mode byte) int {
	if maxlist, ok := s.info.Get(irc.CAP_MAXLIST); ok {
		result := -1
		for _, part := range strings.Split(maxlist, ",") {
			bits := strings.SplitN(part, ":", 2)
			if len(bits) != 2 || strings.IndexByte(bits[0], mode) < 0 {
				continue
			}
			if n, err := strconv.Atoi(bits[1]); err == nil {
				result = n
			}
			break
		}
		if result >= 0 {
			return result
		}
		if !s.info.Has(irc.CAP_MAXBANS) {
			return 0
		}
	}

	if n, ok := s.info.Int(irc.CAP_MAXBANS); ok {
		return n
	}
	if n := s.serverQuirks().MaxListModes; n > 0 {
		return n
	}

	s.reportf(irc.Error, "Unable to discover max list modes.")
	return -1
}
