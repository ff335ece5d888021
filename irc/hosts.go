package irc

import (
	"strings"

	"github.com/ergochat/irc-go/ircmsg"
)

// Host is a nickname!ident@hostname as sent in the prefix of a line, a
// leading : is tolerated everywhere.
type Host string

// Nick returns the nickname part of the host.
func (h Host) Nick() string {
	nick, _, _ := h.Split()
	return nick
}

// Ident returns the ident (username) part of the host.
func (h Host) Ident() string {
	_, ident, _ := h.Split()
	return ident
}

// Hostname returns the hostname part of the host.
func (h Host) Hostname() string {
	_, _, hostname := h.Split()
	return hostname
}

// Split breaks the host into nickname, ident and hostname. The hostname is cut
// off at the first @ and the ident at the first ! before it. Missing parts are
// returned as empty strings.
func (h Host) Split() (nick, ident, hostname string) {
	nuh, err := ircmsg.ParseNUH(strings.TrimPrefix(string(h), ":"))
	if err != nil {
		return "", "", ""
	}
	return nuh.Name, nuh.User, nuh.Host
}

// String returns the host without a leading colon.
func (h Host) String() string {
	return strings.TrimPrefix(string(h), ":")
}

// ParseHost returns only the nickname from a host.
func ParseHost(host string) string {
	return Host(host).Nick()
}

// Mask is an irc hostmask that contains wildcard characters ? and *
type Mask string

// Match checks if the mask is satisfied by the host, both are folded with the
// given CaseMapper first. A nil CaseMapper compares exactly.
func (m Mask) Match(c *CaseMapper, h Host) bool {
	hs, ms := h.String(), string(m)
	if c != nil {
		hs, ms = c.ToLower(hs), c.ToLower(ms)
	}
	return isMatch(hs, ms)
}

// isMatch is a matching function for a string, and a string with the wildcards
// * and ? in it.
func isMatch(hs, ms string) bool {
	ml, hl := len(ms), len(hs)

	if ml == 0 {
		return hl == 0
	}

	var i, j, consume = 0, 0, 0
	for i < ml && j < hl {

		switch ms[i] {
		case '?', '*':
			star := false
			consume = 0

			for i < ml && (ms[i] == '*' || ms[i] == '?') {
				star = star || ms[i] == '*'
				i++
				consume++
			}

			if star {
				consume = -1
			}
		case hs[j]:
			consume = 0
			i++
			j++
		default:
			if consume != 0 {
				consume--
				j++
			} else {
				return false
			}
		}
	}

	for i < ml && (ms[i] == '?' || ms[i] == '*') {
		i++
	}

	if consume < 0 {
		consume = hl - j
	}
	j += consume

	if i < ml || j < hl {
		return false
	}

	return true
}
