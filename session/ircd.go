package session

import (
	"regexp"
	"strings"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

// ircdPattern maps a version string pattern to a server family, the first
// match wins so more specific patterns come first.
type ircdPattern struct {
	re   *regexp.Regexp
	name string
}

var ircdPatterns = []ircdPattern{
	{regexp.MustCompile(`(?i)unreal[^4-9]`), "unreal"},
	{regexp.MustCompile(`(?i)unreal[4-9]`), "unreal4"},
	{regexp.MustCompile(`(?i)bahamut`), "bahamut"},
	{regexp.MustCompile(`(?i)nefarious`), "nefarious"},
	{regexp.MustCompile(`(?i)asuka`), "asuka"},
	{regexp.MustCompile(`(?i)snircd`), "snircd"},
	{regexp.MustCompile(`(?i)beware`), "bircd"},
	{regexp.MustCompile(`(?i)u2\.[0-9]+\.H\.`), "irchispano"},
	{regexp.MustCompile(`(?i)u2\.[0-9]+\.`), "ircu"},
	{regexp.MustCompile(`(?i)ircu`), "ircu"},
	{regexp.MustCompile(`(?i)plexus`), "plexus"},
	{regexp.MustCompile(`(?i)hybrid.*oftc`), "oftc-hybrid"},
	{regexp.MustCompile(`(?i)ircd.hybrid`), "hybrid7"},
	{regexp.MustCompile(`(?i)hybrid`), "hybrid"},
	{regexp.MustCompile(`(?i)charybdis`), "charybdis"},
	{regexp.MustCompile(`(?i)inspircd`), "inspircd"},
	{regexp.MustCompile(`(?i)ultimateircd`), "ultimateircd"},
	{regexp.MustCompile(`(?i)critenircd`), "critenircd"},
	{regexp.MustCompile(`(?i)fqircd`), "fqircd"},
	{regexp.MustCompile(`(?i)conferenceroom`), "conferenceroom"},
	{regexp.MustCompile(`(?i)hyperion`), "hyperion"},
	{regexp.MustCompile(`(?i)dancer`), "dancer"},
	{regexp.MustCompile(`(?i)austhex`), "austhex"},
	{regexp.MustCompile(`(?i)austirc`), "austirc"},
	{regexp.MustCompile(`(?i)ratbox`), "ratbox"},
	{regexp.MustCompile(`(?i)euircd`), "euircd"},
	{regexp.MustCompile(`(?i)weircd`), "weircd"},
	{regexp.MustCompile(`(?i)swiftirc`), "swiftirc"},
}

// Networks that are recognised by name when the version string says
// nothing useful.
var ircdNetworks = map[string]string{
	"ircnet":   "ircnet",
	"starchat": "starchat",
	"bitlbee":  "bitlbee",
}

var bitlbeeCreated = regexp.MustCompile(`(?i)bitlbee`)

// ServerVersion returns the version string from 004, empty if unknown.
func (s *Session) ServerVersion() string {
	v, _ := s.info.Get(irc.CAP_004IRCD)
	return v
}

// ServerType returns the server family, e.g. "hybrid" or "unreal4". It is
// "generic" when nothing matched.
func (s *Session) ServerType() string {
	return detectIRCD(s.ServerVersion(), s.NetworkName(), s.info)
}

// detectIRCD classifies a server by its version string, then its network
// name, then the text of 003.
func detectIRCD(version, network string, info *irc.NetworkInfo) string {
	if len(version) == 0 {
		return "generic"
	}
	for _, p := range ircdPatterns {
		if p.re.MatchString(version) {
			return p.name
		}
	}

	if name, ok := ircdNetworks[strings.ToLower(network)]; ok {
		return name
	}
	if created, ok := info.Get(irc.CAP_003IRCD); ok && bitlbeeCreated.MatchString(created) {
		return "bitlbee"
	}
	return "generic"
}

// serverQuirks returns the quirks of the server we are talking to.
func (s *Session) serverQuirks() Quirks {
	return s.quirks.Get(s.ServerType())
}
