package session

import (
	"sync"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

// ListNumeric is what a list mode numeric carries, the mode it lists and if
// it is an item or the end of the list.
type ListNumeric struct {
	Mode byte
	Item bool
}

// Quirks are the ways a server family departs from the common behaviour.
type Quirks struct {
	// ListNumerics maps the numerics of list mode replies to their mode.
	ListNumerics map[string]ListNumeric
	// OpOnlyListModes are only requested when we are opped.
	OpOnlyListModes string
	// HiddenListModes are never requested.
	HiddenListModes string
	// SingleModeRequests asks for one list mode per MODE line.
	SingleModeRequests bool
	// MaxListModes is used when neither MAXLIST nor MAXBANS is advertised.
	MaxListModes int
	// SharedBanQuiet servers reply to +b and +q with the same numerics.
	SharedBanQuiet bool
	// PercentQuiet servers list quiets as bans with a leading %.
	PercentQuiet bool
	// DefaultListModes are prepended to the guessed CHANMODES list group.
	DefaultListModes string
}

// listModeNumerics are every numeric any family uses for list replies.
var listModeNumerics = []string{
	irc.RPL_BANLIST, irc.RPL_ENDOFBANLIST,
	irc.RPL_EXCEPTLIST, irc.RPL_ENDOFEXCEPTLIST,
	irc.RPL_INVITELIST, irc.RPL_ENDOFINVITELIST,
	irc.RPL_REOPLIST, irc.RPL_ENDOFREOPLIST,
	irc.RPL_QUIETLIST, irc.RPL_ENDOFQUIETLIST,
	irc.RPL_AUTOOPLIST, irc.RPL_ENDOFAUTOOPLIST,
	irc.RPL_SPAMFILTERLIST, irc.RPL_ENDOFSPAMFILTER,
	irc.ERR_CHANOPRIVSNEEDED,
}

func defaultListNumerics() map[string]ListNumeric {
	return map[string]ListNumeric{
		irc.RPL_BANLIST:         {'b', true},
		irc.RPL_ENDOFBANLIST:    {'b', false},
		irc.RPL_EXCEPTLIST:      {'e', true},
		irc.RPL_ENDOFEXCEPTLIST: {'e', false},
		irc.RPL_INVITELIST:      {'I', true},
		irc.RPL_ENDOFINVITELIST: {'I', false},
		irc.RPL_SPAMFILTERLIST:  {'g', true},
		irc.RPL_ENDOFSPAMFILTER: {'g', false},
		irc.RPL_REOPLIST:        {'R', true},
		irc.RPL_ENDOFREOPLIST:   {'R', false},
	}
}

func withListNumerics(overrides map[string]ListNumeric) map[string]ListNumeric {
	m := defaultListNumerics()
	for k, v := range overrides {
		m[k] = v
	}
	return m
}

// DefaultQuirks is what a server without a table entry gets.
func DefaultQuirks() Quirks {
	return Quirks{ListNumerics: defaultListNumerics()}
}

// QuirksTable holds the quirks of each server family. It is safe for
// concurrent use, the Quirks it hands out must be treated as read only.
type QuirksTable struct {
	families map[string]Quirks
	protect  sync.RWMutex
}

// NewQuirksTable creates a table filled with the known families.
func NewQuirksTable() *QuirksTable {
	q := &QuirksTable{families: make(map[string]Quirks)}

	opOnly := DefaultQuirks()
	opOnly.OpOnlyListModes = "eI"
	q.families["hybrid"] = opOnly
	q.families["charybdis"] = opOnly

	hyperion := opOnly
	hyperion.SharedBanQuiet = true
	hyperion.PercentQuiet = true
	q.families["hyperion"] = hyperion

	dancer := opOnly
	dancer.SharedBanQuiet = true
	dancer.DefaultListModes = "dqeI"
	q.families["dancer"] = dancer

	austirc := DefaultQuirks()
	austirc.DefaultListModes = "e"
	q.families["austirc"] = austirc

	unreal := DefaultQuirks()
	unreal.SingleModeRequests = true
	q.families["unreal"] = unreal
	q.families["unreal4"] = unreal

	starchat := DefaultQuirks()
	starchat.HiddenListModes = "H"
	q.families["starchat"] = starchat

	weircd := DefaultQuirks()
	weircd.MaxListModes = 50
	q.families["weircd"] = weircd

	euircd := DefaultQuirks()
	euircd.ListNumerics = withListNumerics(map[string]ListNumeric{
		irc.RPL_REOPLIST:      {'w', true},
		irc.RPL_ENDOFREOPLIST: {'w', false},
	})
	q.families["euircd"] = euircd

	oftc := DefaultQuirks()
	oftc.ListNumerics = withListNumerics(map[string]ListNumeric{
		irc.RPL_REOPLIST:      {'q', true},
		irc.RPL_ENDOFREOPLIST: {'q', false},
	})
	q.families["oftc-hybrid"] = oftc

	swift := DefaultQuirks()
	swift.ListNumerics = withListNumerics(map[string]ListNumeric{
		irc.RPL_QUIETLIST:       {'q', true},
		irc.RPL_ENDOFQUIETLIST:  {'q', false},
		irc.RPL_AUTOOPLIST:      {'a', true},
		irc.RPL_ENDOFAUTOOPLIST: {'a', false},
	})
	q.families["swiftirc"] = swift

	return q
}

// Get returns the quirks of a family, DefaultQuirks when unknown.
func (q *QuirksTable) Get(family string) Quirks {
	q.protect.RLock()
	defer q.protect.RUnlock()
	if quirks, ok := q.families[family]; ok {
		return quirks
	}
	return DefaultQuirks()
}

// Set adds or replaces the quirks of a family. A nil ListNumerics gets the
// common numerics.
func (q *QuirksTable) Set(family string, quirks Quirks) {
	if quirks.ListNumerics == nil {
		quirks.ListNumerics = defaultListNumerics()
	}
	q.protect.Lock()
	defer q.protect.Unlock()
	q.families[family] = quirks
}

// Families returns the names of every family with an entry.
func (q *QuirksTable) Families() []string {
	q.protect.RLock()
	defer q.protect.RUnlock()
	list := make([]string, 0, len(q.families))
	for name := range q.families {
		list = append(list, name)
	}
	return list
}

// RegisterQuirks adds or replaces the quirks of a server family for this
// session, family being a ServerType name.
func (s *Session) RegisterQuirks(family string, quirks Quirks) {
	s.quirks.Set(family, quirks)
}
