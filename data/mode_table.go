package data

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ModeKind describes when a parameterised channel mode takes an argument,
// the values may be combined.
type ModeKind int

// The kinds of parameterised channel modes.
const (
	// ModeList modes keep a list of items, each item is added and removed
	// with an argument.
	ModeList ModeKind = 1
	// ModeSet modes take an argument when set.
	ModeSet ModeKind = 2
	// ModeUnset modes take an argument when unset.
	ModeUnset ModeKind = 4
)

// ModeClass is what a character in a channel mode string refers to.
type ModeClass int

// The classes of channel mode characters.
const (
	ClassUnknown ModeClass = iota
	ClassBoolean
	ClassParam
	ClassPrefix
)

// Defaults used when the server does not advertise a value.
const (
	DefaultPrefix     = "(ohv)@%+"
	DefaultUserModes  = "nwdoi"
	DefaultChanPrefix = "#&"
)

var (
	// ErrChanModesParts is returned when CHANMODES has fewer than 4 groups.
	ErrChanModesParts = errors.New("data: CHANMODES needs 4 comma separated groups")
	// ErrPrefixFormat is returned when PREFIX does not start with (modes).
	ErrPrefixFormat = errors.New("data: PREFIX is not of the form (modes)prefixes")
	// ErrPrefixMismatch is returned when PREFIX has a different number of
	// modes and prefixes.
	ErrPrefixMismatch = errors.New("data: PREFIX modes and prefixes differ in length")
)

// ModeTable holds the negotiated meaning of every mode character. Boolean,
// prefix and user modes each get a bit from their own sequence of powers of
// two, in the order they were discovered.
type ModeTable struct {
	boolModes    map[byte]uint64
	paramModes   map[byte]ModeKind
	prefixModes  map[byte]uint64
	prefixGlyphs map[byte]byte
	glyphModes   map[byte]byte
	prefixOrder  string
	userModes    map[byte]uint64
	chanPrefix   string

	nextBool   uint64
	nextPrefix uint64
	nextUser   uint64

	protect sync.RWMutex
}

// NewModeTable creates an empty mode table.
func NewModeTable() *ModeTable {
	t := &ModeTable{}
	t.Reset()
	return t
}

// Reset forgets every mode.
func (t *ModeTable) Reset() {
	t.protect.Lock()
	defer t.protect.Unlock()

	t.boolModes = make(map[byte]uint64)
	t.paramModes = make(map[byte]ModeKind)
	t.prefixModes = make(map[byte]uint64)
	t.prefixGlyphs = make(map[byte]byte)
	t.glyphModes = make(map[byte]byte)
	t.userModes = make(map[byte]uint64)
	t.prefixOrder = ""
	t.chanPrefix = ""
	t.nextBool, t.nextPrefix, t.nextUser = 1, 1, 1
}

// ParseChanModes replaces the channel mode tables with a CHANMODES value.
// The table is left untouched if the value is malformed.
func (t *ModeTable) ParseChanModes(chanmodes string) error {
	parts := strings.SplitN(chanmodes, ",", 5)
	if len(parts) < 4 {
		return errors.Wrapf(ErrChanModesParts, "given: %q", chanmodes)
	}
	t.SetChanModes(parts[0], parts[1], parts[2], parts[3])
	return nil
}

// SetChanModes replaces the channel mode tables. The boolean bits are
// reassigned from the start.
func (t *ModeTable) SetChanModes(list, setUnset, setOnly, boolean string) {
	t.protect.Lock()
	defer t.protect.Unlock()

	t.boolModes = make(map[byte]uint64, len(boolean))
	t.paramModes = make(map[byte]ModeKind, len(list)+len(setUnset)+len(setOnly))
	t.nextBool = 1

	for i := 0; i < len(list); i++ {
		t.paramModes[list[i]] = ModeList
	}
	for i := 0; i < len(setUnset); i++ {
		t.paramModes[setUnset[i]] = ModeSet | ModeUnset
	}
	for i := 0; i < len(setOnly); i++ {
		t.paramModes[setOnly[i]] = ModeSet
	}
	for i := 0; i < len(boolean); i++ {
		t.addBool(boolean[i])
	}
}

// ParsePrefixModes replaces the prefix mode table with a PREFIX value. The
// lowest ranked mode (the last) gets the lowest bit. The table is left
// untouched if the value is malformed.
func (t *ModeTable) ParsePrefixModes(prefix string) error {
	if len(prefix) == 0 || prefix[0] != '(' {
		return errors.Wrapf(ErrPrefixFormat, "given: %q", prefix)
	}

	split := strings.IndexByte(prefix, ')')
	if split < 0 {
		return errors.Wrapf(ErrPrefixFormat, "given: %q", prefix)
	}
	modes, glyphs := prefix[1:split], prefix[split+1:]
	if len(modes) != len(glyphs) {
		return errors.Wrapf(ErrPrefixMismatch, "given: %q", prefix)
	}

	t.protect.Lock()
	defer t.protect.Unlock()

	t.prefixModes = make(map[byte]uint64, len(modes))
	t.prefixGlyphs = make(map[byte]byte, len(modes))
	t.glyphModes = make(map[byte]byte, len(modes))
	t.prefixOrder = modes
	t.nextPrefix = 1

	for i := len(modes) - 1; i >= 0; i-- {
		t.prefixModes[modes[i]] = t.nextPrefix
		t.prefixGlyphs[modes[i]] = glyphs[i]
		t.glyphModes[glyphs[i]] = modes[i]
		t.nextPrefix <<= 1
	}
	return nil
}

// ParseUserModes replaces the user mode table.
func (t *ModeTable) ParseUserModes(modes string) {
	t.protect.Lock()
	defer t.protect.Unlock()

	t.userModes = make(map[byte]uint64, len(modes))
	t.nextUser = 1
	for i := 0; i < len(modes); i++ {
		t.addUser(modes[i])
	}
}

// SetChanPrefix sets the characters a channel name may start with.
func (t *ModeTable) SetChanPrefix(prefixes string) {
	t.protect.Lock()
	defer t.protect.Unlock()
	t.chanPrefix = prefixes
}

// ChanPrefix returns the characters a channel name may start with.
func (t *ModeTable) ChanPrefix() string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return t.chanPrefix
}

// Class looks up what a channel mode character means. Prefix modes take
// precedence over everything else.
func (t *ModeTable) Class(mode byte) ModeClass {
	t.protect.RLock()
	defer t.protect.RUnlock()

	if _, ok := t.prefixModes[mode]; ok {
		return ClassPrefix
	}
	if _, ok := t.paramModes[mode]; ok {
		return ClassParam
	}
	if _, ok := t.boolModes[mode]; ok {
		return ClassBoolean
	}
	return ClassUnknown
}

// BoolBit returns the bit of a boolean channel mode.
func (t *ModeTable) BoolBit(mode byte) (uint64, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	bit, ok := t.boolModes[mode]
	return bit, ok
}

// AddBool registers a boolean channel mode that the server never announced
// and returns its bit. An already known mode keeps its bit.
func (t *ModeTable) AddBool(mode byte) uint64 {
	t.protect.Lock()
	defer t.protect.Unlock()
	if bit, ok := t.boolModes[mode]; ok {
		return bit
	}
	return t.addBool(mode)
}

func (t *ModeTable) addBool(mode byte) uint64 {
	bit := t.nextBool
	t.boolModes[mode] = bit
	t.nextBool <<= 1
	return bit
}

// ParamKind returns the kind of a parameterised channel mode.
func (t *ModeTable) ParamKind(mode byte) (ModeKind, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	kind, ok := t.paramModes[mode]
	return kind, ok
}

// IsListMode checks if the mode is a list mode.
func (t *ModeTable) IsListMode(mode byte) bool {
	kind, ok := t.ParamKind(mode)
	return ok && kind&ModeList != 0
}

// PrefixBit returns the bit of a prefix mode.
func (t *ModeTable) PrefixBit(mode byte) (uint64, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	bit, ok := t.prefixModes[mode]
	return bit, ok
}

// PrefixGlyph returns the display prefix of a prefix mode, @ for o.
func (t *ModeTable) PrefixGlyph(mode byte) (byte, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	glyph, ok := t.prefixGlyphs[mode]
	return glyph, ok
}

// GlyphMode returns the prefix mode for a display prefix, o for @.
func (t *ModeTable) GlyphMode(glyph byte) (byte, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	mode, ok := t.glyphModes[glyph]
	return mode, ok
}

// UserBit returns the bit of a user mode.
func (t *ModeTable) UserBit(mode byte) (uint64, bool) {
	t.protect.RLock()
	defer t.protect.RUnlock()
	bit, ok := t.userModes[mode]
	return bit, ok
}

// AddUserMode registers a user mode that the server never announced and
// returns its bit. An already known mode keeps its bit.
func (t *ModeTable) AddUserMode(mode byte) uint64 {
	t.protect.Lock()
	defer t.protect.Unlock()
	if bit, ok := t.userModes[mode]; ok {
		return bit
	}
	return t.addUser(mode)
}

func (t *ModeTable) addUser(mode byte) uint64 {
	bit := t.nextUser
	t.userModes[mode] = bit
	t.nextUser <<= 1
	return bit
}

// ModesOfKind returns the sorted parameterised modes whose kind is exactly
// the one given.
func (t *ModeTable) ModesOfKind(kind ModeKind) string {
	t.protect.RLock()
	defer t.protect.RUnlock()

	var b []byte
	for m, k := range t.paramModes {
		if k == kind {
			b = append(b, m)
		}
	}
	return sortedString(b)
}

// ListModes returns the sorted list modes.
func (t *ModeTable) ListModes() string {
	return t.ModesOfKind(ModeList)
}

// BoolModes returns the sorted boolean channel modes.
func (t *ModeTable) BoolModes() string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return sortedKeys(t.boolModes)
}

// UserModes returns the sorted user modes.
func (t *ModeTable) UserModes() string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return sortedKeys(t.userModes)
}

// PrefixModes returns the prefix modes highest ranked first.
func (t *ModeTable) PrefixModes() string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return t.prefixOrder
}

// IsPrefixGlyph checks if the character is a display prefix like @.
func (t *ModeTable) IsPrefixGlyph(glyph byte) bool {
	_, ok := t.GlyphMode(glyph)
	return ok
}

// BoolString renders the boolean modes set in bits, sorted.
func (t *ModeTable) BoolString(bits uint64) string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return bitString(t.boolModes, bits)
}

// UserString renders the user modes set in bits, sorted.
func (t *ModeTable) UserString(bits uint64) string {
	t.protect.RLock()
	defer t.protect.RUnlock()
	return bitString(t.userModes, bits)
}

// PrefixModeString renders the prefix modes set in bits highest first.
func (t *ModeTable) PrefixModeString(bits uint64) string {
	modes, _ := t.prefixStrings(bits)
	return modes
}

// PrefixGlyphString renders the display prefixes set in bits highest first.
func (t *ModeTable) PrefixGlyphString(bits uint64) string {
	_, glyphs := t.prefixStrings(bits)
	return glyphs
}

func (t *ModeTable) prefixStrings(bits uint64) (string, string) {
	t.protect.RLock()
	defer t.protect.RUnlock()

	var modes, glyphs []byte
	for i := 0; i < len(t.prefixOrder); i++ {
		m := t.prefixOrder[i]
		if bits&t.prefixModes[m] != 0 {
			modes = append(modes, m)
			glyphs = append(glyphs, t.prefixGlyphs[m])
		}
	}
	return string(modes), string(glyphs)
}

// Highest returns the highest ranked prefix mode set in bits along with its
// glyph and bit. All zero when none are set.
func (t *ModeTable) Highest(bits uint64) (mode, glyph byte, value uint64) {
	t.protect.RLock()
	defer t.protect.RUnlock()

	for m, bit := range t.prefixModes {
		if bits&bit != 0 && bit > value {
			mode, glyph, value = m, t.prefixGlyphs[m], bit
		}
	}
	return mode, glyph, value
}

func bitString(table map[byte]uint64, bits uint64) string {
	var b []byte
	for m, bit := range table {
		if bits&bit != 0 {
			b = append(b, m)
		}
	}
	return sortedString(b)
}

func sortedKeys(table map[byte]uint64) string {
	b := make([]byte, 0, len(table))
	for m := range table {
		b = append(b, m)
	}
	return sortedString(b)
}

func sortedString(b []byte) string {
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}
