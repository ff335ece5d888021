package irc

import "strings"

// Casemapping limits. The limit is the number of characters after the
// alphabet that are also folded: [ ] \ and ~ map to { } | and ^.
const (
	CaseASCII         = 0
	CaseStrictRFC1459 = 3
	CaseRFC1459       = 4
)

// CaseMapper folds nicknames and channel names according to one of the irc
// casemappings. It is immutable once created and safe to share.
type CaseMapper struct {
	limit int
	lower [127]byte
	upper [127]byte
}

// NewCaseMapper builds the translation tables for the given limit. Limits
// outside of 0-4 are clamped.
func NewCaseMapper(limit int) *CaseMapper {
	if limit < 0 {
		limit = 0
	} else if limit > CaseRFC1459 {
		limit = CaseRFC1459
	}

	c := &CaseMapper{limit: limit}
	for i := 0; i < len(c.lower); i++ {
		c.lower[i] = byte(i)
		c.upper[i] = byte(i)
	}
	for i := 'A'; i <= 'Z'+rune(limit); i++ {
		c.lower[i] = byte(i + 32)
	}
	for i := 'a'; i <= 'z'+rune(limit); i++ {
		c.upper[i] = byte(i - 32)
	}
	return c
}

// CaseMapping returns the limit for a CASEMAPPING value. Unknown names
// return the rfc1459 limit and false.
func CaseMapping(name string) (int, bool) {
	switch strings.ToLower(name) {
	case "ascii":
		return CaseASCII, true
	case "strict-rfc1459":
		return CaseStrictRFC1459, true
	case "rfc1459":
		return CaseRFC1459, true
	}
	return CaseRFC1459, false
}

// Limit returns the number of extra characters folded.
func (c *CaseMapper) Limit() int {
	return c.limit
}

// ToLower folds a string to lower case.
func (c *CaseMapper) ToLower(s string) string {
	return c.mapString(s, &c.lower)
}

// ToUpper folds a string to upper case.
func (c *CaseMapper) ToUpper(s string) string {
	return c.mapString(s, &c.upper)
}

func (c *CaseMapper) mapString(s string, table *[127]byte) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 127 || table[ch] == ch {
			if b != nil {
				b[i] = ch
			}
			continue
		}
		if b == nil {
			b = make([]byte, len(s))
			copy(b, s[:i])
		}
		b[i] = table[ch]
	}
	if b == nil {
		return s
	}
	return string(b)
}

// Equal compares two strings case insensitively.
func (c *CaseMapper) Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if x < 127 {
			x = c.lower[x]
		}
		if y < 127 {
			y = c.lower[y]
		}
		if x != y {
			return false
		}
	}
	return true
}
