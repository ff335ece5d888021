package session

import (
	"sync"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

// IgnoreList holds wildcard host masks whose messages are dropped before
// any event is published for them.
type IgnoreList struct {
	protect sync.RWMutex
	masks   []irc.Mask
	mapper  func() *irc.CaseMapper
}

// NewIgnoreList creates an empty list. mapper is asked for the current case
// mapping on every match so a CASEMAPPING change applies at once.
func NewIgnoreList(mapper func() *irc.CaseMapper) *IgnoreList {
	return &IgnoreList{mapper: mapper}
}

// Add appends a mask, adding the same mask twice has no effect.
func (l *IgnoreList) Add(mask string) {
	if len(mask) == 0 {
		return
	}
	l.protect.Lock()
	defer l.protect.Unlock()
	for _, m := range l.masks {
		if string(m) == mask {
			return
		}
	}
	l.masks = append(l.masks, irc.Mask(mask))
}

// Remove deletes a mask and reports if it was there.
func (l *IgnoreList) Remove(mask string) bool {
	l.protect.Lock()
	defer l.protect.Unlock()
	for i, m := range l.masks {
		if string(m) == mask {
			l.masks = append(l.masks[:i], l.masks[i+1:]...)
			return true
		}
	}
	return false
}

// Masks returns a copy of the list.
func (l *IgnoreList) Masks() []string {
	l.protect.RLock()
	defer l.protect.RUnlock()
	masks := make([]string, len(l.masks))
	for i, m := range l.masks {
		masks[i] = string(m)
	}
	return masks
}

// Matches checks a host against every mask.
func (l *IgnoreList) Matches(host irc.Host) bool {
	l.protect.RLock()
	defer l.protect.RUnlock()
	if len(l.masks) == 0 || len(host) == 0 {
		return false
	}

	var cm *irc.CaseMapper
	if l.mapper != nil {
		cm = l.mapper()
	}
	for _, m := range l.masks {
		if m.Match(cm, host) {
			return true
		}
	}
	return false
}
