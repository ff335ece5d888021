package irc

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

var (
	capsRegexp = regexp.MustCompile(`^(?i)(-)?([A-Z0-9]+)(?:=(.*))?$`)
)

// ISupportToken is one KEY, KEY=VALUE or -KEY token from an 005 line.
type ISupportToken struct {
	Key     string
	Value   string
	Negated bool
}

// NetworkInfo is used to record the server capabilities, this later aids in
// parsing irc protocol. Every key from the 005 numeric is kept verbatim, a few
// values from 003 and 004 are kept in the same map under their own keys.
type NetworkInfo struct {
	// The server's self-defined name.
	serverName string
	// The network name from NETWORK.
	networkName string
	// Everything else.
	caps map[string]string

	protect *sync.RWMutex
}

// NewNetworkInfo initializes a networkinfo struct.
func NewNetworkInfo() *NetworkInfo {
	return &NetworkInfo{
		caps:    make(map[string]string),
		protect: new(sync.RWMutex),
	}
}

// Clone safely clones this networkinfo instance.
func (p *NetworkInfo) Clone() *NetworkInfo {
	p.protect.RLock()
	defer p.protect.RUnlock()
	clone := *p
	clone.caps = make(map[string]string, len(p.caps))
	for k, v := range p.caps {
		clone.caps[k] = v
	}
	clone.protect = new(sync.RWMutex)
	return &clone
}

// Reset forgets everything.
func (p *NetworkInfo) Reset() {
	p.protect.Lock()
	defer p.protect.Unlock()
	p.serverName = ""
	p.networkName = ""
	p.caps = make(map[string]string)
}

// ServerName gets the servername from the NetworkInfo.
func (p *NetworkInfo) ServerName() string {
	p.protect.RLock()
	defer p.protect.RUnlock()
	return p.serverName
}

// SetServerName sets the server name.
func (p *NetworkInfo) SetServerName(name string) {
	p.protect.Lock()
	defer p.protect.Unlock()
	p.serverName = name
}

// NetworkName gets the network name from the NetworkInfo.
func (p *NetworkInfo) NetworkName() string {
	p.protect.RLock()
	defer p.protect.RUnlock()
	return p.networkName
}

// SetNetworkName sets the network name.
func (p *NetworkInfo) SetNetworkName(name string) {
	p.protect.Lock()
	defer p.protect.Unlock()
	p.networkName = name
}

// Get looks up a capability.
func (p *NetworkInfo) Get(key string) (string, bool) {
	p.protect.RLock()
	defer p.protect.RUnlock()
	v, ok := p.caps[key]
	return v, ok
}

// Has checks if a capability has been seen.
func (p *NetworkInfo) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Int looks up a capability and parses it as an integer.
func (p *NetworkInfo) Int(key string) (int, bool) {
	v, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// Set stores a capability.
func (p *NetworkInfo) Set(key, value string) {
	p.protect.Lock()
	defer p.protect.Unlock()
	p.caps[key] = value
}

// Delete removes a capability.
func (p *NetworkInfo) Delete(key string) {
	p.protect.Lock()
	defer p.protect.Unlock()
	delete(p.caps, key)
}

// Caps clones the internal map and returns it
func (p *NetworkInfo) Caps() map[string]string {
	p.protect.RLock()
	defer p.protect.RUnlock()

	cloned := make(map[string]string, len(p.caps))
	for k, v := range p.caps {
		cloned[k] = v
	}

	return cloned
}

// ParseISupport adds all values in a 005 to the current networkinfo object
// and returns the tokens in the order they were seen. Keys are upper cased,
// a -KEY token removes the key. The human readable trailing text is skipped.
func (p *NetworkInfo) ParseISupport(e *Event) []ISupportToken {
	if len(e.Tokens) < 4 {
		return nil
	}

	p.protect.Lock()
	defer p.protect.Unlock()

	var parsed []ISupportToken
	for _, arg := range e.Tokens[3:] {
		if len(arg) == 0 || strings.Contains(arg, " ") {
			continue
		}

		regexResult := capsRegexp.FindStringSubmatch(arg)
		if regexResult == nil {
			continue
		}
		tok := ISupportToken{
			Negated: len(regexResult[1]) > 0,
			Key:     strings.ToUpper(regexResult[2]),
			Value:   regexResult[3],
		}

		if tok.Negated {
			delete(p.caps, tok.Key)
		} else {
			p.caps[tok.Key] = tok.Value
		}
		parsed = append(parsed, tok)
	}

	return parsed
}

// ParseMyInfo records the version, user modes and channel modes from a 004.
func (p *NetworkInfo) ParseMyInfo(e *Event) {
	p.protect.Lock()
	defer p.protect.Unlock()

	if v := e.Arg(4); len(v) > 0 {
		p.caps[CAP_004IRCD] = v
	}
	if v := e.Arg(5); len(v) > 0 {
		p.caps[CAP_USERMODES] = v
	}
	if v := e.Arg(6); len(v) > 0 {
		p.caps[CAP_USERCHANMODES] = v
	}
}

// ParseCreated records the text of a 003, some servers only name themselves
// there.
func (p *NetworkInfo) ParseCreated(e *Event) {
	p.protect.Lock()
	defer p.protect.Unlock()
	p.caps[CAP_003IRCD] = e.Trailing()
}
