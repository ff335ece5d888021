/*
Package data keeps the session's view of the network: every known client and
channel, who is on which channel with what prefix modes, and the mode table
negotiated with the server. Every name is folded through a single CaseMapper
that belongs to the Registry.
*/
package data

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

var (
	// ErrNickCollision is returned when a rename would clash with a
	// different known client.
	ErrNickCollision = errors.New("data: nickname already belongs to another client")
)

// Registry is the main data container. It represents the state on a server
// including all channels, clients, and the local client.
type Registry struct {
	cm    *irc.CaseMapper
	table *ModeTable
	self  *Client

	clients  map[string]*Client
	channels map[string]*Channel

	protect sync.RWMutex
}

// NewRegistry creates an empty registry using the rfc1459 casemapping.
func NewRegistry(table *ModeTable) *Registry {
	return &Registry{
		cm:       irc.NewCaseMapper(irc.CaseRFC1459),
		table:    table,
		clients:  make(map[string]*Client),
		channels: make(map[string]*Channel),
	}
}

// Reset forgets every client and channel, the local client and the
// casemapping go back to their defaults.
func (r *Registry) Reset() {
	r.protect.Lock()
	defer r.protect.Unlock()
	r.cm = irc.NewCaseMapper(irc.CaseRFC1459)
	r.self = nil
	r.clients = make(map[string]*Client)
	r.channels = make(map[string]*Channel)
}

// Table returns the mode table.
func (r *Registry) Table() *ModeTable {
	return r.table
}

// CaseMapper returns the active casemapper.
func (r *Registry) CaseMapper() *irc.CaseMapper {
	r.protect.RLock()
	defer r.protect.RUnlock()
	return r.cm
}

// Fold lower cases a name with the active casemapper.
func (r *Registry) Fold(name string) string {
	return r.CaseMapper().ToLower(name)
}

// SetCaseMapper replaces the casemapper and re-keys every client, channel
// and membership with it. When the registry holds nothing but the local
// client there is nothing to re-key but its own entry.
//
// Clients whose nicknames fold to the same key under the new mapping can not
// all be kept. The local client wins, otherwise the client that sorted first
// under the old mapping. The others are taken off their channels and
// forgotten, their nicknames are returned.
func (r *Registry) SetCaseMapper(cm *irc.CaseMapper) []string {
	r.protect.Lock()
	r.cm = cm

	if len(r.clients) <= 1 && len(r.channels) == 0 {
		for k, c := range r.clients {
			delete(r.clients, k)
			r.clients[cm.ToLower(c.Nickname())] = c
		}
		r.protect.Unlock()
		return nil
	}

	keys := make([]string, 0, len(r.clients))
	for k, c := range r.clients {
		if c == r.self {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clients := make(map[string]*Client, len(r.clients))
	if r.self != nil {
		clients[cm.ToLower(r.self.Nickname())] = r.self
	}
	var dropped []*Client
	for _, k := range keys {
		c := r.clients[k]
		key := cm.ToLower(c.Nickname())
		if _, ok := clients[key]; ok {
			dropped = append(dropped, c)
			continue
		}
		clients[key] = c
	}

	channels := make(map[string]*Channel, len(r.channels))
	for _, ch := range r.channels {
		channels[cm.ToLower(ch.Name())] = ch
	}
	r.clients, r.channels = clients, channels

	list := make([]*Channel, 0, len(channels))
	for _, ch := range channels {
		list = append(list, ch)
	}
	r.protect.Unlock()

	var nicks []string
	for _, c := range dropped {
		for _, cc := range c.Memberships() {
			cc.channel.dropMember(cc)
			c.removeMembership(cc)
		}
		nicks = append(nicks, c.Nickname())
	}
	for _, ch := range list {
		ch.rekey(cm.ToLower)
	}
	return nicks
}

func (r *Registry) clientKey(host string) string {
	return r.Fold(irc.ParseHost(host))
}

// Self returns the local client.
func (r *Registry) Self() *Client {
	r.protect.RLock()
	defer r.protect.RUnlock()
	return r.self
}

// SetSelf replaces the local client, it is not added to the clients.
func (r *Registry) SetSelf(c *Client) {
	r.protect.Lock()
	defer r.protect.Unlock()
	r.self = c
}

// IsSelf checks if the client is the local client.
func (r *Registry) IsSelf(c *Client) bool {
	r.protect.RLock()
	defer r.protect.RUnlock()
	return c != nil && c == r.self
}

// FindClient returns the client for a nickname or host, nil if unknown.
func (r *Registry) FindClient(host string) *Client {
	key := r.clientKey(host)
	r.protect.RLock()
	defer r.protect.RUnlock()
	return r.clients[key]
}

// LookupClient looks up a client for a nickname or host.
func (r *Registry) LookupClient(host string) ClientLookup {
	if c := r.FindClient(host); c != nil {
		return ClientLookup{State: Found, Client: c}
	}
	return ClientLookup{State: Absent}
}

// LookupOrFake looks up a client, when it is not known a fake client is
// made from the host and returned as a Placeholder. The placeholder is not
// added to the registry.
func (r *Registry) LookupOrFake(host string) ClientLookup {
	if c := r.FindClient(host); c != nil {
		return ClientLookup{State: Found, Client: c}
	}
	return ClientLookup{State: Placeholder, Client: NewFakeClient(host)}
}

// AddClient stores a client under its nickname.
func (r *Registry) AddClient(c *Client) {
	key := r.Fold(c.Nickname())
	r.protect.Lock()
	defer r.protect.Unlock()
	r.clients[key] = c
}

// RemoveClient removes a client, the local client is never removed and
// false is returned for it.
func (r *Registry) RemoveClient(c *Client) bool {
	if r.IsSelf(c) {
		return false
	}
	r.ForceRemoveClient(c)
	return true
}

// ForceRemoveClient removes a client even if it is the local client.
func (r *Registry) ForceRemoveClient(c *Client) {
	key := r.Fold(c.Nickname())
	r.protect.Lock()
	defer r.protect.Unlock()
	if r.clients[key] == c {
		delete(r.clients, key)
	}
}

// RenameClient changes the nickname of a client and re-keys it everywhere.
// ErrNickCollision is returned, and nothing changes, when another known
// client already has the new nickname.
func (r *Registry) RenameClient(c *Client, newNick string) error {
	r.protect.Lock()
	oldKey, newKey := r.cm.ToLower(c.Nickname()), r.cm.ToLower(newNick)
	if other, ok := r.clients[newKey]; ok && other != c {
		r.protect.Unlock()
		return errors.Wrapf(ErrNickCollision, "renaming %s to %s", c.Nickname(), newNick)
	}
	if r.clients[oldKey] == c {
		delete(r.clients, oldKey)
	}
	c.setNickname(newNick)
	r.clients[newKey] = c
	r.protect.Unlock()

	for _, cc := range c.Memberships() {
		cc.channel.renameMember(oldKey, newKey)
	}
	return nil
}

// Clients returns every known client.
func (r *Registry) Clients() []*Client {
	r.protect.RLock()
	defer r.protect.RUnlock()
	list := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		list = append(list, c)
	}
	return list
}

// ClientCount returns the number of known clients.
func (r *Registry) ClientCount() int {
	r.protect.RLock()
	defer r.protect.RUnlock()
	return len(r.clients)
}

// FindChannel returns the channel, nil if unknown.
func (r *Registry) FindChannel(name string) *Channel {
	key := r.Fold(name)
	r.protect.RLock()
	defer r.protect.RUnlock()
	return r.channels[key]
}

// AddChannel creates a channel, an existing one is returned as is.
func (r *Registry) AddChannel(name string) *Channel {
	key := r.Fold(name)
	r.protect.Lock()
	defer r.protect.Unlock()
	if ch, ok := r.channels[key]; ok {
		return ch
	}
	ch := newChannel(r, name)
	r.channels[key] = ch
	return ch
}

// RemoveChannel forgets a channel.
func (r *Registry) RemoveChannel(ch *Channel) {
	key := r.Fold(ch.Name())
	r.protect.Lock()
	defer r.protect.Unlock()
	if r.channels[key] == ch {
		delete(r.channels, key)
	}
}

// Channels returns every known channel.
func (r *Registry) Channels() []*Channel {
	r.protect.RLock()
	defer r.protect.RUnlock()
	list := make([]*Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		list = append(list, ch)
	}
	return list
}

// ChannelCount returns the number of known channels.
func (r *Registry) ChannelCount() int {
	r.protect.RLock()
	defer r.protect.RUnlock()
	return len(r.channels)
}

// evictIfHidden removes a client that shares no channel with us.
func (r *Registry) evictIfHidden(c *Client) {
	if !c.IsVisible() && !r.IsSelf(c) {
		r.ForceRemoveClient(c)
	}
}
