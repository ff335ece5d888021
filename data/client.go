package data

import (
	"sync"

	"github.com/DMDirc/DMDirc-sub001/irc"
)

// Client encapsulates all the data associated with a user on the network.
// A fake client is a placeholder created before the server has confirmed
// anything about it, the local client starts out fake.
type Client struct {
	nickname string
	ident    string
	host     string
	realname string

	away       bool
	awayReason string

	modes uint64
	fake  bool

	memberships map[*ChannelClient]struct{}
	modeQueue   ModeQueue

	protect sync.RWMutex
}

// NewClient creates a client from a nickname or fullhost.
func NewClient(host string) *Client {
	c := &Client{
		memberships: make(map[*ChannelClient]struct{}),
	}
	c.SetUserBits(host, true, false)
	return c
}

// NewFakeClient creates a placeholder client.
func NewFakeClient(host string) *Client {
	c := NewClient(host)
	c.fake = true
	return c
}

// SetUserBits updates the client from a host. The ident and hostname are
// only overwritten with empty values when allowBlank is set, the nickname
// only when updateNick is set.
func (c *Client) SetUserBits(host string, updateNick, allowBlank bool) {
	nick, ident, hostname := irc.Host(host).Split()

	c.protect.Lock()
	defer c.protect.Unlock()
	if len(hostname) > 0 || allowBlank {
		c.host = hostname
	}
	if len(ident) > 0 || allowBlank {
		c.ident = ident
	}
	if updateNick {
		c.nickname = nick
	}
}

// Nickname returns the nickname.
func (c *Client) Nickname() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.nickname
}

// Ident returns the ident.
func (c *Client) Ident() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.ident
}

// Host returns the hostname.
func (c *Client) Host() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.host
}

// Realname returns the real name.
func (c *Client) Realname() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.realname
}

// SetRealname sets the real name.
func (c *Client) SetRealname(realname string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.realname = realname
}

// String returns the fullhost, nickname!ident@hostname.
func (c *Client) String() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.nickname + "!" + c.ident + "@" + c.host
}

// IsFake checks if this is a placeholder.
func (c *Client) IsFake() bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.fake
}

// SetFake marks the client as a placeholder or not.
func (c *Client) SetFake(fake bool) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.fake = fake
}

// Away checks if the client is marked away.
func (c *Client) Away() bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.away
}

// SetAway marks the client as away or back, coming back clears the reason.
func (c *Client) SetAway(away bool) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.away = away
	if !away {
		c.awayReason = ""
	}
}

// AwayReason returns the last known away reason.
func (c *Client) AwayReason() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.awayReason
}

// SetAwayReason sets the away reason.
func (c *Client) SetAwayReason(reason string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.awayReason = reason
}

// Modes returns the user mode bits.
func (c *Client) Modes() uint64 {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.modes
}

// SetModes sets the user mode bits.
func (c *Client) SetModes(modes uint64) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.modes = modes
}

// ModeString renders the user modes, e.g. +iw.
func (c *Client) ModeString(table *ModeTable) string {
	return "+" + table.UserString(c.Modes())
}

// IsOper checks for either of the o or O user modes.
func (c *Client) IsOper(table *ModeTable) bool {
	modes := c.Modes()
	for _, m := range []byte{'o', 'O'} {
		if bit, ok := table.UserBit(m); ok && modes&bit != 0 {
			return true
		}
	}
	return false
}

// ModeQueue returns the queue of pending user mode changes.
func (c *Client) ModeQueue() *ModeQueue {
	return &c.modeQueue
}

// Memberships returns the channels this client is known to be on.
func (c *Client) Memberships() []*ChannelClient {
	c.protect.RLock()
	defer c.protect.RUnlock()
	list := make([]*ChannelClient, 0, len(c.memberships))
	for cc := range c.memberships {
		list = append(list, cc)
	}
	return list
}

// ChannelCount returns the number of channels this client is known to be on.
func (c *Client) ChannelCount() int {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return len(c.memberships)
}

// IsVisible checks if the client shares at least one channel with us.
func (c *Client) IsVisible() bool {
	return c.ChannelCount() > 0
}

func (c *Client) setNickname(nick string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.nickname = nick
}

func (c *Client) addMembership(cc *ChannelClient) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.memberships[cc] = struct{}{}
}

func (c *Client) removeMembership(cc *ChannelClient) {
	c.protect.Lock()
	defer c.protect.Unlock()
	delete(c.memberships, cc)
}
