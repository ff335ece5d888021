package data

import (
	"sync/atomic"
)

// ChannelClient represents a client that's on a channel, along with the
// prefix modes (op, voice) they hold there.
type ChannelClient struct {
	channel *Channel
	client  *Client
	modes   uint64
}

func newChannelClient(ch *Channel, c *Client) *ChannelClient {
	return &ChannelClient{
		channel: ch,
		client:  c,
	}
}

// Channel returns the channel.
func (cc *ChannelClient) Channel() *Channel {
	return cc.channel
}

// Client returns the client.
func (cc *ChannelClient) Client() *Client {
	return cc.client
}

// Nickname is shorthand for Client().Nickname().
func (cc *ChannelClient) Nickname() string {
	return cc.client.Nickname()
}

// Modes returns the prefix mode bits.
func (cc *ChannelClient) Modes() uint64 {
	return atomic.LoadUint64(&cc.modes)
}

// SetModes sets the prefix mode bits.
func (cc *ChannelClient) SetModes(modes uint64) {
	atomic.StoreUint64(&cc.modes, modes)
}

// SetMode sets a prefix mode by character, unknown modes are ignored.
func (cc *ChannelClient) SetMode(mode byte) {
	if bit, ok := cc.table().PrefixBit(mode); ok {
		cc.SetModes(cc.Modes() | bit)
	}
}

// ClearMode unsets a prefix mode by character.
func (cc *ChannelClient) ClearMode(mode byte) {
	if bit, ok := cc.table().PrefixBit(mode); ok {
		cc.SetModes(cc.Modes() &^ bit)
	}
}

// HasMode checks if the prefix mode is held.
func (cc *ChannelClient) HasMode(mode byte) bool {
	bit, ok := cc.table().PrefixBit(mode)
	return ok && cc.Modes()&bit != 0
}

// ImportantModeValue returns the bit of the highest ranked mode held, 0 when
// none are.
func (cc *ChannelClient) ImportantModeValue() uint64 {
	_, _, value := cc.table().Highest(cc.Modes())
	return value
}

// ImportantMode returns the highest ranked mode held, empty if none.
func (cc *ChannelClient) ImportantMode() string {
	mode, _, value := cc.table().Highest(cc.Modes())
	if value == 0 {
		return ""
	}
	return string(mode)
}

// ImportantModePrefix returns the display prefix of the highest ranked mode
// held, empty if none.
func (cc *ChannelClient) ImportantModePrefix() string {
	_, glyph, value := cc.table().Highest(cc.Modes())
	if value == 0 {
		return ""
	}
	return string(glyph)
}

// ModeString returns every prefix mode held, highest first.
func (cc *ChannelClient) ModeString() string {
	return cc.table().PrefixModeString(cc.Modes())
}

// PrefixString returns every display prefix held, highest first.
func (cc *ChannelClient) PrefixString() string {
	return cc.table().PrefixGlyphString(cc.Modes())
}

// String returns the nickname with the most important prefix, e.g. @nick.
func (cc *ChannelClient) String() string {
	return cc.ImportantModePrefix() + cc.Nickname()
}

func (cc *ChannelClient) table() *ModeTable {
	return cc.channel.reg.Table()
}
