package data

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Channel encapsulates all the data associated with a channel. It owns the
// memberships of everyone on it.
type Channel struct {
	name string
	reg  *Registry

	members map[string]*ChannelClient

	modes  uint64
	params map[byte]string
	lists  map[byte][]ListModeItem

	createTime  int64
	topic       string
	topicSetter string
	topicTime   int64

	addingNames  bool
	askedLists   bool
	gotListModes bool
	addState     map[byte]bool
	lmq          *ListQueue
	lmqTouched   time.Time

	modeQueue ModeQueue

	protect sync.RWMutex
}

func newChannel(reg *Registry, name string) *Channel {
	return &Channel{
		name:     name,
		reg:      reg,
		members:  make(map[string]*ChannelClient),
		params:   make(map[byte]string),
		lists:    make(map[byte][]ListModeItem),
		addState: make(map[byte]bool),
		lmq:      &ListQueue{},
	}
}

// Name gets the name of the channel, empty for a nil channel.
func (c *Channel) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// String returns the name of the channel.
func (c *Channel) String() string {
	return c.name
}

// Member finds the membership of a nickname or host.
func (c *Channel) Member(host string) *ChannelClient {
	key := c.reg.clientKey(host)
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.members[key]
}

// LookupMember finds the membership of a nickname or host. When there is
// none and fake is set a placeholder membership around a fake client is
// returned, it is not added to the channel.
func (c *Channel) LookupMember(host string, fake bool) (*ChannelClient, LookupState) {
	if cc := c.Member(host); cc != nil {
		return cc, Found
	}
	if !fake {
		return nil, Absent
	}
	return newChannelClient(c, NewFakeClient(host)), Placeholder
}

// MemberFor finds the membership of a client.
func (c *Channel) MemberFor(client *Client) *ChannelClient {
	return c.Member(client.Nickname())
}

// Members returns every membership sorted by nickname.
func (c *Channel) Members() []*ChannelClient {
	c.protect.RLock()
	keys := make([]string, 0, len(c.members))
	for k := range c.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]*ChannelClient, len(keys))
	for i, k := range keys {
		list[i] = c.members[k]
	}
	c.protect.RUnlock()
	return list
}

// MemberCount returns the number of memberships.
func (c *Channel) MemberCount() int {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return len(c.members)
}

// AddClient puts a client on the channel, an existing membership is
// returned as is.
func (c *Channel) AddClient(client *Client) *ChannelClient {
	key := c.reg.Fold(client.Nickname())

	c.protect.Lock()
	cc, ok := c.members[key]
	if !ok {
		cc = newChannelClient(c, client)
		c.members[key] = cc
	}
	c.protect.Unlock()

	if !ok {
		client.addMembership(cc)
	}
	return cc
}

// DelClient takes a client off the channel. If that leaves the client on no
// channels at all it is removed from the registry, unless it is us.
func (c *Channel) DelClient(client *Client) {
	key := c.reg.Fold(client.Nickname())

	c.protect.Lock()
	cc, ok := c.members[key]
	if ok {
		delete(c.members, key)
	}
	c.protect.Unlock()

	if !ok {
		return
	}
	client.removeMembership(cc)
	c.reg.evictIfHidden(client)
}

// Empty takes everyone off the channel, anyone left on no channels is
// removed from the registry.
func (c *Channel) Empty() {
	c.protect.Lock()
	members := c.members
	c.members = make(map[string]*ChannelClient)
	c.protect.Unlock()

	for _, cc := range members {
		cc.client.removeMembership(cc)
		c.reg.evictIfHidden(cc.client)
	}
}

// dropMember removes exactly this membership, whatever key it is under.
func (c *Channel) dropMember(cc *ChannelClient) {
	c.protect.Lock()
	defer c.protect.Unlock()
	for k, member := range c.members {
		if member == cc {
			delete(c.members, k)
			return
		}
	}
}

// renameMember moves a membership to a new key.
func (c *Channel) renameMember(oldKey, newKey string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	if cc, ok := c.members[oldKey]; ok {
		delete(c.members, oldKey)
		c.members[newKey] = cc
	}
}

// rekey rebuilds the membership keys with a new fold.
func (c *Channel) rekey(fold func(string) string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	members := make(map[string]*ChannelClient, len(c.members))
	for _, cc := range c.members {
		members[fold(cc.client.Nickname())] = cc
	}
	c.members = members
}

// Modes returns the boolean mode bits.
func (c *Channel) Modes() uint64 {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.modes
}

// SetModes sets the boolean mode bits.
func (c *Channel) SetModes(modes uint64) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.modes = modes
}

// ModeParam returns the argument of a set parameterised mode.
func (c *Channel) ModeParam(mode byte) string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.params[mode]
}

// SetModeParam sets the argument of a parameterised mode, an empty value
// unsets it.
func (c *Channel) SetModeParam(mode byte, value string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	if len(value) == 0 {
		delete(c.params, mode)
		return
	}
	c.params[mode] = value
}

// ListMode returns a copy of the items of a list mode.
func (c *Channel) ListMode(mode byte) []ListModeItem {
	c.protect.RLock()
	defer c.protect.RUnlock()
	items := c.lists[mode]
	if items == nil {
		return nil
	}
	cpy := make([]ListModeItem, len(items))
	copy(cpy, items)
	return cpy
}

// ClearListMode drops every item of a list mode.
func (c *Channel) ClearListMode(mode byte) {
	c.protect.Lock()
	defer c.protect.Unlock()
	delete(c.lists, mode)
}

// SetListModeParam adds or removes an item of a list mode. Items are
// compared case insensitively, adding a duplicate does nothing. Modes that
// are not list modes are ignored.
func (c *Channel) SetListModeParam(mode byte, item ListModeItem, add bool) {
	if !c.reg.Table().IsListMode(mode) {
		return
	}
	cm := c.reg.CaseMapper()

	c.protect.Lock()
	defer c.protect.Unlock()

	items := c.lists[mode]
	for i, it := range items {
		if !cm.Equal(it.Item, item.Item) {
			continue
		}
		if !add {
			c.lists[mode] = append(items[:i:i], items[i+1:]...)
		}
		return
	}
	if add {
		c.lists[mode] = append(items, item)
	}
}

// ModeString renders the boolean and parameterised modes, list modes are
// not included: +ntk key
func (c *Channel) ModeString() string {
	table := c.reg.Table()
	bools := table.BoolString(c.Modes())

	c.protect.RLock()
	modes := make([]byte, 0, len(c.params))
	for m := range c.params {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	var b, params strings.Builder
	b.WriteByte('+')
	b.WriteString(bools)
	for _, m := range modes {
		b.WriteByte(m)
		params.WriteByte(' ')
		params.WriteString(c.params[m])
	}
	c.protect.RUnlock()

	b.WriteString(params.String())
	return b.String()
}

// Topic returns the topic.
func (c *Channel) Topic() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.topic
}

// SetTopic sets the topic.
func (c *Channel) SetTopic(topic string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.topic = topic
}

// TopicSetter returns who set the topic.
func (c *Channel) TopicSetter() string {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.topicSetter
}

// SetTopicSetter sets who set the topic.
func (c *Channel) SetTopicSetter(setter string) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.topicSetter = setter
}

// TopicTime returns when the topic was set in unix seconds.
func (c *Channel) TopicTime() int64 {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.topicTime
}

// SetTopicTime sets when the topic was set.
func (c *Channel) SetTopicTime(t int64) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.topicTime = t
}

// CreateTime returns when the channel was created in unix seconds.
func (c *Channel) CreateTime() int64 {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.createTime
}

// SetCreateTime sets when the channel was created.
func (c *Channel) SetCreateTime(t int64) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.createTime = t
}

// AddingNames is true while a NAMES reply is being received.
func (c *Channel) AddingNames() bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.addingNames
}

// SetAddingNames marks the start or end of a NAMES reply.
func (c *Channel) SetAddingNames(adding bool) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.addingNames = adding
}

// HasAskedForListModes checks if list modes were ever requested.
func (c *Channel) HasAskedForListModes() bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.askedLists
}

// SetAskedForListModes records that list modes were requested.
func (c *Channel) SetAskedForListModes(asked bool) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.askedLists = asked
}

// HasGotListModes checks if a full round of list modes was ever received.
func (c *Channel) HasGotListModes() bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.gotListModes
}

// SetHasGotListModes records that a full round of list modes was received.
func (c *Channel) SetHasGotListModes(got bool) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.gotListModes = got
}

// ListModeQueue returns the queue of list modes we expect replies for. The
// queue is replaced with an empty one if it was last used more than
// ListModeStale ago, the marks of SetAddState go with it.
func (c *Channel) ListModeQueue() *ListQueue {
	return c.ListModeQueueAt(time.Now())
}

// ListModeQueueAt is ListModeQueue with the current time given.
func (c *Channel) ListModeQueueAt(now time.Time) *ListQueue {
	c.protect.Lock()
	defer c.protect.Unlock()
	if !c.lmqTouched.IsZero() && now.Sub(c.lmqTouched) > ListModeStale {
		c.lmq = &ListQueue{}
		c.addState = make(map[byte]bool)
	}
	c.lmqTouched = now
	return c.lmq
}

// AddState checks if items of the mode are currently being received.
func (c *Channel) AddState(mode byte) bool {
	c.protect.RLock()
	defer c.protect.RUnlock()
	return c.addState[mode]
}

// SetAddState marks that items of the mode are being received.
func (c *Channel) SetAddState(mode byte) {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.addState[mode] = true
}

// ResetAddState clears every mark set by SetAddState.
func (c *Channel) ResetAddState() {
	c.protect.Lock()
	defer c.protect.Unlock()
	c.addState = make(map[byte]bool)
}

// ModeQueue returns the queue of pending mode changes.
func (c *Channel) ModeQueue() *ModeQueue {
	return &c.modeQueue
}
