/*
Package event declares everything a session tells the outside world about,
one struct per Kind, and the Bus that delivers them.

Events about a channel also implement Targeted so that handlers can subscribe
to a single channel:

	bus.Subscribe(event.KindChannelMessage, "#go-nuts", event.HandlerFunc(
		func(ev event.Event) {
			msg := ev.(event.ChannelMessage)
			fmt.Println(msg.Member, msg.Message)
		},
	))

The generic On helper removes the type assertion.
*/
package event

import (
	"time"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// Event is anything published on a Bus.
type Event interface {
	Kind() Kind
}

// Targeted events concern a single channel.
type Targeted interface {
	Event
	Target() string
}

// AwayState is our own away state changing. Reason is empty when coming back.
type AwayState struct {
	Away   bool
	Reason string
}

// AwayStateOther is another client's away state changing, learned from WHO.
type AwayStateOther struct {
	Client *data.Client
	Away   bool
}

// ChannelAwayStateOther is AwayStateOther once per channel shared with the
// client.
type ChannelAwayStateOther struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Away    bool
}

// ChannelAction is a /me on a channel.
type ChannelAction struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Message string
	Host    string
}

// ChannelCTCP is a CTCP request sent to a channel.
type ChannelCTCP struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Type    string
	Message string
	Host    string
}

// ChannelCTCPReply is a CTCP reply sent to a channel.
type ChannelCTCPReply struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Type    string
	Message string
	Host    string
}

// ChannelGotListModes fires once every requested list mode has arrived.
type ChannelGotListModes struct {
	Channel *data.Channel
}

// ChannelGotNames fires at the end of a NAMES reply.
type ChannelGotNames struct {
	Channel *data.Channel
}

// ChannelJoin is someone else joining a channel we are on.
type ChannelJoin struct {
	Channel *data.Channel
	Member  *data.ChannelClient
}

// ChannelKick is a client being kicked, Kicker may be a placeholder.
type ChannelKick struct {
	Channel    *data.Channel
	Kicked     *data.ChannelClient
	Kicker     *data.ChannelClient
	Reason     string
	KickerHost string
}

// ChannelMessage is a message on a channel.
type ChannelMessage struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Message string
	Host    string
}

// ChannelModeChanged is a MODE line for a channel or the 324 reply. Member
// and Host are empty for 324.
type ChannelModeChanged struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Host    string
	Modes   string
}

// ChannelModeMessage is a message to the holders of a prefix mode, e.g.
// PRIVMSG @#chan.
type ChannelModeMessage struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Prefix  byte
	Message string
	Host    string
}

// ChannelModeNotice is a notice to the holders of a prefix mode.
type ChannelModeNotice struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Prefix  byte
	Message string
	Host    string
}

// ChannelNickChanged is a nick change once per channel the client is on.
type ChannelNickChanged struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	OldNick string
}

// ChannelNonUserModeChanged is the part of a mode change that did not
// concern prefix modes.
type ChannelNonUserModeChanged struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Host    string
	Modes   string
}

// ChannelNotice is a notice on a channel.
type ChannelNotice struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Message string
	Host    string
}

// ChannelPart is a client leaving a channel, us included.
type ChannelPart struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Reason  string
}

// ChannelQuit is a quit once per channel the client was on.
type ChannelQuit struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Reason  string
}

// ChannelSelfJoin is us joining a channel.
type ChannelSelfJoin struct {
	Channel *data.Channel
}

// ChannelSingleModeChanged is a single mode of a change, e.g. +k key.
type ChannelSingleModeChanged struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Host    string
	Mode    string
}

// ChannelTopic is the topic changing or being sent on join.
type ChannelTopic struct {
	Channel *data.Channel
	OnJoin  bool
}

// ChannelUserModeChanged is a prefix mode of a member changing.
type ChannelUserModeChanged struct {
	Channel *data.Channel
	Member  *data.ChannelClient
	Setter  *data.ChannelClient
	Host    string
	Mode    string
}

// ConnectError is the transport failing to connect.
type ConnectError struct {
	Err error
}

// DataIn is a raw line received.
type DataIn struct {
	Line string
}

// DataOut is a raw line sent, FromParser is true when the session itself
// decided to send it.
type DataOut struct {
	Line       string
	FromParser bool
}

// DebugInfo is a trace message. Category is one of the Debug constants.
type DebugInfo struct {
	Category string
	Message  string
}

// Debug categories.
const (
	DebugInfoCat      = "info"
	DebugSocket       = "socket"
	DebugProcessor    = "processor"
	DebugListModes    = "lmq"
	DebugCapabilities = "caps"
)

// ErrorInfo is a problem while processing lines.
type ErrorInfo struct {
	Err *irc.ParserError
}

// GotNetwork is the NETWORK capability.
type GotNetwork struct {
	Network string
	Server  string
	IRCD    string
}

// Invite is us being invited somewhere.
type Invite struct {
	Host    string
	Channel string
}

// MOTDEnd is the end of the MOTD, NoMOTD when the server has none.
type MOTDEnd struct {
	NoMOTD bool
	Data   string
}

// MOTDLine is a line of the MOTD.
type MOTDLine struct {
	Line string
}

// MOTDStart is the start of the MOTD.
type MOTDStart struct {
	Line string
}

// NickChanged is a client changing nickname, us included.
type NickChanged struct {
	Client  *data.Client
	OldNick string
}

// NickInUse is the server refusing our nickname.
type NickInUse struct {
	Nick string
}

// NoticeAuth is a notice sent before registration, or a line we did not
// understand at that stage.
type NoticeAuth struct {
	Message string
}

// Numeric is every numeric line, after any specific handling.
type Numeric struct {
	Numeric int
	Tokens  []string
}

// PasswordRequired is the server asking for a password.
type PasswordRequired struct{}

// PingFailed fires when a ping went unanswered for a whole interval.
// Handlers may keep the session alive; with no handlers it disconnects.
type PingFailed struct{}

// PingSent is a keepalive ping going out.
type PingSent struct{}

// PingSuccess is the reply to our keepalive ping.
type PingSuccess struct {
	Lag time.Duration
}

// Post005 is the end of capability negotiation.
type Post005 struct{}

// PrivateAction is a /me sent to us.
type PrivateAction struct {
	Message string
	Host    string
}

// PrivateCTCP is a CTCP request sent to us.
type PrivateCTCP struct {
	Type    string
	Message string
	Host    string
}

// PrivateCTCPReply is a CTCP reply sent to us.
type PrivateCTCPReply struct {
	Type    string
	Message string
	Host    string
}

// PrivateMessage is a message sent to us.
type PrivateMessage struct {
	Message string
	Host    string
}

// PrivateNotice is a notice sent to us.
type PrivateNotice struct {
	Message string
	Host    string
}

// Quit is a client quitting, once regardless of channels.
type Quit struct {
	Client *data.Client
	Reason string
}

// ServerError is an ERROR line, usually just before the connection closes.
type ServerError struct {
	Message string
}

// ServerReady is registration having finished (001).
type ServerReady struct{}

// SocketClosed is the connection going away for any reason.
type SocketClosed struct{}

// UnknownAction is a /me sent to a target that is neither us nor a known
// channel.
type UnknownAction struct {
	Message string
	Target  string
	Host    string
}

// UnknownCTCP is a CTCP sent to an unknown target.
type UnknownCTCP struct {
	Type    string
	Message string
	Target  string
	Host    string
}

// UnknownCTCPReply is a CTCP reply sent to an unknown target.
type UnknownCTCPReply struct {
	Type    string
	Message string
	Target  string
	Host    string
}

// UnknownMessage is a message sent to an unknown target.
type UnknownMessage struct {
	Message string
	Target  string
	Host    string
}

// UnknownNotice is a notice sent to an unknown target.
type UnknownNotice struct {
	Message string
	Target  string
	Host    string
}

// UserModeChanged is our user modes changing.
type UserModeChanged struct {
	Client *data.Client
	Host   string
	Modes  string
}

// UserModeDiscovered is the 221 reply with our user modes.
type UserModeDiscovered struct {
	Client *data.Client
	Modes  string
}

// WallDesync is a WALLOPS we could not classify.
type WallDesync struct {
	Message string
	Host    string
}

// Wallop is a WALLOPS from an operator, *message.
type Wallop struct {
	Message string
	Host    string
}

// Walluser is a WALLOPS to users, $message.
type Walluser struct {
	Message string
	Host    string
}

func (AwayState) Kind() Kind                 { return KindAwayState }
func (AwayStateOther) Kind() Kind            { return KindAwayStateOther }
func (ChannelAwayStateOther) Kind() Kind     { return KindChannelAwayStateOther }
func (ChannelAction) Kind() Kind             { return KindChannelAction }
func (ChannelCTCP) Kind() Kind               { return KindChannelCTCP }
func (ChannelCTCPReply) Kind() Kind          { return KindChannelCTCPReply }
func (ChannelGotListModes) Kind() Kind       { return KindChannelGotListModes }
func (ChannelGotNames) Kind() Kind           { return KindChannelGotNames }
func (ChannelJoin) Kind() Kind               { return KindChannelJoin }
func (ChannelKick) Kind() Kind               { return KindChannelKick }
func (ChannelMessage) Kind() Kind            { return KindChannelMessage }
func (ChannelModeChanged) Kind() Kind        { return KindChannelModeChanged }
func (ChannelModeMessage) Kind() Kind        { return KindChannelModeMessage }
func (ChannelModeNotice) Kind() Kind         { return KindChannelModeNotice }
func (ChannelNickChanged) Kind() Kind        { return KindChannelNickChanged }
func (ChannelNonUserModeChanged) Kind() Kind { return KindChannelNonUserModeChanged }
func (ChannelNotice) Kind() Kind             { return KindChannelNotice }
func (ChannelPart) Kind() Kind               { return KindChannelPart }
func (ChannelQuit) Kind() Kind               { return KindChannelQuit }
func (ChannelSelfJoin) Kind() Kind           { return KindChannelSelfJoin }
func (ChannelSingleModeChanged) Kind() Kind  { return KindChannelSingleModeChanged }
func (ChannelTopic) Kind() Kind              { return KindChannelTopic }
func (ChannelUserModeChanged) Kind() Kind    { return KindChannelUserModeChanged }
func (ConnectError) Kind() Kind              { return KindConnectError }
func (DataIn) Kind() Kind                    { return KindDataIn }
func (DataOut) Kind() Kind                   { return KindDataOut }
func (DebugInfo) Kind() Kind                 { return KindDebugInfo }
func (ErrorInfo) Kind() Kind                 { return KindErrorInfo }
func (GotNetwork) Kind() Kind                { return KindGotNetwork }
func (Invite) Kind() Kind                    { return KindInvite }
func (MOTDEnd) Kind() Kind                   { return KindMOTDEnd }
func (MOTDLine) Kind() Kind                  { return KindMOTDLine }
func (MOTDStart) Kind() Kind                 { return KindMOTDStart }
func (NickChanged) Kind() Kind               { return KindNickChanged }
func (NickInUse) Kind() Kind                 { return KindNickInUse }
func (NoticeAuth) Kind() Kind                { return KindNoticeAuth }
func (Numeric) Kind() Kind                   { return KindNumeric }
func (PasswordRequired) Kind() Kind          { return KindPasswordRequired }
func (PingFailed) Kind() Kind                { return KindPingFailed }
func (PingSent) Kind() Kind                  { return KindPingSent }
func (PingSuccess) Kind() Kind               { return KindPingSuccess }
func (Post005) Kind() Kind                   { return KindPost005 }
func (PrivateAction) Kind() Kind             { return KindPrivateAction }
func (PrivateCTCP) Kind() Kind               { return KindPrivateCTCP }
func (PrivateCTCPReply) Kind() Kind          { return KindPrivateCTCPReply }
func (PrivateMessage) Kind() Kind            { return KindPrivateMessage }
func (PrivateNotice) Kind() Kind             { return KindPrivateNotice }
func (Quit) Kind() Kind                      { return KindQuit }
func (ServerError) Kind() Kind               { return KindServerError }
func (ServerReady) Kind() Kind               { return KindServerReady }
func (SocketClosed) Kind() Kind              { return KindSocketClosed }
func (UnknownAction) Kind() Kind             { return KindUnknownAction }
func (UnknownCTCP) Kind() Kind               { return KindUnknownCTCP }
func (UnknownCTCPReply) Kind() Kind          { return KindUnknownCTCPReply }
func (UnknownMessage) Kind() Kind            { return KindUnknownMessage }
func (UnknownNotice) Kind() Kind             { return KindUnknownNotice }
func (UserModeChanged) Kind() Kind           { return KindUserModeChanged }
func (UserModeDiscovered) Kind() Kind        { return KindUserModeDiscovered }
func (WallDesync) Kind() Kind                { return KindWallDesync }
func (Wallop) Kind() Kind                    { return KindWallop }
func (Walluser) Kind() Kind                  { return KindWalluser }

func (e ChannelAwayStateOther) Target() string     { return e.Channel.Name() }
func (e ChannelAction) Target() string             { return e.Channel.Name() }
func (e ChannelCTCP) Target() string               { return e.Channel.Name() }
func (e ChannelCTCPReply) Target() string          { return e.Channel.Name() }
func (e ChannelJoin) Target() string               { return e.Channel.Name() }
func (e ChannelKick) Target() string               { return e.Channel.Name() }
func (e ChannelMessage) Target() string            { return e.Channel.Name() }
func (e ChannelModeChanged) Target() string        { return e.Channel.Name() }
func (e ChannelModeMessage) Target() string        { return e.Channel.Name() }
func (e ChannelModeNotice) Target() string         { return e.Channel.Name() }
func (e ChannelNickChanged) Target() string        { return e.Channel.Name() }
func (e ChannelNonUserModeChanged) Target() string { return e.Channel.Name() }
func (e ChannelNotice) Target() string             { return e.Channel.Name() }
func (e ChannelPart) Target() string               { return e.Channel.Name() }
func (e ChannelQuit) Target() string               { return e.Channel.Name() }
func (e ChannelSingleModeChanged) Target() string  { return e.Channel.Name() }
func (e ChannelTopic) Target() string              { return e.Channel.Name() }
func (e ChannelUserModeChanged) Target() string    { return e.Channel.Name() }
func (e ChannelGotListModes) Target() string       { return e.Channel.Name() }
func (e ChannelGotNames) Target() string           { return e.Channel.Name() }
func (e ChannelSelfJoin) Target() string           { return e.Channel.Name() }
