package event

// Kind identifies one type of event. The set is closed, every Kind has
// exactly one struct in this package whose Kind method returns it.
type Kind int

// The kinds of event a session publishes.
const (
	KindAwayState Kind = iota + 1
	KindAwayStateOther
	KindChannelAwayStateOther
	KindChannelAction
	KindChannelCTCP
	KindChannelCTCPReply
	KindChannelGotListModes
	KindChannelGotNames
	KindChannelJoin
	KindChannelKick
	KindChannelMessage
	KindChannelModeChanged
	KindChannelModeMessage
	KindChannelModeNotice
	KindChannelNickChanged
	KindChannelNonUserModeChanged
	KindChannelNotice
	KindChannelPart
	KindChannelQuit
	KindChannelSelfJoin
	KindChannelSingleModeChanged
	KindChannelTopic
	KindChannelUserModeChanged
	KindConnectError
	KindDataIn
	KindDataOut
	KindDebugInfo
	KindErrorInfo
	KindGotNetwork
	KindInvite
	KindMOTDEnd
	KindMOTDLine
	KindMOTDStart
	KindNickChanged
	KindNickInUse
	KindNoticeAuth
	KindNumeric
	KindPasswordRequired
	KindPingFailed
	KindPingSent
	KindPingSuccess
	KindPost005
	KindPrivateAction
	KindPrivateCTCP
	KindPrivateCTCPReply
	KindPrivateMessage
	KindPrivateNotice
	KindQuit
	KindServerError
	KindServerReady
	KindSocketClosed
	KindUnknownAction
	KindUnknownCTCP
	KindUnknownCTCPReply
	KindUnknownMessage
	KindUnknownNotice
	KindUserModeChanged
	KindUserModeDiscovered
	KindWallDesync
	KindWallop
	KindWalluser

	kindEnd
)

var kindNames = [...]string{
	KindAwayState:                 "AwayState",
	KindAwayStateOther:            "AwayStateOther",
	KindChannelAwayStateOther:     "ChannelAwayStateOther",
	KindChannelAction:             "ChannelAction",
	KindChannelCTCP:               "ChannelCTCP",
	KindChannelCTCPReply:          "ChannelCTCPReply",
	KindChannelGotListModes:       "ChannelGotListModes",
	KindChannelGotNames:           "ChannelGotNames",
	KindChannelJoin:               "ChannelJoin",
	KindChannelKick:               "ChannelKick",
	KindChannelMessage:            "ChannelMessage",
	KindChannelModeChanged:        "ChannelModeChanged",
	KindChannelModeMessage:        "ChannelModeMessage",
	KindChannelModeNotice:         "ChannelModeNotice",
	KindChannelNickChanged:        "ChannelNickChanged",
	KindChannelNonUserModeChanged: "ChannelNonUserModeChanged",
	KindChannelNotice:             "ChannelNotice",
	KindChannelPart:               "ChannelPart",
	KindChannelQuit:               "ChannelQuit",
	KindChannelSelfJoin:           "ChannelSelfJoin",
	KindChannelSingleModeChanged:  "ChannelSingleModeChanged",
	KindChannelTopic:              "ChannelTopic",
	KindChannelUserModeChanged:    "ChannelUserModeChanged",
	KindConnectError:              "ConnectError",
	KindDataIn:                    "DataIn",
	KindDataOut:                   "DataOut",
	KindDebugInfo:                 "DebugInfo",
	KindErrorInfo:                 "ErrorInfo",
	KindGotNetwork:                "GotNetwork",
	KindInvite:                    "Invite",
	KindMOTDEnd:                   "MOTDEnd",
	KindMOTDLine:                  "MOTDLine",
	KindMOTDStart:                 "MOTDStart",
	KindNickChanged:               "NickChanged",
	KindNickInUse:                 "NickInUse",
	KindNoticeAuth:                "NoticeAuth",
	KindNumeric:                   "Numeric",
	KindPasswordRequired:          "PasswordRequired",
	KindPingFailed:                "PingFailed",
	KindPingSent:                  "PingSent",
	KindPingSuccess:               "PingSuccess",
	KindPost005:                   "Post005",
	KindPrivateAction:             "PrivateAction",
	KindPrivateCTCP:               "PrivateCTCP",
	KindPrivateCTCPReply:          "PrivateCTCPReply",
	KindPrivateMessage:            "PrivateMessage",
	KindPrivateNotice:             "PrivateNotice",
	KindQuit:                      "Quit",
	KindServerError:               "ServerError",
	KindServerReady:               "ServerReady",
	KindSocketClosed:              "SocketClosed",
	KindUnknownAction:             "UnknownAction",
	KindUnknownCTCP:               "UnknownCTCP",
	KindUnknownCTCPReply:          "UnknownCTCPReply",
	KindUnknownMessage:            "UnknownMessage",
	KindUnknownNotice:             "UnknownNotice",
	KindUserModeChanged:           "UserModeChanged",
	KindUserModeDiscovered:        "UserModeDiscovered",
	KindWallDesync:                "WallDesync",
	KindWallop:                    "Wallop",
	KindWalluser:                  "Walluser",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return kindNames[k]
}

// Valid checks that the kind is one of the declared constants.
func (k Kind) Valid() bool {
	return k > 0 && k < kindEnd
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindEnd-1)
	for k := Kind(1); k < kindEnd; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
