package irc

// IRC Messages, these messages are 1-1 constant to string lookups for ease of
// use when registering handlers etc.
const (
	PING    = "PING"
	PONG    = "PONG"
	ERROR   = "ERROR"
	PASS    = "PASS"
	USER    = "USER"
	NICK    = "NICK"
	PRIVMSG = "PRIVMSG"
	NOTICE  = "NOTICE"
	QUIT    = "QUIT"
	JOIN    = "JOIN"
	PART    = "PART"
	KICK    = "KICK"
	MODE    = "MODE"
	TOPIC   = "TOPIC"
	INVITE  = "INVITE"
	AWAY    = "AWAY"
	WALLOPS = "WALLOPS"

	LISTMODE = "LISTMODE"
)

// Numerics the session understands.
const (
	RPL_WELCOME          = "001"
	RPL_CREATED          = "003"
	RPL_MYINFO           = "004"
	RPL_ISUPPORT         = "005"
	RPL_UMODEIS          = "221"
	RPL_AWAY             = "301"
	RPL_UNAWAY           = "305"
	RPL_NOWAWAY          = "306"
	RPL_CHANNELMODEIS    = "324"
	RPL_CREATIONTIME     = "329"
	RPL_TOPIC            = "332"
	RPL_TOPICWHOTIME     = "333"
	RPL_WHOREPLY         = "352"
	RPL_NAMREPLY         = "353"
	RPL_ENDOFNAMES       = "366"
	RPL_MOTD             = "372"
	RPL_MOTDSTART        = "375"
	RPL_ENDOFMOTD        = "376"
	ERR_NOMOTD           = "422"
	ERR_NICKNAMEINUSE    = "433"
	ERR_PASSWDMISMATCH   = "464"
	ERR_CHANOPRIVSNEEDED = "482"

	RPL_BANLIST         = "367"
	RPL_ENDOFBANLIST    = "368"
	RPL_EXCEPTLIST      = "348"
	RPL_ENDOFEXCEPTLIST = "349"
	RPL_INVITELIST      = "346"
	RPL_ENDOFINVITELIST = "347"
	RPL_REOPLIST        = "344"
	RPL_ENDOFREOPLIST   = "345"
	RPL_QUIETLIST       = "386"
	RPL_ENDOFQUIETLIST  = "387"
	RPL_AUTOOPLIST      = "388"
	RPL_ENDOFAUTOOPLIST = "389"
	RPL_SPAMFILTERLIST  = "941"
	RPL_ENDOFSPAMFILTER = "940"
)

// Pseudo Messages, these are not real messages defined by the irc protocol
// but are used as dispatch tokens for lines that have no command of their own.
const (
	NOTICE_AUTH = "Notice Auth"
)

// Capability keys read from the 003, 004 and 005 numerics. The 003 and 004
// values do not come from ISUPPORT but share the same map.
const (
	CAP_NETWORK       = "NETWORK"
	CAP_CASEMAPPING   = "CASEMAPPING"
	CAP_CHANTYPES     = "CHANTYPES"
	CAP_PREFIX        = "PREFIX"
	CAP_CHANMODES     = "CHANMODES"
	CAP_USERCHANMODES = "USERCHANMODES"
	CAP_USERMODES     = "USERMODES"
	CAP_MODES         = "MODES"
	CAP_MAXLIST       = "MAXLIST"
	CAP_MAXBANS       = "MAXBANS"
	CAP_LISTMODE      = "LISTMODE"
	CAP_LISTMODEEND   = "LISTMODEEND"
	CAP_PREFIXSTRING  = "PREFIXSTRING"
	CAP_004IRCD       = "004IRCD"
	CAP_003IRCD       = "003IRCD"
)

// MaxLineLength is the longest line the server accepts, excluding the
// trailing \r\n.
const MaxLineLength = 510
