package session

import (
	"fmt"
	"strings"

	"github.com/ergochat/irc-go/ircfmt"
	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/dispatch"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// ProcessLine handles one line received from the server. Run calls it for
// every line read, it is exported for transports that push lines.
func (s *Session) ProcessLine(line string) {
	defer func() {
		if r := recover(); r != nil {
			s.reportError(irc.WrapParserError(irc.Fatal, errors.Errorf("%v", r),
				"Fatal Exception in Parser.", s.LastLine()))
		}
	}()

	s.setLastLine(line)
	s.bus.Publish(event.DataIn{Line: line})
	s.logger.Debug("<-", "line", ircfmt.Strip(line))

	tokens := irc.Tokenize(line)
	s.pingNeeded.Store(false)
	if len(tokens) < 2 {
		return
	}

	ev := irc.NewEventFromTokens(tokens)
	param := tokens[1]

	switch {
	case strings.EqualFold(tokens[0], irc.PING) || strings.EqualFold(param, irc.PING):
		s.pong(tokens)
	case strings.EqualFold(tokens[0], irc.PONG) || strings.EqualFold(param, irc.PONG):
		s.gotPong(ev.Trailing())
	case strings.EqualFold(tokens[0], irc.ERROR):
		s.bus.Publish(event.ServerError{Message: strings.Join(tokens[1:], " ")})
	case s.got001.Load():
		s.processRegistered(param, tokens, ev)
	default:
		s.processUnregistered(param, tokens, ev)
	}
}

func (s *Session) processRegistered(param string, tokens []string, ev *irc.Event) {
	// Some servers send notices at odd times, these never end negotiation.
	if strings.EqualFold(tokens[0], irc.NOTICE) ||
		(len(tokens) > 2 && strings.EqualFold(tokens[2], irc.NOTICE)) {
		s.process(irc.NOTICE_AUTH, ev)
		return
	}

	if !s.post005.Load() {
		if n, ok := irc.IsNumeric(param); !ok || n > 5 {
			s.callPost005()
		}
	}

	s.process(param, ev)
}

func (s *Session) processUnregistered(param string, tokens []string, ev *irc.Event) {
	n, _ := irc.IsNumeric(param)
	switch n {
	case 1, 464, 433:
		s.process(param, ev)
		return
	}

	// Some networks send a CTCP while registering.
	if len(tokens) > 3 && irc.IsCTCP(tokens[3]) {
		s.process(param, ev)
		return
	}
	// A NICK before 001 is the server confirming our own nick change.
	if strings.EqualFold(param, irc.NICK) {
		return
	}
	s.process(irc.NOTICE_AUTH, ev)
}

// process dispatches a line, a missing handler is not an error.
func (s *Session) process(token string, ev *irc.Event) {
	err := s.dispatcher.Process(token, ev)
	if err == nil {
		return
	}

	if errors.Cause(err) == dispatch.ErrNoHandler {
		s.debug(event.DebugProcessor, "no handler", "token", token)
		return
	}
	if perr, ok := err.(*irc.ParserError); ok {
		s.reportError(perr)
		return
	}
	s.reportError(irc.WrapParserError(irc.Error, err, "Handler failed", s.LastLine()))
}

// numeric publishes every numeric after its handler has run.
func (s *Session) numeric(n int, ev *irc.Event) {
	s.bus.Publish(event.Numeric{Numeric: n, Tokens: ev.Tokens})
}

// reportError logs and publishes an error, then disconnects when it is
// fatal and the policy says so.
func (s *Session) reportError(perr *irc.ParserError) {
	if s.addLastLine.Load() && len(perr.LastLine) > 0 {
		perr.Message = fmt.Sprintf("%s [%s]", perr.Message, perr.LastLine)
	}

	ctx := []interface{}{"severity", perr.Level, "line", perr.LastLine}
	if cause := perr.Cause(); cause != nil {
		ctx = append(ctx, "err", cause)
	}
	switch {
	case perr.IsFatal(), perr.IsError():
		s.logger.Error(perr.Message, ctx...)
	case perr.IsWarning():
		s.logger.Warn(perr.Message, ctx...)
	default:
		s.logger.Info(perr.Message, ctx...)
	}

	s.bus.Publish(event.ErrorInfo{Err: perr})

	if perr.IsFatal() && s.disconnectOnFatal.Load() {
		s.Disconnect("Fatal Parser Error")
	}
}

// reportf builds and reports an error about the last line.
func (s *Session) reportf(level irc.Severity, format string, args ...interface{}) {
	s.reportError(irc.NewParserError(level, fmt.Sprintf(format, args...), s.LastLine()))
}

// debug logs a trace message and publishes it when anything listens.
func (s *Session) debug(category, msg string, ctx ...interface{}) {
	s.logger.Debug(msg, append([]interface{}{"dbg", category}, ctx...)...)

	if !s.bus.Has(event.KindDebugInfo) {
		return
	}
	if len(ctx) > 0 {
		msg = fmt.Sprint(msg, " ", ctx)
	}
	s.bus.Publish(event.DebugInfo{Category: category, Message: msg})
}

// registerHandlers fills the dispatcher with the built in handlers.
func (s *Session) registerHandlers() {
	d := s.dispatcher

	d.RegisterFunc(irc.RPL_WELCOME, s.handleWelcome)
	d.RegisterFunc(irc.RPL_CREATED, s.handleCreated)
	d.RegisterFunc(irc.RPL_MYINFO, s.handleMyInfo)
	d.RegisterFunc(irc.RPL_ISUPPORT, s.handleISupport)
	d.RegisterFunc(irc.ERR_NICKNAMEINUSE, s.handleNickInUse)
	d.RegisterFunc(irc.ERR_PASSWDMISMATCH, s.handlePasswordRequired)
	d.RegisterFunc(irc.NOTICE_AUTH, s.handleNoticeAuth)

	d.RegisterFunc(irc.RPL_AWAY, s.handleAway)
	d.RegisterFunc(irc.RPL_UNAWAY, s.handleAwayState)
	d.RegisterFunc(irc.RPL_NOWAWAY, s.handleAwayState)
	d.RegisterFunc(irc.RPL_WHOREPLY, s.handleWho)
	d.RegisterFunc(irc.INVITE, s.handleInvite)
	d.RegisterFunc(irc.WALLOPS, s.handleWallops)

	d.RegisterFunc(irc.RPL_MOTDSTART, s.handleMOTD)
	d.RegisterFunc(irc.RPL_MOTD, s.handleMOTD)
	d.RegisterFunc(irc.RPL_ENDOFMOTD, s.handleMOTD)
	d.RegisterFunc(irc.ERR_NOMOTD, s.handleMOTD)

	d.RegisterFunc(irc.JOIN, s.handleJoin)
	d.RegisterFunc(irc.PART, s.handlePart)
	d.RegisterFunc(irc.KICK, s.handleKick)
	d.RegisterFunc(irc.QUIT, s.handleQuit)
	d.RegisterFunc(irc.NICK, s.handleNick)

	d.RegisterFunc(irc.RPL_NAMREPLY, s.handleNames)
	d.RegisterFunc(irc.RPL_ENDOFNAMES, s.handleEndOfNames)
	d.RegisterFunc(irc.RPL_CREATIONTIME, s.handleCreationTime)

	d.RegisterFunc(irc.TOPIC, s.handleTopic)
	d.RegisterFunc(irc.RPL_TOPIC, s.handleTopic)
	d.RegisterFunc(irc.RPL_TOPICWHOTIME, s.handleTopic)

	d.RegisterFunc(irc.MODE, s.handleMode)
	d.RegisterFunc(irc.RPL_CHANNELMODEIS, s.handleMode)
	d.RegisterFunc(irc.RPL_UMODEIS, s.handleMode)

	d.RegisterFunc(irc.PRIVMSG, s.handleMessage)
	d.RegisterFunc(irc.NOTICE, s.handleMessage)

	for _, numeric := range listModeNumerics {
		d.RegisterFunc(numeric, s.handleListMode)
	}
}
