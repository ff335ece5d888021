/*
Package irc defines the wire level types used by the rest of the session
engine: tokenizing lines, casemapping, hosts, CTCP framing, the capability
map negotiated with the server and the errors reported while parsing. It is
small and comprised mostly of helper like types and constants.
*/
package irc

import (
	"strings"
	"time"
)

// Event is one line received from the server.
type Event struct {
	// Name is the command or numeric, this is the dispatch token.
	Name string
	// Sender is the prefix without the leading colon, empty when absent.
	Sender string
	// Args are the parameters after the command.
	Args []string
	// Tokens is the whole tokenized line, the prefix included.
	Tokens []string
	// Time is when the line was received.
	Time time.Time
}

// NewEvent tokenizes a line into an event that has a timestamp.
func NewEvent(line string) *Event {
	return NewEventFromTokens(Tokenize(line))
}

// NewEventFromTokens wraps an already tokenized line. The dispatch token is
// always the second token, lines without a prefix such as "PING :x" have the
// parameter there instead.
func NewEventFromTokens(tokens []string) *Event {
	ev := &Event{
		Tokens: tokens,
		Time:   time.Now().UTC(),
	}

	switch {
	case len(tokens) == 0:
	case len(tokens[0]) > 0 && tokens[0][0] == ':':
		ev.Sender = tokens[0][1:]
		if len(tokens) > 1 {
			ev.Name = tokens[1]
			ev.Args = tokens[2:]
		}
	default:
		ev.Name = tokens[0]
		ev.Args = tokens[1:]
	}
	return ev
}

// Token returns the dispatch token of the line, the second token.
func (e *Event) Token() string {
	if len(e.Tokens) < 2 {
		return ""
	}
	return e.Tokens[1]
}

// Nick returns the nick of the sender.
func (e *Event) Nick() string {
	return Host(e.Sender).Nick()
}

// Host returns the sender as a Host.
func (e *Event) Host() Host {
	return Host(e.Sender)
}

// Target retrieves the channel or user this event was sent to, empty when
// the line has no arguments.
func (e *Event) Target() string {
	if len(e.Args) == 0 {
		return ""
	}
	return e.Args[0]
}

// Trailing is the last token of the line.
func (e *Event) Trailing() string {
	if len(e.Tokens) == 0 {
		return ""
	}
	return e.Tokens[len(e.Tokens)-1]
}

// Arg returns the token at index i of the whole line or empty string when
// the line is too short.
func (e *Event) Arg(i int) string {
	if i < 0 || i >= len(e.Tokens) {
		return ""
	}
	return e.Tokens[i]
}

// SplitArgs splits a comma separated argument.
func (e *Event) SplitArgs(index int) []string {
	return strings.Split(e.Args[index], ",")
}

// String turns this back into an IRC style message.
func (e *Event) String() string {
	return JoinTokens(e.Tokens)
}
