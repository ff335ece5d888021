package irc

import "strings"

const (
	// CTCPDelim frames a CTCP message on both ends.
	CTCPDelim = '\x01'
	// CTCPSep separates the tag from the data.
	CTCPSep = ' '

	ctcpAction = "ACTION"
)

// IsCTCP checks that a message is framed by CTCPDelim on both ends.
func IsCTCP(msg string) bool {
	return len(msg) > 1 && msg[0] == CTCPDelim && msg[len(msg)-1] == CTCPDelim
}

// IsAction checks if the message is a CTCP ACTION, the tag is compared case
// insensitively.
func IsAction(msg string) bool {
	if !IsCTCP(msg) {
		return false
	}
	tag := msg[1:]
	if i := strings.IndexByte(tag, CTCPSep); i >= 0 {
		tag = tag[:i]
	} else {
		tag = tag[:len(tag)-1]
	}
	return strings.EqualFold(tag, ctcpAction)
}

// CTCPUnpack splits a framed CTCP message into the tag and the data. Anything
// after a second delimiter is discarded.
func CTCPUnpack(msg string) (tag, data string) {
	msg = strings.TrimPrefix(msg, string(CTCPDelim))
	if i := strings.IndexByte(msg, CTCPSep); i >= 0 {
		tag, data = msg[:i], msg[i+1:]
	} else {
		tag = msg
	}

	if len(data) > 0 {
		if i := strings.IndexByte(data, CTCPDelim); i >= 0 {
			data = data[:i]
		}
	} else if i := strings.IndexByte(tag, CTCPDelim); i >= 0 {
		tag = tag[:i]
	}
	return tag, data
}

// CTCPPack frames a tag and data, the tag is sent upper case. The separator is
// omitted when there is no data.
func CTCPPack(tag, data string) string {
	var b strings.Builder
	b.Grow(len(tag) + len(data) + 3)
	b.WriteByte(CTCPDelim)
	b.WriteString(strings.ToUpper(tag))
	if len(data) > 0 {
		b.WriteByte(CTCPSep)
		b.WriteString(data)
	}
	b.WriteByte(CTCPDelim)
	return b.String()
}

// ActionPack frames an action.
func ActionPack(msg string) string {
	return CTCPPack(ctcpAction, msg)
}
