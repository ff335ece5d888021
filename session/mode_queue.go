package session

import (
	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
)

// ErrModeNotSettable is returned when queuing a channel mode users can not
// set.
var ErrModeNotSettable = errors.New("session: mode is not user settable")

// AlterChannelMode queues a channel mode change. The queue is sent once it
// holds as many changes as fit in one MODE line. Setting a mode that needs
// its old value removed first queues that removal too.
func (s *Session) AlterChannelMode(ch *data.Channel, positive bool, mode byte, param string) error {
	class := s.table.Class(mode)
	if class != data.ClassPrefix && !s.IsUserSettable(mode) {
		return errors.Wrapf(ErrModeNotSettable, "mode: %c", mode)
	}

	change := data.PendingMode{Positive: positive, Mode: mode}
	switch class {
	case data.ClassPrefix:
		change.Param = param
	case data.ClassParam:
		kind, _ := s.table.ParamKind(mode)
		switch {
		case kind&data.ModeList != 0:
			change.Param = param
		case !positive && kind&data.ModeUnset != 0:
			change.Param = param
		case positive && kind&data.ModeSet != 0:
			if existing := ch.ModeParam(mode); kind&data.ModeUnset != 0 && len(existing) > 0 {
				if err := s.queueChannelMode(ch, data.PendingMode{Mode: mode, Param: existing}); err != nil {
					return err
				}
			}
			change.Param = param
		}
	}
	return s.queueChannelMode(ch, change)
}

func (s *Session) queueChannelMode(ch *data.Channel, change data.PendingMode) error {
	s.debug(event.DebugInfoCat, "Queueing mode", "channel", ch.Name(), "mode", change.String())
	if ch.ModeQueue().Add(change) >= s.MaxModes() {
		return s.SendChannelModes(ch)
	}
	return nil
}

// SendChannelModes sends every queued change of a channel in one line.
func (s *Session) SendChannelModes(ch *data.Channel) error {
	changes := ch.ModeQueue().Take()
	if len(changes) == 0 {
		return nil
	}
	modes := data.FormatModes(changes)
	s.debug(event.DebugInfoCat, "Sending mode", "channel", ch.Name(), "modes", modes)
	return s.SendRaw("MODE " + ch.Name() + " " + modes)
}

// AlterUserMode queues a user mode change for a client, in practice only
// ever ourselves. Placeholder clients and unknown modes are ignored.
func (s *Session) AlterUserMode(client *data.Client, positive bool, mode byte) error {
	if client.IsFake() {
		return nil
	}
	if _, ok := s.table.UserBit(mode); !ok {
		return nil
	}

	change := data.PendingMode{Positive: positive, Mode: mode}
	s.debug(event.DebugInfoCat, "Queueing user mode", "nick", client.Nickname(), "mode", change.String())
	if client.ModeQueue().Add(change) >= s.MaxModes() {
		return s.SendUserModes(client)
	}
	return nil
}

// SendUserModes sends every queued user mode change of a client.
func (s *Session) SendUserModes(client *data.Client) error {
	changes := client.ModeQueue().Take()
	if len(changes) == 0 || client.IsFake() {
		return nil
	}
	return s.SendRaw("MODE " + client.Nickname() + " " + data.FormatModes(changes))
}
