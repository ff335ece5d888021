package session

import (
	"strconv"
	"strings"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// isOpped checks if a member ranks above voice. Without a voice mode any
// prefix mode counts.
func (s *Session) isOpped(cc *data.ChannelClient) bool {
	value := cc.ImportantModeValue()
	if voice, ok := s.table.PrefixBit('v'); ok {
		return value > voice
	}
	return value > 0
}

// RequestListModes asks the server for every list mode of a channel it
// will tell us about, as many per line as MODES allows. A server with
// LISTMODE gets a single LISTMODE line.
func (s *Session) RequestListModes(ch *data.Channel) error {
	self := s.reg.Self()
	me := ch.MemberFor(self)
	if me == nil {
		s.reportf(irc.Error, "Requesting list modes for %s that I am not on", ch.Name())
		return nil
	}
	ch.SetAskedForListModes(true)

	quirks := s.serverQuirks()
	opped := s.isOpped(me)
	_, listmode := s.info.Get(irc.CAP_LISTMODE)

	perLine := 1
	if !quirks.SingleModeRequests {
		perLine = s.MaxModes()
	}

	var pending []byte
	var err error
	flush := func() {
		if len(pending) == 0 {
			return
		}
		command := irc.MODE
		if listmode {
			command = irc.LISTMODE
		}
		if e := s.sendString(command + " " + ch.Name() + " " + string(pending)); e != nil && err == nil {
			err = e
		}
		pending = pending[:0]
	}

	modes := s.table.ListModes()
	for i := 0; i < len(modes); i++ {
		m := modes[i]
		if !opped && strings.IndexByte(quirks.OpOnlyListModes, m) >= 0 {
			continue
		}
		if strings.IndexByte(quirks.HiddenListModes, m) >= 0 {
			continue
		}
		pending = append(pending, m)
		if !listmode && len(pending) >= perLine {
			flush()
		}
	}
	flush()
	return err
}

// setListModeParam stores a list item, on servers that list quiets as %bans
// the item is moved to the right list.
func (s *Session) setListModeParam(ch *data.Channel, mode byte, item data.ListModeItem, add bool) {
	if s.serverQuirks().SharedBanQuiet && (mode == 'b' || mode == 'q') && len(item.Item) > 0 {
		quiet := item.Item[0] == '%'
		switch {
		case mode == 'b' && quiet:
			mode = 'q'
		case mode == 'q' && !quiet:
			mode = 'b'
		}
		if quiet {
			item.Item = item.Item[1:]
		}
	}
	ch.SetListModeParam(mode, item, add)
}

// handleListMode deals with the numerics of list mode replies.
//
//	:server 367 me #chan mask owner time
//	:server 368 me #chan :End of Channel Ban List
//	:server <LISTMODE> me #chan b mask owner time
func (s *Session) handleListMode(ev *irc.Event) error {
	if len(ev.Tokens) < 4 {
		return nil
	}
	ch := s.reg.FindChannel(ev.Arg(3))
	if ch == nil {
		return nil
	}

	quirks := s.serverQuirks()
	lmq := ch.ListModeQueue()

	if ev.Name == irc.ERR_CHANOPRIVSNEEDED {
		if m, ok := lmq.Poll(); ok {
			s.debug(event.DebugListModes, "Dropped LMQ mode", "mode", string(m))
		}
		return nil
	}

	var mode byte
	var isItem, clever bool
	tokenStart := 4

	item, _ := s.info.Get(irc.CAP_LISTMODE)
	end, _ := s.info.Get(irc.CAP_LISTMODEEND)
	switch {
	case len(item) > 0 && (ev.Name == item || ev.Name == end):
		if len(ev.Arg(4)) == 0 {
			return nil
		}
		mode, isItem, clever = ev.Arg(4)[0], ev.Name == item, true
		tokenStart = 5
	default:
		numeric, ok := quirks.ListNumerics[ev.Name]
		if !ok {
			return nil
		}
		mode, isItem = numeric.Mode, numeric.Item
	}

	if !clever {
		mode = s.checkListModeGuess(lmq, mode, isItem, quirks)
	}

	if !isItem {
		s.endListModeBatch(ch, lmq, clever)
		return nil
	}

	if !clever && lmq.Len() == 0 && mode == 'b' && quirks.SharedBanQuiet && len(ev.Tokens) > 4 {
		mode = guessBanShape(ev.Arg(tokenStart), quirks.PercentQuiet)
	}

	if !ch.AddState(mode) {
		s.startListModeBatch(ch, mode, quirks)
	}

	var t int64
	if len(ev.Tokens) > tokenStart+2 {
		t, _ = strconv.ParseInt(ev.Arg(tokenStart+2), 10, 64)
	}
	owner := ev.Arg(tokenStart + 1)
	value := ev.Arg(tokenStart)
	if len(value) > 0 {
		s.debug(event.DebugListModes, "list mode item", "mode", string(mode), "item", value, "owner", owner, "time", t)
		s.setListModeParam(ch, mode, data.NewListModeItem(value, owner, t), true)
	}
	return nil
}

// checkListModeGuess compares the mode a numeric suggests with the front
// of the queue of modes we asked for, the queue wins. On servers that share
// numerics between bans and quiets those two are taken as one.
func (s *Session) checkListModeGuess(lmq *data.ListQueue, guess byte, isItem bool, quirks Quirks) byte {
	mode, ok := lmq.Peek()
	if !ok {
		return guess
	}
	s.debug(event.DebugListModes, "LMQ says this is "+string(mode))

	disagree := true
	if quirks.SharedBanQuiet {
		switch mode {
		case 'b':
			disagree = guess != 'q' && guess != 'd'
			lmq.Remove('q')
		case 'q':
			disagree = guess != 'b' && guess != 'd'
			lmq.Remove('b')
		case 'd':
			disagree = guess != 'b' && guess != 'q'
		}
	}
	if mode != guess && disagree {
		s.reportf(irc.Warning, "LMQ disagrees with guess. LMQ: %c Guess: %c", mode, guess)
	}

	if !isItem {
		lmq.Poll()
	}
	return mode
}

// guessBanShape tells a ban from a d-line style entry, bans always carry
// a nick!ident@host mask.
func guessBanShape(item string, percentQuiet bool) byte {
	bang := strings.IndexByte(item, '!')
	at := strings.IndexByte(item, '@')
	if bang < 0 || bang > at {
		return 'd'
	}
	if percentQuiet && len(item) > 0 && item[0] == '%' {
		return 'q'
	}
	return 'b'
}

// startListModeBatch drops what we knew about a list mode as a fresh list
// is coming.
func (s *Session) startListModeBatch(ch *data.Channel, mode byte, quirks Quirks) {
	s.debug(event.DebugListModes, "New List Mode Batch: Clearing!", "mode", string(mode))
	if !s.table.IsListMode(mode) {
		s.reportf(irc.Warning, "Got list mode: '%c' - but channel object doesn't agree.", mode)
	}
	ch.ClearListMode(mode)
	ch.SetAddState(mode)

	if quirks.SharedBanQuiet && (mode == 'b' || mode == 'q') {
		other := byte('b')
		if mode == 'b' {
			other = 'q'
		}
		if !ch.AddState(other) {
			ch.ClearListMode(other)
			ch.SetAddState(other)
		}
	}
}

func (s *Session) endListModeBatch(ch *data.Channel, lmq *data.ListQueue, clever bool) {
	s.debug(event.DebugListModes, "List Mode Batch over", "channel", ch.Name())
	ch.ResetAddState()

	if clever || lmq.Len() == 0 {
		ch.SetHasGotListModes(true)
		s.bus.Publish(event.ChannelGotListModes{Channel: ch})
	}
}
