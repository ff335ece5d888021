package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// pong answers a PING. The reply carries the second token when the line is
// a bare PING, otherwise the trailing token.
func (s *Session) pong(tokens []string) {
	value := tokens[len(tokens)-1]
	if strings.EqualFold(tokens[0], irc.PING) {
		value = tokens[1]
	}
	s.doSendString("PONG :"+value, false)
}

// gotPong checks if a PONG answers our keepalive.
func (s *Session) gotPong(value string) {
	s.pingProtect.Lock()
	if len(s.lastPingValue) == 0 || s.lastPingValue != value {
		s.pingProtect.Unlock()
		return
	}
	s.lastPingValue = ""
	s.serverLag = time.Since(s.pingSentAt)
	lag := s.serverLag
	s.pingProtect.Unlock()

	s.bus.Publish(event.PingSuccess{Lag: lag})
}

// ServerLatency returns the round trip time of the last answered keepalive,
// or the time since it was sent when one is outstanding.
func (s *Session) ServerLatency() time.Duration {
	s.pingProtect.Lock()
	defer s.pingProtect.Unlock()
	if len(s.lastPingValue) > 0 {
		return time.Since(s.pingSentAt)
	}
	return s.serverLag
}

// PingTime returns when the last keepalive ping was sent, zero if none was.
func (s *Session) PingTime() time.Time {
	s.pingProtect.Lock()
	defer s.pingProtect.Unlock()
	return s.pingSentAt
}

// PingInterval returns the keepalive tick.
func (s *Session) PingInterval() time.Duration {
	return time.Duration(s.pingInterval.Load()) * time.Millisecond
}

// SetPingInterval changes the keepalive tick, a running timer restarts.
func (s *Session) SetPingInterval(d time.Duration) {
	s.pingInterval.Store(d.Milliseconds())

	s.pingProtect.Lock()
	running := s.pingStop != nil
	s.pingProtect.Unlock()
	if running {
		s.startPingTimer()
	}
}

// PingFraction returns how many ticks pass between keepalive pings.
func (s *Session) PingFraction() int {
	return int(s.pingFraction.Load())
}

// SetPingFraction changes how many ticks pass between keepalive pings.
func (s *Session) SetPingFraction(n int) {
	s.pingFraction.Store(int32(n))
}

// CheckServerPing says if the keepalive timer is enabled.
func (s *Session) CheckServerPing() bool {
	return s.checkServerPing.Load()
}

// SetCheckServerPing enables or disables the keepalive timer. Enabling it
// on a registered session starts it right away.
func (s *Session) SetCheckServerPing(v bool) {
	s.checkServerPing.Store(v)
	switch {
	case !v:
		s.stopPingTimer()
	case s.got001.Load():
		s.startPingTimer()
	}
}

// startPingTimer replaces any running keepalive timer with a fresh one. The
// first tick happens straight away.
func (s *Session) startPingTimer() {
	interval := s.PingInterval()
	if interval <= 0 {
		return
	}
	s.pingNeeded.Store(false)

	stop := make(chan struct{})
	s.pingProtect.Lock()
	if s.pingStop != nil {
		close(s.pingStop)
	}
	s.pingStop = stop
	s.pingCountdown = 1
	s.pingProtect.Unlock()

	go s.pingLoop(stop, interval)
}

// stopPingTimer stops the keepalive timer if it runs.
func (s *Session) stopPingTimer() {
	s.pingProtect.Lock()
	defer s.pingProtect.Unlock()
	if s.pingStop != nil {
		close(s.pingStop)
		s.pingStop = nil
	}
}

// stopPingTimerFor stops the keepalive timer only if it is still the one
// owning stop.
func (s *Session) stopPingTimerFor(stop chan struct{}) {
	s.pingProtect.Lock()
	defer s.pingProtect.Unlock()
	if s.pingStop == stop {
		close(s.pingStop)
		s.pingStop = nil
	}
}

func (s *Session) pingLoop(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if !s.pingTick(stop) {
			return
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// pingTick runs one keepalive tick and reports if the timer should go on.
// When the previous ping went unanswered handlers of PingFailed decide, if
// there are none the connection is given up on.
func (s *Session) pingTick(stop chan struct{}) bool {
	s.pingProtect.Lock()
	current := s.pingStop == stop
	s.pingProtect.Unlock()
	if !current {
		return false
	}

	if !s.checkServerPing.Load() {
		s.stopPingTimerFor(stop)
		return false
	}

	if s.pingNeeded.Load() {
		if s.bus.Publish(event.PingFailed{}) == 0 {
			s.stopPingTimerFor(stop)
			s.Disconnect("Server not responding.")
			return false
		}
		return true
	}

	s.pingProtect.Lock()
	if s.pingStop != stop {
		s.pingProtect.Unlock()
		return false
	}
	s.pingCountdown--
	if s.pingCountdown > 0 {
		s.pingProtect.Unlock()
		return true
	}
	s.pingCountdown = s.PingFraction()
	s.pingSentAt = time.Now()
	s.lastPingValue = strconv.FormatInt(s.pingSentAt.UnixMilli(), 10)
	value := s.lastPingValue
	s.pingProtect.Unlock()

	s.pingNeeded.Store(true)
	if err := s.doSendString("PING "+value, false); err == nil {
		s.bus.Publish(event.PingSent{})
	}
	return true
}
