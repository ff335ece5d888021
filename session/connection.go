package session

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/event"
)

// Connect resets the session to a blank slate, connects the transport and
// registers with the server. It does not read anything, see Run.
func (s *Session) Connect(ctx context.Context) error {
	if s.transport == nil {
		return ErrNoTransport
	}
	switch s.State() {
	case StateConnecting, StateOpen, StateClosing:
		return ErrAlreadyConnected
	}

	s.resetState()
	s.setState(StateConnecting)
	s.debug(event.DebugSocket, "connecting", "server", s.conf.Server, "port", s.conf.Port)

	if err := s.transport.Connect(ctx); err != nil {
		s.debug(event.DebugSocket, "connect failed", "err", err)
		s.bus.Publish(event.ConnectError{Err: err})
		s.closed()
		return errors.Wrap(err, "session: connect failed")
	}

	s.setState(StateOpen)
	s.debug(event.DebugSocket, "connected")
	s.sendConnectionStrings()
	return nil
}

// Run connects and then processes lines until the connection goes away or
// the context is cancelled, which disconnects. A connection closed by the
// server or by Disconnect returns nil.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Disconnect("")
		case <-done:
		}
	}()

	return s.readLoop()
}

func (s *Session) readLoop() error {
	var err error
	for {
		var line string
		line, err = s.transport.ReadLine()
		if err != nil {
			break
		}
		s.ProcessLine(line)
	}

	s.debug(event.DebugSocket, "read loop ended", "err", err)
	state := s.State()
	s.closed()

	if err == io.EOF || state == StateClosing || state == StateClosed {
		return nil
	}
	return errors.Wrap(err, "session: connection lost")
}

// sendConnectionStrings registers with the server.
func (s *Session) sendConnectionStrings() {
	if len(s.conf.Password) > 0 {
		s.sendString("PASS " + s.conf.Password)
	}
	s.SetNickname(s.desiredNickname())

	localhost := "*"
	if addr := s.transport.LocalAddr(); addr != nil {
		if tcp, ok := addr.(*net.TCPAddr); ok && tcp.IP != nil {
			localhost = tcp.IP.String()
		}
	}
	s.sendString(fmt.Sprintf("USER %s %s %s :%s",
		s.conf.Username, localhost, s.conf.Server, s.conf.Realname))
}

// Quit asks the server to close the connection. It does not wait for the
// server to do so.
func (s *Session) Quit(reason string) error {
	if len(reason) == 0 {
		return s.sendString("QUIT")
	}
	return s.sendString("QUIT :" + sanitize(reason))
}

// Disconnect quits if registered, closes the transport and resets the
// session. It is safe to call from any goroutine, including event handlers.
func (s *Session) Disconnect(reason string) {
	if s.State() == StateOpen {
		if s.got001.Load() {
			if err := s.Quit(reason); err != nil {
				s.debug(event.DebugSocket, "quit failed", "err", err)
			}
		}
		s.setState(StateClosing)
	}

	if s.transport != nil {
		if err := s.transport.Close(); err != nil {
			s.debug(event.DebugSocket, "close failed", "err", err)
		}
	}
	s.closed()
}

// closed moves to StateClosed, announcing it once, and resets everything.
func (s *Session) closed() {
	if State(s.state.Swap(int32(StateClosed))) != StateClosed {
		s.stopPingTimer()
		s.bus.Publish(event.SocketClosed{})
	}
	s.resetState()
}

// resetState forgets everything learned from the server.
func (s *Session) resetState() {
	s.stopPingTimer()

	s.got001.Store(false)
	s.post005.Store(false)
	s.triedAlt.Store(false)
	s.pingNeeded.Store(false)

	s.reg.Reset()
	s.table.Reset()
	s.info.Reset()

	self := data.NewFakeClient(s.desiredNickname())
	self.SetRealname(s.conf.Realname)
	s.reg.SetSelf(self)

	s.pingProtect.Lock()
	s.lastPingValue = ""
	s.serverLag = 0
	s.pingProtect.Unlock()

	s.protect.Lock()
	s.lastLine = ""
	s.thinkNickname = s.nickname
	s.protect.Unlock()
}
