/*
Package session is the protocol engine of one IRC connection. It reads lines
from a Transport, keeps the data.Registry in step with the server, answers
keepalives and publishes everything of interest on an event.Bus.

A session is built from a config and a transport, then run:

	s := session.New(conf, session.WithTransport(t), session.WithLogger(l))
	event.On(s.Bus(), "", func(ev event.ChannelMessage) {
		fmt.Println(ev.Host, ev.Message)
	})
	err := s.Run(ctx)

Every line is handled to completion on the goroutine calling Run before the
next one is read. The keepalive timer runs on its own goroutine and only ever
writes to the transport. The outgoing API (JoinChannel, SendMessage and so
on) is safe to call from any goroutine.

Handlers for any command or numeric can be replaced at runtime through
Dispatcher, the last registration wins.
*/
package session

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/DMDirc/DMDirc-sub001/config"
	"github.com/DMDirc/DMDirc-sub001/data"
	"github.com/DMDirc/DMDirc-sub001/dispatch"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

// State is where in its lifetime a session is.
type State int32

// The states of a session. A closed session may be connected again.
const (
	StateNew State = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var (
	// ErrNotConnected is returned when writing while the session is not
	// open.
	ErrNotConnected = errors.New("session: not connected")
	// ErrNoTransport is returned by Connect when no transport was given.
	ErrNoTransport = errors.New("session: no transport")
	// ErrAlreadyConnected is returned by Connect on a session that is
	// connecting or open.
	ErrAlreadyConnected = errors.New("session: already connected")
)

// Transport carries lines to and from the server. ReadLine blocks until a
// whole line without its line ending is available, it returns an error once
// the connection is gone. Close must unblock a pending ReadLine.
type Transport interface {
	Connect(ctx context.Context) error
	ReadLine() (string, error)
	WriteLine(line string) error
	LocalAddr() net.Addr
	Close() error
}

// Option configures a session in New.
type Option func(*Session)

// WithLogger sets the logger, the default discards everything.
func WithLogger(logger irc.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTransport sets the transport used by Connect.
func WithTransport(t Transport) Option {
	return func(s *Session) {
		s.transport = t
	}
}

// WithBus publishes on an existing bus instead of a new one.
func WithBus(bus *event.Bus) Option {
	return func(s *Session) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// Session is one connection to an IRC server and everything known about
// the network through it.
type Session struct {
	conf      *config.Config
	logger    irc.Logger
	transport Transport

	bus        *event.Bus
	dispatcher *dispatch.Dispatcher
	table      *data.ModeTable
	reg        *data.Registry
	info       *irc.NetworkInfo
	quirks     *QuirksTable
	ignore     *IgnoreList

	state    atomic.Int32
	got001   atomic.Bool
	post005  atomic.Bool
	triedAlt atomic.Bool

	removeAfterCallback atomic.Bool
	createFake          atomic.Bool
	autoListMode        atomic.Bool
	disconnectOnFatal   atomic.Bool
	addLastLine         atomic.Bool

	// keepalive, see ping.go
	checkServerPing atomic.Bool
	pingNeeded      atomic.Bool
	pingInterval    atomic.Int64
	pingFraction    atomic.Int32
	pingProtect     sync.Mutex
	pingStop        chan struct{}
	pingCountdown   int
	lastPingValue   string
	pingSentAt      time.Time
	serverLag       time.Duration

	protect       sync.RWMutex
	nickname      string
	thinkNickname string
	lastLine      string
}

// New creates a session from a config. The config is cloned, later changes
// to it have no effect.
func New(conf *config.Config, opts ...Option) *Session {
	conf = conf.Clone()
	conf.SetDefaults()

	table := data.NewModeTable()
	s := &Session{
		conf:     conf,
		logger:   irc.DiscardLogger(),
		table:    table,
		reg:      data.NewRegistry(table),
		info:     irc.NewNetworkInfo(),
		quirks:   NewQuirksTable(),
		nickname: conf.Nick,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = event.NewBus(s.logger)
	}
	s.bus.SetFold(s.reg.Fold)
	s.ignore = NewIgnoreList(s.reg.CaseMapper)
	for _, mask := range conf.Ignore {
		s.ignore.Add(mask)
	}

	s.removeAfterCallback.Store(conf.ShouldRemoveAfterCallback())
	s.createFake.Store(conf.ShouldCreateFake())
	s.autoListMode.Store(conf.ShouldAutoListMode())
	s.disconnectOnFatal.Store(conf.ShouldDisconnectOnFatal())
	s.addLastLine.Store(conf.AddLastLine)
	s.checkServerPing.Store(conf.ShouldCheckServerPing())
	s.pingInterval.Store(int64(conf.PingInterval))
	s.pingFraction.Store(int32(conf.PingFraction))

	s.dispatcher = dispatch.NewDispatcher(s.numeric)
	s.registerHandlers()
	s.resetState()
	s.state.Store(int32(StateNew))
	return s
}

// Bus returns the bus events are published on.
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// Dispatcher returns the handler table, handlers registered on it replace
// the built in ones.
func (s *Session) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Registry returns everything known about clients and channels.
func (s *Session) Registry() *data.Registry {
	return s.reg
}

// ModeTable returns the modes negotiated with the server.
func (s *Session) ModeTable() *data.ModeTable {
	return s.table
}

// NetworkInfo returns the capabilities the server advertised.
func (s *Session) NetworkInfo() *irc.NetworkInfo {
	return s.info
}

// Quirks returns the server family quirks table, entries may be added to it
// at any time.
func (s *Session) Quirks() *QuirksTable {
	return s.quirks
}

// IgnoreList returns the masks whose messages are dropped.
func (s *Session) IgnoreList() *IgnoreList {
	return s.ignore
}

// State returns the current state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(state State) {
	s.state.Store(int32(state))
}

// IsReady is true once the server has welcomed us.
func (s *Session) IsReady() bool {
	return s.got001.Load()
}

// IsPost005 is true once capability negotiation has ended.
func (s *Session) IsPost005() bool {
	return s.post005.Load()
}

// LocalClient returns our own client. It is a placeholder until the server
// welcomes us.
func (s *Session) LocalClient() *data.Client {
	return s.reg.Self()
}

// Nickname returns our confirmed nickname, or the one we asked for before
// the server confirmed anything.
func (s *Session) Nickname() string {
	if self := s.reg.Self(); self != nil && !self.IsFake() {
		return self.Nickname()
	}
	return s.ThinkNickname()
}

// ThinkNickname returns the nickname we last asked for.
func (s *Session) ThinkNickname() string {
	s.protect.RLock()
	defer s.protect.RUnlock()
	return s.thinkNickname
}

func (s *Session) setThinkNickname(nick string) {
	s.protect.Lock()
	defer s.protect.Unlock()
	s.thinkNickname = nick
}

func (s *Session) desiredNickname() string {
	s.protect.RLock()
	defer s.protect.RUnlock()
	return s.nickname
}

// LastLine returns the last line received.
func (s *Session) LastLine() string {
	s.protect.RLock()
	defer s.protect.RUnlock()
	return s.lastLine
}

func (s *Session) setLastLine(line string) {
	s.protect.Lock()
	defer s.protect.Unlock()
	s.lastLine = line
}

// ServerName returns the name the server gave itself in 001.
func (s *Session) ServerName() string {
	return s.info.ServerName()
}

// NetworkName returns the NETWORK capability.
func (s *Session) NetworkName() string {
	return s.info.NetworkName()
}

// RemoveAfterCallback says if part, kick and quit events are published
// before the membership is removed.
func (s *Session) RemoveAfterCallback() bool {
	return s.removeAfterCallback.Load()
}

// SetRemoveAfterCallback changes the ordering of part, kick and quit events.
func (s *Session) SetRemoveAfterCallback(v bool) {
	s.removeAfterCallback.Store(v)
}

// CreateFake says if events about unknown clients carry placeholders.
func (s *Session) CreateFake() bool {
	return s.createFake.Load()
}

// SetCreateFake changes if events about unknown clients carry placeholders.
func (s *Session) SetCreateFake(v bool) {
	s.createFake.Store(v)
}

// AutoListMode says if list modes are requested after joining.
func (s *Session) AutoListMode() bool {
	return s.autoListMode.Load()
}

// SetAutoListMode changes if list modes are requested after joining.
func (s *Session) SetAutoListMode(v bool) {
	s.autoListMode.Store(v)
}

// DisconnectOnFatal says if a fatal parser error disconnects.
func (s *Session) DisconnectOnFatal() bool {
	return s.disconnectOnFatal.Load()
}

// SetDisconnectOnFatal changes if a fatal parser error disconnects.
func (s *Session) SetDisconnectOnFatal(v bool) {
	s.disconnectOnFatal.Store(v)
}

// SetAddLastLine changes if error messages quote the last line received.
func (s *Session) SetAddLastLine(v bool) {
	s.addLastLine.Store(v)
}
