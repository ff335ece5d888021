/*
Package mocks has an in-memory net.Conn for testing code that talks to a
socket.
*/
package mocks

import (
	"io"
	"net"
	"sync"
	"time"
)

// IOReturn is what a mocked Read or Write call returns.
type IOReturn struct {
	n   int
	err error
}

// Conn is a net.Conn whose every Read and Write is scripted by the test.
// Each Write blocks until the test calls Receive, each Read blocks until the
// test calls Send. Once closed both return immediately.
type Conn struct {
	writechan   chan []byte
	writereturn chan IOReturn
	readchan    chan []byte
	readreturn  chan IOReturn

	closeOnce   sync.Once
	closed      chan struct{}
	deathWaiter sync.WaitGroup

	local  net.Addr
	remote net.Addr
}

// NewConn creates a connection that looks like it goes from 127.0.0.1:40000
// to 127.0.0.1:6667.
func NewConn() *Conn {
	conn := &Conn{
		writechan:   make(chan []byte),
		writereturn: make(chan IOReturn),
		readchan:    make(chan []byte),
		readreturn:  make(chan IOReturn),
		closed:      make(chan struct{}),
		local:       &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000},
		remote:      &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 6667},
	}

	conn.deathWaiter.Add(1)
	return conn
}

// Receive takes the next write, the writer sees n and err.
func (m *Conn) Receive(n int, err error) []byte {
	read := <-m.writechan
	m.writereturn <- IOReturn{n, err}
	return read
}

// Write waits for the test to Receive it.
func (m *Conn) Write(written []byte) (int, error) {
	cpy := append([]byte(nil), written...)
	select {
	case m.writechan <- cpy:
	case <-m.closed:
		return 0, io.ErrClosedPipe
	}
	ret := <-m.writereturn
	return ret.n, ret.err
}

// Send gives the next Read buffer, the reader sees n and err.
func (m *Conn) Send(buffer []byte, n int, err error) {
	m.readchan <- buffer
	m.readreturn <- IOReturn{n, err}
}

// Read waits for the test to Send something.
func (m *Conn) Read(buffer []byte) (int, error) {
	var read []byte
	select {
	case read = <-m.readchan:
	case <-m.closed:
		return 0, io.ErrClosedPipe
	}
	copy(buffer, read)
	ret := <-m.readreturn
	return ret.n, ret.err
}

// WaitForDeath blocks until Close is called.
func (m *Conn) WaitForDeath() {
	m.deathWaiter.Wait()
}

// IsClosed reports if Close was called.
func (m *Conn) IsClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

// Close unblocks every pending Read and Write, only the first call counts.
func (m *Conn) Close() error {
	m.closeOnce.Do(func() {
		close(m.closed)
		m.deathWaiter.Done()
	})
	return nil
}

func (m *Conn) LocalAddr() net.Addr {
	return m.local
}

func (m *Conn) RemoteAddr() net.Addr {
	return m.remote
}

func (m *Conn) SetDeadline(time.Time) error {
	return nil
}

func (m *Conn) SetReadDeadline(time.Time) error {
	return nil
}

func (m *Conn) SetWriteDeadline(time.Time) error {
	return nil
}
