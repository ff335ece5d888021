/*
Package inet handles connecting to an irc server and reading and writing
lines on the connection.
*/
package inet

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"

	"github.com/DMDirc/DMDirc-sub001/config"
	"github.com/DMDirc/DMDirc-sub001/irc"
)

const (
	// bufferSize is the size of the read buffer, a line longer than this is
	// discarded.
	bufferSize = 16384
	// nBufferedLines is how many read lines can wait for ReadLine before
	// reading from the socket blocks.
	nBufferedLines = 25
)

var (
	// pong lets replies to PING skip the flood limiter.
	pong = []byte("PONG")
	// crlf ends every line written.
	crlf = []byte("\r\n")
)

var (
	// ErrClosed is returned when using a client that is not connected.
	ErrClosed = errors.New("inet: connection closed")
	// ErrConnected is returned by Connect on a client that is connected.
	ErrConnected = errors.New("inet: already connected")
)

// link is everything that belongs to one connection, a reconnect gets a new
// one so that workers of an old connection never touch the new.
type link struct {
	conn   net.Conn
	ctx    context.Context
	cancel context.CancelFunc
	lines  chan string
	wake   chan struct{}
	queue  Queue
	// err is set by the siphon before lines is closed.
	err error
}

// Client is a connection to an irc server. Lines read are decoded and handed
// out by ReadLine, lines written are queued and paced by a token bucket.
// Replies to PING are written at once.
type Client struct {
	name    string
	dial    DialFunc
	logger  irc.Logger
	limiter *rate.Limiter
	charset encoding.Encoding

	protect      sync.Mutex
	link         *link
	writeProtect sync.Mutex
	pumps        sync.WaitGroup
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger, the default discards everything.
func WithLogger(logger irc.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFloodLimit allows burst lines at once, then perSecond lines a second.
// A rate of zero or less turns flood limiting off.
func WithFloodLimit(burst int, perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithCharset sets the encoding used to decode lines that are not UTF-8.
func WithCharset(enc encoding.Encoding) Option {
	return func(c *Client) {
		c.charset = enc
	}
}

// NewClient creates a client that connects with dial. name is used in log
// output.
func NewClient(name string, dial DialFunc, opts ...Option) *Client {
	c := &Client{
		name:   name,
		dial:   dial,
		logger: irc.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client with the dialer, flood limit and
// charset a config asks for.
func NewClientFromConfig(conf *config.Config, logger irc.Logger) (*Client, error) {
	dial, err := Dialer(conf)
	if err != nil {
		return nil, err
	}
	charset, err := Charset(conf.Encoding)
	if err != nil {
		return nil, err
	}

	return NewClient(conf.Server, dial,
		WithLogger(logger),
		WithFloodLimit(conf.FloodBurst, conf.FloodRate),
		WithCharset(charset),
	), nil
}

// Connect dials the server and starts reading and writing.
func (c *Client) Connect(ctx context.Context) error {
	c.protect.Lock()
	defer c.protect.Unlock()

	if c.link != nil {
		return ErrConnected
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return errors.Wrapf(err, "inet: (%v) connect failed", c.name)
	}

	l := &link{
		conn:  conn,
		lines: make(chan string, nBufferedLines),
		wake:  make(chan struct{}, 1),
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	c.link = l

	c.logger.Info("connected", "conn", c.name, "addr", conn.RemoteAddr())

	c.pumps.Add(1)
	go c.pump(l)
	go c.siphon(l)
	return nil
}

func (c *Client) current() *link {
	c.protect.Lock()
	defer c.protect.Unlock()
	return c.link
}

// ReadLine blocks until a line arrives. Once the connection is gone the
// error that ended it is returned, io.EOF when the server closed it.
func (c *Client) ReadLine() (string, error) {
	l := c.current()
	if l == nil {
		return "", ErrClosed
	}

	line, ok := <-l.lines
	if !ok {
		return "", l.err
	}
	return line, nil
}

// WriteLine queues a line, the line ending is added. A PONG is written
// before returning and ignores the flood limiter.
func (c *Client) WriteLine(line string) error {
	l := c.current()
	if l == nil {
		return ErrClosed
	}
	select {
	case <-l.ctx.Done():
		return ErrClosed
	default:
	}

	msg := make([]byte, 0, len(line)+len(crlf))
	msg = append(append(msg, line...), crlf...)
	if bytes.HasPrefix(msg, pong) {
		return c.writeMessage(l, msg)
	}

	l.queue.Enqueue(msg)
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// LocalAddr is the local end of the connection, nil when not connected.
func (c *Client) LocalAddr() net.Addr {
	if l := c.current(); l != nil {
		return l.conn.LocalAddr()
	}
	return nil
}

// Queued returns how many lines are waiting for the flood limiter.
func (c *Client) Queued() int {
	if l := c.current(); l != nil {
		return l.queue.Len()
	}
	return 0
}

// Close closes the connection and drops any queued lines. A blocked
// ReadLine returns once the socket reports the close. Closing twice does
// nothing.
func (c *Client) Close() error {
	c.protect.Lock()
	l := c.link
	c.link = nil
	c.protect.Unlock()

	if l == nil {
		return nil
	}

	l.cancel()
	err := l.conn.Close()
	c.pumps.Wait()
	if dropped := l.queue.Clear(); dropped > 0 {
		c.logger.Debug("dropped queued lines", "conn", c.name, "n", dropped)
	}
	c.logger.Info("closed", "conn", c.name)
	return err
}

// pump writes queued lines as the limiter allows until the link is
// cancelled or a write fails.
func (c *Client) pump(l *link) {
	defer c.pumps.Done()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-l.wake:
		}

		// Lines stay queued while waiting on the limiter.
		for l.queue.Len() > 0 {
			if c.limiter != nil {
				if err := c.limiter.Wait(l.ctx); err != nil {
					return
				}
			}
			msgs := l.queue.Dequeue(1)
			if len(msgs) == 0 {
				break
			}
			if err := c.writeMessage(l, msgs[0]); err != nil {
				return
			}
		}
	}
}

// writeMessage writes a whole line to the socket.
func (c *Client) writeMessage(l *link, msg []byte) error {
	c.writeProtect.Lock()
	defer c.writeProtect.Unlock()

	wrote := msg[:len(msg)-len(crlf)]
	var n int
	var err error
	for written := 0; written < len(msg); written += n {
		n, err = l.conn.Write(msg[written:])
		if err != nil {
			c.logger.Error("write failed", "conn", c.name, "err", err, "line", string(wrote))
			return errors.Wrapf(err, "inet: (%v) write", c.name)
		}
	}
	c.logger.Debug("<-", "conn", c.name, "line", string(wrote))
	return nil
}

// siphon reads from the socket and hands out every complete line. The
// remains of a line cut off by the end of the stream are handed out too.
// A line longer than the buffer is dropped up to its newline.
func (c *Client) siphon(l *link) {
	defer close(l.lines)

	buf := make([]byte, bufferSize)
	var position int
	var discarding bool
	for {
		n, err := l.conn.Read(buf[position:])
		if n > 0 {
			end := position + n
			if discarding {
				if i := bytes.IndexByte(buf[:end], '\n'); i < 0 {
					end = 0
				} else {
					end = copy(buf, buf[i+1:end])
					discarding = false
				}
			}

			var ok bool
			if position, ok = c.extractLines(l, buf[:end]); !ok {
				l.err = ErrClosed
				return
			}
		}

		if err != nil {
			if position > 0 && err == io.EOF {
				c.send(l, buf[:position])
			}
			if err != io.EOF {
				c.logger.Debug("read failed", "conn", c.name, "err", err)
				select {
				case <-l.ctx.Done():
					err = ErrClosed
				default:
					err = errors.Wrapf(err, "inet: (%v) read", c.name)
				}
			}
			l.err = err
			return
		}

		if position == len(buf) {
			c.logger.Warn("line too long, discarded", "conn", c.name, "size", position)
			position = 0
			discarding = true
		}
	}
}

// extractLines hands out every line in buf and moves what is left of an
// unfinished line to the front. It returns where the next read should
// start, false when the link was cancelled.
func (c *Client) extractLines(l *link, buf []byte) (int, bool) {
	start, aborted := findLines(buf, func(line []byte) bool {
		return !c.send(l, line)
	})
	if aborted {
		return 0, false
	}

	remaining := copy(buf, buf[start:])
	return remaining, true
}

// send decodes a line and hands it to ReadLine. Empty lines are skipped.
func (c *Client) send(l *link, line []byte) bool {
	if len(line) == 0 {
		return true
	}
	decoded := c.decode(line)
	select {
	case l.lines <- decoded:
		c.logger.Debug("->", "conn", c.name, "line", decoded)
		return true
	case <-l.ctx.Done():
		return false
	}
}

// decode turns raw bytes into a string. Valid UTF-8 is kept as is, anything
// else is decoded with the fallback charset.
func (c *Client) decode(line []byte) string {
	if utf8.Valid(line) {
		return string(line)
	}
	if c.charset != nil {
		if decoded, err := c.charset.NewDecoder().Bytes(line); err == nil {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(string(line), string(utf8.RuneError))
}

// findLines calls block for each line in buf ending in \n, without the \n
// or a \r before it. It returns the start of the unfinished line, and true
// if block asked to stop.
func findLines(buf []byte, block func([]byte) bool) (int, bool) {
	start := 0
	for {
		i := bytes.IndexByte(buf[start:], '\n')
		if i < 0 {
			return start, false
		}
		end := start + i
		line := buf[start:end]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if block(line) {
			return start, true
		}
		start = end + 1
	}
}
