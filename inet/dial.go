package inet

import (
	"context"
	"crypto/tls"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/proxy"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/DMDirc/DMDirc-sub001/config"
)

// dialTimeout bounds the tcp connect, the proxy handshake included.
const dialTimeout = 30 * time.Second

// DialFunc opens a connection to the server.
type DialFunc func(ctx context.Context) (net.Conn, error)

// Dialer builds a DialFunc from the connection settings of a config: the
// bind address, a socks5 proxy and tls.
func Dialer(conf *config.Config) (DialFunc, error) {
	addr := net.JoinHostPort(conf.Server, strconv.Itoa(int(conf.Port)))

	base := &net.Dialer{Timeout: dialTimeout}
	if len(conf.BindIP) > 0 {
		ip := net.ParseIP(conf.BindIP)
		if ip == nil {
			return nil, errors.Errorf("inet: invalid bind address %q", conf.BindIP)
		}
		base.LocalAddr = &net.TCPAddr{IP: ip}
	}

	var forward proxy.ContextDialer = base
	if len(conf.Proxy) > 0 {
		socks, err := socksDialer(conf.Proxy, base)
		if err != nil {
			return nil, err
		}
		forward = socks
	}

	var tlsConf *tls.Config
	if conf.SSL {
		tlsConf = &tls.Config{
			ServerName:         conf.Server,
			InsecureSkipVerify: conf.NoVerifyCert,
		}
	}

	return func(ctx context.Context) (net.Conn, error) {
		conn, err := forward.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, errors.Wrapf(err, "inet: dial %s", addr)
		}
		if tlsConf == nil {
			return conn, nil
		}

		tlsConn := tls.Client(conn, tlsConf)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "inet: tls handshake with %s", addr)
		}
		return tlsConn, nil
	}, nil
}

// socksDialer parses socks5://[user:pass@]host:port and returns a dialer
// that goes through it.
func socksDialer(raw string, forward proxy.Dialer) (proxy.ContextDialer, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "inet: invalid proxy %q", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "socks5", "socks5h":
	default:
		return nil, errors.Errorf("inet: unsupported proxy scheme %q", u.Scheme)
	}
	if len(u.Host) == 0 {
		return nil, errors.Errorf("inet: proxy %q has no host", raw)
	}

	var auth *proxy.Auth
	if u.User != nil {
		password, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: password}
	}

	d, err := proxy.SOCKS5("tcp", u.Host, auth, forward)
	if err != nil {
		return nil, errors.Wrap(err, "inet: socks5 proxy")
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, errors.New("inet: socks5 dialer does not take a context")
	}
	return cd, nil
}

// Charset finds the encoding used for lines that are not valid UTF-8. The
// latin-1 names are taken literally, everything else goes through the
// WHATWG index which treats latin-1 as windows-1252.
func Charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "inet: unknown charset %q", name)
	}
	return enc, nil
}
