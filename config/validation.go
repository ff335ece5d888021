package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	log15 "gopkg.in/inconshreveable/log15.v2"
)

// errList is an array of errors.
type errList []error

// addError builds an error object and appends it to this instances errors.
func (l *errList) addError(format string, args ...interface{}) {
	*l = append(*l, fmt.Errorf(format, args...))
}

// Validate checks the config and returns everything that is wrong with it,
// nil if nothing is.
func (c *Config) Validate() []error {
	ers := make(errList, 0)

	c.validateRequired(&ers)
	c.validateValues(&ers)

	if len(ers) == 0 {
		return nil
	}
	return ers
}

// validateRequired checks that all required fields are present.
func (c *Config) validateRequired(ers *errList) {
	if len(c.Nick) == 0 {
		ers.addError(fmtErrMissing, "nick", "a nickname")
	}
	if len(c.Username) == 0 {
		ers.addError(fmtErrMissing, "username", "a username")
	}
	if len(c.Realname) == 0 {
		ers.addError(fmtErrMissing, "realname", "a realname")
	}
	if len(c.Server) == 0 {
		ers.addError(fmtErrMissing, "server", "a server host")
	}
}

// validateValues checks that the present fields make sense.
func (c *Config) validateValues(ers *errList) {
	if strings.ContainsAny(c.Nick, " ,") {
		ers.addError(fmtErrInvalid, "nick", "nickname", c.Nick)
	}
	if strings.ContainsAny(c.Altnick, " ,") {
		ers.addError(fmtErrInvalid, "altnick", "nickname", c.Altnick)
	}
	if c.Port == 0 {
		ers.addError(fmtErrInvalid, "port", "port", c.Port)
	}
	if len(c.BindIP) > 0 && net.ParseIP(c.BindIP) == nil {
		ers.addError(fmtErrInvalid, "bindip", "ip address", c.BindIP)
	}
	if len(c.Proxy) > 0 {
		u, err := url.Parse(c.Proxy)
		if err != nil || (u.Scheme != "socks5" && u.Scheme != "socks5h") || len(u.Host) == 0 {
			ers.addError(fmtErrInvalid, "proxy", "socks5 url", c.Proxy)
		}
	}
	if len(c.Encoding) > 0 {
		if _, err := htmlindex.Get(c.Encoding); err != nil {
			ers.addError(fmtErrInvalid, "encoding", "charset", c.Encoding)
		}
	}
	if c.PingInterval < 0 {
		ers.addError(fmtErrInvalid, "pinginterval", "interval", c.PingInterval)
	}
	if c.PingFraction < 0 {
		ers.addError(fmtErrInvalid, "pingfraction", "fraction", c.PingFraction)
	}
	if c.FloodBurst < 0 {
		ers.addError(fmtErrInvalid, "floodburst", "burst", c.FloodBurst)
	}
	if c.FloodRate < 0 {
		ers.addError(fmtErrInvalid, "floodrate", "rate", c.FloodRate)
	}
	if len(c.LogLevel) > 0 {
		if _, err := log15.LvlFromString(c.LogLevel); err != nil {
			ers.addError(fmtErrInvalid, "loglevel", "log level", c.LogLevel)
		}
	}
	for _, mask := range c.Ignore {
		if len(strings.TrimSpace(mask)) == 0 {
			ers.addError(fmtErrInvalid, "ignore", "mask", fmt.Sprintf("%q", mask))
		}
	}
	for _, ch := range c.Channels {
		if len(strings.TrimSpace(ch)) == 0 {
			ers.addError(fmtErrInvalid, "channels", "channel", fmt.Sprintf("%q", ch))
		}
	}
}
