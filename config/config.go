/*
Package config holds the settings of one session, loaded from toml or yaml.

An example configuration looks like this:
	nick = "Nick"
	altnick = "Nick_"
	username = "nick"
	realname = "A Nick"
	password = "secret"

	server = "irc.example.net"
	port = 6697
	ssl = true
	noverifycert = false
	bindip = "10.0.0.1"
	# socks5://[user:pass@]host:port
	proxy = "socks5://localhost:1080"
	# Charset used for lines that are not valid UTF-8.
	encoding = "iso-8859-1"

	# Milliseconds between keepalive ticks, and how many ticks make up a
	# ping. A server line received resets the countdown when
	# checkserverping is set.
	pinginterval = 10000
	pingfraction = 6
	checkserverping = true

	removeaftercallback = true
	disconnectonfatal = true
	createfake = true
	autolistmode = true
	addlastline = false

	floodburst = 4
	floodrate = 1.0

	loglevel = "info"

	ignore = ["*!*@spam.example.net"]
	channels = ["#channel1", "#channel2 key"]

The same keys are used in yaml files.
*/
package config

const (
	// defaultIrcPort is IRC Network's default tcp port.
	defaultIrcPort = uint16(6667)
	// defaultIrcTLSPort is the default port when ssl is set.
	defaultIrcTLSPort = uint16(6697)
	// defaultPingInterval is how many milliseconds pass between keepalive
	// ticks.
	defaultPingInterval = 10000
	// defaultPingFraction is how many ticks pass between pings.
	defaultPingFraction = 6
	// defaultFloodBurst is how many lines may be written at once before the
	// flood limiter kicks in.
	defaultFloodBurst = 4
	// defaultFloodRate is how many lines per second are written once the
	// burst is exhausted.
	defaultFloodRate = 1.0
	// defaultEncoding is the fallback charset for lines that are not UTF-8.
	defaultEncoding = "iso-8859-1"
	// defaultLogLevel is the log15 level used when none is given.
	defaultLogLevel = "info"
)

// The following format strings are for formatting various config errors.
const (
	fmtErrInvalid = "config(%v): Invalid %v, given: %v"
	fmtErrMissing = "config(%v): Requires %v, but nothing was given."
)

// Config is the configuration of a single session. The zero value is not
// usable, call SetDefaults after filling it in.
type Config struct {
	Nick     string `toml:"nick" yaml:"nick"`
	Altnick  string `toml:"altnick" yaml:"altnick"`
	Username string `toml:"username" yaml:"username"`
	Realname string `toml:"realname" yaml:"realname"`
	Password string `toml:"password" yaml:"password"`

	Server       string `toml:"server" yaml:"server"`
	Port         uint16 `toml:"port" yaml:"port"`
	SSL          bool   `toml:"ssl" yaml:"ssl"`
	NoVerifyCert bool   `toml:"noverifycert" yaml:"noverifycert"`
	BindIP       string `toml:"bindip" yaml:"bindip"`
	Proxy        string `toml:"proxy" yaml:"proxy"`
	Encoding     string `toml:"encoding" yaml:"encoding"`

	PingInterval    int   `toml:"pinginterval" yaml:"pinginterval"`
	PingFraction    int   `toml:"pingfraction" yaml:"pingfraction"`
	CheckServerPing *bool `toml:"checkserverping" yaml:"checkserverping"`

	RemoveAfterCallback *bool `toml:"removeaftercallback" yaml:"removeaftercallback"`
	DisconnectOnFatal   *bool `toml:"disconnectonfatal" yaml:"disconnectonfatal"`
	CreateFake          *bool `toml:"createfake" yaml:"createfake"`
	AutoListMode        *bool `toml:"autolistmode" yaml:"autolistmode"`
	AddLastLine         bool  `toml:"addlastline" yaml:"addlastline"`

	FloodBurst int     `toml:"floodburst" yaml:"floodburst"`
	FloodRate  float64 `toml:"floodrate" yaml:"floodrate"`

	LogLevel string `toml:"loglevel" yaml:"loglevel"`

	Ignore   []string `toml:"ignore" yaml:"ignore"`
	Channels []string `toml:"channels" yaml:"channels"`
}

// New creates a config for a nickname and server with every default set.
func New(nick, server string) *Config {
	c := &Config{Nick: nick, Server: server}
	c.SetDefaults()
	return c
}

// SetDefaults fills in every field that was left empty.
func (c *Config) SetDefaults() {
	if len(c.Altnick) == 0 && len(c.Nick) > 0 {
		c.Altnick = c.Nick + "_"
	}
	if len(c.Username) == 0 {
		c.Username = c.Nick
	}
	if len(c.Realname) == 0 {
		c.Realname = c.Nick
	}
	if c.Port == 0 {
		if c.SSL {
			c.Port = defaultIrcTLSPort
		} else {
			c.Port = defaultIrcPort
		}
	}
	if len(c.Encoding) == 0 {
		c.Encoding = defaultEncoding
	}
	if c.PingInterval == 0 {
		c.PingInterval = defaultPingInterval
	}
	if c.PingFraction == 0 {
		c.PingFraction = defaultPingFraction
	}
	if c.FloodBurst == 0 {
		c.FloodBurst = defaultFloodBurst
	}
	if c.FloodRate == 0 {
		c.FloodRate = defaultFloodRate
	}
	if len(c.LogLevel) == 0 {
		c.LogLevel = defaultLogLevel
	}

	setTrue(&c.CheckServerPing)
	setTrue(&c.RemoveAfterCallback)
	setTrue(&c.DisconnectOnFatal)
	setTrue(&c.CreateFake)
	setTrue(&c.AutoListMode)
}

func setTrue(b **bool) {
	if *b == nil {
		t := true
		*b = &t
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// ShouldCheckServerPing is true when received lines reset the keepalive
// countdown.
func (c *Config) ShouldCheckServerPing() bool {
	return boolOr(c.CheckServerPing, true)
}

// ShouldRemoveAfterCallback is true when part, kick and quit events are
// published before the membership is removed.
func (c *Config) ShouldRemoveAfterCallback() bool {
	return boolOr(c.RemoveAfterCallback, true)
}

// ShouldDisconnectOnFatal is true when a fatal parser error disconnects.
func (c *Config) ShouldDisconnectOnFatal() bool {
	return boolOr(c.DisconnectOnFatal, true)
}

// ShouldCreateFake is true when unknown clients get placeholders for events.
func (c *Config) ShouldCreateFake() bool {
	return boolOr(c.CreateFake, true)
}

// ShouldAutoListMode is true when list modes are requested after NAMES.
func (c *Config) ShouldAutoListMode() bool {
	return boolOr(c.AutoListMode, true)
}

// Clone makes a deep copy.
func (c *Config) Clone() *Config {
	cpy := *c
	cpy.CheckServerPing = cloneBool(c.CheckServerPing)
	cpy.RemoveAfterCallback = cloneBool(c.RemoveAfterCallback)
	cpy.DisconnectOnFatal = cloneBool(c.DisconnectOnFatal)
	cpy.CreateFake = cloneBool(c.CreateFake)
	cpy.AutoListMode = cloneBool(c.AutoListMode)
	if c.Ignore != nil {
		cpy.Ignore = append([]string(nil), c.Ignore...)
	}
	if c.Channels != nil {
		cpy.Channels = append([]string(nil), c.Channels...)
	}
	return &cpy
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
