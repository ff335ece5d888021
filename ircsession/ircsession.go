package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/docopt/docopt-go"
	"gopkg.in/inconshreveable/log15.v2"

	"github.com/DMDirc/DMDirc-sub001/config"
	"github.com/DMDirc/DMDirc-sub001/event"
	"github.com/DMDirc/DMDirc-sub001/inet"
	"github.com/DMDirc/DMDirc-sub001/irc"
	"github.com/DMDirc/DMDirc-sub001/session"
)

const version = "ircsession 0.1"

const usage = `ircsession.
Usage:
	ircsession run [--conf <filename>] [--debug]
	ircsession check [--conf <filename>]
	ircsession -h | --help
	ircsession --version
Options:
	--conf <filename>  Configuration file to use [default: ircsession.toml].
	--debug            Log at debug level whatever the config says.
	-h --help          Show this screen.
	--version          Show version.`

func main() {
	arguments, _ := docopt.ParseArgs(usage, nil, version)

	filename := arguments["--conf"].(string)
	conf, err := loadConfig(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if arguments["check"].(bool) {
		fmt.Printf("%s: ok\n", filename)
		return
	}

	if arguments["--debug"].(bool) {
		conf.LogLevel = "debug"
	}
	logger := newLogger(os.Stderr, conf.LogLevel)

	if err := run(conf, logger); err != nil {
		logger.Crit("session ended", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads and validates a config file.
func loadConfig(filename string) (*config.Config, error) {
	conf, err := config.Load(filename)
	if err != nil {
		return nil, err
	}
	if errs := conf.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%s", concatErrors(errs))
	}
	return conf, nil
}

func newLogger(w io.Writer, level string) log15.Logger {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		lvl = log15.LvlInfo
	}

	logger := log15.New()
	logger.SetHandler(log15.LvlFilterHandler(lvl,
		log15.StreamHandler(w, log15.LogfmtFormat())))
	return logger
}

// run connects and processes lines until the server goes away or an
// interrupt arrives.
func run(conf *config.Config, logger log15.Logger) error {
	transport, err := inet.NewClientFromConfig(conf, logger.New("conn", conf.Server))
	if err != nil {
		return err
	}

	sess := session.New(conf,
		session.WithLogger(logger),
		session.WithTransport(transport),
	)
	attach(sess, conf, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting", "server", conf.Server, "port", conf.Port, "nick", conf.Nick)
	return sess.Run(ctx)
}

// attach logs the interesting events of a session, joins the configured
// channels once the server has said what it supports and answers CTCP
// VERSION.
func attach(sess *session.Session, conf *config.Config, logger log15.Logger) {
	bus := sess.Bus()
	channels := append([]string(nil), conf.Channels...)

	event.On(bus, "", func(ev event.ServerReady) {
		logger.Info("registered", "server", sess.ServerName(), "nick", sess.Nickname())
	})
	event.On(bus, "", func(ev event.Post005) {
		logger.Info("network", "name", sess.NetworkName(), "ircd", sess.ServerType())
		for _, entry := range channels {
			name, key := splitChannel(entry)
			if err := sess.JoinChannel(name, key, true); err != nil {
				logger.Error("join failed", "channel", name, "err", err)
			}
		}
	})
	event.On(bus, "", func(ev event.ChannelSelfJoin) {
		logger.Info("joined", "channel", ev.Channel.Name())
	})
	event.On(bus, "", func(ev event.ChannelMessage) {
		logger.Info("message", "channel", ev.Channel.Name(), "from", irc.ParseHost(ev.Host), "text", ev.Message)
	})
	event.On(bus, "", func(ev event.PrivateMessage) {
		logger.Info("private message", "from", irc.ParseHost(ev.Host), "text", ev.Message)
	})
	event.On(bus, "", func(ev event.PrivateCTCP) {
		if strings.EqualFold(ev.Type, "VERSION") {
			sess.SendCTCPReply(irc.ParseHost(ev.Host), "VERSION", version)
		}
	})
	event.On(bus, "", func(ev event.ErrorInfo) {
		if ev.Err.IsFatal() {
			logger.Error("parser error", "err", ev.Err, "line", ev.Err.LastLine)
		} else {
			logger.Warn("parser error", "err", ev.Err, "line", ev.Err.LastLine)
		}
	})
	event.On(bus, "", func(ev event.ServerError) {
		logger.Error("server error", "msg", ev.Message)
	})
	event.On(bus, "", func(ev event.PingFailed) {
		logger.Warn("server stopped answering pings")
		sess.Disconnect("")
	})
	event.On(bus, "", func(ev event.SocketClosed) {
		logger.Info("connection closed")
	})
}

// splitChannel breaks a "#channel key" config entry in two.
func splitChannel(entry string) (name, key string) {
	fields := strings.Fields(entry)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return fields[0], fields[1]
}

func concatErrors(errs []error) string {
	buf := &bytes.Buffer{}
	for _, err := range errs {
		fmt.Fprintln(buf, err.Error())
	}

	return strings.TrimSuffix(buf.String(), "\n")
}
