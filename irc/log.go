package irc

import (
	log15 "gopkg.in/inconshreveable/log15.v2"
)

// Logger is the logging interface used throughout, log15.Logger satisfies it.
type Logger interface {
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
}

// DiscardLogger returns a log15 logger that drops everything.
func DiscardLogger() Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}
