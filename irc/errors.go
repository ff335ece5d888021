package irc

import (
	"strings"

	"github.com/pkg/errors"
)

// Severity is a bitmask describing how bad a ParserError is.
type Severity int

// Severity flags, these may be combined.
const (
	// Fatal means the session no longer agrees with the server about state.
	Fatal Severity = 1 << iota
	// Error is recoverable but should be reported.
	Error
	// Warning is unexpected but harmless.
	Warning
	// User means the caller or the server caused it, not a bug.
	User
	// Exception means an underlying error is attached.
	Exception
)

var severityNames = []struct {
	level Severity
	name  string
}{
	{Fatal, "FATAL"},
	{Error, "ERROR"},
	{Warning, "WARNING"},
	{User, "USER"},
	{Exception, "EXCEPTION"},
}

// Is checks if all the flags in s2 are present.
func (s Severity) Is(s2 Severity) bool {
	return s&s2 == s2
}

// String renders the flags joined by |.
func (s Severity) String() string {
	var names []string
	for _, n := range severityNames {
		if s&n.level != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// ParserError is reported whenever processing a line goes wrong.
type ParserError struct {
	Level    Severity
	Message  string
	LastLine string

	cause error
}

// NewParserError creates a ParserError.
func NewParserError(level Severity, message, lastLine string) *ParserError {
	return &ParserError{
		Level:    level,
		Message:  message,
		LastLine: lastLine,
	}
}

// WrapParserError creates a ParserError that carries an underlying error, the
// Exception flag is always added.
func WrapParserError(level Severity, err error, message, lastLine string) *ParserError {
	return &ParserError{
		Level:    level | Exception,
		Message:  message,
		LastLine: lastLine,
		cause:    errors.WithStack(err),
	}
}

// Error implements error.
func (p *ParserError) Error() string {
	if p.cause != nil {
		return p.Level.String() + ": " + p.Message + ": " + p.cause.Error()
	}
	return p.Level.String() + ": " + p.Message
}

// Cause returns the underlying error, nil if there is none.
func (p *ParserError) Cause() error {
	if p.cause == nil {
		return nil
	}
	return errors.Cause(p.cause)
}

// Unwrap lets the standard errors package see the underlying error.
func (p *ParserError) Unwrap() error {
	return p.Cause()
}

// IsFatal checks the Fatal flag.
func (p *ParserError) IsFatal() bool { return p.Level.Is(Fatal) }

// IsError checks the Error flag.
func (p *ParserError) IsError() bool { return p.Level.Is(Error) }

// IsWarning checks the Warning flag.
func (p *ParserError) IsWarning() bool { return p.Level.Is(Warning) }

// IsUser checks the User flag.
func (p *ParserError) IsUser() bool { return p.Level.Is(User) }

// IsException checks the Exception flag.
func (p *ParserError) IsException() bool { return p.Level.Is(Exception) }
