package log

import "fmt"

type level byte

const (
	levelDebug level = 1 << iota
	levelInfo
	levelWarn
	levelError
)

type keyval struct {
	key   any
	value any
}

type filter struct {
	next             Logger
	allowed          level            // XOR'd levels for default case
	initiallyAllowed level            // XOR'd levels for initial case
	allowedKeyvals   map[keyval]level // When key-value match, use this level
}

// Interface assertions.
var _ Logger = (*filter)(nil)

// NewFilter wraps next and implements filtering. See the commentary on the
// Option functions for a detailed description of how to configure levels. If
// no options are provided, all leveled log events created with Debug, Info,
// Warn or Error helper methods are squelched.
func NewFilter(next Logger, options ...Option) Logger {
	l := &filter{
		next:           next,
		allowedKeyvals: make(map[keyval]level),
	}
	for _, option := range options {
		option(l)
	}
	l.initiallyAllowed = l.allowed
	return l
}

func (l *filter) Error(msg string, keyvals ...any) {
	if l.allowed&levelError == 0 {
		return
	}
	l.next.Error(msg, keyvals...)
}

func (l *filter) Info(msg string, keyvals ...any) {
	if l.allowed&levelInfo == 0 {
		return
	}
	l.next.Info(msg, keyvals...)
}

func (l *filter) Warn(msg string, keyvals ...any) {
	if l.allowed&levelWarn == 0 {
		return
	}
	l.next.Warn(msg, keyvals...)
}

func (l *filter) Debug(msg string, keyvals ...any) {
	if l.allowed&levelDebug == 0 {
		return
	}
	l.next.Debug(msg, keyvals...)
}

// With implements Logger by constructing a new filter with a delegate that is
// the result of calling With on the underlying logger (with the given
// keyvals).
//
// If custom level was set for a keyval pair using one of the Allow*With
// methods, it is used as the logger's level.
//
// Examples:
//
//	logger = log.NewFilter(logger, log.AllowError(), log.AllowInfoWith("module", "whitelist"))
//	logger.With("module", "whitelist").Info("Hello") # produces "I... Hello"
//
//	logger = log.NewFilter(logger, log.AllowError(),
//		log.AllowInfoWith("module", "whitelist"), log.AllowNoneWith("user", "Sam"))
//	logger.With("module", "whitelist", "user", "Sam").Info("Hello") # returns nil
//
//	logger = log.NewFilter(logger, log.AllowError(),
//		log.AllowInfoWith("module", "whitelist"), log.AllowNoneWith("user", "Sam"))
//	logger.With("user", "Sam").With("module", "whitelist").Info("Hello") # produces "I... Hello"
func (l *filter) With(keyvals ...any) Logger {
	keyInAllowedKeyvals := false

	for i := len(keyvals) - 2; i >= 0; i -= 2 {
		for kv, allowed := range l.allowedKeyvals {
			if keyvals[i] == kv.key {
				keyInAllowedKeyvals = true
				// Example:
				//		logger = log.NewFilter(logger, log.AllowError(), log.AllowInfoWith("module", "whitelist"))
				//		logger.With("module", "whitelist")
				if keyvals[i+1] == kv.value {
					return &filter{
						next:             l.next.With(keyvals...),
						allowed:          allowed, // set the desired level
						allowedKeyvals:   l.allowedKeyvals,
						initiallyAllowed: l.initiallyAllowed,
					}
				}
			}
		}
	}

	// Example:
	//		logger = log.NewFilter(logger, log.AllowError(), log.AllowInfoWith("module", "whitelist"))
	//		logger.With("module", "main")
	if keyInAllowedKeyvals {
		return &filter{
			next:             l.next.With(keyvals...),
			allowed:          l.initiallyAllowed, // return back to initially allowed
			allowedKeyvals:   l.allowedKeyvals,
			initiallyAllowed: l.initiallyAllowed,
		}
	}

	return &filter{
		next:             l.next.With(keyvals...),
		allowed:          l.allowed, // simply continue with the current level
		allowedKeyvals:   l.allowedKeyvals,
		initiallyAllowed: l.initiallyAllowed,
	}
}

// Impl returns the original logger.
func (l *filter) Impl() any {
	return l.next
}

// -------------------------------------------------------------------------------

// Option sets a parameter for the filter.
type Option func(*filter)

// AllowLevel returns an option for the given level or error if no option
// exist for such level.
func AllowLevel(lvl string) (Option, error) {
	switch lvl {
	case "debug":
		return AllowDebug(), nil
	case "info":
		return AllowInfo(), nil
	case "warn":
		return AllowWarn(), nil
	case "error":
		return AllowError(), nil
	case "none":
		return AllowNone(), nil
	default:
		return nil, fmt.Errorf("expected either \"debug\", \"info\", \"warn\", \"error\" or \"none\" level, given %s", lvl)
	}
}

// AllowAll is an alias for AllowDebug.
func AllowAll() Option {
	return AllowDebug()
}

// AllowDebug allows error, warn, info and debug level log events to pass.
func AllowDebug() Option {
	return allowed(levelError | levelWarn | levelInfo | levelDebug)
}

// AllowInfo allows error, warn and info level log events to pass.
func AllowInfo() Option {
	return allowed(levelError | levelWarn | levelInfo)
}

// AllowWarn allows error and warn level log events to pass.
func AllowWarn() Option {
	return allowed(levelError | levelWarn)
}

// AllowError allows only error level log events to pass.
func AllowError() Option {
	return allowed(levelError)
}

// AllowNone allows no leveled log events to pass.
func AllowNone() Option {
	return allowed(0)
}

func allowed(allowed level) Option {
	return func(l *filter) { l.allowed = allowed }
}

// AllowDebugWith allows error, warn, info and debug level log events to pass
// for a specific key value pair.
func AllowDebugWith(key any, value any) Option {
	return func(l *filter) {
		l.allowedKeyvals[keyval{key, value}] = levelError | levelWarn | levelInfo | levelDebug
	}
}

// AllowInfoWith allows error, warn and info level log events to pass for a
// specific key value pair.
func AllowInfoWith(key any, value any) Option {
	return func(l *filter) {
		l.allowedKeyvals[keyval{key, value}] = levelError | levelWarn | levelInfo
	}
}

// AllowWarnWith allows error and warn level log events to pass for a specific
// key value pair.
func AllowWarnWith(key any, value any) Option {
	return func(l *filter) {
		l.allowedKeyvals[keyval{key, value}] = levelError | levelWarn
	}
}

// AllowErrorWith allows only error level log events to pass for a specific
// key value pair.
func AllowErrorWith(key any, value any) Option {
	return func(l *filter) {
		l.allowedKeyvals[keyval{key, value}] = levelError
	}
}

// AllowNoneWith allows no leveled log events to pass for a specific key value
// pair.
func AllowNoneWith(key any, value any) Option {
	return func(l *filter) {
		l.allowedKeyvals[keyval{key, value}] = 0
	}
}
