package logentry

import (
	"strings"

	"github.com/wippyai/parc/errors"
)

// Level is a log severity. Emergency through Debug follow the syslog
// severities in order; Off and All bound the range for thresholds.
type Level int

const (
	LevelOff Level = iota
	LevelEmergency
	LevelAlert
	LevelCritical
	LevelError
	LevelWarning
	LevelNotice
	LevelInfo
	LevelDebug
	LevelAll
)

var levelNames = [...]string{
	LevelOff:       "OFF",
	LevelEmergency: "EMERGENCY",
	LevelAlert:     "ALERT",
	LevelCritical:  "CRITICAL",
	LevelError:     "ERROR",
	LevelWarning:   "WARNING",
	LevelNotice:    "NOTICE",
	LevelInfo:      "INFO",
	LevelDebug:     "DEBUG",
	LevelAll:       "ALL",
}

var levelAliases = map[string]Level{
	"emerg": LevelEmergency,
	"crit":  LevelCritical,
	"err":   LevelError,
	"warn":  LevelWarning,
}

func (l Level) String() string {
	if l < LevelOff || l > LevelAll {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Valid reports whether l is a severity an entry can carry.
func (l Level) Valid() bool {
	return l >= LevelEmergency && l <= LevelDebug
}

// Severity returns the syslog severity code, 0 for Emergency through 7 for
// Debug.
func (l Level) Severity() int {
	return int(l - LevelEmergency)
}

// Enabled reports whether an entry at level l passes threshold.
func (l Level) Enabled(threshold Level) bool {
	return l.Valid() && l <= threshold
}

// ParseLevel parses a level name, case-insensitively. Common syslog
// abbreviations such as "warn" and "err" are accepted.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if strings.ToLower(n) == name {
			return Level(l), nil
		}
	}
	if l, ok := levelAliases[name]; ok {
		return l, nil
	}
	return LevelOff, errors.New(errors.PhaseFormat, errors.KindInvalidInput).
		Value(s).
		Detail("unknown log level %q", s).
		Build()
}
