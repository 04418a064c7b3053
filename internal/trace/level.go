package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota
	LevelDriver       // driver operations only
	LevelPass         // driver + pass boundaries
	LevelUnit         // everything, including per-unit spans
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelDriver:
		return "driver"
	case LevelPass:
		return "pass"
	case LevelUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "driver":
		return LevelDriver, nil
	case "pass":
		return LevelPass, nil
	case "unit":
		return LevelUnit, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|driver|pass|unit)", s)
	}
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelDriver:
		return scope <= ScopeDriver
	case LevelPass:
		return scope <= ScopePass
	case LevelUnit:
		return scope <= ScopeUnit
	}
	return false
}
