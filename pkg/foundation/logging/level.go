package logging

import (
	"strconv"
	"strings"
)

// Level is the severity of a log entry.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{
	DEBUG:  "DEBUG",
	INFO:   "INFO",
	NOTICE: "NOTICE",
	WARN:   "WARN",
	ERROR:  "ERROR",
	FATAL:  "FATAL",
}

func (l Level) String() string {
	if l < DEBUG || l > FATAL {
		return ""
	}

	return levelNames[l]
}

// GetLevelFromString converts a level name such as "debug" to a Level. Unknown names give INFO.
func GetLevelFromString(name string) Level {
	for l := DEBUG; l <= FATAL; l++ {
		if strings.EqualFold(name, levelNames[l]) {
			return l
		}
	}

	return INFO
}

//nolint:mnd // ANSI colour codes
func (l Level) color() uint {
	switch {
	case l >= ERROR && l <= FATAL:
		return 31
	case l == WARN || l == NOTICE:
		return 33
	case l == INFO || l == DEBUG:
		return 36
	default:
		return 37
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(l.String())), nil
}
