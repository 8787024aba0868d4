package interpreter

import (
	"fmt"
	"strings"
)

// SupportLevel classifies how much surrounding context an interpreter may
// consume. Levels are totally ordered and each implies the ones below it.
type SupportLevel int

const (
	Unsupported SupportLevel = iota
	Line
	Bloc
	Import
	File
)

var levelNames = map[SupportLevel]string{
	Unsupported: "unsupported",
	Line:        "line",
	Bloc:        "bloc",
	Import:      "import",
	File:        "file",
}

// ParseSupportLevel converts a level name to a SupportLevel. Matching is
// case-insensitive and "block" is accepted as an alias for "bloc".
func ParseSupportLevel(s string) (SupportLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "block" {
		return Bloc, nil
	}
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return Unsupported, fmt.Errorf("unknown support level %q (expected one of unsupported, line, bloc, import, file)", s)
}

func (l SupportLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("SupportLevel(%d)", int(l))
}

// AtLeast reports whether l grants every capability of other.
func (l SupportLevel) AtLeast(other SupportLevel) bool {
	return l >= other
}

// Clamp caps l at max.
func (l SupportLevel) Clamp(max SupportLevel) SupportLevel {
	if l > max {
		return max
	}
	if l < Unsupported {
		return Unsupported
	}
	return l
}

// MarshalText implements encoding.TextMarshaler.
func (l SupportLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *SupportLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseSupportLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
