package core

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeProd Mode = iota
	ModeDev
)

func (m Mode) String() string {
	if m == ModeDev {
		return "development"
	}
	return "production"
}

func (m Mode) IsDev() bool {
	return m == ModeDev
}

// ParseMode accepts the values of the build environment selector.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "production", "prod":
		return ModeProd, nil
	case "development", "dev":
		return ModeDev, nil
	default:
		return ModeProd, fmt.Errorf("unknown environment %q (want development or production)", s)
	}
}
