package protocol

import (
	"strings"

	"github.com/rotisserie/eris"
)

// PlayerKind says who controls a side
type PlayerKind int

// The zero value is unset so configuration defaults can tell it apart
const (
	Human PlayerKind = iota + 1
	Computer
)

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return "unset"
}

func (k PlayerKind) Valid() bool {
	return k == Human || k == Computer
}

// Set parses "human" or "computer" (also "bot"), case-insensitive
func (k *PlayerKind) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		*k = Human
	case "computer", "bot":
		*k = Computer
	default:
		return eris.Errorf("unknown player kind %q (want human or computer)", s)
	}
	return nil
}

// Type names the value for command line help
func (k *PlayerKind) Type() string { return "player" }

// SetValue lets cleanenv fill the kind from the environment
func (k *PlayerKind) SetValue(s string) error { return k.Set(s) }

func (k PlayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PlayerKind) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}
