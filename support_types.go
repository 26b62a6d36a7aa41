package main

import (
	"encoding"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColorMode describes when report output gets colorized.
type ColorMode int

const (
	ColorModeInvalid ColorMode = iota

	// ColorModeAuto colorizes only when stdout is a terminal.
	ColorModeAuto

	ColorModeOn
	ColorModeOff
)

var colorModeValueMap = map[ColorMode]string{
	ColorModeAuto: "auto",
	ColorModeOn:   "on",
	ColorModeOff:  "off",
}

func (m ColorMode) String() string {
	v, ok := colorModeValueMap[m]
	if !ok {
		return fmt.Sprintf("invalid(%d)", m)
	}

	return v
}

var _ encoding.TextUnmarshaler = (*ColorMode)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (m *ColorMode) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range colorModeValueMap {
		if v == text {
			*m = k
			return nil
		}
	}

	return fmt.Errorf("unknown color mode %q", text)
}

// UnmarshalYAML for config files: the yaml package does not consult
// encoding.TextUnmarshaler on its own.
func (m *ColorMode) UnmarshalYAML(node *yaml.Node) error {
	return m.UnmarshalText([]byte(node.Value))
}

// Set implements pflag.Value.
func (m *ColorMode) Set(text string) error {
	return m.UnmarshalText([]byte(text))
}

// Type implements pflag.Value.
func (m ColorMode) Type() string {
	return "mode"
}

func (m ColorMode) MarshalText() ([]byte, error) {
	v, ok := colorModeValueMap[m]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid ColorMode(%d)", m)
	}

	return []byte(v), nil
}
