package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for key symbols outside the supported set.
var ErrUnknownKey = errors.New("unknown key")

// Key is a symbolic key name as written in the configuration, e.g.
// "Key_Escape".
type Key string

// keySymbols maps every supported key symbol to the key strings the
// terminal reports for it. The first string is used for display.
var keySymbols = map[Key][]string{
	"Key_Escape":    {"esc"},
	"Key_Return":    {"enter"},
	"Key_Enter":     {"enter"},
	"Key_Space":     {" ", "space"},
	"Key_Tab":       {"tab"},
	"Key_Backtab":   {"shift+tab"},
	"Key_Backspace": {"backspace"},
	"Key_Delete":    {"delete"},
	"Key_Insert":    {"insert"},
	"Key_Left":      {"left"},
	"Key_Right":     {"right"},
	"Key_Up":        {"up"},
	"Key_Down":      {"down"},
	"Key_Home":      {"home"},
	"Key_End":       {"end"},
	"Key_PageUp":    {"pgup"},
	"Key_PageDown":  {"pgdown"},
	"Key_Plus":      {"+"},
	"Key_Minus":     {"-"},
	"Key_Comma":     {","},
	"Key_Period":    {"."},
	"Key_Slash":     {"/"},
	"Key_Asterisk":  {"*"},
	"Key_Equal":     {"="},
	"Key_Question":  {"?"},
}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		lower := strings.ToLower(string(c))
		keySymbols[Key("Key_"+string(c))] = []string{lower, string(c)}
	}
	for c := '0'; c <= '9'; c++ {
		keySymbols[Key("Key_"+string(c))] = []string{string(c)}
	}
	for i := 1; i <= 12; i++ {
		keySymbols[Key(fmt.Sprintf("Key_F%d", i))] = []string{fmt.Sprintf("f%d", i)}
	}
}

// ParseKey validates a key symbol.
func ParseKey(name string) (Key, error) {
	k := Key(strings.TrimSpace(name))
	if _, ok := keySymbols[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}

// Terminal returns the terminal key strings for k.
func (k Key) Terminal() []string {
	return keySymbols[k]
}

// Display returns the short label shown in help.
func (k Key) Display() string {
	if ts := keySymbols[k]; len(ts) > 0 {
		if ts[0] == " " {
			return "space"
		}
		return ts[0]
	}
	return string(k)
}
