// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import "github.com/derailed/tcell/v2"

// Rune keys are registered as tcell.Key(rune) so they share one map with
// the special keys.
const (
	KeySpace    = tcell.Key(' ')
	KeySlash    = tcell.Key('/')
	KeyColon    = tcell.Key(':')
	KeyQuestion = tcell.Key('?')
	KeyLBracket = tcell.Key('[')
	KeyRBracket = tcell.Key(']')
	KeyLess     = tcell.Key('<')
	KeyGreater  = tcell.Key('>')
)

// Letters.
const (
	KeyA = tcell.Key('a')
	KeyB = tcell.Key('b')
	KeyC = tcell.Key('c')
	KeyD = tcell.Key('d')
	KeyE = tcell.Key('e')
	KeyG = tcell.Key('g')
	KeyH = tcell.Key('h')
	KeyI = tcell.Key('i')
	KeyJ = tcell.Key('j')
	KeyK = tcell.Key('k')
	KeyL = tcell.Key('l')
	KeyN = tcell.Key('n')
	KeyO = tcell.Key('o')
	KeyP = tcell.Key('p')
	KeyQ = tcell.Key('q')
	KeyR = tcell.Key('r')
	KeyS = tcell.Key('s')
	KeyW = tcell.Key('w')
	KeyX = tcell.Key('x')
	KeyY = tcell.Key('y')
	KeyZ = tcell.Key('z')

	KeyShiftD = tcell.Key('D')
	KeyShiftE = tcell.Key('E')
	KeyShiftG = tcell.Key('G')
	KeyShiftI = tcell.Key('I')
	KeyShiftR = tcell.Key('R')
)

// NumKeys maps digit keys to their value.
var NumKeys = map[int]tcell.Key{
	0: tcell.Key('0'),
	1: tcell.Key('1'),
	2: tcell.Key('2'),
	3: tcell.Key('3'),
	4: tcell.Key('4'),
	5: tcell.Key('5'),
	6: tcell.Key('6'),
	7: tcell.Key('7'),
	8: tcell.Key('8'),
	9: tcell.Key('9'),
}

var keyNames = map[tcell.Key]string{
	KeySpace:         "space",
	tcell.KeyEnter:   "enter",
	tcell.KeyEsc:     "esc",
	tcell.KeyTab:     "tab",
	tcell.KeyBacktab: "shift-tab",
	tcell.KeyDelete:  "del",
}

// KeyName returns the mnemonic shown in the menu for k.
func KeyName(k tcell.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if n, ok := tcell.KeyNames[k]; ok {
		return n
	}
	if k > ' ' && k < 0x7f {
		return string(rune(k))
	}

	return "?"
}

// AsKey turns an event into the key actions are registered under.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}

var shortcuts = map[string]tcell.Key{
	"ctrl-a": tcell.KeyCtrlA,
	"ctrl-b": tcell.KeyCtrlB,
	"ctrl-e": tcell.KeyCtrlE,
	"ctrl-g": tcell.KeyCtrlG,
	"ctrl-k": tcell.KeyCtrlK,
	"ctrl-l": tcell.KeyCtrlL,
	"ctrl-t": tcell.KeyCtrlT,
	"ctrl-x": tcell.KeyCtrlX,
	"f1":     tcell.KeyF1,
	"f2":     tcell.KeyF2,
	"f3":     tcell.KeyF3,
	"f4":     tcell.KeyF4,
	"f5":     tcell.KeyF5,
}

// ParseShortcut converts a configured shortcut ("shift-1", "ctrl-t", "f2",
// "x") into a key.
func ParseShortcut(s string) (tcell.Key, bool) {
	if k, ok := shortcuts[s]; ok {
		return k, true
	}
	if len(s) == len("shift-1") && s[:6] == "shift-" && s[6] >= '0' && s[6] <= '9' {
		return tcell.Key(")!@#$%^&*("[s[6]-'0']), true
	}
	if len(s) == 1 {
		return tcell.Key(s[0]), true
	}

	return 0, false
}
