package celadon

import "unicode/utf8"

// InputEvent is an event read from the terminal: a KeyEvent, MouseEvent or
// ResizeEvent.
type InputEvent interface {
	inputEvent()
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) inputEvent() {}

// parseInput decodes raw terminal input into key and SGR mouse events. A
// lone escape followed by a printable character is read as alt plus that
// character.
func parseInput(data []byte) []InputEvent {
	var events []InputEvent
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}

			switch next := data[i+1]; {
			case next == '[':
				if i+2 < len(data) && data[i+2] == '<' {
					if ev, consumed := parseMouseSGR(data[i:]); consumed > 0 {
						events = append(events, ev)
						i += consumed
						continue
					}
				}
				key, mod, consumed := parseCSISequence(data[i:])
				if consumed > 0 {
					if key != KeyNone {
						events = append(events, KeyEvent{Key: key, Mod: mod})
					}
					i += consumed
					continue
				}
			case next == 'O' && i+2 < len(data):
				if key := parseSS3(data[i+2]); key != KeyNone {
					events = append(events, KeyEvent{Key: key})
					i += 3
					continue
				}
			case next >= 0x20 && next < 0x7f:
				events = append(events, KeyEvent{Key: KeyRune, Rune: rune(next), Mod: ModAlt})
				i += 2
				continue
			}
			events = append(events, KeyEvent{Key: KeyEscape})
			i++
			continue
		}

		if b < 0x20 {
			events = append(events, KeyEvent{Key: controlToKey(b)})
			i++
			continue
		}

		// DEL is backspace on most terminals
		if b == 0x7f {
			events = append(events, KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		events = append(events, KeyEvent{Key: KeyRune, Rune: r})
		i += size
	}

	return events
}

// controlToKey converts a control character (0x00-0x1F) to a Key.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08:
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyNone
}

// parseCSISequence parses a CSI escape sequence starting at data[0].
// Returns the key, modifier, and number of bytes consumed.
// Returns (KeyNone, ModNone, 0) if parsing fails.
func parseCSISequence(data []byte) (Key, Modifier, int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		return KeyNone, ModNone, 0
	}

	var params []int
	current, hasParam := 0, false
	for i := 2; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			current = current*10 + int(b-'0')
			hasParam = true
		case b == ';':
			params = append(params, current)
			current, hasParam = 0, false
		case b >= 0x40 && b <= 0x7e:
			if hasParam {
				params = append(params, current)
			}
			key, mod := parseCSI(params, b)
			return key, mod, i + 1
		default:
			return KeyNone, ModNone, 0
		}
	}
	return KeyNone, ModNone, 0
}

var csiFinalKeys = map[byte]Key{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
}

var csiTildeKeys = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd, 5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5, 17: KeyF6,
	18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// parseCSI parses a complete CSI sequence given parameters and final byte.
func parseCSI(params []int, final byte) (Key, Modifier) {
	mod := ModNone
	// xterm-style: CSI 1;mod X
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		if key, ok := csiTildeKeys[params[0]]; ok {
			return key, mod
		}
		return KeyNone, ModNone
	case 'Z':
		return KeyTab, ModShift
	}
	if key, ok := csiFinalKeys[final]; ok {
		return key, mod
	}
	return KeyNone, ModNone
}

// parseSS3 parses an SS3 function key sequence.
func parseSS3(b byte) Key {
	if key, ok := csiFinalKeys[b]; ok {
		return key
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter.
// The parameter is encoded as: 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0)
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseMouseSGR parses an SGR-1006 mouse sequence.
// Format: ESC [ < button ; x ; y M (press) or ESC [ < button ; x ; y m (release)
// The button field encodes: button number + modifier bits
//
//	bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
//	bit 2: shift
//	bit 3: meta/alt
//	bit 4: ctrl
//	bit 5: motion (drag, or hover without a button)
//	bit 6: wheel (64=up, 65=down, 66=left, 67=right)
//
// Returns (MouseEvent{}, 0) on failure.
func parseMouseSGR(data []byte) (MouseEvent, int) {
	if len(data) < 9 || data[0] != 0x1b || data[1] != '[' || data[2] != '<' {
		return MouseEvent{}, 0
	}

	var fields [3]int
	stage := 0
	for i := 3; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			fields[stage] = fields[stage]*10 + int(b-'0')
		case b == ';':
			stage++
			if stage > 2 {
				return MouseEvent{}, 0
			}
		case b == 'M' || b == 'm':
			if stage != 2 {
				return MouseEvent{}, 0
			}
			ev := MouseEvent{
				Action: decodeMouseAction(fields[0], b == 'm'),
				X:      fields[1] - 1,
				Y:      fields[2] - 1,
			}
			return ev, i + 1
		default:
			return MouseEvent{}, 0
		}
	}
	return MouseEvent{}, 0
}

func decodeMouseAction(button int, released bool) MouseAction {
	var a MouseAction
	if button&4 != 0 {
		a.Mod |= ModShift
	}
	if button&8 != 0 {
		a.Mod |= ModAlt
	}
	if button&16 != 0 {
		a.Mod |= ModCtrl
	}

	if button&64 != 0 {
		a.Kind = [...]MouseKind{MouseScrollUp, MouseScrollDown, MouseScrollLeft, MouseScrollRight}[button&3]
		return a
	}

	a.Button = [...]MouseButton{MouseLeft, MouseMiddle, MouseRight, MouseNoButton}[button&3]
	switch {
	case button&32 != 0 && a.Button == MouseNoButton:
		a.Kind = MouseHover
	case button&32 != 0:
		a.Kind = MouseDrag
	case released:
		a.Kind = MouseRelease
	default:
		a.Kind = MouseClick
	}
	return a
}
