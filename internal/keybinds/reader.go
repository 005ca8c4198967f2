package keybinds

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

const (
	keyEsc = 0x1B
	// consolePrefix and nulPrefix precede a scan code for extended keys on
	// consoles that do not send escape sequences
	consolePrefix = 0xE0
	nulPrefix     = 0x00
)

// scanCodes maps the byte following a console prefix to a key name
var scanCodes = map[byte]string{
	71: "home",
	72: "up",
	73: "pgup",
	75: "left",
	77: "right",
	79: "end",
	80: "down",
	81: "pgdown",
	82: "insert",
	83: "delete",
}

// csiTilde maps the numeric parameter of ESC [ n ~ sequences
var csiTilde = map[string]string{
	"1": "home",
	"2": "insert",
	"3": "delete",
	"4": "end",
	"5": "pgup",
	"6": "pgdown",
	"7": "home",
	"8": "end",
}

var finalKeys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
}

// Reader decodes key presses from a terminal input stream
type Reader struct {
	reader *bufio.Reader
}

// NewReader creates a key reader over r. r should deliver bytes as they
// are typed, e.g. a terminal in raw mode.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: bufio.NewReader(r)}
}

// ReadKey blocks for one key and returns its name. Unrecognised escape
// sequences are consumed whole and returned as "unknown".
func (r *Reader) ReadKey() (string, error) {
	b, err := r.reader.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == keyEsc:
		return r.readEscape()
	case b == consolePrefix:
		return r.readConsole(b)
	case b == nulPrefix:
		return r.readNul(), nil
	case b == '\r' || b == '\n':
		return "enter", nil
	case b == '\t':
		return "tab", nil
	case b == 0x7F || b == 0x08:
		return "backspace", nil
	case b >= 0x01 && b <= 0x1A:
		return fmt.Sprintf("ctrl+%c", 'a'+b-1), nil
	case b < 0x20:
		return "unknown", nil
	case b < utf8.RuneSelf:
		return string(rune(b)), nil
	default:
		return r.readRune(b)
	}
}

// readEscape tells a lone Escape from the start of a sequence. Terminals
// send a whole sequence in one write, so it is already buffered.
func (r *Reader) readEscape() (string, error) {
	if r.reader.Buffered() == 0 {
		return "esc", nil
	}

	peek, err := r.reader.Peek(1)
	if err != nil {
		return "esc", nil
	}

	switch peek[0] {
	case '[':
		r.reader.ReadByte()
		return r.readCSI()
	case 'O':
		r.reader.ReadByte()
		return r.readSS3()
	default:
		return "esc", nil
	}
}

func (r *Reader) readCSI() (string, error) {
	params := make([]byte, 0, 8)
	for {
		b, err := r.reader.ReadByte()
		if err != nil {
			return "", err
		}
		// Final byte range of a control sequence
		if b >= 0x40 && b <= 0x7E {
			if b == '~' {
				if name, ok := csiTilde[firstParam(params)]; ok {
					return name, nil
				}
				return "unknown", nil
			}
			if name, ok := finalKeys[b]; ok {
				return name, nil
			}
			return "unknown", nil
		}
		params = append(params, b)
	}
}

func (r *Reader) readSS3() (string, error) {
	b, err := r.reader.ReadByte()
	if err != nil {
		return "", err
	}
	if name, ok := finalKeys[b]; ok {
		return name, nil
	}
	return "unknown", nil
}

// readConsole handles a console prefix byte. 0xE0 is also the lead byte
// of some UTF-8 characters, told apart by the follow-up byte.
func (r *Reader) readConsole(prefix byte) (string, error) {
	next, err := r.reader.ReadByte()
	if err != nil {
		return "", err
	}

	if prefix == consolePrefix && next >= 0x80 {
		return r.readRune(prefix, next)
	}
	if name, ok := scanCodes[next]; ok {
		return name, nil
	}
	return "unknown", nil
}

// readNul tells a console scan code from a plain Ctrl+Space, which
// terminals send as a lone NUL. Only a buffered scan code is consumed.
func (r *Reader) readNul() string {
	if r.reader.Buffered() == 0 {
		return "ctrl+@"
	}
	peek, err := r.reader.Peek(1)
	if err != nil {
		return "ctrl+@"
	}
	if name, ok := scanCodes[peek[0]]; ok {
		r.reader.ReadByte()
		return name
	}
	return "ctrl+@"
}

// readRune completes a multi-byte UTF-8 character from its first bytes
func (r *Reader) readRune(lead ...byte) (string, error) {
	buf := append([]byte(nil), lead...)
	need := runeLen(lead[0])
	for len(buf) < need {
		b, err := r.reader.ReadByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
	}

	ru, _ := utf8.DecodeRune(buf)
	if ru == utf8.RuneError {
		return "unknown", nil
	}
	return string(ru), nil
}

// runeLen is the encoded length announced by a UTF-8 lead byte
func runeLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func firstParam(params []byte) string {
	for i, b := range params {
		if b == ';' {
			return string(params[:i])
		}
	}
	return string(params)
}
