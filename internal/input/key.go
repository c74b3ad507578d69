package input

import "fmt"

// Key is a keyboard key code. Values follow the classic DOM keyCode table so
// that games can be written against familiar constants.
type Key int

// Key codes.
const (
	KeyBackspace          Key = 8
	KeyTab                Key = 9
	KeyEnter              Key = 13
	KeyShift              Key = 16
	KeyCtrl               Key = 17
	KeyAlt                Key = 18
	KeyPause              Key = 19
	KeyCapsLock           Key = 20
	KeyEsc                Key = 27
	KeySpace              Key = 32
	KeyPageUp             Key = 33
	KeyPageDown           Key = 34
	KeyEnd                Key = 35
	KeyHome               Key = 36
	KeyLeftArrow          Key = 37
	KeyUpArrow            Key = 38
	KeyRightArrow         Key = 39
	KeyDownArrow          Key = 40
	KeyInsert             Key = 45
	KeyDelete             Key = 46
	KeyDigit0             Key = 48
	KeyDigit1             Key = 49
	KeyDigit2             Key = 50
	KeyDigit3             Key = 51
	KeyDigit4             Key = 52
	KeyDigit5             Key = 53
	KeyDigit6             Key = 54
	KeyDigit7             Key = 55
	KeyDigit8             Key = 56
	KeyDigit9             Key = 57
	KeyA                  Key = 65
	KeyB                  Key = 66
	KeyC                  Key = 67
	KeyD                  Key = 68
	KeyE                  Key = 69
	KeyF                  Key = 70
	KeyG                  Key = 71
	KeyH                  Key = 72
	KeyI                  Key = 73
	KeyJ                  Key = 74
	KeyK                  Key = 75
	KeyL                  Key = 76
	KeyM                  Key = 77
	KeyN                  Key = 78
	KeyO                  Key = 79
	KeyP                  Key = 80
	KeyQ                  Key = 81
	KeyR                  Key = 82
	KeyS                  Key = 83
	KeyT                  Key = 84
	KeyU                  Key = 85
	KeyV                  Key = 86
	KeyW                  Key = 87
	KeyX                  Key = 88
	KeyY                  Key = 89
	KeyZ                  Key = 90
	KeyF1                 Key = 112
	KeyF2                 Key = 113
	KeyF3                 Key = 114
	KeyF4                 Key = 115
	KeyF5                 Key = 116
	KeyF6                 Key = 117
	KeyF7                 Key = 118
	KeyF8                 Key = 119
	KeyF9                 Key = 120
	KeyF10                Key = 121
	KeyF11                Key = 122
	KeyF12                Key = 123
	KeyNumLock            Key = 144
	KeyScrollLock         Key = 145
	KeySemiColon          Key = 186
	KeyEquals             Key = 187
	KeyComma              Key = 188
	KeyDash               Key = 189
	KeyPeriod             Key = 190
	KeyForwardSlash       Key = 191
	KeyGraveAccent        Key = 192
	KeyOpenSquareBracket  Key = 219
	KeyBackSlash          Key = 220
	KeyCloseSquareBracket Key = 221
	KeySingleQuote        Key = 222
)

var keyNames = map[Key]string{
	KeyBackspace:          "backspace",
	KeyTab:                "tab",
	KeyEnter:              "enter",
	KeyShift:              "shift",
	KeyCtrl:               "ctrl",
	KeyAlt:                "alt",
	KeyPause:              "pause",
	KeyCapsLock:           "caps_lock",
	KeyEsc:                "esc",
	KeySpace:              "space",
	KeyPageUp:             "page_up",
	KeyPageDown:           "page_down",
	KeyEnd:                "end",
	KeyHome:               "home",
	KeyLeftArrow:          "left_arrow",
	KeyUpArrow:            "up_arrow",
	KeyRightArrow:         "right_arrow",
	KeyDownArrow:          "down_arrow",
	KeyInsert:             "insert",
	KeyDelete:             "delete",
	KeyDigit0:             "zero",
	KeyDigit1:             "one",
	KeyDigit2:             "two",
	KeyDigit3:             "three",
	KeyDigit4:             "four",
	KeyDigit5:             "five",
	KeyDigit6:             "six",
	KeyDigit7:             "seven",
	KeyDigit8:             "eight",
	KeyDigit9:             "nine",
	KeyA:                  "a",
	KeyB:                  "b",
	KeyC:                  "c",
	KeyD:                  "d",
	KeyE:                  "e",
	KeyF:                  "f",
	KeyG:                  "g",
	KeyH:                  "h",
	KeyI:                  "i",
	KeyJ:                  "j",
	KeyK:                  "k",
	KeyL:                  "l",
	KeyM:                  "m",
	KeyN:                  "n",
	KeyO:                  "o",
	KeyP:                  "p",
	KeyQ:                  "q",
	KeyR:                  "r",
	KeyS:                  "s",
	KeyT:                  "t",
	KeyU:                  "u",
	KeyV:                  "v",
	KeyW:                  "w",
	KeyX:                  "x",
	KeyY:                  "y",
	KeyZ:                  "z",
	KeyF1:                 "f1",
	KeyF2:                 "f2",
	KeyF3:                 "f3",
	KeyF4:                 "f4",
	KeyF5:                 "f5",
	KeyF6:                 "f6",
	KeyF7:                 "f7",
	KeyF8:                 "f8",
	KeyF9:                 "f9",
	KeyF10:                "f10",
	KeyF11:                "f11",
	KeyF12:                "f12",
	KeyNumLock:            "num_lock",
	KeyScrollLock:         "scroll_lock",
	KeySemiColon:          "semi_colon",
	KeyEquals:             "equals",
	KeyComma:              "comma",
	KeyDash:               "dash",
	KeyPeriod:             "period",
	KeyForwardSlash:       "forward_slash",
	KeyGraveAccent:        "grave_accent",
	KeyOpenSquareBracket:  "open_square_bracket",
	KeyBackSlash:          "back_slash",
	KeyCloseSquareBracket: "close_square_bracket",
	KeySingleQuote:        "single_quote",
}

// String returns the lowercase name of the key, e.g. "left_arrow".
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}
