package screen

import (
	"github.com/beanboi7/chyp8/emu/host"
	"github.com/faiface/pixel/pixelgl"
)

// buttons maps the host key runes of host.KeyLayout to pixelgl buttons.
var buttons = map[rune]pixelgl.Button{
	'1': pixelgl.Key1, '2': pixelgl.Key2, '3': pixelgl.Key3, '4': pixelgl.Key4,
	'q': pixelgl.KeyQ, 'w': pixelgl.KeyW, 'e': pixelgl.KeyE, 'r': pixelgl.KeyR,
	'a': pixelgl.KeyA, 's': pixelgl.KeyS, 'd': pixelgl.KeyD, 'f': pixelgl.KeyF,
	'z': pixelgl.KeyZ, 'x': pixelgl.KeyX, 'c': pixelgl.KeyC, 'v': pixelgl.KeyV,
}

// newKeyMap returns the keypad code to button mapping for the window.
func newKeyMap() map[uint16]pixelgl.Button {
	keyMap := make(map[uint16]pixelgl.Button, len(host.KeyLayout))
	for code, r := range host.KeyLayout {
		keyMap[uint16(code)] = buttons[r]
	}
	return keyMap
}
