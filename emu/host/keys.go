package host

/*
KeyLayout maps each keypad code to the host key at the same position
of the left hand block of a QWERTY keyboard:

	Keypad       Keyboard
	|1|2|3|C|    |1|2|3|4|
	|4|5|6|D|    |Q|W|E|R|
	|7|8|9|E| => |A|S|D|F|
	|A|0|B|F|    |Z|X|C|V|
*/
var KeyLayout = [16]rune{
	0x0: 'x',
	0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e',
	0x7: 'a', 0x8: 's', 0x9: 'd',
	0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// KeyForRune returns the keypad code of a host key, case insensitive.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for code, key := range KeyLayout {
		if key == r {
			return uint8(code), true
		}
	}
	return 0, false
}
