package cpu

// Frame returns the display cells in row-major order, each PixelOff or PixelOn.
// The slice aliases the interpreter buffer and must only be read between cycles.
func (emu *EMU) Frame() []uint32 {
	return emu.display[:]
}

// Pixel reports whether the cell at x, y is lit. Out of range positions are off.
func (emu *EMU) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return emu.display[y*DisplayWidth+x] == PixelOn
}

// DrawFlag reports whether the frame changed since the last ClearDrawFlag.
func (emu *EMU) DrawFlag() bool {
	return emu.drawFlag
}

func (emu *EMU) ClearDrawFlag() {
	emu.drawFlag = false
}

// SetKeys replaces the whole keypad state, indexed by key code.
func (emu *EMU) SetKeys(keys [KeyCount]bool) {
	emu.keyState = keys
}

// SetKey sets one key. Codes above 0xF are ignored.
func (emu *EMU) SetKey(key uint8, pressed bool) {
	if key >= KeyCount {
		return
	}
	emu.keyState[key] = pressed
}

// SoundActive reports whether the sound timer is still counting.
func (emu *EMU) SoundActive() bool {
	return emu.soundTimer > 0
}

func (emu *EMU) Registers() [RegisterCount]uint8 {
	return emu.V
}

func (emu *EMU) Index() uint16 {
	return emu.I
}

func (emu *EMU) PC() uint16 {
	return emu.pc
}

func (emu *EMU) SP() uint8 {
	return emu.sp
}

func (emu *EMU) Opcode() uint16 {
	return emu.opcode
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// Memory returns the byte at addr, wrapped to the 4KB address space.
func (emu *EMU) Memory(addr uint16) uint8 {
	return emu.read(addr)
}
